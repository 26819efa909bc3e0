package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/Nikskoz/AutoAdvisor/internal/model"
)

const modelInfoColumns = `model_name, production_years, engine_specifications, engine_code,
	fuel_type, positives, negatives, common_problems,
	high_mileage_considerations, original_price_eur`

var (
	nonAlnumRe   = regexp.MustCompile(`[^a-zA-Z0-9]`)
	baseModelRe  = regexp.MustCompile(`(\d{3})`)
	electricHint = []string{"electric", "elektr", "ev", "hybrid", "hibrid"}
)

// ModelInfoRepository resolves BMW model reference data with fuzzy matching.
type ModelInfoRepository struct {
	db *sqlx.DB
}

// NewModelInfoRepository creates a model-info repository over an open pool.
func NewModelInfoRepository(db *sqlx.DB) *ModelInfoRepository {
	return &ModelInfoRepository{db: db}
}

type modelInfoRow struct {
	ModelName                 sql.NullString `db:"model_name"`
	ProductionYears           sql.NullString `db:"production_years"`
	EngineSpecifications      sql.NullString `db:"engine_specifications"`
	EngineCode                sql.NullString `db:"engine_code"`
	FuelType                  sql.NullString `db:"fuel_type"`
	Positives                 sql.NullString `db:"positives"`
	Negatives                 sql.NullString `db:"negatives"`
	CommonProblems            sql.NullString `db:"common_problems"`
	HighMileageConsiderations sql.NullString `db:"high_mileage_considerations"`
	OriginalPriceEUR          sql.NullString `db:"original_price_eur"`
}

// Resolve looks up reference data for a model name with an optional year and
// engine-type hint. It never fails: lookup errors and empty results both
// degrade to the empty ModelInfo record.
//
// Matching precedence: exact name with spaces stripped, then full-name
// substring, then the 3-digit model-number token; ties broken by the
// shortest model name. When the combined query finds nothing, a relaxed
// retry matches on the model-number substring alone, dropping the year and
// fuel constraints.
func (r *ModelInfoRepository) Resolve(ctx context.Context, modelName string, year int, engineType string) model.ModelInfo {
	cleanModel := strings.ToLower(nonAlnumRe.ReplaceAllString(modelName, ""))
	engineType = strings.ToLower(engineType)

	baseModel := cleanModel
	if m := baseModelRe.FindStringSubmatch(cleanModel); m != nil {
		baseModel = m[1]
	}

	isElectric := false
	for _, term := range electricHint {
		if engineType != "" && strings.Contains(engineType, term) {
			isElectric = true
			break
		}
	}

	log.Info().
		Str("model", modelName).
		Str("base", baseModel).
		Int("year", year).
		Str("engine", engineType).
		Bool("electric", isElectric).
		Msg("Searching for model info")

	query := fmt.Sprintf(`SELECT %s FROM bmw_models WHERE 1=1`, modelInfoColumns)
	args := []interface{}{}
	argIndex := 1

	query += fmt.Sprintf(` AND (
		LOWER(REPLACE(model_name, ' ', '')) = $%d
		OR LOWER(model_name) LIKE $%d
		OR LOWER(model_name) LIKE $%d
	)`, argIndex, argIndex+1, argIndex+2)
	args = append(args, cleanModel, "%"+strings.ToLower(modelName)+"%", "%"+baseModel+"%")
	argIndex += 3

	if engineType != "" {
		switch {
		case isElectric:
			query += fmt.Sprintf(" AND (LOWER(fuel_type) LIKE $%d OR LOWER(engine_specifications) LIKE $%d)", argIndex, argIndex+1)
			args = append(args, "%electric%", "%electric%")
			argIndex += 2
		case strings.Contains(engineType, "diesel") || strings.Contains(engineType, "d"):
			query += fmt.Sprintf(" AND (LOWER(fuel_type) LIKE $%d OR LOWER(engine_specifications) LIKE $%d)", argIndex, argIndex+1)
			args = append(args, "%diesel%", "%diesel%")
			argIndex += 2
		case strings.Contains(engineType, "petrol") || strings.Contains(engineType, "benzin") || strings.Contains(engineType, "gasoline"):
			query += fmt.Sprintf(" AND (LOWER(fuel_type) LIKE $%d OR LOWER(engine_specifications) LIKE $%d)", argIndex, argIndex+1)
			args = append(args, "%petrol%", "%petrol%")
			argIndex += 2
		}
	}

	if year > 0 {
		// production_years is a string like "2010-2015", "2010-present"
		// or just "2010".
		query += fmt.Sprintf(` AND (
			production_years LIKE $%d OR (
				CAST(SUBSTR(production_years, 1, 4) AS INTEGER) <= $%d AND (
					production_years LIKE '%%present%%' OR
					CAST(SUBSTR(production_years, 6, 4) AS INTEGER) >= $%d
				)
			)
		)`, argIndex, argIndex+1, argIndex+2)
		args = append(args, fmt.Sprintf("%%%d%%", year), year, year)
		argIndex += 3
	}

	query += fmt.Sprintf(`
		ORDER BY CASE
			WHEN LOWER(REPLACE(model_name, ' ', '')) = $%d THEN 1
			WHEN LOWER(model_name) LIKE $%d THEN 2
			ELSE 3
		END,
		LENGTH(model_name) ASC
		LIMIT 1`, argIndex, argIndex+1)
	args = append(args, cleanModel, "%"+strings.ToLower(modelName)+"%")

	var row modelInfoRow
	err := r.db.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		log.Info().Str("model", modelName).Msg("No match with strict criteria, trying relaxed search")
		err = r.relaxedLookup(ctx, baseModel, &row)
	}
	if errors.Is(err, sql.ErrNoRows) {
		log.Warn().Str("model", modelName).Int("year", year).Str("engine", engineType).
			Msg("No model info found")
		return emptyModelInfo()
	}
	if err != nil {
		log.Error().Err(err).Str("model", modelName).Msg("Error fetching model info")
		return emptyModelInfo()
	}

	info := row.toModelInfo()
	log.Info().Str("model", modelName).Str("matched", info.ModelName).Msg("Found model info")
	return info
}

// relaxedLookup retries on the model-number substring alone, unscoped by
// year or fuel. Known accuracy tradeoff: the returned record may describe a
// different production era or fuel variant of the same model family.
func (r *ModelInfoRepository) relaxedLookup(ctx context.Context, baseModel string, row *modelInfoRow) error {
	query := fmt.Sprintf(`SELECT %s FROM bmw_models
		WHERE LOWER(model_name) LIKE $1
		ORDER BY LENGTH(model_name) ASC
		LIMIT 1`, modelInfoColumns)
	return r.db.GetContext(ctx, row, query, "%"+baseModel+"%")
}

func (row modelInfoRow) toModelInfo() model.ModelInfo {
	return model.ModelInfo{
		ModelName:                 row.ModelName.String,
		ProductionYears:           row.ProductionYears.String,
		EngineSpecifications:      row.EngineSpecifications.String,
		EngineCode:                row.EngineCode.String,
		FuelType:                  row.FuelType.String,
		Positives:                 splitTraits(row.Positives.String),
		Negatives:                 splitTraits(row.Negatives.String),
		CommonIssues:              row.CommonProblems.String,
		HighMileageConsiderations: row.HighMileageConsiderations.String,
		OriginalPriceEUR:          row.OriginalPriceEUR.String,
	}
}

func splitTraits(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ". ")
}

func emptyModelInfo() model.ModelInfo {
	return model.ModelInfo{Positives: []string{}, Negatives: []string{}}
}
