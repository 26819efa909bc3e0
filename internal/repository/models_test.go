package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func modelInfoRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"model_name", "production_years", "engine_specifications", "engine_code",
		"fuel_type", "positives", "negatives", "common_problems",
		"high_mileage_considerations", "original_price_eur",
	})
}

func TestModelInfoRepository_Resolve_StrictMatch(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM bmw_models")).
		WithArgs("320d", "%320d%", "%320%", "%diesel%", "%diesel%",
			"%2016%", 2016, 2016, "320d", "%320d%").
		WillReturnRows(modelInfoRows().AddRow(
			"BMW 320d (F30)", "2012-2018", "2.0L B47", "B47D20", "Diesel",
			"Efficient engine. Good handling. Solid interior",
			"Timing chain wear. EGR clogging",
			"Timing chain, EGR valve",
			"Check chain noise at cold start",
			"42000",
		))

	repo := NewModelInfoRepository(db)
	info := repo.Resolve(context.Background(), "320d", 2016, "diesel")

	if info.ModelName != "BMW 320d (F30)" {
		t.Errorf("modelName = %q, want %q", info.ModelName, "BMW 320d (F30)")
	}
	if len(info.Positives) != 3 {
		t.Errorf("positives = %v, want 3 entries", info.Positives)
	}
	if len(info.Negatives) != 2 {
		t.Errorf("negatives = %v, want 2 entries", info.Negatives)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestModelInfoRepository_Resolve_NoEngineHint(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	// Without an engine hint no fuel predicate is added; the year bracket
	// still applies.
	mock.ExpectQuery(regexp.QuoteMeta("FROM bmw_models")).
		WithArgs("320i", "%320i%", "%320%", "%2012%", 2012, 2012, "320i", "%320i%").
		WillReturnRows(modelInfoRows().AddRow(
			"BMW 320i (E90)", "2005-2012", "2.0L N46", "N46B20", "Petrol",
			"", "", "", "", "",
		))

	repo := NewModelInfoRepository(db)
	info := repo.Resolve(context.Background(), "320i", 2012, "")

	if info.ModelName != "BMW 320i (E90)" {
		t.Errorf("modelName = %q, want %q", info.ModelName, "BMW 320i (E90)")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestModelInfoRepository_Resolve_RelaxedFallback(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	// The strict query finds nothing; the relaxed retry matches the model
	// number alone with no year or fuel constraint.
	mock.ExpectQuery(regexp.QuoteMeta("FROM bmw_models")).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE LOWER(model_name) LIKE $1")).
		WithArgs("%320%").
		WillReturnRows(modelInfoRows().AddRow(
			"BMW 320i (E90)", "2005-2012", "2.0L N46", "N46B20", "Petrol",
			"", "", "", "", "",
		))

	repo := NewModelInfoRepository(db)
	info := repo.Resolve(context.Background(), "320d", 2016, "diesel")

	if info.ModelName != "BMW 320i (E90)" {
		t.Errorf("modelName = %q, want relaxed match", info.ModelName)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestModelInfoRepository_Resolve_NoMatch(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM bmw_models")).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE LOWER(model_name) LIKE $1")).
		WillReturnError(sql.ErrNoRows)

	repo := NewModelInfoRepository(db)
	info := repo.Resolve(context.Background(), "Z8", 0, "")

	if info.ModelName != "" {
		t.Errorf("modelName = %q, want empty", info.ModelName)
	}
	// The empty record keeps non-nil slices so callers can range freely.
	if info.Positives == nil || info.Negatives == nil {
		t.Error("empty record must carry non-nil trait slices")
	}
}

func TestModelInfoRepository_Resolve_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM bmw_models")).
		WillReturnError(sql.ErrConnDone)

	repo := NewModelInfoRepository(db)
	info := repo.Resolve(context.Background(), "530d", 2015, "diesel")

	if info.ModelName != "" {
		t.Errorf("modelName = %q, want empty on lookup error", info.ModelName)
	}
}

func TestModelInfoRepository_Resolve_ElectricHint(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	// A Latvian electric hint constrains fuel to electric.
	mock.ExpectQuery(regexp.QuoteMeta("FROM bmw_models")).
		WithArgs("i3", "%i3%", "%i3%", "%electric%", "%electric%", "i3", "%i3%").
		WillReturnRows(modelInfoRows().AddRow(
			"BMW i3", "2013-2022", "eDrive", "", "Electric",
			"", "", "", "", "",
		))

	repo := NewModelInfoRepository(db)
	info := repo.Resolve(context.Background(), "i3", 0, "Elektrisks")

	if info.ModelName != "BMW i3" {
		t.Errorf("modelName = %q, want %q", info.ModelName, "BMW i3")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
