package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/Nikskoz/AutoAdvisor/internal/model"
)

const listingColumns = `id, make_model, year, price, mileage, engine, transmission,
	color, body_type, tech_inspection, options, description, image, url`

// ListingRepository handles read access to the cars table.
type ListingRepository struct {
	db *sqlx.DB
}

// NewDB opens the shared PostgreSQL connection pool.
func NewDB(dsn string, maxConn, maxIdleConn int) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// NewListingRepository creates a listing repository over an open pool.
func NewListingRepository(db *sqlx.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// SearchWithFilters returns every listing matching the given range/equality
// filters. Price and mileage are stored as formatted text, so the predicates
// strip the formatting before casting.
func (r *ListingRepository) SearchWithFilters(ctx context.Context, filters *model.SearchFilters) ([]model.Listing, error) {
	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	const priceExpr = "CAST(REPLACE(REPLACE(price, ' ', ''), '€', '') AS INTEGER)"
	const mileageExpr = "CAST(REPLACE(REPLACE(mileage, ' ', ''), 'km', '') AS INTEGER)"

	if filters != nil {
		if filters.Price.Min != nil && filters.Price.Max != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("%s BETWEEN $%d AND $%d", priceExpr, argIndex, argIndex+1))
			args = append(args, *filters.Price.Min, *filters.Price.Max)
			argIndex += 2
		} else if filters.Price.Min != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("%s >= $%d", priceExpr, argIndex))
			args = append(args, *filters.Price.Min)
			argIndex++
		} else if filters.Price.Max != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("%s <= $%d", priceExpr, argIndex))
			args = append(args, *filters.Price.Max)
			argIndex++
		}

		if filters.Mileage.Min != nil && filters.Mileage.Max != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("%s BETWEEN $%d AND $%d", mileageExpr, argIndex, argIndex+1))
			args = append(args, *filters.Mileage.Min, *filters.Mileage.Max)
			argIndex += 2
		} else if filters.Mileage.Min != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("%s >= $%d", mileageExpr, argIndex))
			args = append(args, *filters.Mileage.Min)
			argIndex++
		} else if filters.Mileage.Max != nil {
			whereClauses = append(whereClauses, fmt.Sprintf("%s <= $%d", mileageExpr, argIndex))
			args = append(args, *filters.Mileage.Max)
			argIndex++
		}

		if filters.FuelType != nil && *filters.FuelType != "" {
			whereClauses = append(whereClauses, fmt.Sprintf("LOWER(engine) LIKE LOWER($%d)", argIndex))
			args = append(args, "%"+*filters.FuelType+"%")
			argIndex++
		}

		if filters.Color != nil && *filters.Color != "" {
			whereClauses = append(whereClauses, fmt.Sprintf("LOWER(color) = LOWER($%d)", argIndex))
			args = append(args, *filters.Color)
			argIndex++
		}
	}

	query := fmt.Sprintf("SELECT %s FROM cars WHERE %s", listingColumns, strings.Join(whereClauses, " AND "))

	var listings []model.Listing
	if err := r.db.SelectContext(ctx, &listings, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch listings: %w", err)
	}

	return listings, nil
}
