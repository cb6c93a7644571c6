package repositories

import (
	"context"
	"errors"
	"fmt"

	"registru-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrYearExists is returned by Create when the year is already registered.
var ErrYearExists = errors.New("registry year already exists")

type RegistryYearRepository struct {
	DB *pgxpool.Pool
}

func NewRegistryYearRepository(db *pgxpool.Pool) *RegistryYearRepository {
	return &RegistryYearRepository{DB: db}
}

// Create registers a new year. New years start inactive; activation is an
// explicit operator step.
func (r *RegistryYearRepository) Create(ctx context.Context, y *models.RegistryYear) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO registry_years(year, is_active)
         VALUES($1, FALSE)
         ON CONFLICT (year) DO NOTHING
         RETURNING id, is_active, created_at`,
		y.Year,
	).Scan(&y.ID, &y.IsActive, &y.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrYearExists
	}
	return err
}

// GetActive returns the single active year, or pgx.ErrNoRows when none is
// marked active.
func (r *RegistryYearRepository) GetActive(ctx context.Context) (*models.RegistryYear, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, year, is_active, created_at
         FROM registry_years WHERE is_active=TRUE
         ORDER BY year DESC LIMIT 1`)

	var year models.RegistryYear
	err := row.Scan(&year.ID, &year.Year, &year.IsActive, &year.CreatedAt)
	return &year, err
}

// GetLatest returns the most recent year regardless of active state, the
// fallback when no year is active.
func (r *RegistryYearRepository) GetLatest(ctx context.Context) (*models.RegistryYear, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, year, is_active, created_at
         FROM registry_years ORDER BY year DESC LIMIT 1`)

	var year models.RegistryYear
	err := row.Scan(&year.ID, &year.Year, &year.IsActive, &year.CreatedAt)
	return &year, err
}

func (r *RegistryYearRepository) Get(ctx context.Context, id int) (*models.RegistryYear, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, year, is_active, created_at
         FROM registry_years WHERE id=$1`, id)

	var year models.RegistryYear
	err := row.Scan(&year.ID, &year.Year, &year.IsActive, &year.CreatedAt)
	return &year, err
}

func (r *RegistryYearRepository) GetByYear(ctx context.Context, yearNumber int) (*models.RegistryYear, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, year, is_active, created_at
         FROM registry_years WHERE year=$1`, yearNumber)

	var year models.RegistryYear
	err := row.Scan(&year.ID, &year.Year, &year.IsActive, &year.CreatedAt)
	return &year, err
}

// ListWithCounts returns all years, newest first, each with its entry count.
func (r *RegistryYearRepository) ListWithCounts(ctx context.Context) ([]*models.RegistryYear, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT y.id, y.year, y.is_active, y.created_at,
		        COALESCE(ec.total, 0) as entry_count
         FROM registry_years y
         LEFT JOIN (
             SELECT year_id, COUNT(*) as total
             FROM manifest_entries
             GROUP BY year_id
         ) ec ON y.id = ec.year_id
         ORDER BY y.year DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []*models.RegistryYear
	for rows.Next() {
		var year models.RegistryYear
		err := rows.Scan(&year.ID, &year.Year, &year.IsActive, &year.CreatedAt, &year.EntryCount)
		if err != nil {
			return nil, err
		}
		years = append(years, &year)
	}
	return years, rows.Err()
}

// Activate makes one year the active target of imports. Both updates run in
// one transaction so at most one year is ever active.
func (r *RegistryYearRepository) Activate(ctx context.Context, id int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE registry_years SET is_active=FALSE WHERE is_active=TRUE`); err != nil {
		return err
	}

	result, err := tx.Exec(ctx,
		`UPDATE registry_years SET is_active=TRUE WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("registry year %d not found", id)
	}
	return tx.Commit(ctx)
}
