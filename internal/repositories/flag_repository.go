package repositories

import (
	"context"

	"registru-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type FlagRepository struct {
	DB *pgxpool.Pool
}

func NewFlagRepository(db *pgxpool.Pool) *FlagRepository {
	return &FlagRepository{DB: db}
}

// GetOrCreate resolves a flag (pavilion) name, inserting it if missing.
func (r *FlagRepository) GetOrCreate(ctx context.Context, name string) (*models.Flag, bool, error) {
	query := `
		WITH ins AS (
			INSERT INTO flags(name)
			VALUES($1)
			ON CONFLICT (name) DO NOTHING
			RETURNING id, name, created_at, updated_at
		)
		SELECT id, name, created_at, updated_at, TRUE as created FROM ins
		UNION ALL
		SELECT id, name, created_at, updated_at, FALSE as created
		FROM flags WHERE name=$1
		LIMIT 1
	`

	var flag models.Flag
	var created bool
	err := r.DB.QueryRow(ctx, query, name).Scan(
		&flag.ID, &flag.Name, &flag.CreatedAt, &flag.UpdatedAt, &created)
	if err != nil {
		return nil, false, err
	}
	return &flag, created, nil
}

func (r *FlagRepository) List(ctx context.Context) ([]*models.Flag, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, created_at, updated_at FROM flags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flags []*models.Flag
	for rows.Next() {
		var flag models.Flag
		if err := rows.Scan(&flag.ID, &flag.Name, &flag.CreatedAt, &flag.UpdatedAt); err != nil {
			return nil, err
		}
		flags = append(flags, &flag)
	}
	return flags, rows.Err()
}
