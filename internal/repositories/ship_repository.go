package repositories

import (
	"context"

	"registru-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ShipRepository struct {
	DB *pgxpool.Pool
}

func NewShipRepository(db *pgxpool.Pool) *ShipRepository {
	return &ShipRepository{DB: db}
}

// GetOrCreate resolves a ship by name compared case-insensitively, inserting
// it if missing. "MAERSK LINE" and "Maersk Line" resolve to one row; the
// casing of the first insert is the one the lookup keeps.
func (r *ShipRepository) GetOrCreate(ctx context.Context, name, shippingLine string, flagID *int) (*models.Ship, bool, error) {
	query := `
		WITH ins AS (
			INSERT INTO ships(name, shipping_line, flag_id)
			VALUES($1, $2, $3)
			ON CONFLICT ((LOWER(name))) DO NOTHING
			RETURNING id, name, COALESCE(shipping_line, '') as shipping_line, flag_id,
			          COALESCE(description, '') as description, created_at, updated_at
		)
		SELECT id, name, shipping_line, flag_id, description, created_at, updated_at, TRUE as created FROM ins
		UNION ALL
		SELECT id, name, COALESCE(shipping_line, '') as shipping_line, flag_id,
		       COALESCE(description, '') as description, created_at, updated_at, FALSE as created
		FROM ships WHERE LOWER(name)=LOWER($1)
		LIMIT 1
	`

	var ship models.Ship
	var created bool
	err := r.DB.QueryRow(ctx, query, name, shippingLine, flagID).Scan(
		&ship.ID, &ship.Name, &ship.ShippingLine, &ship.FlagID,
		&ship.Description, &ship.CreatedAt, &ship.UpdatedAt, &created)
	if err != nil {
		return nil, false, err
	}
	return &ship, created, nil
}

func (r *ShipRepository) List(ctx context.Context) ([]*models.Ship, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, COALESCE(shipping_line, '') as shipping_line, flag_id,
		        COALESCE(description, '') as description, created_at, updated_at
         FROM ships ORDER BY LOWER(name)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ships []*models.Ship
	for rows.Next() {
		var ship models.Ship
		err := rows.Scan(&ship.ID, &ship.Name, &ship.ShippingLine, &ship.FlagID,
			&ship.Description, &ship.CreatedAt, &ship.UpdatedAt)
		if err != nil {
			return nil, err
		}
		ships = append(ships, &ship)
	}
	return ships, rows.Err()
}
