package repositories

import (
	"context"

	"registru-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ContainerTypeRepository struct {
	DB *pgxpool.Pool
}

func NewContainerTypeRepository(db *pgxpool.Pool) *ContainerTypeRepository {
	return &ContainerTypeRepository{DB: db}
}

// GetOrCreate resolves a container model to its lookup row, inserting it if
// missing. The single-statement upsert makes concurrent resolves of the same
// model converge on one row; created reports whether this call inserted it.
func (r *ContainerTypeRepository) GetOrCreate(ctx context.Context, model, typeCode string) (*models.ContainerType, bool, error) {
	query := `
		WITH ins AS (
			INSERT INTO container_types(model, type_code)
			VALUES($1, $2)
			ON CONFLICT (model) DO NOTHING
			RETURNING id, model, type_code, COALESCE(description, '') as description, created_at, updated_at
		)
		SELECT id, model, type_code, description, created_at, updated_at, TRUE as created FROM ins
		UNION ALL
		SELECT id, model, type_code, COALESCE(description, '') as description, created_at, updated_at, FALSE as created
		FROM container_types WHERE model=$1
		LIMIT 1
	`

	var ct models.ContainerType
	var created bool
	err := r.DB.QueryRow(ctx, query, model, typeCode).Scan(
		&ct.ID, &ct.Model, &ct.TypeCode, &ct.Description, &ct.CreatedAt, &ct.UpdatedAt, &created)
	if err != nil {
		return nil, false, err
	}
	return &ct, created, nil
}

func (r *ContainerTypeRepository) List(ctx context.Context) ([]*models.ContainerType, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, model, type_code, COALESCE(description, '') as description, created_at, updated_at
         FROM container_types ORDER BY model`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []*models.ContainerType
	for rows.Next() {
		var ct models.ContainerType
		err := rows.Scan(&ct.ID, &ct.Model, &ct.TypeCode, &ct.Description, &ct.CreatedAt, &ct.UpdatedAt)
		if err != nil {
			return nil, err
		}
		types = append(types, &ct)
	}
	return types, rows.Err()
}
