package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"registru-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ImportTemplateRepository struct {
	DB *pgxpool.Pool
}

func NewImportTemplateRepository(db *pgxpool.Pool) *ImportTemplateRepository {
	return &ImportTemplateRepository{DB: db}
}

func (r *ImportTemplateRepository) Create(ctx context.Context, t *models.ImportTemplate) error {
	mapping, err := json.Marshal(t.Mapping)
	if err != nil {
		return fmt.Errorf("failed to encode mapping: %w", err)
	}
	return r.DB.QueryRow(ctx,
		`INSERT INTO import_templates(name, file_format, start_row, mapping)
         VALUES($1, $2, $3, $4)
         RETURNING id, created_at, updated_at`,
		t.Name, t.FileFormat, t.StartRow, mapping,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *ImportTemplateRepository) Update(ctx context.Context, t *models.ImportTemplate) error {
	mapping, err := json.Marshal(t.Mapping)
	if err != nil {
		return fmt.Errorf("failed to encode mapping: %w", err)
	}
	_, err = r.DB.Exec(ctx,
		`UPDATE import_templates
         SET name=$1, file_format=$2, start_row=$3, mapping=$4, updated_at=NOW()
         WHERE id=$5`,
		t.Name, t.FileFormat, t.StartRow, mapping, t.ID)
	return err
}

func (r *ImportTemplateRepository) Get(ctx context.Context, id int) (*models.ImportTemplate, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, file_format, start_row, mapping, created_at, updated_at
         FROM import_templates WHERE id=$1`, id)

	var t models.ImportTemplate
	var mapping []byte
	err := row.Scan(&t.ID, &t.Name, &t.FileFormat, &t.StartRow, &mapping, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(mapping, &t.Mapping); err != nil {
		return nil, fmt.Errorf("failed to decode mapping for template %d: %w", t.ID, err)
	}
	return &t, nil
}

func (r *ImportTemplateRepository) List(ctx context.Context) ([]*models.ImportTemplate, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, file_format, start_row, mapping, created_at, updated_at
         FROM import_templates ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*models.ImportTemplate
	for rows.Next() {
		var t models.ImportTemplate
		var mapping []byte
		err := rows.Scan(&t.ID, &t.Name, &t.FileFormat, &t.StartRow, &mapping, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(mapping, &t.Mapping); err != nil {
			return nil, fmt.Errorf("failed to decode mapping for template %d: %w", t.ID, err)
		}
		templates = append(templates, &t)
	}
	return templates, rows.Err()
}

func (r *ImportTemplateRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM import_templates WHERE id=$1`, id)
	return err
}
