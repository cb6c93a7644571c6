package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"registru-backend/internal/importer"
	"registru-backend/internal/models"
)

// TemplateRepository is the full template persistence surface, of which the
// import service only needs Get.
type TemplateRepository interface {
	TemplateStore
	Create(ctx context.Context, t *models.ImportTemplate) error
	Update(ctx context.Context, t *models.ImportTemplate) error
	List(ctx context.Context) ([]*models.ImportTemplate, error)
	Delete(ctx context.Context, id int) error
}

type TemplateService struct {
	TemplateRepo TemplateRepository
}

func NewTemplateService(templateRepo TemplateRepository) *TemplateService {
	return &TemplateService{TemplateRepo: templateRepo}
}

// validateTemplate rejects a template that could never drive a clean import:
// unknown mapping keys, manual fields mapped to columns, or labels that are
// not spreadsheet column letters.
func validateTemplate(req *models.SaveTemplateRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.New("template name is required")
	}
	if req.FileFormat != models.FormatXLSX && req.FileFormat != models.FormatXLS {
		return fmt.Errorf("file format must be %q or %q", models.FormatXLSX, models.FormatXLS)
	}
	if req.StartRow < 1 {
		return errors.New("start row must be at least 1")
	}
	if len(req.Mapping) == 0 {
		return errors.New("mapping must contain at least one field")
	}
	for field, label := range req.Mapping {
		if !importer.IsKnownField(field) {
			return fmt.Errorf("unknown field %q in mapping", field)
		}
		if importer.IsManualField(field) {
			return fmt.Errorf("field %q is supplied manually and cannot be mapped to a column", field)
		}
		if _, err := importer.ColumnIndex(label); err != nil {
			return fmt.Errorf("field %q: %w", field, err)
		}
	}
	return nil
}

func (s *TemplateService) CreateTemplate(ctx context.Context, req *models.SaveTemplateRequest) (*models.ImportTemplate, error) {
	if err := validateTemplate(req); err != nil {
		return nil, err
	}
	template := &models.ImportTemplate{
		Name:       strings.TrimSpace(req.Name),
		FileFormat: req.FileFormat,
		StartRow:   req.StartRow,
		Mapping:    req.Mapping,
	}
	if err := s.TemplateRepo.Create(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

func (s *TemplateService) UpdateTemplate(ctx context.Context, id int, req *models.SaveTemplateRequest) (*models.ImportTemplate, error) {
	if err := validateTemplate(req); err != nil {
		return nil, err
	}
	template, err := s.TemplateRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("template %d not found: %w", id, err)
	}
	template.Name = strings.TrimSpace(req.Name)
	template.FileFormat = req.FileFormat
	template.StartRow = req.StartRow
	template.Mapping = req.Mapping
	if err := s.TemplateRepo.Update(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

func (s *TemplateService) GetTemplate(ctx context.Context, id int) (*models.ImportTemplate, error) {
	return s.TemplateRepo.Get(ctx, id)
}

func (s *TemplateService) ListTemplates(ctx context.Context) ([]*models.ImportTemplate, error) {
	return s.TemplateRepo.List(ctx)
}

func (s *TemplateService) DeleteTemplate(ctx context.Context, id int) error {
	return s.TemplateRepo.Delete(ctx, id)
}
