package services

import (
	"context"
	"testing"

	"registru-backend/internal/importer"
	"registru-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

type stubTemplateRepo struct {
	templates map[int]*models.ImportTemplate
	nextID    int
}

func newStubTemplateRepo() *stubTemplateRepo {
	return &stubTemplateRepo{templates: make(map[int]*models.ImportTemplate), nextID: 1}
}

func (s *stubTemplateRepo) Create(ctx context.Context, t *models.ImportTemplate) error {
	t.ID = s.nextID
	s.nextID++
	s.templates[t.ID] = t
	return nil
}

func (s *stubTemplateRepo) Update(ctx context.Context, t *models.ImportTemplate) error {
	s.templates[t.ID] = t
	return nil
}

func (s *stubTemplateRepo) Get(ctx context.Context, id int) (*models.ImportTemplate, error) {
	t, ok := s.templates[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return t, nil
}

func (s *stubTemplateRepo) List(ctx context.Context) ([]*models.ImportTemplate, error) {
	var out []*models.ImportTemplate
	for _, t := range s.templates {
		out = append(out, t)
	}
	return out, nil
}

func (s *stubTemplateRepo) Delete(ctx context.Context, id int) error {
	delete(s.templates, id)
	return nil
}

func validSaveRequest() *models.SaveTemplateRequest {
	return &models.SaveTemplateRequest{
		Name:       "Manifest grid",
		FileFormat: models.FormatXLSX,
		StartRow:   2,
		Mapping: map[string]string{
			importer.FieldContainerCode:     "A",
			importer.FieldContainerTypeCode: "B",
		},
	}
}

func TestCreateTemplate(t *testing.T) {
	svc := NewTemplateService(newStubTemplateRepo())

	template, err := svc.CreateTemplate(context.Background(), validSaveRequest())
	if err != nil {
		t.Fatalf("CreateTemplate returned error: %v", err)
	}
	if template.ID == 0 {
		t.Error("template was not assigned an ID")
	}
}

func TestCreateTemplateValidation(t *testing.T) {
	svc := NewTemplateService(newStubTemplateRepo())
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*models.SaveTemplateRequest)
	}{
		{"blank name", func(r *models.SaveTemplateRequest) { r.Name = "  " }},
		{"bad format", func(r *models.SaveTemplateRequest) { r.FileFormat = "csv" }},
		{"zero start row", func(r *models.SaveTemplateRequest) { r.StartRow = 0 }},
		{"empty mapping", func(r *models.SaveTemplateRequest) { r.Mapping = nil }},
		{"unknown field", func(r *models.SaveTemplateRequest) { r.Mapping["bogus_field"] = "A" }},
		{"manual field mapped", func(r *models.SaveTemplateRequest) { r.Mapping[importer.FieldManifestNumber] = "A" }},
		{"bad column label", func(r *models.SaveTemplateRequest) { r.Mapping[importer.FieldContainerCode] = "A1" }},
	}

	for _, tt := range tests {
		req := validSaveRequest()
		tt.mutate(req)
		if _, err := svc.CreateTemplate(ctx, req); err == nil {
			t.Errorf("%s: request accepted, want error", tt.name)
		}
	}
}

func TestUpdateTemplate(t *testing.T) {
	repo := newStubTemplateRepo()
	svc := NewTemplateService(repo)
	ctx := context.Background()

	created, err := svc.CreateTemplate(ctx, validSaveRequest())
	if err != nil {
		t.Fatalf("CreateTemplate returned error: %v", err)
	}

	req := validSaveRequest()
	req.Name = "Updated grid"
	req.StartRow = 3
	updated, err := svc.UpdateTemplate(ctx, created.ID, req)
	if err != nil {
		t.Fatalf("UpdateTemplate returned error: %v", err)
	}
	if updated.Name != "Updated grid" || updated.StartRow != 3 {
		t.Errorf("update not applied: %+v", updated)
	}
}

func TestUpdateTemplateMissing(t *testing.T) {
	svc := NewTemplateService(newStubTemplateRepo())
	if _, err := svc.UpdateTemplate(context.Background(), 99, validSaveRequest()); err == nil {
		t.Error("update of missing template accepted")
	}
}
