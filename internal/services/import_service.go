package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"registru-backend/internal/importer"
	"registru-backend/internal/metrics"
	"registru-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrSessionExpired is returned by Confirm when no staged batch exists for
// the session: the preview expired, was already confirmed, or never happened.
var ErrSessionExpired = errors.New("import session expired or not found")

// ErrNoRegistryYear is returned when an import cannot be targeted because no
// registry year exists at all.
var ErrNoRegistryYear = errors.New("no registry year configured")

type TemplateStore interface {
	Get(ctx context.Context, id int) (*models.ImportTemplate, error)
}

type YearStore interface {
	GetActive(ctx context.Context) (*models.RegistryYear, error)
	GetLatest(ctx context.Context) (*models.RegistryYear, error)
}

type EntryStore interface {
	Create(ctx context.Context, e *models.ManifestEntry) error
	ListByYear(ctx context.Context, yearID int) ([]*models.ManifestEntry, error)
}

// PreviewRequest carries one uploaded manifest through the preview step.
type PreviewRequest struct {
	TemplateID   int
	FileName     string
	Data         []byte
	SessionToken string
	Manual       importer.ManualFields
}

// PreviewResult is what the operator reviews before confirming. Nothing has
// been written to the registry yet.
type PreviewResult struct {
	SessionToken string               `json:"session_token"`
	Year         int                  `json:"year"`
	TotalRows    int                  `json:"total_rows"`
	Rows         []importer.RowValues `json:"rows"`
}

// ConfirmResult reports how many entries a confirmed batch created. On a
// partial failure Created counts the rows committed before the failing one.
type ConfirmResult struct {
	Created int `json:"created"`
}

type ImportService struct {
	Templates TemplateStore
	Years     YearStore
	Entries   EntryStore
	Staging   importer.Store
	Lookups   *LookupService
}

func NewImportService(templates TemplateStore, years YearStore, entries EntryStore, staging importer.Store, lookups *LookupService) *ImportService {
	return &ImportService{
		Templates: templates,
		Years:     years,
		Entries:   entries,
		Staging:   staging,
		Lookups:   lookups,
	}
}

// resolveYear picks the registry year an import targets: the active year, or
// the most recent one when nothing is marked active.
func (s *ImportService) resolveYear(ctx context.Context) (*models.RegistryYear, error) {
	year, err := s.Years.GetActive(ctx)
	if err == nil {
		return year, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	year, err = s.Years.GetLatest(ctx)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoRegistryYear
	}
	if err != nil {
		return nil, err
	}
	log.Printf("[Import] no active registry year, falling back to %d", year.Year)
	return year, nil
}

// Preview parses and transforms an uploaded manifest without touching the
// registry. A clean parse stages the batch under the session token and
// returns the rows for review; any row error rejects the whole file and
// nothing is staged.
func (s *ImportService) Preview(ctx context.Context, req *PreviewRequest) (*PreviewResult, []importer.RowError, error) {
	if err := req.Manual.Validate(); err != nil {
		metrics.ImportPreviewsTotal.WithLabelValues("rejected").Inc()
		return nil, nil, err
	}

	template, err := s.Templates.Get(ctx, req.TemplateID)
	if err != nil {
		metrics.ImportPreviewsTotal.WithLabelValues("error").Inc()
		return nil, nil, fmt.Errorf("template %d not found: %w", req.TemplateID, err)
	}

	year, err := s.resolveYear(ctx)
	if err != nil {
		metrics.ImportPreviewsTotal.WithLabelValues("error").Inc()
		return nil, nil, err
	}

	rawRows, err := importer.OpenRows(req.Data, req.FileName, template.FileFormat)
	if err != nil {
		metrics.ImportPreviewsTotal.WithLabelValues("rejected").Inc()
		return nil, nil, err
	}

	rows, rowErrs := importer.ParseRows(rawRows, template.Mapping, template.StartRow, req.Manual)
	if len(rowErrs) > 0 {
		metrics.ImportPreviewsTotal.WithLabelValues("rejected").Inc()
		return nil, rowErrs, nil
	}
	if len(rows) == 0 {
		metrics.ImportPreviewsTotal.WithLabelValues("rejected").Inc()
		return nil, nil, importer.ErrNoData
	}

	token := req.SessionToken
	if token == "" {
		token = uuid.NewString()
	}

	batch := &importer.Batch{
		Rows:     rows,
		Manual:   req.Manual,
		YearID:   year.ID,
		Year:     year.Year,
		StagedAt: time.Now(),
	}
	if err := s.Staging.Put(ctx, token, batch); err != nil {
		metrics.ImportPreviewsTotal.WithLabelValues("error").Inc()
		return nil, nil, fmt.Errorf("failed to stage batch: %w", err)
	}

	metrics.ImportPreviewsTotal.WithLabelValues("ok").Inc()
	log.Printf("[Import] staged %d rows for manifest %s (year %d, session %s)",
		len(rows), req.Manual.ManifestNumber, year.Year, token)

	return &PreviewResult{
		SessionToken: token,
		Year:         year.Year,
		TotalRows:    len(rows),
		Rows:         rows,
	}, nil, nil
}

// Confirm commits the staged batch for the session token. The batch is
// consumed atomically, so a duplicate confirm of the same session fails with
// ErrSessionExpired instead of double-writing. Rows are committed in file
// order; on a mid-batch failure the already-committed rows keep their
// ordinals and the error reports how far the batch got.
func (s *ImportService) Confirm(ctx context.Context, token string) (*ConfirmResult, error) {
	batch, err := s.Staging.Take(ctx, token)
	if errors.Is(err, importer.ErrBatchNotFound) {
		return nil, ErrSessionExpired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load staged batch: %w", err)
	}

	result := &ConfirmResult{}
	for i := range batch.Rows {
		entry := entryFromRow(&batch.Rows[i], batch.YearID)
		if err := s.Entries.Create(ctx, entry); err != nil {
			return result, fmt.Errorf("failed to create entry for row %d of %d (manifest %s): %w",
				i+1, len(batch.Rows), batch.Manual.ManifestNumber, err)
		}
		result.Created++
		metrics.ImportEntriesCreatedTotal.Inc()

		// Lookup reconciliation must not undo a committed entry; the sweep
		// picks up anything missed here.
		if err := s.Lookups.ReconcileEntry(ctx, entry); err != nil {
			log.Printf("[Import] entry %d committed but not reconciled: %v", entry.ID, err)
		}
	}

	log.Printf("[Import] confirmed %d entries for manifest %s into year %d",
		result.Created, batch.Manual.ManifestNumber, batch.Year)
	return result, nil
}

// ListEntries returns the entries of one registry year in ordinal order.
func (s *ImportService) ListEntries(ctx context.Context, yearID int) ([]*models.ManifestEntry, error) {
	return s.Entries.ListByYear(ctx, yearID)
}

func entryFromRow(row *importer.RowValues, yearID int) *models.ManifestEntry {
	entry := &models.ManifestEntry{
		YearID:            yearID,
		ManifestNumber:    row.ManifestNumber,
		PermitNumber:      row.PermitNumber,
		PositionNumber:    row.PositionNumber,
		OperationRequest:  row.OperationRequest,
		ContainerCode:     row.ContainerCode,
		PackageCount:      row.PackageCount,
		GrossWeight:       row.GrossWeight,
		CargoDescription:  row.CargoDescription,
		OperationType:     row.OperationType,
		ShipName:          row.ShipName,
		FlagName:          row.FlagName,
		SummaryNumber:     row.SummaryNumber,
		ContainerTypeCode: row.ContainerTypeCode,
		ShippingLine:      row.ShippingLine,
	}
	entry.ContainerModel = models.DeriveContainerModel(row.ContainerCode, row.ContainerTypeCode)
	if row.RegistrationDate != "" {
		// Staged dates are already validated ISO strings.
		if t, err := time.Parse("2006-01-02", row.RegistrationDate); err == nil {
			entry.RegistrationDate = &t
		}
	}
	return entry
}
