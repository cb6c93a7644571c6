package repositories

import (
	"context"
	"fmt"

	"registru-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Advisory lock class for per-year entry number allocation. The lock key is
// (class, year_id) so concurrent imports into different years never contend.
const entrySequenceLockClass = 874501

type ManifestEntryRepository struct {
	DB *pgxpool.Pool
}

func NewManifestEntryRepository(db *pgxpool.Pool) *ManifestEntryRepository {
	return &ManifestEntryRepository{DB: db}
}

// Create inserts an entry and assigns it the next ordinal within its registry
// year. The advisory lock serializes allocation per year, so the MAX+1 in the
// CTE cannot race with a concurrent import into the same year; both run
// inside one transaction and the lock releases on commit or rollback.
func (r *ManifestEntryRepository) Create(ctx context.Context, e *models.ManifestEntry) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1, $2)`,
		entrySequenceLockClass, e.YearID); err != nil {
		return fmt.Errorf("failed to acquire year sequence lock: %w", err)
	}

	query := `
		WITH next_num AS (
			SELECT COALESCE(MAX(entry_number), 0) + 1 AS num
			FROM manifest_entries
			WHERE year_id = $1
		)
		INSERT INTO manifest_entries(
			year_id, entry_number, manifest_number, permit_number, position_number,
			operation_request, registration_date, container_code, package_count,
			gross_weight, cargo_description, operation_type, ship_name, flag_name,
			summary_number, container_type_code, shipping_line, container_model)
		SELECT $1, num, $2, $3, $4, $5, $6, $7, $8, $9::numeric, $10, $11, $12, $13, $14, $15, $16, $17
		FROM next_num
		RETURNING id, entry_number, created_at, updated_at
	`

	err = tx.QueryRow(ctx, query,
		e.YearID,             // $1
		e.ManifestNumber,     // $2
		e.PermitNumber,       // $3
		e.PositionNumber,     // $4
		e.OperationRequest,   // $5
		e.RegistrationDate,   // $6
		e.ContainerCode,      // $7
		e.PackageCount,       // $8
		numericArg(e.GrossWeight), // $9
		e.CargoDescription,   // $10
		e.OperationType,      // $11
		e.ShipName,           // $12
		e.FlagName,           // $13
		e.SummaryNumber,      // $14
		e.ContainerTypeCode,  // $15
		e.ShippingLine,       // $16
		e.ContainerModel,     // $17
	).Scan(&e.ID, &e.EntryNumber, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

const entryColumns = `
	e.id, e.year_id, e.entry_number, e.manifest_number, COALESCE(e.permit_number, '') as permit_number,
	e.position_number, COALESCE(e.operation_request, '') as operation_request, e.registration_date,
	COALESCE(e.container_code, '') as container_code, e.package_count, e.gross_weight::text,
	COALESCE(e.cargo_description, '') as cargo_description, COALESCE(e.operation_type, '') as operation_type,
	COALESCE(e.ship_name, '') as ship_name, COALESCE(e.flag_name, '') as flag_name,
	COALESCE(e.summary_number, '') as summary_number, COALESCE(e.container_type_code, '') as container_type_code,
	COALESCE(e.shipping_line, '') as shipping_line, COALESCE(e.container_model, '') as container_model,
	e.container_type_id, e.ship_id, e.created_at, e.updated_at`

func scanEntry(row pgx.Row) (*models.ManifestEntry, error) {
	var entry models.ManifestEntry
	var weight *string
	err := row.Scan(&entry.ID, &entry.YearID, &entry.EntryNumber, &entry.ManifestNumber, &entry.PermitNumber,
		&entry.PositionNumber, &entry.OperationRequest, &entry.RegistrationDate,
		&entry.ContainerCode, &entry.PackageCount, &weight,
		&entry.CargoDescription, &entry.OperationType,
		&entry.ShipName, &entry.FlagName,
		&entry.SummaryNumber, &entry.ContainerTypeCode,
		&entry.ShippingLine, &entry.ContainerModel,
		&entry.ContainerTypeID, &entry.ShipID, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if weight != nil {
		d, err := decimal.NewFromString(*weight)
		if err != nil {
			return nil, fmt.Errorf("bad gross weight in row %d: %w", entry.ID, err)
		}
		entry.GrossWeight = &d
	}
	return &entry, nil
}

// ListByYear returns all entries of one registry year in ordinal order.
func (r *ManifestEntryRepository) ListByYear(ctx context.Context, yearID int) ([]*models.ManifestEntry, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+entryColumns+`
         FROM manifest_entries e
         WHERE e.year_id=$1
         ORDER BY e.entry_number`, yearID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.ManifestEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// ListUnlinked returns entries missing a container type or ship relation,
// the working set of the reconciliation sweep.
func (r *ManifestEntryRepository) ListUnlinked(ctx context.Context) ([]*models.ManifestEntry, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+entryColumns+`
         FROM manifest_entries e
         WHERE (e.container_type_id IS NULL AND COALESCE(e.container_model, '') <> '')
            OR (e.ship_id IS NULL AND COALESCE(e.ship_name, '') <> '')
         ORDER BY e.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.ManifestEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *ManifestEntryRepository) SetContainerType(ctx context.Context, entryID, containerTypeID int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE manifest_entries SET container_type_id=$1, updated_at=NOW() WHERE id=$2`,
		containerTypeID, entryID)
	return err
}

func (r *ManifestEntryRepository) SetShip(ctx context.Context, entryID, shipID int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE manifest_entries SET ship_id=$1, updated_at=NOW() WHERE id=$2`,
		shipID, entryID)
	return err
}

// DistinctContainerModels returns every distinct container model seen in the
// registry together with its type code, for the reconciliation sweep.
func (r *ManifestEntryRepository) DistinctContainerModels(ctx context.Context) ([]models.ContainerModelAggregate, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT DISTINCT container_model, COALESCE(container_type_code, '') as container_type_code
         FROM manifest_entries
         WHERE COALESCE(container_model, '') <> ''
         ORDER BY container_model`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var aggregates []models.ContainerModelAggregate
	for rows.Next() {
		var a models.ContainerModelAggregate
		if err := rows.Scan(&a.Model, &a.TypeCode); err != nil {
			return nil, err
		}
		aggregates = append(aggregates, a)
	}
	return aggregates, rows.Err()
}

// DistinctFlagNames returns every distinct flag name seen in the registry.
func (r *ManifestEntryRepository) DistinctFlagNames(ctx context.Context) ([]string, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT DISTINCT flag_name
         FROM manifest_entries
         WHERE COALESCE(flag_name, '') <> ''
         ORDER BY flag_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// DistinctShips returns one aggregate per distinct ship name, compared
// case-insensitively; the most recent entry wins the shipping line and flag.
func (r *ManifestEntryRepository) DistinctShips(ctx context.Context) ([]models.ShipAggregate, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT DISTINCT ON (LOWER(ship_name))
		        ship_name, COALESCE(shipping_line, '') as shipping_line, COALESCE(flag_name, '') as flag_name
         FROM manifest_entries
         WHERE COALESCE(ship_name, '') <> ''
         ORDER BY LOWER(ship_name), id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ships []models.ShipAggregate
	for rows.Next() {
		var s models.ShipAggregate
		if err := rows.Scan(&s.Name, &s.ShippingLine, &s.FlagName); err != nil {
			return nil, err
		}
		ships = append(ships, s)
	}
	return ships, rows.Err()
}

// numericArg adapts an optional decimal for a NUMERIC parameter.
func numericArg(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}
