package importer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Normalized 1-character operation type codes.
const (
	OperationImport  = "I"
	OperationTransit = "T"
)

// ErrNoData is returned when a sheet yields no data rows at all, which is
// reported to the operator distinctly from a malformed file.
var ErrNoData = errors.New("no data found in file")

// Date formats accepted when a registration date is read from a mapped
// spreadsheet column. Manifests arrive with dotted day-first dates.
var sheetDateFormats = []string{"02.01.2006", "02/01/2006", "2006-01-02"}

// ManualFields are the operator-supplied values applied uniformly to every
// row of one import. RegistrationDate is an ISO YYYY-MM-DD string.
type ManualFields struct {
	ManifestNumber   string `json:"manifest_number"`
	PermitNumber     string `json:"permit_number"`
	RegistrationDate string `json:"registration_date"`
	OperationRequest string `json:"operation_request"`
	ShipName         string `json:"ship_name"`
	FlagName         string `json:"flag_name"`
}

// Validate checks the per-batch payload before any row is transformed.
func (m ManualFields) Validate() error {
	if strings.TrimSpace(m.ManifestNumber) == "" {
		return errors.New("manifest number is required")
	}
	if m.RegistrationDate != "" {
		if _, err := time.Parse("2006-01-02", m.RegistrationDate); err != nil {
			return fmt.Errorf("registration date must be YYYY-MM-DD: %q", m.RegistrationDate)
		}
	}
	return nil
}

// RowValues is one transformed row, ready for staging. Dates are carried as
// ISO strings and the weight as a decimal so the staged batch serializes
// without loss.
type RowValues struct {
	ManifestNumber    string           `json:"manifest_number"`
	PermitNumber      string           `json:"permit_number"`
	PositionNumber    *int             `json:"position_number,omitempty"`
	OperationRequest  string           `json:"operation_request"`
	RegistrationDate  string           `json:"registration_date,omitempty"`
	ContainerCode     string           `json:"container_code"`
	PackageCount      *int             `json:"package_count,omitempty"`
	GrossWeight       *decimal.Decimal `json:"gross_weight,omitempty"`
	CargoDescription  string           `json:"cargo_description"`
	OperationType     string           `json:"operation_type"`
	ShipName          string           `json:"ship_name"`
	FlagName          string           `json:"flag_name"`
	SummaryNumber     string           `json:"summary_number"`
	ContainerTypeCode string           `json:"container_type_code"`
	ShippingLine      string           `json:"shipping_line"`
}

// RowError is a row-scoped validation failure. Row is the 1-based
// spreadsheet row so the operator can find it in the source file.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// NormalizeOperationType maps a raw cell value onto the 1-character
// operation code. "IMP" and "TRS" are the aliases found in manifest
// spreadsheets; already-normalized codes pass through. Anything else is a
// hard validation error for the row.
func NormalizeOperationType(raw string) (string, error) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	switch v {
	case "", OperationImport, OperationTransit:
		return v, nil
	case "IMP":
		return OperationImport, nil
	case "TRS":
		return OperationTransit, nil
	}
	return "", fmt.Errorf("unknown operation type %q (expected IMP or TRS)", raw)
}

// TransformRow applies the template mapping to one raw row and overlays the
// manual fields. Mapped fields belonging to the manual set are skipped:
// manual values always win.
func TransformRow(cells []string, mapping map[string]string, manual ManualFields) (*RowValues, error) {
	rv := &RowValues{}

	for field, label := range mapping {
		if IsManualField(field) {
			continue
		}
		idx, err := ColumnIndex(label)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field, err)
		}
		var cell string
		if idx <= len(cells) {
			cell = strings.TrimSpace(cells[idx-1])
		}
		if err := setField(rv, field, cell); err != nil {
			return nil, err
		}
	}

	rv.ManifestNumber = strings.TrimSpace(manual.ManifestNumber)
	rv.PermitNumber = strings.TrimSpace(manual.PermitNumber)
	rv.OperationRequest = strings.TrimSpace(manual.OperationRequest)
	rv.ShipName = strings.TrimSpace(manual.ShipName)
	rv.FlagName = strings.TrimSpace(manual.FlagName)
	if manual.RegistrationDate != "" {
		rv.RegistrationDate = manual.RegistrationDate
	}

	return rv, nil
}

func setField(rv *RowValues, field, cell string) error {
	switch field {
	case FieldPositionNumber:
		n, err := parseIntCell(cell)
		if err != nil {
			return fmt.Errorf("position number %q is not numeric", cell)
		}
		rv.PositionNumber = n
	case FieldPackageCount:
		n, err := parseIntCell(cell)
		if err != nil {
			return fmt.Errorf("package count %q is not numeric", cell)
		}
		rv.PackageCount = n
	case FieldGrossWeight:
		if cell == "" {
			return nil
		}
		d, err := decimal.NewFromString(normalizeNumber(cell))
		if err != nil {
			return fmt.Errorf("gross weight %q is not a number", cell)
		}
		rv.GrossWeight = &d
	case FieldOperationType:
		code, err := NormalizeOperationType(cell)
		if err != nil {
			return err
		}
		rv.OperationType = code
	case FieldRegistrationDate:
		iso, err := parseSheetDate(cell)
		if err != nil {
			return err
		}
		rv.RegistrationDate = iso
	case FieldContainerCode:
		rv.ContainerCode = cell
	case FieldCargoDescription:
		rv.CargoDescription = cell
	case FieldSummaryNumber:
		rv.SummaryNumber = cell
	case FieldContainerTypeCode:
		rv.ContainerTypeCode = cell
	case FieldShippingLine:
		rv.ShippingLine = cell
	default:
		return fmt.Errorf("unknown mapped field %q", field)
	}
	return nil
}

// parseIntCell parses an integer-like cell. Spreadsheet readers hand back
// "12.0" for numeric cells, so the value is parsed as a float first and
// truncated. Empty means absent.
func parseIntCell(cell string) (*int, error) {
	if cell == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(normalizeNumber(cell), 64)
	if err != nil {
		return nil, err
	}
	n := int(f)
	return &n, nil
}

func normalizeNumber(cell string) string {
	// Decimal comma shows up in legacy sheets.
	return strings.ReplaceAll(strings.TrimSpace(cell), ",", ".")
}

func parseSheetDate(cell string) (string, error) {
	if cell == "" {
		return "", nil
	}
	for _, layout := range sheetDateFormats {
		if t, err := time.Parse(layout, cell); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("unparseable date %q", cell)
}

// ParseRows runs the transformer over every data row starting at the
// template's 1-based start row. Successes keep their file order; failures
// are collected per row and never abort the run, so the operator sees every
// offending row at once. Rows whose mapped cells are all empty are skipped.
func ParseRows(rows [][]string, mapping map[string]string, startRow int, manual ManualFields) ([]RowValues, []RowError) {
	var values []RowValues
	var rowErrs []RowError

	for i := startRow - 1; i < len(rows); i++ {
		cells := rows[i]
		if emptyRow(cells, mapping) {
			continue
		}
		rv, err := TransformRow(cells, mapping, manual)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: i + 1, Message: err.Error()})
			continue
		}
		values = append(values, *rv)
	}
	return values, rowErrs
}

func emptyRow(cells []string, mapping map[string]string) bool {
	for field, label := range mapping {
		if IsManualField(field) {
			continue
		}
		idx, err := ColumnIndex(label)
		if err != nil {
			continue
		}
		if idx <= len(cells) && strings.TrimSpace(cells[idx-1]) != "" {
			return false
		}
	}
	return true
}
