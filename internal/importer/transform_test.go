package importer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNormalizeOperationType(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"IMP", "I"},
		{"imp", "I"},
		{"TRS", "T"},
		{" trs ", "T"},
		{"I", "I"},
		{"T", "T"},
		{"", ""},
	}

	for _, tt := range tests {
		got, err := NormalizeOperationType(tt.raw)
		if err != nil {
			t.Fatalf("NormalizeOperationType(%q) returned error: %v", tt.raw, err)
		}
		if got != tt.want {
			t.Errorf("NormalizeOperationType(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeOperationTypeRejectsUnknown(t *testing.T) {
	for _, raw := range []string{"X", "IMPORT", "EXP", "IT"} {
		if _, err := NormalizeOperationType(raw); err == nil {
			t.Errorf("NormalizeOperationType(%q) expected error, got none", raw)
		}
	}
}

func TestManualFieldsValidate(t *testing.T) {
	m := ManualFields{ManifestNumber: "RE-100"}
	if err := m.Validate(); err != nil {
		t.Fatalf("valid manual fields rejected: %v", err)
	}

	m = ManualFields{ManifestNumber: "  "}
	if err := m.Validate(); err == nil {
		t.Error("blank manifest number accepted")
	}

	m = ManualFields{ManifestNumber: "RE-100", RegistrationDate: "15.03.2024"}
	if err := m.Validate(); err == nil {
		t.Error("non-ISO registration date accepted")
	}

	m = ManualFields{ManifestNumber: "RE-100", RegistrationDate: "2024-03-15"}
	if err := m.Validate(); err != nil {
		t.Fatalf("ISO registration date rejected: %v", err)
	}
}

func TestTransformRow(t *testing.T) {
	mapping := map[string]string{
		FieldContainerCode:     "A",
		FieldContainerTypeCode: "B",
		FieldPackageCount:      "C",
		FieldGrossWeight:       "D",
		FieldOperationType:     "E",
		FieldCargoDescription:  "F",
	}
	manual := ManualFields{
		ManifestNumber: "RE-100",
		ShipName:       "MSC ANNA",
		FlagName:       "Panama",
	}
	cells := []string{"MSKU1234567", "20GP", "12.0", "1234,5", "IMP", "textiles"}

	rv, err := TransformRow(cells, mapping, manual)
	if err != nil {
		t.Fatalf("TransformRow returned error: %v", err)
	}

	if rv.ContainerCode != "MSKU1234567" {
		t.Errorf("container code = %q", rv.ContainerCode)
	}
	if rv.ContainerTypeCode != "20GP" {
		t.Errorf("container type code = %q", rv.ContainerTypeCode)
	}
	if rv.PackageCount == nil || *rv.PackageCount != 12 {
		t.Errorf("package count = %v, want 12", rv.PackageCount)
	}
	want := decimal.RequireFromString("1234.5")
	if rv.GrossWeight == nil || !rv.GrossWeight.Equal(want) {
		t.Errorf("gross weight = %v, want 1234.5", rv.GrossWeight)
	}
	if rv.OperationType != OperationImport {
		t.Errorf("operation type = %q, want I", rv.OperationType)
	}
	if rv.ManifestNumber != "RE-100" || rv.ShipName != "MSC ANNA" || rv.FlagName != "Panama" {
		t.Errorf("manual fields not applied: %+v", rv)
	}
}

func TestTransformRowManualWinsOverMapping(t *testing.T) {
	// A mapping that tries to read the ship name from a column is ignored;
	// the operator's value applies to every row.
	mapping := map[string]string{
		FieldShipName:      "A",
		FieldContainerCode: "B",
	}
	manual := ManualFields{ManifestNumber: "RE-1", ShipName: "EVER GIVEN"}
	cells := []string{"WRONG SHIP", "TCLU7654321"}

	rv, err := TransformRow(cells, mapping, manual)
	if err != nil {
		t.Fatalf("TransformRow returned error: %v", err)
	}
	if rv.ShipName != "EVER GIVEN" {
		t.Errorf("ship name = %q, want EVER GIVEN", rv.ShipName)
	}
}

func TestTransformRowShortRow(t *testing.T) {
	// A row shorter than the mapped columns reads missing cells as empty.
	mapping := map[string]string{
		FieldContainerCode: "A",
		FieldPackageCount:  "E",
	}
	rv, err := TransformRow([]string{"MSKU1234567"}, mapping, ManualFields{ManifestNumber: "RE-1"})
	if err != nil {
		t.Fatalf("TransformRow returned error: %v", err)
	}
	if rv.PackageCount != nil {
		t.Errorf("package count = %v, want nil", rv.PackageCount)
	}
}

func TestParseRowsCollectsErrors(t *testing.T) {
	mapping := map[string]string{
		FieldContainerCode: "A",
		FieldOperationType: "B",
	}
	manual := ManualFields{ManifestNumber: "RE-100"}
	rows := [][]string{
		{"header", "header"},
		{"MSKU1234567", "IMP"},
		{"TCLU7654321", "XX"},
		{"HLCU1111111", "TRS"},
	}

	values, rowErrs := ParseRows(rows, mapping, 2, manual)
	if len(values) != 2 {
		t.Fatalf("got %d values, want 2", len(values))
	}
	if len(rowErrs) != 1 {
		t.Fatalf("got %d row errors, want 1", len(rowErrs))
	}
	if rowErrs[0].Row != 3 {
		t.Errorf("error row = %d, want 3", rowErrs[0].Row)
	}
	if !strings.Contains(rowErrs[0].Message, "XX") {
		t.Errorf("error message %q does not name the bad value", rowErrs[0].Message)
	}
}

func TestParseRowsSkipsEmptyRows(t *testing.T) {
	mapping := map[string]string{FieldContainerCode: "A"}
	rows := [][]string{
		{"MSKU1234567"},
		{""},
		nil,
		{"TCLU7654321"},
	}

	values, rowErrs := ParseRows(rows, mapping, 1, ManualFields{ManifestNumber: "RE-1"})
	if len(rowErrs) != 0 {
		t.Fatalf("unexpected row errors: %v", rowErrs)
	}
	if len(values) != 2 {
		t.Fatalf("got %d values, want 2", len(values))
	}
}

func TestParseRowsSheetDates(t *testing.T) {
	mapping := map[string]string{FieldRegistrationDate: "A"}
	rows := [][]string{
		{"15.03.2024"},
		{"16/03/2024"},
		{"2024-03-17"},
	}

	values, rowErrs := ParseRows(rows, mapping, 1, ManualFields{ManifestNumber: "RE-1"})
	if len(rowErrs) != 0 {
		t.Fatalf("unexpected row errors: %v", rowErrs)
	}
	want := []string{"2024-03-15", "2024-03-16", "2024-03-17"}
	for i, v := range values {
		if v.RegistrationDate != want[i] {
			t.Errorf("row %d date = %q, want %q", i, v.RegistrationDate, want[i])
		}
	}
}
