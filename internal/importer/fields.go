package importer

// Logical entry fields a template mapping may refer to. This is a closed
// set: a mapping key outside it is rejected when the template is saved.
const (
	FieldManifestNumber    = "manifest_number"
	FieldPermitNumber      = "permit_number"
	FieldPositionNumber    = "position_number"
	FieldOperationRequest  = "operation_request"
	FieldRegistrationDate  = "registration_date"
	FieldContainerCode     = "container_code"
	FieldPackageCount      = "package_count"
	FieldGrossWeight       = "gross_weight"
	FieldCargoDescription  = "cargo_description"
	FieldOperationType     = "operation_type"
	FieldShipName          = "ship_name"
	FieldFlagName          = "flag_name"
	FieldSummaryNumber     = "summary_number"
	FieldContainerTypeCode = "container_type_code"
	FieldShippingLine      = "shipping_line"
)

// manualFields are supplied once per batch by the operator and applied
// uniformly to every row. One manifest document covers many cargo lines;
// keeping these out of the column mapping prevents a stray spreadsheet
// column from overriding batch-level identity data.
var manualFields = map[string]bool{
	FieldManifestNumber:   true,
	FieldPermitNumber:     true,
	FieldRegistrationDate: true,
	FieldOperationRequest: true,
	FieldShipName:         true,
	FieldFlagName:         true,
}

var knownFields = map[string]bool{
	FieldManifestNumber:    true,
	FieldPermitNumber:      true,
	FieldPositionNumber:    true,
	FieldOperationRequest:  true,
	FieldRegistrationDate:  true,
	FieldContainerCode:     true,
	FieldPackageCount:      true,
	FieldGrossWeight:       true,
	FieldCargoDescription:  true,
	FieldOperationType:     true,
	FieldShipName:          true,
	FieldFlagName:          true,
	FieldSummaryNumber:     true,
	FieldContainerTypeCode: true,
	FieldShippingLine:      true,
}

// IsKnownField reports whether name belongs to the closed entry field set.
func IsKnownField(name string) bool {
	return knownFields[name]
}

// IsManualField reports whether name is a per-batch manual field, which
// must never appear as a template mapping key.
func IsManualField(name string) bool {
	return manualFields[name]
}
