package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ManifestEntry is one cargo line-item in the yearly registry.
// EntryNumber is the per-year running number assigned at commit time and
// never reassigned. ContainerModel is derived from the container code and
// the container type code; it is recomputed on every create and is not
// independently editable.
type ManifestEntry struct {
	ID                int              `json:"id"`
	YearID            int              `json:"year_id"`
	EntryNumber       int              `json:"entry_number"`
	ManifestNumber    string           `json:"manifest_number"`
	PermitNumber      string           `json:"permit_number"`
	PositionNumber    *int             `json:"position_number,omitempty"`
	OperationRequest  string           `json:"operation_request"`
	RegistrationDate  *time.Time       `json:"registration_date,omitempty"`
	ContainerCode     string           `json:"container_code"`
	PackageCount      *int             `json:"package_count,omitempty"`
	GrossWeight       *decimal.Decimal `json:"gross_weight,omitempty"`
	CargoDescription  string           `json:"cargo_description"`
	OperationType     string           `json:"operation_type"` // "I" (import) or "T" (transit)
	ShipName          string           `json:"ship_name"`
	FlagName          string           `json:"flag_name"`
	SummaryNumber     string           `json:"summary_number"`
	ContainerTypeCode string           `json:"container_type_code"`
	ShippingLine      string           `json:"shipping_line"`
	ContainerModel    string           `json:"container_model"`
	ContainerTypeID   *int             `json:"container_type_id,omitempty"`
	ShipID            *int             `json:"ship_id,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// DeriveContainerModel builds the composite container-model key: the first
// four characters of the container code (the whole code if shorter) followed
// by the container type code. Empty when either part is missing.
func DeriveContainerModel(containerCode, typeCode string) string {
	if containerCode == "" || typeCode == "" {
		return ""
	}
	prefix := containerCode
	if len(prefix) > 4 {
		prefix = prefix[:4]
	}
	return prefix + typeCode
}

// ContainerModelAggregate is a distinct (model, type code) pair extracted
// from existing entries by the reconciliation sweep.
type ContainerModelAggregate struct {
	Model    string
	TypeCode string
}

// ShipAggregate is a distinct ship row extracted from existing entries by
// the reconciliation sweep.
type ShipAggregate struct {
	Name         string
	ShippingLine string
	FlagName     string
}
