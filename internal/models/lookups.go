package models

import "time"

// ContainerType is a reference row keyed by the composite container model
// ("MSKU" + "20GP" = "MSKU20GP"). Created explicitly by an operator or
// auto-created the first time an entry references an unseen model.
type ContainerType struct {
	ID          int       `json:"id"`
	Model       string    `json:"model"`
	TypeCode    string    `json:"type_code"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Flag is a ship flag (pavilion) reference row keyed by exact name.
type Flag struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Ship is a vessel reference row keyed by name, matched case-insensitively.
type Ship struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	ShippingLine string    `json:"shipping_line"`
	FlagID       *int      `json:"flag_id,omitempty"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
