package models

import "time"

// Spreadsheet file formats a template can declare.
const (
	FormatXLSX = "xlsx" // modern zipped format
	FormatXLS  = "xls"  // legacy binary format
)

// ImportTemplate is a reusable import profile: which file format to expect,
// which row the data starts on (1-based), and which column letter feeds each
// logical entry field. Fields supplied manually per batch never appear in
// the mapping.
type ImportTemplate struct {
	ID         int               `json:"id"`
	Name       string            `json:"name"`
	FileFormat string            `json:"file_format"`
	StartRow   int               `json:"start_row"`
	Mapping    map[string]string `json:"mapping"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// SaveTemplateRequest represents the request body for creating or updating
// an import template
type SaveTemplateRequest struct {
	Name       string            `json:"name"`
	FileFormat string            `json:"file_format"`
	StartRow   int               `json:"start_row"`
	Mapping    map[string]string `json:"mapping"`
}
