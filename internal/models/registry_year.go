package models

import "time"

// RegistryYear is a yearly partition of the registry. At most one year is
// active at a time; entries imported without an explicit year attach to the
// active year, or the most recent one if none is active.
type RegistryYear struct {
	ID         int       `json:"id"`
	Year       int       `json:"year"`
	IsActive   bool      `json:"is_active"`
	EntryCount int       `json:"entry_count,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateYearRequest represents the request body for creating a registry year
type CreateYearRequest struct {
	Year int `json:"year"`
}
