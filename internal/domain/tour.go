// Package domain contains the core data types for the Tour Admin application.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, storage, service, form, admin, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tour is the single domain entity: a bookable tour with a title, a price,
// a date range, and an optional image stored in the object store.
// A Tour with a zero ID is a draft that has not been persisted yet.
type Tour struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	StartDate   time.Time `json:"start_date"` // date-only, UTC midnight
	EndDate     time.Time `json:"end_date"`   // date-only, UTC midnight
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Persisted reports whether the tour has been stored by the record store.
// Drafts have a zero ID until Create returns the assigned one.
func (t Tour) Persisted() bool {
	return t.ID != uuid.Nil
}

// UploadResult is the transient outcome of a successful image upload:
// the path the object store filed the blob under and the derived file name.
// It is consumed immediately by the caller and never persisted.
type UploadResult struct {
	Path     string
	FileName string
}

// DateOnly truncates t to its calendar date in UTC.
// Tours store date-only values; normalizing through this function guarantees
// that a date survives the trip through time.Time without timezone drift.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
