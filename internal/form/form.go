// Package form implements the editable tour draft: field-level required
// validation, the single attachment slot with its policy pre-check, and
// submission hand-off. The form never calls the record store or the image
// store itself — it hands the validated draft and the optional attachment to
// a callback supplied by its owner, keeping upload and persist policy outside
// the form.
package form

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/travelworld/tour-admin/internal/domain"
	"github.com/travelworld/tour-admin/internal/storage"
)

// FieldErrors maps a field name to its validation message.
// It implements error so Submit can return it directly.
type FieldErrors map[string]string

// Error joins the field messages in field-name order.
func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f]))
	}
	return strings.Join(parts, "; ")
}

// Is makes errors.Is(err, domain.ErrValidation) true for FieldErrors.
func (e FieldErrors) Is(target error) bool {
	return target == domain.ErrValidation
}

// SubmitFunc receives the validated draft and the optional attachment.
// The owner decides what to do with them (upload, persist, notify).
type SubmitFunc func(draft domain.Tour, file *storage.ImageFile) error

// TourForm owns one editing session's draft state.
// Create a fresh form with New, or seed it from an existing tour with Edit.
// The draft is discarded with the form; nothing is persisted until the owner
// acts on a successful Submit.
type TourForm struct {
	Title       string
	Description string
	Price       *float64 // nil while the field is still empty
	StartDate   time.Time
	EndDate     time.Time
	ImageURL    string

	id         uuid.UUID // carried from the seeding tour; zero for a new draft
	attachment *storage.ImageFile
}

// New returns an empty form for creating a tour.
func New() *TourForm {
	return &TourForm{}
}

// Edit returns a form pre-populated from an existing tour.
// The tour is copied field by field; editing the form never mutates the
// caller's value. Stored date-only values are normalized on the way in.
func Edit(existing domain.Tour) *TourForm {
	price := existing.Price
	return &TourForm{
		Title:       existing.Title,
		Description: existing.Description,
		Price:       &price,
		StartDate:   domain.DateOnly(existing.StartDate),
		EndDate:     domain.DateOnly(existing.EndDate),
		ImageURL:    existing.ImageURL,
		id:          existing.ID,
	}
}

// Attach checks the file against the image policy and, if it passes, places
// it in the attachment slot (replacing any previous attachment). Rejection is
// authoritative: a disallowed file never enters the slot, and the returned
// error wraps domain.ErrValidation with the user-facing reason.
func (f *TourForm) Attach(file storage.ImageFile) error {
	if err := storage.ValidateImage(file.ContentType, file.Size); err != nil {
		return err
	}
	f.attachment = &file
	return nil
}

// ClearAttachment empties the attachment slot.
func (f *TourForm) ClearAttachment() {
	f.attachment = nil
}

// Attachment returns the currently attached file, or nil.
func (f *TourForm) Attachment() *storage.ImageFile {
	return f.attachment
}

// Validate runs the required-field checks and returns one message per
// failing field. An empty map means the draft is ready to submit.
func (f *TourForm) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(f.Title) == "" {
		errs["title"] = "title is required"
	}
	if strings.TrimSpace(f.Description) == "" {
		errs["description"] = "description is required"
	}
	if f.Price == nil {
		errs["price"] = "price is required"
	}
	if f.StartDate.IsZero() {
		errs["start_date"] = "start date is required"
	}
	if f.EndDate.IsZero() {
		errs["end_date"] = "end date is required"
	}
	return errs
}

// Submit validates the draft and, on success, invokes the callback with the
// draft and the optional attachment. On validation failure the callback is
// never called and the FieldErrors are returned.
func (f *TourForm) Submit(cb SubmitFunc) error {
	if errs := f.Validate(); len(errs) > 0 {
		return errs
	}
	return cb(f.draft(), f.attachment)
}

// draft assembles the domain value from the form fields.
// Dates are truncated back to calendar days at this boundary.
func (f *TourForm) draft() domain.Tour {
	return domain.Tour{
		ID:          f.id,
		Title:       f.Title,
		Description: f.Description,
		Price:       *f.Price,
		StartDate:   domain.DateOnly(f.StartDate),
		EndDate:     domain.DateOnly(f.EndDate),
		ImageURL:    f.ImageURL,
	}
}
