// Package admin implements the list/detail orchestration for an interactive
// editing session: the tour list, the loading flag, and the single
// "currently editing" draft. It coordinates refresh, submit, edit, cancel,
// and remove against the record and image stores, and converts every failure
// into a user-facing notification — no error escapes a session method.
//
// A Session is driven by a single goroutine; operations run to completion
// one at a time, so no locking is needed.
package admin

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/travelworld/tour-admin/internal/domain"
	"github.com/travelworld/tour-admin/internal/storage"
)

// Gateway is the record and image store surface the session drives.
// *service.TourService satisfies it.
type Gateway interface {
	List(ctx context.Context) ([]domain.Tour, error)
	Submit(ctx context.Context, tour domain.Tour, file *storage.ImageFile) (domain.Tour, error)
	Delete(ctx context.Context, id uuid.UUID) (domain.Tour, error)
}

// Notifier receives the user-facing success and error messages a session
// produces. The terminal client prints them; tests capture them.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Session owns the orchestration state: the tour list (newest first), the
// loading flag, and at most one tour being edited.
type Session struct {
	gateway Gateway
	notify  Notifier

	tours   []domain.Tour
	loading bool
	editing *domain.Tour
}

// NewSession constructs a Session. Call Refresh to populate the list.
func NewSession(gateway Gateway, notify Notifier) *Session {
	return &Session{gateway: gateway, notify: notify}
}

// Tours returns the current tour list, newest first.
func (s *Session) Tours() []domain.Tour {
	return s.tours
}

// Loading reports whether an operation is in flight. Every operation clears
// it on completion, success or failure.
func (s *Session) Loading() bool {
	return s.loading
}

// Editing returns a copy of the tour currently being edited, if any.
// When ok is false no edit is in progress and the session is in create mode.
func (s *Session) Editing() (domain.Tour, bool) {
	if s.editing == nil {
		return domain.Tour{}, false
	}
	return *s.editing, true
}

// Refresh reloads the tour list from the record store.
// On failure the previous list is left unchanged and an error notification
// is produced.
func (s *Session) Refresh(ctx context.Context) {
	s.loading = true
	defer func() { s.loading = false }()

	tours, err := s.gateway.List(ctx)
	if err != nil {
		s.notify.Error(userMessage(err, "Failed to fetch tours."))
		return
	}
	s.tours = tours
}

// Submit sends a draft (and its optional attached image) to the gateway.
// The gateway uploads first; if the upload fails, nothing is persisted and
// the error notification names the upload. On success a success notification
// is produced, the editing draft is discarded, and the list is refreshed.
func (s *Session) Submit(ctx context.Context, draft domain.Tour, file *storage.ImageFile) {
	s.loading = true
	defer func() { s.loading = false }()

	updating := draft.Persisted()
	if _, err := s.gateway.Submit(ctx, draft, file); err != nil {
		switch {
		case errors.Is(err, domain.ErrUpload):
			s.notify.Error("Failed to upload image.")
		case updating:
			s.notify.Error(userMessage(err, "Failed to update tour."))
		default:
			s.notify.Error(userMessage(err, "Failed to create tour."))
		}
		return
	}

	if updating {
		s.notify.Success("Tour updated successfully")
	} else {
		s.notify.Success("Tour created successfully")
	}
	s.editing = nil
	s.Refresh(ctx)
}

// BeginEdit marks the given tour as being edited. The session keeps its own
// copy: draft mutations never reach the list until a successful submit
// triggers a refresh.
func (s *Session) BeginEdit(tour domain.Tour) {
	copied := tour
	s.editing = &copied
}

// CancelEdit discards the editing draft and returns to create mode.
func (s *Session) CancelEdit() {
	s.editing = nil
}

// Remove deletes the tour with the given ID. A zero ID is rejected up front
// without calling the gateway. On success the list is refreshed.
func (s *Session) Remove(ctx context.Context, id uuid.UUID) {
	s.loading = true
	defer func() { s.loading = false }()

	if id == uuid.Nil {
		s.notify.Error("Invalid tour id for deletion.")
		return
	}

	if _, err := s.gateway.Delete(ctx, id); err != nil {
		s.notify.Error(userMessage(err, "Failed to delete tour."))
		return
	}
	s.notify.Success("Tour deleted successfully")
	s.Refresh(ctx)
}

// userMessage converts an error into notification text. Validation and
// not-found failures carry messages meant for the user; anything else is
// replaced by the operation's fallback so internals never leak into the UI.
func userMessage(err error, fallback string) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return validationText(err)
	case errors.Is(err, domain.ErrNotFound):
		return "Tour not found."
	default:
		return fallback
	}
}

// validationText extracts the human-readable part of a wrapped validation
// error, e.g. "service.TourService.Create: validation error: title is
// required" becomes "title is required".
func validationText(err error) string {
	msg := err.Error()
	const marker = "validation error: "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
