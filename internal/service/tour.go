// Package service contains the business logic for the Tour Admin API.
// Services validate inputs, enforce business rules, and orchestrate repo and
// storage calls. No SQL and no S3 calls live here — services depend on the
// repo and storage interfaces, not their implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/travelworld/tour-admin/internal/domain"
	"github.com/travelworld/tour-admin/internal/repo"
	"github.com/travelworld/tour-admin/internal/storage"
)

// TourService implements business logic for Tour operations.
// It holds the record store repo and the image store because submitting a
// tour with an attached image is a two-step operation: the image must be
// uploaded first, and an upload failure aborts the persist entirely.
type TourService struct {
	tours  repo.TourRepo
	images storage.ImageStore
}

// NewTourService constructs a TourService backed by the provided repo and
// image store.
func NewTourService(tours repo.TourRepo, images storage.ImageStore) *TourService {
	return &TourService{tours: tours, images: images}
}

// List returns all tours, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TourService) List(ctx context.Context) ([]domain.Tour, error) {
	tours, err := s.tours.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TourService.List: %w", err)
	}
	if tours == nil {
		return []domain.Tour{}, nil
	}
	return tours, nil
}

// GetByID returns a single tour by ID.
// Returns domain.ErrNotFound if no tour with that ID exists.
func (s *TourService) GetByID(ctx context.Context, id uuid.UUID) (domain.Tour, error) {
	result, err := s.tours.GetByID(ctx, id)
	if err != nil {
		return domain.Tour{}, fmt.Errorf("service.TourService.GetByID: %w", err)
	}
	return result, nil
}

// Create validates and persists a new tour. The draft must not carry an ID —
// the record store assigns one.
// Returns domain.ErrValidation if input violates business rules.
func (s *TourService) Create(ctx context.Context, tour domain.Tour) (domain.Tour, error) {
	if tour.Persisted() {
		return domain.Tour{}, fmt.Errorf("service.TourService.Create: %w: a new tour must not have an id", domain.ErrValidation)
	}
	if err := validateTour(tour); err != nil {
		return domain.Tour{}, err
	}
	result, err := s.tours.Create(ctx, normalizeDates(tour))
	if err != nil {
		return domain.Tour{}, fmt.Errorf("service.TourService.Create: %w", err)
	}
	return result, nil
}

// Update validates and persists changes to an existing tour.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound if no
// tour with the draft's ID exists.
func (s *TourService) Update(ctx context.Context, tour domain.Tour) (domain.Tour, error) {
	if !tour.Persisted() {
		return domain.Tour{}, fmt.Errorf("service.TourService.Update: %w: tour id is required", domain.ErrValidation)
	}
	if err := validateTour(tour); err != nil {
		return domain.Tour{}, err
	}
	result, err := s.tours.Update(ctx, normalizeDates(tour))
	if err != nil {
		return domain.Tour{}, fmt.Errorf("service.TourService.Update: %w", err)
	}
	return result, nil
}

// Submit persists a draft with an optional attached image.
// The image is uploaded first; if the upload fails, the record store is never
// called. On success the stored path is attached to the tour, and the draft is
// created or updated depending on whether it already has an ID.
func (s *TourService) Submit(ctx context.Context, tour domain.Tour, file *storage.ImageFile) (domain.Tour, error) {
	if file != nil {
		res, err := s.images.Upload(ctx, *file)
		if err != nil {
			return domain.Tour{}, fmt.Errorf("service.TourService.Submit: %w", err)
		}
		tour.ImageURL = res.Path
	}

	if tour.Persisted() {
		return s.Update(ctx, tour)
	}
	return s.Create(ctx, tour)
}

// Delete removes a tour by ID and returns the record as it existed prior to
// deletion. A zero ID fails fast with domain.ErrValidation — no repo call is
// made.
func (s *TourService) Delete(ctx context.Context, id uuid.UUID) (domain.Tour, error) {
	if id == uuid.Nil {
		return domain.Tour{}, fmt.Errorf("service.TourService.Delete: %w: tour id is required", domain.ErrValidation)
	}
	result, err := s.tours.Delete(ctx, id)
	if err != nil {
		return domain.Tour{}, fmt.Errorf("service.TourService.Delete: %w", err)
	}
	return result, nil
}

// validateTour enforces business rules common to both Create and Update.
//   - Title and Description must be non-empty (whitespace-only is rejected).
//   - StartDate and EndDate are required.
//   - EndDate must not be before StartDate (a one-day tour is valid).
//
// Price is intentionally unconstrained beyond being present in the draft.
func validateTour(tour domain.Tour) error {
	if strings.TrimSpace(tour.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(tour.Description) == "" {
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if tour.StartDate.IsZero() {
		return fmt.Errorf("%w: start_date is required", domain.ErrValidation)
	}
	if tour.EndDate.IsZero() {
		return fmt.Errorf("%w: end_date is required", domain.ErrValidation)
	}
	if tour.EndDate.Before(tour.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	return nil
}

// normalizeDates truncates both dates to UTC calendar days before they cross
// the store boundary, so the date-only columns round-trip without drift.
func normalizeDates(tour domain.Tour) domain.Tour {
	tour.StartDate = domain.DateOnly(tour.StartDate)
	tour.EndDate = domain.DateOnly(tour.EndDate)
	return tour
}
