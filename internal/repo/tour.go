// Package repo contains all database access logic for the Tour Admin API.
// It is the gateway to the external record store: only SQL and type mapping
// live here, no business logic.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/travelworld/tour-admin/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TourRepo defines the persistence operations for Tours.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
// Every method issues exactly one round-trip; there are no retries.
type TourRepo interface {
	// Create inserts a new tour and returns the persisted record (with
	// store-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, tour domain.Tour) (domain.Tour, error)

	// GetByID retrieves a single tour by its UUID primary key.
	// Returns domain.ErrNotFound if no tour with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Tour, error)

	// List returns all tours ordered by created_at descending (newest first).
	List(ctx context.Context) ([]domain.Tour, error)

	// Update replaces all mutable fields of an existing tour and returns the
	// updated record. Returns domain.ErrNotFound if no tour with that ID exists.
	Update(ctx context.Context, tour domain.Tour) (domain.Tour, error)

	// Delete removes a tour by ID and returns the record as it existed prior
	// to deletion. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) (domain.Tour, error)
}

// pgTourRepo is the Postgres implementation of TourRepo.
type pgTourRepo struct {
	db db
}

// NewTourRepo constructs a TourRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTourRepo(db db) TourRepo {
	return &pgTourRepo{db: db}
}

// Create inserts a new tour row and returns the full persisted record.
func (r *pgTourRepo) Create(ctx context.Context, tour domain.Tour) (domain.Tour, error) {
	const q = `
		INSERT INTO tours (title, description, price, start_date, end_date, image_url)
		VALUES (@title, @description, @price, @start_date, @end_date, @image_url)
		RETURNING id, title, description, price, start_date, end_date, image_url, created_at, updated_at`

	row := r.db.QueryRow(ctx, q, tourArgs(tour))
	result, err := scanTour(row)
	if err != nil {
		return domain.Tour{}, fmt.Errorf("repo.TourRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a tour by primary key.
func (r *pgTourRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Tour, error) {
	const q = `
		SELECT id, title, description, price, start_date, end_date, image_url, created_at, updated_at
		FROM tours
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTour(row)
	if err != nil {
		return domain.Tour{}, fmt.Errorf("repo.TourRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all tours ordered by created_at descending (newest first).
func (r *pgTourRepo) List(ctx context.Context) ([]domain.Tour, error) {
	const q = `
		SELECT id, title, description, price, start_date, end_date, image_url, created_at, updated_at
		FROM tours
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TourRepo.List: %w", err)
	}
	defer rows.Close()

	var tours []domain.Tour
	for rows.Next() {
		t, err := scanTour(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TourRepo.List: scan: %w", err)
		}
		tours = append(tours, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TourRepo.List: rows: %w", err)
	}

	return tours, nil
}

// Update replaces the mutable fields of a tour and returns the updated record.
func (r *pgTourRepo) Update(ctx context.Context, tour domain.Tour) (domain.Tour, error) {
	const q = `
		UPDATE tours
		SET title       = @title,
		    description = @description,
		    price       = @price,
		    start_date  = @start_date,
		    end_date    = @end_date,
		    image_url   = @image_url,
		    updated_at  = now()
		WHERE id = @id
		RETURNING id, title, description, price, start_date, end_date, image_url, created_at, updated_at`

	args := tourArgs(tour)
	args["id"] = tour.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTour(row)
	if err != nil {
		return domain.Tour{}, fmt.Errorf("repo.TourRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a tour by primary key and returns the deleted record.
// RETURNING hands back the row as it existed before deletion, matching the
// record store contract of delete-by-id-returning-the-deleted-row.
func (r *pgTourRepo) Delete(ctx context.Context, id uuid.UUID) (domain.Tour, error) {
	const q = `
		DELETE FROM tours
		WHERE id = @id
		RETURNING id, title, description, price, start_date, end_date, image_url, created_at, updated_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTour(row)
	if err != nil {
		return domain.Tour{}, fmt.Errorf("repo.TourRepo.Delete: %w", err)
	}
	return result, nil
}

// tourArgs maps the mutable tour fields to named SQL arguments.
// An empty ImageURL is stored as NULL rather than an empty string.
func tourArgs(tour domain.Tour) pgx.NamedArgs {
	var imageURL *string
	if tour.ImageURL != "" {
		imageURL = &tour.ImageURL
	}
	return pgx.NamedArgs{
		"title":       tour.Title,
		"description": tour.Description,
		"price":       tour.Price,
		"start_date":  tour.StartDate,
		"end_date":    tour.EndDate,
		"image_url":   imageURL, // nil becomes NULL
	}
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanTour to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTour maps a single database row into a domain.Tour.
// It handles the UUID, date-only, and nullable image_url conversions.
func scanTour(s scanner) (domain.Tour, error) {
	var (
		t        domain.Tour
		id       pgtype.UUID
		start    pgtype.Date
		end      pgtype.Date
		imageURL pgtype.Text
	)

	err := s.Scan(&id, &t.Title, &t.Description, &t.Price, &start, &end, &imageURL, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Tour{}, domain.ErrNotFound
		}
		return domain.Tour{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.StartDate = domain.DateOnly(start.Time)
	t.EndDate = domain.DateOnly(end.Time)
	if imageURL.Valid {
		t.ImageURL = imageURL.String
	}

	return t, nil
}
