// Package handler implements the HTTP handlers for the Tour Admin API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, tour.go, export.go) but all share the same Server struct
// so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/travelworld/tour-admin/internal/domain"
	"github.com/travelworld/tour-admin/internal/storage"
)

// TourServicer defines the business operations the tour handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TourServicer interface {
	List(ctx context.Context) ([]domain.Tour, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Tour, error)
	Submit(ctx context.Context, tour domain.Tour, file *storage.ImageFile) (domain.Tour, error)
	Delete(ctx context.Context, id uuid.UUID) (domain.Tour, error)
}

// Exporter defines the export operation the export handler depends on.
type Exporter interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// Server holds the handler dependencies for all API endpoints.
// Wire it in main.go via NewServer(...).Routes().
type Server struct {
	tours  TourServicer
	export Exporter
}

// NewServer constructs the Server with all its dependencies.
func NewServer(tours TourServicer, export Exporter) *Server {
	return &Server{tours: tours, export: export}
}

// Routes returns the chi router with every endpoint registered.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPISpec)
	r.Get("/docs", s.GetDocs)

	r.Route("/tours", func(r chi.Router) {
		r.Get("/", s.ListTours)
		r.Post("/", s.CreateTour)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetTour)
			r.Put("/", s.UpdateTour)
			r.Delete("/", s.DeleteTour)
		})
	})

	r.Get("/export", s.GetExport)

	return r
}
