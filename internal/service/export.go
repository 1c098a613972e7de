package service

import (
	"context"
	"fmt"
	"time"

	"github.com/travelworld/tour-admin/internal/domain"
	"github.com/travelworld/tour-admin/internal/repo"
)

// ExportService assembles a full flat export of all tours.
type ExportService struct {
	tours repo.TourRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(tours repo.TourRepo) *ExportService {
	return &ExportService{tours: tours}
}

// Export returns one ExportRow per tour, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	tours, err := s.tours.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := make([]domain.ExportRow, 0, len(tours))
	for _, t := range tours {
		rows = append(rows, domain.ExportRow{
			ID:          t.ID.String(),
			Title:       t.Title,
			Description: t.Description,
			Price:       t.Price,
			StartDate:   t.StartDate.Format(time.DateOnly),
			EndDate:     t.EndDate.Format(time.DateOnly),
			ImageURL:    t.ImageURL,
			CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		})
	}
	return rows, nil
}
