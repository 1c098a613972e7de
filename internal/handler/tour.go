package handler

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/travelworld/tour-admin/internal/domain"
	"github.com/travelworld/tour-admin/internal/storage"
)

// maxMultipartMemory bounds the in-memory portion of multipart parsing;
// larger image parts spill to a temp file managed by net/http.
const maxMultipartMemory = 4 << 20

// tourRequest is the JSON request body for create and update.
// Dates are date-only strings ("2006-01-02") via the openapi Date type, so
// the calendar day round-trips without timezone drift.
type tourRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Price       *float64            `json:"price"`
	StartDate   *openapi_types.Date `json:"start_date"`
	EndDate     *openapi_types.Date `json:"end_date"`
	ImageURL    *string             `json:"image_url"`
}

// tourResponse is the JSON representation of a persisted tour.
type tourResponse struct {
	ID          uuid.UUID          `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Price       float64            `json:"price"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`
	ImageURL    *string            `json:"image_url,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// ListTours handles GET /tours. Tours are returned newest first.
func (s *Server) ListTours(w http.ResponseWriter, r *http.Request) {
	tours, err := s.tours.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]tourResponse, len(tours))
	for i, t := range tours {
		data[i] = tourToResponse(t)
	}
	writeJSON(w, http.StatusOK, data)
}

// GetTour handles GET /tours/{id}.
func (s *Server) GetTour(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	tour, err := s.tours.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tourToResponse(tour))
}

// CreateTour handles POST /tours.
// Accepts either a JSON body or a multipart form with an optional "image"
// part. When an image is attached it is uploaded before the record is
// created; an upload failure aborts the whole submission.
func (s *Server) CreateTour(w http.ResponseWriter, r *http.Request) {
	tour, file, err := parseTourSubmission(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	created, err := s.tours.Submit(r.Context(), tour, file)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tourToResponse(created))
}

// UpdateTour handles PUT /tours/{id}. All fields are replaced.
func (s *Server) UpdateTour(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	tour, file, err := parseTourSubmission(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	tour.ID = id

	updated, err := s.tours.Submit(r.Context(), tour, file)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tourToResponse(updated))
}

// DeleteTour handles DELETE /tours/{id}.
// The response body is the record as it existed prior to deletion.
func (s *Server) DeleteTour(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	deleted, err := s.tours.Delete(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tourToResponse(deleted))
}

// --- request parsing --------------------------------------------------------

// parseID extracts and validates the {id} path parameter.
// On failure it writes the error response and returns ok=false.
func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid tour id")
		return uuid.Nil, false
	}
	return id, true
}

// parseTourSubmission reads a create/update request body in either JSON or
// multipart form encoding and returns the draft plus the optional image file.
func parseTourSubmission(r *http.Request) (domain.Tour, *storage.ImageFile, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "multipart/form-data" {
		return parseMultipartTour(r)
	}
	tour, err := parseJSONTour(r)
	return tour, nil, err
}

// parseJSONTour decodes a JSON body. JSON submissions carry no file; an
// existing image path may be kept by sending image_url.
func parseJSONTour(r *http.Request) (domain.Tour, error) {
	var body tourRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return domain.Tour{}, errors.New("request body is required")
	}
	if body.Price == nil {
		return domain.Tour{}, errors.New("price is required")
	}

	t := domain.Tour{
		Title:       body.Title,
		Description: body.Description,
		Price:       *body.Price,
	}
	if body.StartDate != nil {
		t.StartDate = domain.DateOnly(body.StartDate.Time)
	}
	if body.EndDate != nil {
		t.EndDate = domain.DateOnly(body.EndDate.Time)
	}
	if body.ImageURL != nil {
		t.ImageURL = *body.ImageURL
	}
	return t, nil
}

// parseMultipartTour reads the form fields and the optional "image" part.
func parseMultipartTour(r *http.Request) (domain.Tour, *storage.ImageFile, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return domain.Tour{}, nil, errors.New("malformed multipart form")
	}

	t := domain.Tour{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}

	if v := r.FormValue("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return domain.Tour{}, nil, errors.New("invalid price")
		}
		t.Price = price
	}
	if v := r.FormValue("start_date"); v != "" {
		d, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return domain.Tour{}, nil, errors.New("invalid start_date")
		}
		t.StartDate = d
	}
	if v := r.FormValue("end_date"); v != "" {
		d, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return domain.Tour{}, nil, errors.New("invalid end_date")
		}
		t.EndDate = d
	}
	if v := r.FormValue("image_url"); v != "" {
		t.ImageURL = v
	}

	f, fh, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return t, nil, nil
		}
		return domain.Tour{}, nil, errors.New("malformed image part")
	}

	file := &storage.ImageFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}
	return t, file, nil
}

// tourToResponse converts a domain.Tour into its wire representation.
func tourToResponse(t domain.Tour) tourResponse {
	resp := tourResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Price:       t.Price,
		StartDate:   openapi_types.Date{Time: t.StartDate},
		EndDate:     openapi_types.Date{Time: t.EndDate},
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.ImageURL != "" {
		resp.ImageURL = &t.ImageURL
	}
	return resp
}
