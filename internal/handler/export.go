// Package handler — export.go implements GET /export.
// Returns all tours as a flat table, with content negotiation via
// ?format=csv (CSV) or default (JSON).
package handler

import (
	"encoding/csv"
	"net/http"
	"strconv"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"id", "title", "description", "price",
	"start_date", "end_date", "image_url", "created_at",
}

// GetExport handles GET /export.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	rows, err := s.export.Export(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="tours.csv"`)

		cw := csv.NewWriter(w)
		_ = cw.Write(csvHeaders)
		for _, row := range rows {
			_ = cw.Write([]string{
				row.ID, row.Title, row.Description,
				strconv.FormatFloat(row.Price, 'f', 2, 64),
				row.StartDate, row.EndDate, row.ImageURL, row.CreatedAt,
			})
		}
		cw.Flush()
		return
	}

	writeJSON(w, http.StatusOK, rows)
}
