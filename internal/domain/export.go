package domain

// ExportRow is a single row in the full-data export: a flat, string-formatted
// view of one tour, ready for CSV or JSON output.
// Dates are "2006-01-02" formatted; CreatedAt is RFC 3339.
type ExportRow struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	ImageURL    string  `json:"image_url"`
	CreatedAt   string  `json:"created_at"`
}
