package model

import "time"

// Image is one gallery entry. Insertion order is display order.
type Image struct {
	Path    string `json:"path"`
	Caption string `json:"caption"`
	Alt     string `json:"alt"`
}

// Home is one historic figure/address entry, the primary entity.
type Home struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Biography   string    `json:"biography"`
	Address     string    `json:"address"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Images      []Image   `json:"images"`
	PhotoDate   string    `json:"photo_date"`
	Sources     []string  `json:"sources"`
	Tags        []string  `json:"tags"`
	PortraitURL string    `json:"portrait_url"`
	BirthDate   string    `json:"birth_date"` // "YYYY-MM-DD" or empty
	DeathDate   string    `json:"death_date"` // "YYYY-MM-DD" or empty
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Summary is the reduced list-view projection: biography cut to a short
// prefix, image list reduced to at most its first entry.
type Summary struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Biography   string   `json:"biography"`
	Address     string   `json:"address"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Images      []Image  `json:"images"`
	Tags        []string `json:"tags"`
	PortraitURL string   `json:"portrait_url"`
	BirthDate   string   `json:"birth_date"`
	DeathDate   string   `json:"death_date"`
	Published   bool     `json:"published"`
}

// biographyPreviewLen bounds the summary biography prefix, in runes.
const biographyPreviewLen = 200

// ToSummary projects a full record into its list-view shape.
func (h *Home) ToSummary() Summary {
	s := Summary{
		ID:          h.ID,
		Slug:        h.Slug,
		Name:        h.Name,
		Biography:   h.Biography,
		Address:     h.Address,
		Latitude:    h.Latitude,
		Longitude:   h.Longitude,
		Images:      []Image{},
		Tags:        h.Tags,
		PortraitURL: h.PortraitURL,
		BirthDate:   h.BirthDate,
		DeathDate:   h.DeathDate,
		Published:   h.Published,
	}

	if runes := []rune(h.Biography); len(runes) > biographyPreviewLen {
		s.Biography = string(runes[:biographyPreviewLen]) + "…"
	}

	if len(h.Images) > 0 {
		s.Images = []Image{h.Images[0]}
	}

	return s
}

// Filter carries the list-request parameters. Zero values mean defaults;
// normalization happens in the service layer.
type Filter struct {
	ShowAll    bool
	Page       int
	Limit      int
	Search     string
	SearchMode string // "" (all fields) or "name"
	Tag        string
}

// Pagination is total-count-derived page metadata.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// Page is the list response body.
type Page struct {
	Data       []Summary  `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// MapMarker is the map projection of a published record with coordinates.
type MapMarker struct {
	ID   string  `json:"id"`
	Slug string  `json:"slug"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// CalendarRow is the narrow projection the calendar matcher scans.
type CalendarRow struct {
	Slug      string
	Name      string
	BirthDate string
	DeathDate string
}
