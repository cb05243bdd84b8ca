package repository

import (
	"context"

	"bghomes-backend/internal/domains/home/model"
)

// Repository is the data access contract for home records.
type Repository interface {
	// List returns one page of rows plus the total matching count.
	List(ctx context.Context, filter model.Filter) ([]model.Home, int64, error)
	GetBySlugOrID(ctx context.Context, key string) (*model.Home, error)
	Create(ctx context.Context, h *model.Home) error
	Update(ctx context.Context, h *model.Home) error
	Delete(ctx context.Context, id string) error
	// BulkImport inserts all records in a single transaction.
	BulkImport(ctx context.Context, homes []model.Home) error
	// DistinctTags unions the tag sets of published records, deduplicated
	// by exact value, sorted.
	DistinctTags(ctx context.Context) ([]string, error)
	// MapMarkers projects published records that have both coordinates.
	MapMarkers(ctx context.Context) ([]model.MapMarker, error)
	// CalendarRows pre-filters published records whose birth or death month
	// substring equals mm ("01".."12"). The authoritative match happens in
	// the calendar service.
	CalendarRows(ctx context.Context, mm string) ([]model.CalendarRow, error)
	// PublishedSlugs lists the slugs of published records, sorted.
	PublishedSlugs(ctx context.Context) ([]string, error)
}
