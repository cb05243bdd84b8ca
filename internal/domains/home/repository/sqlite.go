package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-sqlite3"

	"bghomes-backend/internal/domains/home/model"
	"bghomes-backend/internal/shared/utils"
)

// sqliteRepository implements Repository over the embedded database.
type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

const homeColumns = `id, slug, name, biography, address, latitude, longitude,
	images, photo_date, sources, tags, portrait_url, birth_date, death_date,
	published, created_at, updated_at`

// buildListWhere translates a list filter into a WHERE clause.
// Search words must each match at least one permitted field (AND across
// words, OR across fields); "name" mode restricts matching to the name.
// The tag filter is a case-insensitive substring match on the serialized
// tag list. Folding uses the driver-registered ulower() rather than
// SQLite's lower(), which is ASCII-only and would miss Cyrillic values.
func buildListWhere(f model.Filter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if !f.ShowAll {
		clauses = append(clauses, "published = 1")
	}

	for _, word := range strings.Fields(strings.ToLower(f.Search)) {
		like := "%" + word + "%"
		if f.SearchMode == "name" {
			clauses = append(clauses, "ulower(name) LIKE ?")
			args = append(args, like)
			continue
		}

		fields := []string{
			"ulower(name) LIKE ?",
			"ulower(biography) LIKE ?",
			"ulower(address) LIKE ?",
			"ulower(tags) LIKE ?",
		}
		clauses = append(clauses, "("+utils.JoinWithOr(fields)+")")
		args = append(args, like, like, like, like)
	}

	if f.Tag != "" {
		clauses = append(clauses, "ulower(tags) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Tag)+"%")
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + utils.JoinWithAnd(clauses), args
}

// List counts the full matching set first, then fetches one page sorted by
// name. An offset past the end yields an empty page, not an error.
func (r *sqliteRepository) List(ctx context.Context, f model.Filter) ([]model.Home, int64, error) {
	where, args := buildListWhere(f)

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM homes"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count homes: %w", err)
	}

	offset := (f.Page - 1) * f.Limit
	query := "SELECT " + homeColumns + " FROM homes" + where +
		" ORDER BY name COLLATE NOCASE LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, query, append(args, f.Limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list homes: %w", err)
	}
	defer rows.Close()

	var homes []model.Home
	for rows.Next() {
		h, err := scanHome(rows)
		if err != nil {
			return nil, 0, err
		}
		homes = append(homes, *h)
	}

	return homes, total, rows.Err()
}

// GetBySlugOrID matches the slug column first, falling back to the id.
func (r *sqliteRepository) GetBySlugOrID(ctx context.Context, key string) (*model.Home, error) {
	query := "SELECT " + homeColumns + " FROM homes WHERE slug = ? OR id = ? LIMIT 1"

	row := r.db.QueryRowContext(ctx, query, key, key)
	h, err := scanHome(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrHomeNotFound
		}
		return nil, fmt.Errorf("failed to get home %q: %w", key, err)
	}

	return h, nil
}

func (r *sqliteRepository) Create(ctx context.Context, h *model.Home) error {
	return r.insert(ctx, r.db, h)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func (r *sqliteRepository) insert(ctx context.Context, ex execer, h *model.Home) error {
	query := `
		INSERT INTO homes (` + homeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := ex.ExecContext(ctx, query,
		h.ID, h.Slug, h.Name, h.Biography, h.Address,
		h.Latitude, h.Longitude,
		encodeJSON(h.Images), h.PhotoDate, encodeJSON(h.Sources), encodeJSON(h.Tags),
		h.PortraitURL, h.BirthDate, h.DeathDate,
		h.Published, h.CreatedAt, h.UpdatedAt,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return model.ErrDuplicateSlug
		}
		return fmt.Errorf("failed to create home: %w", err)
	}

	return nil
}

// Update is a full-record replace keyed by id.
func (r *sqliteRepository) Update(ctx context.Context, h *model.Home) error {
	query := `
		UPDATE homes SET
			slug = ?, name = ?, biography = ?, address = ?,
			latitude = ?, longitude = ?, images = ?, photo_date = ?,
			sources = ?, tags = ?, portrait_url = ?, birth_date = ?,
			death_date = ?, published = ?, updated_at = ?
		WHERE id = ?
	`

	res, err := r.db.ExecContext(ctx, query,
		h.Slug, h.Name, h.Biography, h.Address,
		h.Latitude, h.Longitude, encodeJSON(h.Images), h.PhotoDate,
		encodeJSON(h.Sources), encodeJSON(h.Tags), h.PortraitURL, h.BirthDate,
		h.DeathDate, h.Published, h.UpdatedAt,
		h.ID,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return model.ErrDuplicateSlug
		}
		return fmt.Errorf("failed to update home: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return model.ErrHomeNotFound
	}

	return nil
}

// Delete removes the row outright. No tombstone.
func (r *sqliteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM homes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete home: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return model.ErrHomeNotFound
	}

	return nil
}

// BulkImport wraps all inserts in one transaction; any failure rolls the
// whole batch back.
func (r *sqliteRepository) BulkImport(ctx context.Context, homes []model.Home) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range homes {
		if err := r.insert(ctx, tx, &homes[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import transaction: %w", err)
	}

	return nil
}

func (r *sqliteRepository) DistinctTags(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT tags FROM homes WHERE published = 1")
	if err != nil {
		return nil, fmt.Errorf("failed to scan tags: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan tag row: %w", err)
		}
		for _, tag := range decodeStrings(raw) {
			seen[tag] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	return tags, nil
}

func (r *sqliteRepository) MapMarkers(ctx context.Context) ([]model.MapMarker, error) {
	query := `
		SELECT id, slug, name, latitude, longitude
		FROM homes
		WHERE published = 1 AND latitude IS NOT NULL AND longitude IS NOT NULL
		ORDER BY name COLLATE NOCASE
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list map markers: %w", err)
	}
	defer rows.Close()

	markers := []model.MapMarker{}
	for rows.Next() {
		var m model.MapMarker
		if err := rows.Scan(&m.ID, &m.Slug, &m.Name, &m.Lat, &m.Lng); err != nil {
			return nil, fmt.Errorf("failed to scan map marker: %w", err)
		}
		markers = append(markers, m)
	}

	return markers, rows.Err()
}

func (r *sqliteRepository) CalendarRows(ctx context.Context, mm string) ([]model.CalendarRow, error) {
	query := `
		SELECT slug, name, birth_date, death_date
		FROM homes
		WHERE published = 1
		  AND (substr(birth_date, 6, 2) = ? OR substr(death_date, 6, 2) = ?)
	`

	rows, err := r.db.QueryContext(ctx, query, mm, mm)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar rows: %w", err)
	}
	defer rows.Close()

	var result []model.CalendarRow
	for rows.Next() {
		var row model.CalendarRow
		if err := rows.Scan(&row.Slug, &row.Name, &row.BirthDate, &row.DeathDate); err != nil {
			return nil, fmt.Errorf("failed to scan calendar row: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

func (r *sqliteRepository) PublishedSlugs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT slug FROM homes WHERE published = 1 ORDER BY slug")
	if err != nil {
		return nil, fmt.Errorf("failed to list slugs: %w", err)
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, fmt.Errorf("failed to scan slug: %w", err)
		}
		slugs = append(slugs, slug)
	}

	return slugs, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanHome(row scanner) (*model.Home, error) {
	var (
		h               model.Home
		lat, lng        sql.NullFloat64
		images, sources string
		tags            string
	)

	err := row.Scan(
		&h.ID, &h.Slug, &h.Name, &h.Biography, &h.Address,
		&lat, &lng,
		&images, &h.PhotoDate, &sources, &tags,
		&h.PortraitURL, &h.BirthDate, &h.DeathDate,
		&h.Published, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lat.Valid && lng.Valid {
		h.Latitude = &lat.Float64
		h.Longitude = &lng.Float64
	}

	h.Images = decodeImages(images)
	h.Sources = decodeStrings(sources)
	h.Tags = decodeStrings(tags)

	return &h, nil
}

func encodeJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// decodeImages parses the stored JSON image list. Malformed stored JSON
// never propagates past the storage boundary: it decodes to empty.
func decodeImages(raw string) []model.Image {
	var images []model.Image
	if err := json.Unmarshal([]byte(raw), &images); err != nil || images == nil {
		return []model.Image{}
	}
	return images
}

func decodeStrings(raw string) []string {
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil || values == nil {
		return []string{}
	}
	return values
}
