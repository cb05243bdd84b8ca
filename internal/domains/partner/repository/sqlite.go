package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bghomes-backend/internal/domains/partner/model"
)

// Repository is the data access contract for partner records.
type Repository interface {
	List(ctx context.Context, showAll bool) ([]model.Partner, error)
	GetByID(ctx context.Context, id string) (*model.Partner, error)
	Create(ctx context.Context, p *model.Partner) error
	Update(ctx context.Context, p *model.Partner) error
	Delete(ctx context.Context, id string) error
}

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

const partnerColumns = `id, name, description, logo_url, website, instagram,
	email, published, display_order, created_at, updated_at`

// List orders by display_order with name breaking ties.
func (r *sqliteRepository) List(ctx context.Context, showAll bool) ([]model.Partner, error) {
	query := "SELECT " + partnerColumns + " FROM partners"
	if !showAll {
		query += " WHERE published = 1"
	}
	query += " ORDER BY display_order, name COLLATE NOCASE"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list partners: %w", err)
	}
	defer rows.Close()

	partners := []model.Partner{}
	for rows.Next() {
		var p model.Partner
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.LogoURL, &p.Website,
			&p.Instagram, &p.Email, &p.Published, &p.DisplayOrder,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan partner: %w", err)
		}
		partners = append(partners, p)
	}

	return partners, rows.Err()
}

func (r *sqliteRepository) GetByID(ctx context.Context, id string) (*model.Partner, error) {
	query := "SELECT " + partnerColumns + " FROM partners WHERE id = ?"

	var p model.Partner
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.LogoURL, &p.Website,
		&p.Instagram, &p.Email, &p.Published, &p.DisplayOrder,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPartnerNotFound
		}
		return nil, fmt.Errorf("failed to get partner %q: %w", id, err)
	}

	return &p, nil
}

func (r *sqliteRepository) Create(ctx context.Context, p *model.Partner) error {
	query := `
		INSERT INTO partners (` + partnerColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Description, p.LogoURL, p.Website,
		p.Instagram, p.Email, p.Published, p.DisplayOrder,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create partner: %w", err)
	}

	return nil
}

func (r *sqliteRepository) Update(ctx context.Context, p *model.Partner) error {
	query := `
		UPDATE partners SET
			name = ?, description = ?, logo_url = ?, website = ?,
			instagram = ?, email = ?, published = ?, display_order = ?,
			updated_at = ?
		WHERE id = ?
	`

	res, err := r.db.ExecContext(ctx, query,
		p.Name, p.Description, p.LogoURL, p.Website,
		p.Instagram, p.Email, p.Published, p.DisplayOrder,
		p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update partner: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return model.ErrPartnerNotFound
	}

	return nil
}

func (r *sqliteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM partners WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete partner: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return model.ErrPartnerNotFound
	}

	return nil
}
