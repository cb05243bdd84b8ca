package service

import (
	"context"

	"bghomes-backend/internal/domains/home/model"
)

// Service is the home domain business contract.
type Service interface {
	List(ctx context.Context, filter model.Filter) (*model.Page, error)
	GetBySlugOrID(ctx context.Context, key string) (*model.Home, error)
	Create(ctx context.Context, req *model.HomeRequest) (*model.Home, error)
	Update(ctx context.Context, id string, req *model.HomeRequest) (*model.Home, error)
	Delete(ctx context.Context, id string) error
	Import(ctx context.Context, reqs []model.HomeRequest) (int, error)
	Tags(ctx context.Context) ([]string, error)
	MapMarkers(ctx context.Context) ([]model.MapMarker, error)
	PublishedSlugs(ctx context.Context) ([]string, error)
}
