package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"bghomes-backend/internal/config"
	"bghomes-backend/internal/domains/partner/model"
	"bghomes-backend/internal/domains/partner/repository"
	"bghomes-backend/internal/shared/utils"
	"bghomes-backend/pkg/cache"
)

// Service is the partner domain business contract.
type Service interface {
	List(ctx context.Context, showAll bool) ([]model.Partner, error)
	Create(ctx context.Context, req *model.PartnerRequest) (*model.Partner, error)
	Update(ctx context.Context, id string, req *model.PartnerRequest) (*model.Partner, error)
	Delete(ctx context.Context, id string) error
}

type partnerService struct {
	repo  repository.Repository
	cache cache.Cache
	ttl   config.CacheConfig
	now   func() time.Time
}

func NewPartnerService(repo repository.Repository, c cache.Cache, ttl config.CacheConfig) Service {
	return &partnerService{
		repo:  repo,
		cache: c,
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *partnerService) List(ctx context.Context, showAll bool) ([]model.Partner, error) {
	key := "partners:list:all=false"
	if showAll {
		key = "partners:list:all=true"
	}

	var cached []model.Partner
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	partners, err := s.repo.List(ctx, showAll)
	if err != nil {
		return nil, err
	}

	if len(partners) > 0 {
		s.cache.Set(ctx, key, partners, s.ttl.ListTTL)
	}

	return partners, nil
}

func (s *partnerService) Create(ctx context.Context, req *model.PartnerRequest) (*model.Partner, error) {
	p := s.buildPartner(req)

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.cache.Clear(ctx)
	return p, nil
}

func (s *partnerService) buildPartner(req *model.PartnerRequest) *model.Partner {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = utils.GenerateSlug(req.Name)
	}
	if id == "" {
		id = uuid.NewString()
	}

	published := true
	if req.Published != nil {
		published = *req.Published
	}

	now := s.now().UTC()
	return &model.Partner{
		ID:           id,
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		LogoURL:      req.LogoURL,
		Website:      req.Website,
		Instagram:    req.Instagram,
		Email:        req.Email,
		Published:    published,
		DisplayOrder: req.DisplayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (s *partnerService) Update(ctx context.Context, id string, req *model.PartnerRequest) (*model.Partner, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p := s.buildPartner(req)
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.cache.Clear(ctx)
	return p, nil
}

func (s *partnerService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Clear(ctx)
	return nil
}
