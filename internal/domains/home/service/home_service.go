package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"bghomes-backend/internal/config"
	"bghomes-backend/internal/domains/home/model"
	"bghomes-backend/internal/domains/home/repository"
	"bghomes-backend/internal/shared/utils"
	"bghomes-backend/pkg/cache"
)

const (
	defaultLimit = 6
	maxLimit     = 20
)

// homeService implements Service. It owns the cache policy: every read
// endpoint caches under a key derived from its normalized inputs, and every
// write clears the whole cache.
type homeService struct {
	repo  repository.Repository
	cache cache.Cache
	ttl   config.CacheConfig
	now   func() time.Time
}

func NewHomeService(repo repository.Repository, c cache.Cache, ttl config.CacheConfig) Service {
	return &homeService{
		repo:  repo,
		cache: c,
		ttl:   ttl,
		now:   time.Now,
	}
}

// List returns one page of summaries with pagination metadata.
// An unfiltered empty result is not cached: right after startup the store
// may still be empty, and freezing that as "no data" for the TTL window
// would hide the first inserts.
func (s *homeService) List(ctx context.Context, f model.Filter) (*model.Page, error) {
	f = normalizeFilter(f)

	key := listCacheKey(f)
	var cached model.Page
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	homes, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.Summary, 0, len(homes))
	for i := range homes {
		summaries = append(summaries, homes[i].ToSummary())
	}

	totalPages := int((total + int64(f.Limit) - 1) / int64(f.Limit))
	page := &model.Page{
		Data: summaries,
		Pagination: model.Pagination{
			Page:       f.Page,
			Limit:      f.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    f.Page < totalPages,
			HasPrev:    f.Page > 1,
		},
	}

	filtered := f.Search != "" || f.Tag != ""
	if len(summaries) > 0 || filtered {
		s.cache.Set(ctx, key, page, s.ttl.ListTTL)
	}

	return page, nil
}

func normalizeFilter(f model.Filter) model.Filter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	if f.SearchMode != "name" {
		f.SearchMode = ""
	}
	f.Search = strings.TrimSpace(f.Search)
	f.Tag = strings.TrimSpace(f.Tag)
	return f
}

func listCacheKey(f model.Filter) string {
	return fmt.Sprintf("homes:list:all=%t:page=%d:limit=%d:q=%s:mode=%s:tag=%s",
		f.ShowAll, f.Page, f.Limit,
		strings.ToLower(f.Search), f.SearchMode, strings.ToLower(f.Tag))
}

// GetBySlugOrID returns the full record, untruncated. Bypasses the list
// cache; keeps its own short-TTL entry keyed by the lookup value.
func (s *homeService) GetBySlugOrID(ctx context.Context, key string) (*model.Home, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, model.ErrHomeNotFound
	}

	cacheKey := "homes:item:" + key
	var cached model.Home
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	h, err := s.repo.GetBySlugOrID(ctx, key)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, cacheKey, h, s.ttl.ItemTTL)
	return h, nil
}

func (s *homeService) Create(ctx context.Context, req *model.HomeRequest) (*model.Home, error) {
	h, err := s.buildHome(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, h); err != nil {
		return nil, err
	}

	s.cache.Clear(ctx)
	return h, nil
}

// buildHome turns a write payload into a persistable record: trims the
// name, derives slug and id when absent, defaults published to true and
// normalizes the list fields so nothing serializes as null.
func (s *homeService) buildHome(ctx context.Context, req *model.HomeRequest) (*model.Home, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, model.ErrInvalidName
	}

	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = utils.GenerateSlug(name)
	}
	if slug == "" {
		slug = uuid.NewString()
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = slug
	}

	published := true
	if req.Published != nil {
		published = *req.Published
	}

	now := s.now().UTC()
	h := &model.Home{
		ID:          id,
		Slug:        slug,
		Name:        name,
		Biography:   req.Biography,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Images:      req.Images,
		PhotoDate:   req.PhotoDate,
		Sources:     req.Sources,
		Tags:        req.Tags,
		PortraitURL: req.PortraitURL,
		BirthDate:   req.BirthDate,
		DeathDate:   req.DeathDate,
		Published:   published,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if h.Images == nil {
		h.Images = []model.Image{}
	}
	if h.Sources == nil {
		h.Sources = []string{}
	}
	if h.Tags == nil {
		h.Tags = []string{}
	}

	return h, nil
}

// Update is a full-record replace; the original creation time survives.
func (s *homeService) Update(ctx context.Context, id string, req *model.HomeRequest) (*model.Home, error) {
	existing, err := s.repo.GetBySlugOrID(ctx, id)
	if err != nil {
		return nil, err
	}

	h, err := s.buildHome(ctx, req)
	if err != nil {
		return nil, err
	}

	h.ID = existing.ID
	h.CreatedAt = existing.CreatedAt
	if strings.TrimSpace(req.Slug) == "" && strings.TrimSpace(req.Name) != "" &&
		strings.TrimSpace(req.Name) == existing.Name {
		// keep a stable slug when only other fields change
		h.Slug = existing.Slug
	}

	if err := s.repo.Update(ctx, h); err != nil {
		return nil, err
	}

	s.cache.Clear(ctx)
	return h, nil
}

func (s *homeService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Clear(ctx)
	return nil
}

// Import builds and inserts all records in one transaction.
func (s *homeService) Import(ctx context.Context, reqs []model.HomeRequest) (int, error) {
	homes := make([]model.Home, 0, len(reqs))
	for i := range reqs {
		h, err := s.buildHome(ctx, &reqs[i])
		if err != nil {
			return 0, fmt.Errorf("record %d: %w", i, err)
		}
		homes = append(homes, *h)
	}

	if err := s.repo.BulkImport(ctx, homes); err != nil {
		return 0, err
	}

	s.cache.Clear(ctx)
	return len(homes), nil
}

func (s *homeService) Tags(ctx context.Context) ([]string, error) {
	const key = "homes:tags"

	var cached []string
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	tags, err := s.repo.DistinctTags(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, tags, s.ttl.TagsTTL)
	return tags, nil
}

func (s *homeService) MapMarkers(ctx context.Context) ([]model.MapMarker, error) {
	const key = "homes:map"

	var cached []model.MapMarker
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	markers, err := s.repo.MapMarkers(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, markers, s.ttl.MapTTL)
	return markers, nil
}

func (s *homeService) PublishedSlugs(ctx context.Context) ([]string, error) {
	return s.repo.PublishedSlugs(ctx)
}
