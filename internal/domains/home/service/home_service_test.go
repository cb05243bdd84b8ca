package service

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bghomes-backend/internal/config"
	"bghomes-backend/internal/domains/home/model"
	"bghomes-backend/internal/domains/home/repository"
	infraCache "bghomes-backend/internal/infrastructure/cache"
	"bghomes-backend/internal/infrastructure/database"
)

func testCacheConfig() config.CacheConfig {
	return config.CacheConfig{
		MaxEntries:  100,
		ListTTL:     15 * time.Second,
		ItemTTL:     30 * time.Second,
		TagsTTL:     5 * time.Minute,
		MapTTL:      2 * time.Minute,
		CalendarTTL: 10 * time.Minute,
		TodayTTL:    time.Minute,
	}
}

func newTestService(t *testing.T) (Service, repository.Repository) {
	t.Helper()

	db, err := database.NewSQLiteDB(config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := repository.NewSQLiteRepository(db.DB)
	c := infraCache.NewMemoryCache(100, nil)
	return NewHomeService(repo, c, testCacheConfig()), repo
}

func createHome(t *testing.T, svc Service, name string, mutate func(*model.HomeRequest)) *model.Home {
	t.Helper()

	req := &model.HomeRequest{Name: name}
	if mutate != nil {
		mutate(req)
	}
	h, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	return h
}

func TestService_CreateDerivesSlugAndDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	h := createHome(t, svc, "Vasil Levski House-Museum", nil)
	assert.Equal(t, "vasil-levski-house-museum", h.Slug)
	assert.Equal(t, h.Slug, h.ID, "id defaults to slug")
	assert.True(t, h.Published, "published defaults to true")
	assert.NotNil(t, h.Images)
	assert.NotNil(t, h.Tags)
	assert.False(t, h.CreatedAt.IsZero())
}

func TestService_CreateRequiresName(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), &model.HomeRequest{Name: "   "})
	assert.ErrorIs(t, err, model.ErrInvalidName)
}

func TestService_CreateRejectsDuplicateSlug(t *testing.T) {
	svc, _ := newTestService(t)

	createHome(t, svc, "Hristo Botev", nil)
	_, err := svc.Create(context.Background(), &model.HomeRequest{Name: "Hristo Botev"})
	assert.ErrorIs(t, err, model.ErrDuplicateSlug)
}

func TestService_ListPaginationMetadata(t *testing.T) {
	svc, _ := newTestService(t)

	names := []string{"Aleko", "Botev", "Vazov", "Levski", "Karavelov", "Slaveykov", "Yavorov", "Zahari"}
	for _, name := range names {
		createHome(t, svc, name, nil)
	}

	page, err := svc.List(context.Background(), model.Filter{Page: 1})
	require.NoError(t, err)
	assert.Len(t, page.Data, 6, "default limit is 6")
	assert.Equal(t, 1, page.Pagination.Page)
	assert.EqualValues(t, 8, page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.True(t, page.Pagination.HasNext)
	assert.False(t, page.Pagination.HasPrev)

	second, err := svc.List(context.Background(), model.Filter{Page: 2})
	require.NoError(t, err)
	assert.Len(t, second.Data, 2)
	assert.False(t, second.Pagination.HasNext)
	assert.True(t, second.Pagination.HasPrev)

	// A page past the end is an empty 200, not an error.
	far, err := svc.List(context.Background(), model.Filter{Page: 9})
	require.NoError(t, err)
	assert.Empty(t, far.Data)
	assert.Equal(t, 2, far.Pagination.TotalPages)
}

func TestService_ListClampsLimit(t *testing.T) {
	svc, _ := newTestService(t)

	createHome(t, svc, "Solo", nil)

	page, err := svc.List(context.Background(), model.Filter{Page: 1, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 20, page.Pagination.Limit, "limit clamps to the fixed maximum")

	// Invalid values silently default rather than error.
	page, err = svc.List(context.Background(), model.Filter{Page: -3, Limit: -1})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, 6, page.Pagination.Limit)
}

func TestService_SummaryProjection(t *testing.T) {
	svc, _ := newTestService(t)

	longBio := strings.Repeat("а", 400)
	createHome(t, svc, "Ivan Vazov", func(r *model.HomeRequest) {
		r.Biography = longBio
		r.Images = []model.Image{
			{Path: "first.jpg", Caption: "c1", Alt: "a1"},
			{Path: "second.jpg", Caption: "c2", Alt: "a2"},
		}
	})

	page, err := svc.List(context.Background(), model.Filter{Page: 1})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)

	summary := page.Data[0]
	assert.Less(t, len([]rune(summary.Biography)), len([]rune(longBio)), "biography truncated")
	require.Len(t, summary.Images, 1, "image list reduced to its first entry")
	assert.Equal(t, "first.jpg", summary.Images[0].Path)

	// The single-record lookup stays untruncated.
	full, err := svc.GetBySlugOrID(context.Background(), "ivan-vazov")
	require.NoError(t, err)
	assert.Equal(t, longBio, full.Biography)
	assert.Len(t, full.Images, 2)
}

func TestService_ImagesRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)

	images := []model.Image{{Path: "p", Caption: "c", Alt: "a"}}
	createHome(t, svc, "Round Trip", func(r *model.HomeRequest) {
		r.Images = images
	})

	got, err := svc.GetBySlugOrID(context.Background(), "round-trip")
	require.NoError(t, err)
	assert.Equal(t, images, got.Images)
}

func TestService_UnfilteredEmptyListNotCached(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	empty, err := svc.List(ctx, model.Filter{Page: 1})
	require.NoError(t, err)
	require.Empty(t, empty.Data)

	// Insert behind the service's back: no cache clear happens, so only
	// the absence of a cached empty page makes the record visible.
	h := model.Home{
		ID: "late", Slug: "late", Name: "Late Arrival",
		Images: []model.Image{}, Sources: []string{}, Tags: []string{},
		Published: true,
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, &h))

	next, err := svc.List(ctx, model.Filter{Page: 1})
	require.NoError(t, err)
	assert.Len(t, next.Data, 1, "empty unfiltered result must not be cached")
}

func TestService_FilteredEmptyListIsCached(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	empty, err := svc.List(ctx, model.Filter{Page: 1, Search: "nobody"})
	require.NoError(t, err)
	require.Empty(t, empty.Data)

	h := model.Home{
		ID: "nobody-home", Slug: "nobody-home", Name: "Nobody Home",
		Images: []model.Image{}, Sources: []string{}, Tags: []string{},
		Published: true,
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, &h))

	cached, err := svc.List(ctx, model.Filter{Page: 1, Search: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, cached.Data, "filtered empty result is served from cache until TTL or a write")
}

func TestService_WritesInvalidateReads(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	createHome(t, svc, "First", func(r *model.HomeRequest) {
		r.Tags = []string{"Writer"}
	})

	// Warm every cached read.
	_, err := svc.List(ctx, model.Filter{Page: 1})
	require.NoError(t, err)
	tags, err := svc.Tags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Writer"}, tags)
	_, err = svc.MapMarkers(ctx)
	require.NoError(t, err)

	createHome(t, svc, "Second", func(r *model.HomeRequest) {
		r.Tags = []string{"Poet"}
		lat, lng := 42.7, 23.3
		r.Latitude = &lat
		r.Longitude = &lng
	})

	page, err := svc.List(ctx, model.Filter{Page: 1})
	require.NoError(t, err)
	assert.Len(t, page.Data, 2, "list reflects the write immediately")

	tags, err = svc.Tags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Poet", "Writer"}, tags)

	markers, err := svc.MapMarkers(ctx)
	require.NoError(t, err)
	assert.Len(t, markers, 1)
}

func TestService_UpdateReplacesAndKeepsCreatedAt(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created := createHome(t, svc, "Lyuben Karavelov", func(r *model.HomeRequest) {
		r.Biography = "original"
		r.Tags = []string{"Writer"}
	})

	updated, err := svc.Update(ctx, created.ID, &model.HomeRequest{
		Name:    "Lyuben Karavelov",
		Address: "Koprivshtitsa",
	})
	require.NoError(t, err)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Koprivshtitsa", updated.Address)
	assert.Empty(t, updated.Tags, "full-record replace resets omitted fields")

	_, err = svc.Update(ctx, "missing-id", &model.HomeRequest{Name: "X"})
	assert.ErrorIs(t, err, model.ErrHomeNotFound)
}

func TestService_Import(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	count, err := svc.Import(ctx, []model.HomeRequest{
		{Name: "One"},
		{Name: "Two"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	page, err := svc.List(ctx, model.Filter{Page: 1})
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
}

func TestService_DeleteRemovesRecord(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	h := createHome(t, svc, "Gone Soon", nil)
	require.NoError(t, svc.Delete(ctx, h.ID))

	_, err := svc.GetBySlugOrID(ctx, h.Slug)
	assert.ErrorIs(t, err, model.ErrHomeNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, h.ID), model.ErrHomeNotFound)
}
