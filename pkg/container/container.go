package container

import (
	"fmt"

	"bghomes-backend/internal/config"
	infraCache "bghomes-backend/internal/infrastructure/cache"
	"bghomes-backend/internal/infrastructure/database"
	"bghomes-backend/pkg/cache"
	"bghomes-backend/pkg/jwt"

	calendarHandler "bghomes-backend/internal/domains/calendar/handler"
	calendarService "bghomes-backend/internal/domains/calendar/service"
	homeHandler "bghomes-backend/internal/domains/home/handler"
	homeRepo "bghomes-backend/internal/domains/home/repository"
	homeService "bghomes-backend/internal/domains/home/service"
	partnerHandler "bghomes-backend/internal/domains/partner/handler"
	partnerRepo "bghomes-backend/internal/domains/partner/repository"
	partnerService "bghomes-backend/internal/domains/partner/service"
)

// Container holds all application dependencies, wired once at startup.
type Container struct {
	Config     *config.Config
	DB         *database.SQLiteDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	HomeRepo    homeRepo.Repository
	PartnerRepo partnerRepo.Repository

	HomeService     homeService.Service
	PartnerService  partnerService.Service
	CalendarService *calendarService.Service

	HomeHandler     *homeHandler.HomeHandler
	PartnerHandler  *partnerHandler.PartnerHandler
	CalendarHandler *calendarHandler.CalendarHandler
}

// NewContainer initializes the dependency graph. Any failure here aborts
// startup.
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.NewSQLiteDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	memCache := infraCache.NewMemoryCache(cfg.Cache.MaxEntries, nil)

	c := &Container{
		Config:     cfg,
		DB:         db,
		Cache:      memCache,
		JWTManager: jwt.NewManager(cfg.Admin.JWTSecret, cfg.Admin.TokenExpiry),
	}

	c.HomeRepo = homeRepo.NewSQLiteRepository(db.DB)
	c.PartnerRepo = partnerRepo.NewSQLiteRepository(db.DB)

	c.HomeService = homeService.NewHomeService(c.HomeRepo, c.Cache, cfg.Cache)
	c.PartnerService = partnerService.NewPartnerService(c.PartnerRepo, c.Cache, cfg.Cache)
	c.CalendarService = calendarService.NewService(c.HomeRepo, c.Cache, cfg.Cache, nil)

	c.HomeHandler = homeHandler.NewHomeHandler(c.HomeService)
	c.PartnerHandler = partnerHandler.NewPartnerHandler(c.PartnerService)
	c.CalendarHandler = calendarHandler.NewCalendarHandler(c.CalendarService)

	return c, nil
}

// Cleanup releases resources on shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
}
