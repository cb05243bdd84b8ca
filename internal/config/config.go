package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the whole application configuration.
// Populated from environment variables.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Admin    AdminConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	BaseURL     string // public origin used in robots.txt / sitemap.xml
	StaticDir   string // optional directory of server-rendered pages
}

type DatabaseConfig struct {
	Path string // SQLite file path; parent directory is created on startup
}

type CacheConfig struct {
	MaxEntries  int
	ListTTL     time.Duration
	ItemTTL     time.Duration
	TagsTTL     time.Duration
	MapTTL      time.Duration
	CalendarTTL time.Duration
	TodayTTL    time.Duration
	SitemapTTL  time.Duration
}

type AdminConfig struct {
	// bcrypt hash of the admin panel password
	PasswordHash string
	JWTSecret    string
	TokenExpiry  time.Duration
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "BG Homes API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			BaseURL:     getEnv("APP_BASE_URL", "http://localhost:8080"),
			StaticDir:   getEnv("STATIC_DIR", ""),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "data/bghomes.db"),
		},
		Cache: CacheConfig{
			MaxEntries:  getEnvInt("CACHE_MAX_ENTRIES", 500),
			ListTTL:     getEnvDuration("CACHE_LIST_TTL", 15*time.Second),
			ItemTTL:     getEnvDuration("CACHE_ITEM_TTL", 30*time.Second),
			TagsTTL:     getEnvDuration("CACHE_TAGS_TTL", 5*time.Minute),
			MapTTL:      getEnvDuration("CACHE_MAP_TTL", 2*time.Minute),
			CalendarTTL: getEnvDuration("CACHE_CALENDAR_TTL", 10*time.Minute),
			TodayTTL:    getEnvDuration("CACHE_TODAY_TTL", time.Minute),
			SitemapTTL:  getEnvDuration("CACHE_SITEMAP_TTL", 10*time.Minute),
		},
		Admin: AdminConfig{
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			JWTSecret:    getEnv("JWT_SECRET", "change-me-in-production"),
			TokenExpiry:  getEnvDuration("ADMIN_TOKEN_EXPIRY", 12*time.Hour),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate rejects unsafe production defaults.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.Admin.JWTSecret == "change-me-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Admin.PasswordHash == "" {
			return fmt.Errorf("ADMIN_PASSWORD_HASH must be set in production")
		}
	}

	if c.Cache.MaxEntries <= 0 {
		return fmt.Errorf("CACHE_MAX_ENTRIES must be positive")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
