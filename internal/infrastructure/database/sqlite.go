package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"bghomes-backend/internal/config"
)

// driverName registers a driver variant with a Unicode-aware lower().
// SQLite's built-in lower() only folds ASCII, which breaks case-insensitive
// matching against Cyrillic names and tags.
const driverName = "sqlite3_unicode"

func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("ulower", strings.ToLower, true)
		},
	})
}

// SQLiteDB wraps the embedded database handle and owns schema bootstrap.
type SQLiteDB struct {
	DB *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS homes (
	id           TEXT PRIMARY KEY,
	slug         TEXT NOT NULL UNIQUE,
	name         TEXT NOT NULL,
	biography    TEXT NOT NULL DEFAULT '',
	address      TEXT NOT NULL DEFAULT '',
	latitude     REAL,
	longitude    REAL,
	images       TEXT NOT NULL DEFAULT '[]',
	photo_date   TEXT NOT NULL DEFAULT '',
	sources      TEXT NOT NULL DEFAULT '[]',
	tags         TEXT NOT NULL DEFAULT '[]',
	portrait_url TEXT NOT NULL DEFAULT '',
	birth_date   TEXT NOT NULL DEFAULT '',
	death_date   TEXT NOT NULL DEFAULT '',
	published    INTEGER NOT NULL DEFAULT 1,
	created_at   DATETIME NOT NULL,
	updated_at   DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_homes_published ON homes (published);
CREATE INDEX IF NOT EXISTS idx_homes_name ON homes (name COLLATE NOCASE);

CREATE TABLE IF NOT EXISTS partners (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	logo_url      TEXT NOT NULL DEFAULT '',
	website       TEXT NOT NULL DEFAULT '',
	instagram     TEXT NOT NULL DEFAULT '',
	email         TEXT NOT NULL DEFAULT '',
	published     INTEGER NOT NULL DEFAULT 1,
	display_order INTEGER NOT NULL DEFAULT 0,
	created_at    DATETIME NOT NULL,
	updated_at    DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_partners_published ON partners (published);
`

// NewSQLiteDB opens (creating if needed) the database file and applies the
// schema. A failure here is unrecoverable: the caller logs and exits.
func NewSQLiteDB(cfg config.DatabaseConfig) (*SQLiteDB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on", cfg.Path)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; one connection keeps the driver from
	// returning SQLITE_BUSY under concurrent writes.
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("schema migration failed: %w", err)
	}

	return &SQLiteDB{DB: db}, nil
}

func (s *SQLiteDB) HealthCheck(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("database is not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return s.DB.PingContext(ctx)
}

func (s *SQLiteDB) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}
