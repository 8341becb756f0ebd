package repository

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure Go SQLite driver
)

//go:embed schema.sql
var schemaFS embed.FS

// ErrNotFound is returned by backends for missing documents
var ErrNotFound = errors.New("document not found")

// document keys
const (
	keyHistory     = "history"
	keyAnalytics   = "analytics"
	keyExperiments = "experiments"
)

// Backend stores whole documents by key
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

// Config represents store configuration
type Config struct {
	Type            string // sqlite or file
	DSN             string
	Dir             string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	HistorySize     int
	DailyRetention  int
}

// Repositories contains all repository instances
type Repositories struct {
	History     *HistoryRepository
	Analytics   *AnalyticsRepository
	Experiments *ExperimentRepository
	Backend     Backend
	db          *sqlx.DB
}

// NewRepositories creates all repositories on top of the configured backend
func NewRepositories(ctx context.Context, cfg Config) (*Repositories, error) {
	repos := &Repositories{}
	switch cfg.Type {
	case "file":
		repos.Backend = NewFileBackend(cfg.Dir)
	case "sqlite", "":
		db, err := openSQLite(ctx, cfg)
		if err != nil {
			return nil, err
		}
		repos.db = db
		repos.Backend = NewDocumentRepository(db)
	default:
		return nil, fmt.Errorf("unknown store type %q", cfg.Type)
	}

	repos.History = NewHistoryRepository(repos.Backend, cfg.HistorySize)
	repos.Analytics = NewAnalyticsRepository(repos.Backend, cfg.DailyRetention)
	repos.Experiments = NewExperimentRepository(repos.Backend)
	return repos, nil
}

// Close closes the database connection, if any
func (r *Repositories) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Ping verifies the backend is reachable
func (r *Repositories) Ping(ctx context.Context) error {
	if r.db == nil {
		return nil
	}
	return r.db.PingContext(ctx)
}

func openSQLite(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	if cfg.DSN == "" {
		cfg.DSN = "file:devtips.db?cache=shared&mode=rwc&_txlock=immediate"
	}

	db, err := sqlx.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA busy_timeout = 5000", // 5 second timeout for locks
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	if err := initSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return db, nil
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sqlx.DB) error {
	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}
