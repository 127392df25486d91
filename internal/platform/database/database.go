// Package database opens the application's SQL database and applies its
// schema migrations. PostgreSQL (through pgx) and SQLite (through the
// pure-Go modernc driver) are supported.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/phrazzld/flashcards-api/internal/config"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Supported values for config.DatabaseConfig.Driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// pingTimeout bounds the connectivity check performed by Open.
const pingTimeout = 5 * time.Second

// Open connects to the database described by cfg, configures the
// connection pool and verifies connectivity.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "database"), slog.String("driver", cfg.Driver))

	var (
		db  *sql.DB
		err error
	)
	switch cfg.Driver {
	case DriverPostgres:
		db, err = sql.Open("pgx", cfg.URL)
	case DriverSQLite:
		db, err = sql.Open("sqlite", SQLiteDSN(cfg.URL))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	configurePool(db, cfg)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established")
	return db, nil
}

func configurePool(db *sql.DB, cfg config.DatabaseConfig) {
	if cfg.Driver == DriverSQLite {
		// SQLite allows a single writer, and every connection to a
		// ":memory:" database would see its own empty database.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		return
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 10
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(5 * time.Minute)
}

// SQLiteDSN returns dsn with foreign key enforcement, a busy timeout and
// sortable time values enabled. Parameters already present in dsn are kept.
func SQLiteDSN(dsn string) string {
	params := []struct{ key, param string }{
		{"_pragma=foreign_keys", "_pragma=foreign_keys(1)"},
		{"_pragma=busy_timeout", "_pragma=busy_timeout(5000)"},
		{"_time_format=", "_time_format=sqlite"},
	}

	for _, p := range params {
		if strings.Contains(dsn, p.key) {
			continue
		}
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + p.param
	}
	return dsn
}
