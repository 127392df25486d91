package testdb

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashcards-api/internal/config"
	"github.com/phrazzld/flashcards-api/internal/platform/database"
	"github.com/phrazzld/flashcards-api/internal/store"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// PostgresURLEnv names the variable holding the PostgreSQL test database URL.
const PostgresURLEnv = "FLASHCARDS_TEST_DATABASE_URL"

// DefaultPassword is the plaintext password of users created by MustInsertUser.
const DefaultPassword = "testpassword123"

// Open returns a migrated, private in-memory SQLite database that is closed
// when the test finishes.
func Open(t testing.TB) *sql.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	return open(t, config.DatabaseConfig{Driver: database.DriverSQLite, URL: dsn})
}

// OpenPostgres returns a migrated PostgreSQL database, or skips the test
// when PostgresURLEnv is not set.
func OpenPostgres(t testing.TB) *sql.DB {
	t.Helper()

	url := os.Getenv(PostgresURLEnv)
	if url == "" {
		t.Skipf("%s not set - skipping PostgreSQL test", PostgresURLEnv)
	}
	return open(t, config.DatabaseConfig{
		Driver:       database.DriverPostgres,
		URL:          url,
		MaxOpenConns: 4,
		MaxIdleConns: 2,
	})
}

func open(t testing.TB, cfg config.DatabaseConfig) *sql.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := database.Open(ctx, cfg, quiet)
	require.NoError(t, err, "Failed to open test database")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(ctx, db, cfg.Driver, quiet), "Failed to run migrations")
	return db
}

// WithTx executes a test function within a transaction that is rolled back
// after the function returns.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "Failed to begin transaction")

	defer func() {
		err := tx.Rollback()
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}

// MustInsertUser inserts a user with DefaultPassword directly with SQL and
// returns its ID.
func MustInsertUser(ctx context.Context, t testing.TB, db store.DBTX, username string) uuid.UUID {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	require.NoError(t, err, "Failed to hash password")

	id := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)
	_, err = db.ExecContext(ctx, `
		INSERT INTO users (id, username, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, username, string(hashed), now, now)
	require.NoError(t, err, "Failed to insert test user")

	return id
}

// CountRows returns the number of rows in table.
func CountRows(ctx context.Context, t testing.TB, db store.DBTX, table string) int {
	t.Helper()

	var n int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n)
	require.NoError(t, err, "Failed to count rows in %s", table)
	return n
}
