package testdb

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_IsolatedAndMigrated(t *testing.T) {
	ctx := context.Background()

	first := Open(t)
	second := Open(t)

	MustInsertUser(ctx, t, first, "alice")

	assert.Equal(t, 1, CountRows(ctx, t, first, "users"))
	assert.Equal(t, 0, CountRows(ctx, t, second, "users"), "databases must not share state")
	assert.Equal(t, 0, CountRows(ctx, t, first, "flashcard_sets"))
	assert.Equal(t, 0, CountRows(ctx, t, first, "flashcards"))
}

func TestOpen_ForeignKeysEnforced(t *testing.T) {
	db := Open(t)

	var enabled int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&enabled))
	assert.Equal(t, 1, enabled)
}

func TestWithTx_RollsBack(t *testing.T) {
	ctx := context.Background()
	db := Open(t)

	WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		MustInsertUser(ctx, t, tx, "bob")
		assert.Equal(t, 1, CountRows(ctx, t, tx, "users"))
	})

	assert.Equal(t, 0, CountRows(ctx, t, db, "users"))
}
