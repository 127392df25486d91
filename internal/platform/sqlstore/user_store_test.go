package sqlstore_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashcards-api/internal/domain"
	"github.com/phrazzld/flashcards-api/internal/platform/sqlstore"
	"github.com/phrazzld/flashcards-api/internal/store"
	"github.com/phrazzld/flashcards-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(t *testing.T, username string) *domain.User {
	t.Helper()
	u, err := domain.NewUser(username, "password123")
	require.NoError(t, err)
	u.HashedPassword = "$2a$04$notarealhashbutgoodenoughforstorage"
	u.Password = ""
	return u
}

func TestUserStore_CreateAndGet(t *testing.T) {
	f := newFixture(t)
	u := newUser(t, "alice")

	require.NoError(t, f.users.Create(f.ctx, u))

	byID, err := f.users.GetByID(f.ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Username, byID.Username)
	assert.Equal(t, u.HashedPassword, byID.HashedPassword)
	assert.True(t, u.CreatedAt.Equal(byID.CreatedAt))
	assert.Empty(t, byID.Password)

	byName, err := f.users.GetByUsername(f.ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)
}

func TestUserStore_DuplicateUsername(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.users.Create(f.ctx, newUser(t, "alice")))

	err := f.users.Create(f.ctx, newUser(t, "alice"))

	assert.ErrorIs(t, err, store.ErrUsernameExists)
	assert.True(t, store.IsDuplicateError(err))
}

func TestUserStore_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.users.GetByID(f.ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	_, err = f.users.GetByUsername(f.ctx, "ghost")
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	err = f.users.Update(f.ctx, newUser(t, "ghost"))
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	err = f.users.Delete(f.ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserStore_UpdateAndList(t *testing.T) {
	f := newFixture(t)
	bob := newUser(t, "bob")
	alice := newUser(t, "alice")
	require.NoError(t, f.users.Create(f.ctx, bob))
	require.NoError(t, f.users.Create(f.ctx, alice))

	bob.Username = "robert"
	bob.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	require.NoError(t, f.users.Update(f.ctx, bob))

	users, err := f.users.List(f.ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "robert", users[1].Username)

	// Renaming onto an existing username is a duplicate.
	bob.Username = "alice"
	assert.ErrorIs(t, f.users.Update(f.ctx, bob), store.ErrUsernameExists)
}

func TestUserStore_DeleteCascades(t *testing.T) {
	f := newFixture(t)
	ownerID := f.user(t, "owner")
	other := f.user(t, "other")
	set := f.set(t, ownerID, "Mine")
	f.card(t, ownerID, set.ID, "F", "B")
	otherSet := f.set(t, other, "Theirs")
	f.card(t, other, otherSet.ID, "F", "B")

	require.NoError(t, f.users.Delete(f.ctx, ownerID))

	_, err := f.sets.GetByID(f.ctx, set.ID)
	assert.ErrorIs(t, err, store.ErrFlashcardSetNotFound)
	assert.Equal(t, 1, testdb.CountRows(f.ctx, t, f.db, "flashcard_sets"))
	assert.Equal(t, 1, testdb.CountRows(f.ctx, t, f.db, "flashcards"))
}

func TestUserStore_WithTx(t *testing.T) {
	f := newFixture(t)
	u := newUser(t, "txuser")

	tx, err := f.db.BeginTx(f.ctx, nil)
	require.NoError(t, err)

	require.NoError(t, f.users.WithTx(tx).Create(f.ctx, u))
	_, err = f.users.WithTx(tx).GetByID(f.ctx, u.ID)
	require.NoError(t, err, "the transaction sees its own writes")

	require.NoError(t, tx.Rollback())

	_, err = f.users.GetByID(f.ctx, u.ID)
	assert.True(t, errors.Is(err, store.ErrUserNotFound))
}

func TestNewUserStore_NilDB(t *testing.T) {
	assert.Panics(t, func() {
		sqlstore.NewUserStore(nil, nil)
	})
}
