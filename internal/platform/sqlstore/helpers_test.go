package sqlstore_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashcards-api/internal/domain"
	"github.com/phrazzld/flashcards-api/internal/platform/sqlstore"
	"github.com/phrazzld/flashcards-api/internal/testdb"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ctx   context.Context
	db    *sql.DB
	users *sqlstore.UserStore
	sets  *sqlstore.FlashcardSetStore
	cards *sqlstore.FlashcardStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testdb.Open(t)
	return &fixture{
		ctx:   context.Background(),
		db:    db,
		users: sqlstore.NewUserStore(db, nil),
		sets:  sqlstore.NewFlashcardSetStore(db, nil),
		cards: sqlstore.NewFlashcardStore(db, nil),
	}
}

func (f *fixture) user(t *testing.T, username string) uuid.UUID {
	t.Helper()
	return testdb.MustInsertUser(f.ctx, t, f.db, username)
}

func (f *fixture) set(t *testing.T, ownerID uuid.UUID, name string) *domain.FlashcardSet {
	t.Helper()
	set, err := domain.NewFlashcardSet(ownerID, name)
	require.NoError(t, err)
	require.NoError(t, f.sets.Create(f.ctx, set))
	return set
}

func (f *fixture) card(t *testing.T, ownerID, setID uuid.UUID, front, back string) *domain.Flashcard {
	t.Helper()
	card, err := domain.NewFlashcard(ownerID, setID, front, back)
	require.NoError(t, err)
	require.NoError(t, f.cards.Create(f.ctx, card))
	// Keep creation order strictly increasing for ordering assertions.
	time.Sleep(time.Millisecond)
	return card
}
