package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashcards-api/internal/domain"
	"github.com/phrazzld/flashcards-api/internal/platform/sqlstore"
	"github.com/phrazzld/flashcards-api/internal/service"
	"github.com/phrazzld/flashcards-api/internal/service/auth"
	"github.com/phrazzld/flashcards-api/internal/testdb"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	ctx   context.Context
	db    *sql.DB
	store struct {
		sets  *sqlstore.FlashcardSetStore
		cards *sqlstore.FlashcardStore
	}
	users service.UserService
	sets  service.FlashcardSetService
	cards service.FlashcardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testdb.Open(t)
	userStore := sqlstore.NewUserStore(db, nil)
	setStore := sqlstore.NewFlashcardSetStore(db, nil)
	cardStore := sqlstore.NewFlashcardStore(db, nil)

	users, err := service.NewUserService(db, userStore,
		auth.NewBcryptHasher(bcrypt.MinCost), auth.NewBcryptVerifier(), nil)
	require.NoError(t, err)
	sets, err := service.NewFlashcardSetService(db, setStore, nil)
	require.NoError(t, err)
	cards, err := service.NewFlashcardService(db, setStore, cardStore, nil)
	require.NoError(t, err)

	f := &fixture{ctx: context.Background(), db: db, users: users, sets: sets, cards: cards}
	f.store.sets = setStore
	f.store.cards = cardStore
	return f
}

func (f *fixture) user(t *testing.T, username string) uuid.UUID {
	t.Helper()
	return testdb.MustInsertUser(f.ctx, t, f.db, username)
}

func (f *fixture) set(t *testing.T, ownerID uuid.UUID, name string) *domain.FlashcardSetView {
	t.Helper()
	set, err := f.sets.CreateSet(f.ctx, ownerID, name)
	require.NoError(t, err)
	return set
}

func (f *fixture) card(t *testing.T, ownerID, setID uuid.UUID, front string) *domain.FlashcardView {
	t.Helper()
	card, err := f.cards.CreateFlashcard(f.ctx, ownerID, setID, front, "back of "+front)
	require.NoError(t, err)
	// Keep creation order strictly increasing for ordering assertions.
	time.Sleep(time.Millisecond)
	return card
}

func fronts(cards []*domain.FlashcardView) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Front)
	}
	return out
}
