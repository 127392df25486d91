package sqlstore_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashcards-api/internal/domain"
	"github.com/phrazzld/flashcards-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlashcardStore_CreateWithoutSet(t *testing.T) {
	f := newFixture(t)
	ownerID := f.user(t, "testuser")
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name     string
		validate bool
		setID    uuid.UUID
	}{
		{"no set, not validated", false, uuid.Nil},
		{"no set, validated first", true, uuid.Nil},
		{"unknown set", false, uuid.New()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := &domain.Flashcard{
				ID:             uuid.New(),
				Front:          "Front of card",
				Back:           "Back of card",
				OwnerID:        ownerID,
				FlashcardSetID: tt.setID,
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			if tt.validate {
				require.NoError(t, card.Validate())
			}

			err := f.cards.Create(f.ctx, card)

			assert.ErrorIs(t, err, store.ErrReferentialIntegrity)
			assert.True(t, store.IsIntegrityError(err))
			assert.NotErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestFlashcardStore_RawInsertSkipsValidation(t *testing.T) {
	f := newFixture(t)
	ownerID := f.user(t, "testuser")
	set := f.set(t, ownerID, "Set")
	now := time.Now().UTC().Truncate(time.Microsecond)
	card := &domain.Flashcard{
		ID: uuid.New(), Front: "", Back: "", OwnerID: ownerID, FlashcardSetID: set.ID,
		CreatedAt: now, UpdatedAt: now,
	}

	require.NoError(t, f.cards.Create(f.ctx, card))

	var verr *domain.ValidationError
	require.ErrorAs(t, card.Validate(), &verr)
	assert.True(t, verr.HasField("front"))
	assert.True(t, verr.HasField("back"))
}

func TestFlashcardStore_ViewDerivedFields(t *testing.T) {
	f := newFixture(t)
	ownerID := f.user(t, "testuser")
	set := f.set(t, ownerID, "Test Flashcard Set")
	card := f.card(t, ownerID, set.ID, "Front of card", "Back of card")

	view, err := f.cards.GetView(f.ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, "testuser", view.OwnerName)
	assert.Equal(t, "Test Flashcard Set", view.SetName)
	assert.True(t, set.Created.Equal(view.SetCreated))
	assert.Equal(t, "Front of card - Back of card", view.String())

	// Derived fields follow the set immediately.
	require.NoError(t, set.Rename("Renamed"))
	require.NoError(t, f.sets.Update(f.ctx, set))

	view, err = f.cards.GetView(f.ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", view.SetName)

	_, err = f.cards.GetView(f.ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrFlashcardNotFound)
}

func TestFlashcardStore_OwnershipScenario(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "user_a")
	b := f.user(t, "user_b")
	s1 := f.set(t, a, "S1")
	s2 := f.set(t, a, "S2")
	s3 := f.set(t, b, "S3")

	f.card(t, a, s1.ID, "a1", "x")
	f.card(t, a, s1.ID, "a2", "x")
	f.card(t, a, s2.ID, "a3", "x")
	f.card(t, a, s2.ID, "a4", "x")
	f.card(t, b, s3.ID, "b1", "x")

	ownedByA, err := f.cards.CountByOwner(f.ctx, a)
	require.NoError(t, err)
	assert.Equal(t, 4, ownedByA)

	inS1, err := f.cards.CountBySet(f.ctx, s1.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, inS1)

	inS3, err := f.cards.CountBySet(f.ctx, s3.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, inS3)

	listA, err := f.cards.ListByOwner(f.ctx, a)
	require.NoError(t, err)
	require.Len(t, listA, 4)
	assert.Equal(t, []string{"a1", "a2", "a3", "a4"}, fronts(listA))

	listS3, err := f.cards.ListBySet(f.ctx, s3.ID)
	require.NoError(t, err)
	require.Len(t, listS3, 1)
	assert.Equal(t, "user_b", listS3[0].OwnerName)
}

func TestFlashcardStore_ListBySetIgnoresOwner(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "user_a")
	b := f.user(t, "user_b")
	set := f.set(t, a, "Shared")
	f.card(t, a, set.ID, "mine", "x")
	f.card(t, b, set.ID, "theirs", "x")

	cards, err := f.cards.ListBySet(f.ctx, set.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"mine", "theirs"}, fronts(cards))
}

func TestFlashcardStore_UpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ownerID := f.user(t, "testuser")
	set := f.set(t, ownerID, "Set")
	card := f.card(t, ownerID, set.ID, "F1", "B1")

	require.NoError(t, card.UpdateContent("F2", "B2"))
	require.NoError(t, f.cards.Update(f.ctx, card))

	got, err := f.cards.GetByID(f.ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, "F2", got.Front)
	assert.Equal(t, "B2", got.Back)
	assert.Equal(t, set.ID, got.FlashcardSetID)

	require.NoError(t, f.cards.Delete(f.ctx, card.ID))
	assert.ErrorIs(t, f.cards.Delete(f.ctx, card.ID), store.ErrFlashcardNotFound)
	assert.ErrorIs(t, f.cards.Update(f.ctx, card), store.ErrFlashcardNotFound)
}

func TestFlashcardStore_WithTxRollback(t *testing.T) {
	f := newFixture(t)
	ownerID := f.user(t, "testuser")
	set := f.set(t, ownerID, "Set")

	tx, err := f.db.BeginTx(f.ctx, nil)
	require.NoError(t, err)

	card, err := domain.NewFlashcard(ownerID, set.ID, "F", "B")
	require.NoError(t, err)
	require.NoError(t, f.cards.WithTx(tx).Create(f.ctx, card))

	n, err := f.sets.WithTx(tx).CountFlashcards(f.ctx, set.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, tx.Rollback())

	n, err = f.sets.CountFlashcards(f.ctx, set.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func fronts(cards []*domain.FlashcardView) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Front)
	}
	return out
}
