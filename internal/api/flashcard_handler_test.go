package api_test

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/flashcards-api/internal/api"
	"github.com/phrazzld/flashcards-api/internal/domain"
	"github.com/phrazzld/flashcards-api/internal/service"
	"github.com/phrazzld/flashcards-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlashcardHandler_Create(t *testing.T) {
	t.Parallel()

	caller := uuid.New()
	set := setView(caller, "Capitals", 0)

	tests := []struct {
		name        string
		body        string
		serviceErr  error
		wantStatus  int
		wantMessage string
	}{
		{
			name:       "created",
			body:       `{"front":"France","back":"Paris","flashcard_set":"` + set.ID.String() + `"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name: "missing set",
			body: `{"front":"France","back":"Paris"}`,
			serviceErr: service.NewServiceError("create_flashcard", "failed to save flashcard",
				store.NewStoreError("flashcard", "create", "flashcard set does not exist", store.ErrReferentialIntegrity)),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Referenced entity does not exist",
		},
		{
			name:        "set owned by someone else",
			body:        `{"front":"France","back":"Paris","flashcard_set":"` + set.ID.String() + `"}`,
			serviceErr:  service.NewServiceError("create_flashcard", "failed to save flashcard", service.ErrNotOwned),
			wantStatus:  http.StatusForbidden,
			wantMessage: "You do not own this resource",
		},
		{
			name:        "malformed set id",
			body:        `{"front":"France","back":"Paris","flashcard_set":"nope"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid request format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ts := newTestServer(t)
			ts.cards.CreateFn = func(_ context.Context, ownerID, setID uuid.UUID, front, back string) (*domain.FlashcardView, error) {
				if tt.serviceErr != nil {
					return nil, tt.serviceErr
				}
				assert.Equal(t, caller, ownerID)
				assert.Equal(t, set.ID, setID)
				return cardView(ownerID, set, front, back), nil
			}

			rr := ts.do(t, http.MethodPost, "/flashcards", caller, tt.body)

			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, decodeError(t, rr).Error)
				return
			}
			got := decodeBody[api.FlashcardResponse](t, rr)
			assert.Equal(t, "France", got.Front)
			assert.Equal(t, "Paris", got.Back)
			assert.Equal(t, set.ID, got.FlashcardSet)
			assert.Equal(t, "Capitals", got.SetName)
			assert.Equal(t, caller, got.Owner)
		})
	}
}

func TestFlashcardHandler_CreateValidation(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.cards.CreateFn = func(_ context.Context, ownerID, setID uuid.UUID, front, back string) (*domain.FlashcardView, error) {
		_, err := domain.NewFlashcard(ownerID, setID, front, back)
		require.Error(t, err)
		return nil, service.NewServiceError("create_flashcard", "invalid flashcard", err)
	}

	rr := ts.do(t, http.MethodPost, "/flashcards", uuid.New(),
		`{"front":"","back":"   ","flashcard_set":"`+uuid.NewString()+`"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	body := decodeError(t, rr)
	assert.Contains(t, body.Fields, "front")
	assert.Contains(t, body.Fields, "back")
}

func TestFlashcardHandler_List(t *testing.T) {
	t.Parallel()

	caller := uuid.New()
	set := setView(caller, "Capitals", 2)

	t.Run("all of the caller's cards", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t)
		ts.cards.ListFn = func(_ context.Context, ownerID, setID uuid.UUID) ([]*domain.FlashcardView, error) {
			assert.Equal(t, caller, ownerID)
			assert.Equal(t, uuid.Nil, setID)
			return []*domain.FlashcardView{cardView(caller, set, "a", "b")}, nil
		}

		rr := ts.do(t, http.MethodGet, "/flashcards", caller, "")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, decodeBody[[]api.FlashcardResponse](t, rr), 1)
	})

	t.Run("filtered by set", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t)
		ts.cards.ListFn = func(_ context.Context, _, setID uuid.UUID) ([]*domain.FlashcardView, error) {
			assert.Equal(t, set.ID, setID)
			return nil, nil
		}

		rr := ts.do(t, http.MethodGet, "/flashcards?flashcard_set="+set.ID.String(), caller, "")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("invalid set filter", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t)

		rr := ts.do(t, http.MethodGet, "/flashcards?flashcard_set=42", caller, "")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid ID format", decodeError(t, rr).Error)
	})
}

func TestFlashcardHandler_GetUpdateDelete(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	owner := uuid.New()
	set := setView(owner, "Capitals", 1)
	card := cardView(owner, set, "France", "Paris")

	ts.cards.GetFn = func(_ context.Context, id uuid.UUID) (*domain.FlashcardView, error) {
		if id != card.ID {
			return nil, service.NewServiceError("get_flashcard", "failed", store.ErrFlashcardNotFound)
		}
		return card, nil
	}
	ts.cards.UpdateFn = func(_ context.Context, callerID, id uuid.UUID, front, back string) (*domain.FlashcardView, error) {
		if callerID != owner {
			return nil, service.NewServiceError("update_flashcard", "failed", service.ErrNotOwned)
		}
		updated := *card
		updated.Front, updated.Back = front, back
		return &updated, nil
	}
	ts.cards.DeleteFn = func(_ context.Context, callerID, _ uuid.UUID) error {
		if callerID != owner {
			return service.ErrNotOwned
		}
		return nil
	}

	rr := ts.do(t, http.MethodGet, "/flashcards/"+card.ID.String(), uuid.New(), "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Paris", decodeBody[api.FlashcardResponse](t, rr).Back)

	rr = ts.do(t, http.MethodGet, "/flashcards/"+uuid.NewString(), owner, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Flashcard not found", decodeError(t, rr).Error)

	rr = ts.do(t, http.MethodPut, "/flashcards/"+card.ID.String(), owner, `{"front":"Spain","back":"Madrid"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Madrid", decodeBody[api.FlashcardResponse](t, rr).Back)

	rr = ts.do(t, http.MethodPut, "/flashcards/"+card.ID.String(), uuid.New(), `{"front":"x","back":"y"}`)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	assert.Equal(t, http.StatusForbidden, ts.do(t, http.MethodDelete, "/flashcards/"+card.ID.String(), uuid.New(), "").Code)
	assert.Equal(t, http.StatusNoContent, ts.do(t, http.MethodDelete, "/flashcards/"+card.ID.String(), owner, "").Code)
}

func TestFlashcardHandler_ListBySet(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	alice, bob := uuid.New(), uuid.New()
	set := setView(alice, "Shared", 2)
	ts.cards.ListBySetFn = func(_ context.Context, setID uuid.UUID) ([]*domain.FlashcardView, error) {
		if setID != set.ID {
			return nil, service.NewServiceError("list_by_set", "failed", store.ErrFlashcardSetNotFound)
		}
		return []*domain.FlashcardView{
			cardView(alice, set, "first", "1"),
			cardView(bob, set, "second", "2"),
		}, nil
	}

	rr := ts.do(t, http.MethodGet, "/flashcard-list/"+set.ID.String(), bob, "")
	require.Equal(t, http.StatusOK, rr.Code)
	got := decodeBody[[]api.FlashcardResponse](t, rr)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Front)
	assert.Equal(t, bob, got[1].Owner)

	rr = ts.do(t, http.MethodGet, "/flashcard-list/"+uuid.NewString(), bob, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Flashcard set not found", decodeError(t, rr).Error)

	rr = ts.do(t, http.MethodGet, "/flashcard-list/1", bob, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestFlashcardHandler_LearningList(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	set := setView(owner, "Capitals", 3)
	cards := []*domain.FlashcardView{
		cardView(owner, set, "a", "1"),
		cardView(owner, set, "b", "2"),
		cardView(owner, set, "c", "3"),
	}

	t.Run("seed and limit are passed through", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t)
		ts.cards.LearningListFn = func(_ context.Context, setID uuid.UUID, opts service.LearningOptions) (*service.LearningSession, error) {
			assert.Equal(t, set.ID, setID)
			require.NotNil(t, opts.Seed)
			assert.Equal(t, int64(-7), *opts.Seed)
			assert.Equal(t, 2, opts.Limit)
			return &service.LearningSession{Seed: *opts.Seed, Cards: []*domain.FlashcardView{cards[2], cards[0]}}, nil
		}

		rr := ts.do(t, http.MethodGet, "/flashcard-learning-list/"+set.ID.String()+"?seed=-7&limit=2", owner, "")

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, "-7", rr.Header().Get(api.LearningSeedHeader))
		got := decodeBody[[]api.FlashcardResponse](t, rr)
		require.Len(t, got, 2)
		assert.Equal(t, "c", got[0].Front)
	})

	t.Run("seed reported when chosen by the service", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t)
		ts.cards.LearningListFn = func(_ context.Context, _ uuid.UUID, opts service.LearningOptions) (*service.LearningSession, error) {
			assert.Nil(t, opts.Seed)
			assert.Zero(t, opts.Limit)
			return &service.LearningSession{Seed: 123456789, Cards: cards}, nil
		}

		rr := ts.do(t, http.MethodGet, "/flashcard-learning-list/"+set.ID.String(), uuid.New(), "")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, strconv.Itoa(123456789), rr.Header().Get(api.LearningSeedHeader))
		assert.Len(t, decodeBody[[]api.FlashcardResponse](t, rr), 3)
	})

	t.Run("bad query parameters", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t)

		for _, query := range []string{"?seed=abc", "?limit=ten", "?limit=-1"} {
			rr := ts.do(t, http.MethodGet, "/flashcard-learning-list/"+set.ID.String()+query, owner, "")
			assert.Equal(t, http.StatusBadRequest, rr.Code, query)
			assert.Equal(t, "Validation failed", decodeError(t, rr).Error, query)
		}
	})

	t.Run("unknown set", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t)
		ts.cards.LearningListFn = func(context.Context, uuid.UUID, service.LearningOptions) (*service.LearningSession, error) {
			return nil, service.NewServiceError("list_by_set", "failed", store.ErrFlashcardSetNotFound)
		}

		rr := ts.do(t, http.MethodGet, "/flashcard-learning-list/"+uuid.NewString(), owner, "")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Empty(t, rr.Header().Get(api.LearningSeedHeader))
	})
}
