package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/flashcards-api/internal/api"
	"github.com/phrazzld/flashcards-api/internal/api/shared"
	"github.com/phrazzld/flashcards-api/internal/domain"
	"github.com/phrazzld/flashcards-api/internal/service/auth"
	"github.com/stretchr/testify/require"
)

// callerHeader lets tests choose the authenticated user without real tokens.
const callerHeader = "X-Test-User"

type testServer struct {
	users *mockUserService
	sets  *mockSetService
	cards *mockCardService
	jwt   *auth.MockJWTService
	now   time.Time
	r     chi.Router
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ts := &testServer{
		users: &mockUserService{},
		sets:  &mockSetService{},
		cards: &mockCardService{},
		jwt:   auth.NewMockJWTService(uuid.New()),
		now:   time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		r:     chi.NewRouter(),
	}

	authenticate := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(callerHeader)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}
			id, err := uuid.Parse(raw)
			require.NoError(t, err)
			next.ServeHTTP(w, r.WithContext(shared.WithUserID(r.Context(), id)))
		})
	}

	api.MountRoutes(ts.r, api.Handlers{
		Auth:          api.NewAuthHandler(ts.users, ts.jwt).WithTimeFunc(func() time.Time { return ts.now }),
		Users:         api.NewUserHandler(ts.users),
		FlashcardSets: api.NewFlashcardSetHandler(ts.sets),
		Flashcards:    api.NewFlashcardHandler(ts.cards),
	}, authenticate)

	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, caller uuid.UUID, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if caller != uuid.Nil {
		req.Header.Set(callerHeader, caller.String())
	}

	rr := httptest.NewRecorder()
	ts.r.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return body
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var body T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return body
}

func setView(ownerID uuid.UUID, name string, numCards int) *domain.FlashcardSetView {
	created := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	return &domain.FlashcardSetView{
		FlashcardSet: domain.FlashcardSet{
			ID:        uuid.New(),
			Name:      name,
			OwnerID:   ownerID,
			Created:   created,
			UpdatedAt: created,
		},
		OwnerName:     "testuser",
		NumFlashcards: numCards,
	}
}

func cardView(ownerID uuid.UUID, set *domain.FlashcardSetView, front, back string) *domain.FlashcardView {
	created := time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC)
	return &domain.FlashcardView{
		Flashcard: domain.Flashcard{
			ID:             uuid.New(),
			Front:          front,
			Back:           back,
			OwnerID:        ownerID,
			FlashcardSetID: set.ID,
			CreatedAt:      created,
			UpdatedAt:      created,
		},
		OwnerName:  "testuser",
		SetName:    set.Name,
		SetCreated: set.Created,
	}
}
