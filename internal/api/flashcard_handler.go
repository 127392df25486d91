package api

import (
	"net/http"
	"strconv"

	"github.com/phrazzld/flashcards-api/internal/api/shared"
	"github.com/phrazzld/flashcards-api/internal/domain"
	"github.com/phrazzld/flashcards-api/internal/service"
)

// LearningSeedHeader reports the seed a learning list was shuffled with.
// Passing it back as ?seed= reproduces the order.
const LearningSeedHeader = "X-Learning-Seed"

// FlashcardHandler serves the flashcards resource and the per-set listings.
type FlashcardHandler struct {
	cards service.FlashcardService
}

// NewFlashcardHandler creates a new FlashcardHandler.
func NewFlashcardHandler(cards service.FlashcardService) *FlashcardHandler {
	return &FlashcardHandler{cards: cards}
}

// List handles GET /flashcards. ?flashcard_set= restricts the result to one set.
func (h *FlashcardHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	setID, err := getQueryUUID(r, "flashcard_set")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	cards, err := h.cards.ListFlashcards(r.Context(), userID, setID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list flashcards")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, cardsToResponse(cards))
}

// Create handles POST /flashcards.
func (h *FlashcardHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateFlashcardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	view, err := h.cards.CreateFlashcard(r.Context(), userID, req.FlashcardSet, req.Front, req.Back)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create flashcard")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, cardToResponse(view))
}

// Get handles GET /flashcards/{id}.
func (h *FlashcardHandler) Get(w http.ResponseWriter, r *http.Request) {
	_, cardID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	view, err := h.cards.GetFlashcard(r.Context(), cardID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve flashcard")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(view))
}

// Update handles PUT /flashcards/{id}.
func (h *FlashcardHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateFlashcardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	view, err := h.cards.UpdateFlashcard(r.Context(), userID, cardID, req.Front, req.Back)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update flashcard")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(view))
}

// Delete handles DELETE /flashcards/{id}.
func (h *FlashcardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.cards.DeleteFlashcard(r.Context(), userID, cardID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete flashcard")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListBySet handles GET /flashcard-list/{flashcard_set_pk}: every card in
// the set regardless of owner, oldest first.
func (h *FlashcardHandler) ListBySet(w http.ResponseWriter, r *http.Request) {
	_, setID, ok := handleUserIDAndPathUUID(w, r, "flashcard_set_pk")
	if !ok {
		return
	}

	cards, err := h.cards.ListBySet(r.Context(), setID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list flashcards")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, cardsToResponse(cards))
}

// LearningList handles GET /flashcard-learning-list/{flashcard_set_pk}: the
// set's cards shuffled for a study session. ?seed= makes the order
// reproducible and ?limit= caps the number of cards.
func (h *FlashcardHandler) LearningList(w http.ResponseWriter, r *http.Request) {
	_, setID, ok := handleUserIDAndPathUUID(w, r, "flashcard_set_pk")
	if !ok {
		return
	}

	seed, err := getQueryInt64(r, "seed")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	limit, err := getQueryInt64(r, "limit")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	opts := service.LearningOptions{Seed: seed}
	if limit != nil {
		if *limit < 0 {
			HandleAPIError(w, r, domain.NewValidationError("limit", "must not be negative", domain.ErrValidation), "")
			return
		}
		opts.Limit = int(*limit)
	}

	session, err := h.cards.LearningList(r.Context(), setID, opts)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to prepare learning list")
		return
	}

	w.Header().Set(LearningSeedHeader, strconv.FormatInt(session.Seed, 10))
	shared.RespondWithJSON(w, r, http.StatusOK, cardsToResponse(session.Cards))
}
