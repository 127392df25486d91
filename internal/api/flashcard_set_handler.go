package api

import (
	"net/http"

	"github.com/phrazzld/flashcards-api/internal/api/shared"
	"github.com/phrazzld/flashcards-api/internal/service"
)

// FlashcardSetHandler serves the flashcard-sets resource.
type FlashcardSetHandler struct {
	sets service.FlashcardSetService
}

// NewFlashcardSetHandler creates a new FlashcardSetHandler.
func NewFlashcardSetHandler(sets service.FlashcardSetService) *FlashcardSetHandler {
	return &FlashcardSetHandler{sets: sets}
}

// List handles GET /flashcard-sets and returns the caller's sets.
func (h *FlashcardSetHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	views, err := h.sets.ListSets(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list flashcard sets")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, setsToResponse(views))
}

// Create handles POST /flashcard-sets.
func (h *FlashcardSetHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req FlashcardSetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	view, err := h.sets.CreateSet(r.Context(), userID, req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create flashcard set")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, setToResponse(view))
}

// Get handles GET /flashcard-sets/{id}.
func (h *FlashcardSetHandler) Get(w http.ResponseWriter, r *http.Request) {
	_, setID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	view, err := h.sets.GetSet(r.Context(), setID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve flashcard set")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, setToResponse(view))
}

// Update handles PUT /flashcard-sets/{id}.
func (h *FlashcardSetHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, setID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req FlashcardSetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	view, err := h.sets.RenameSet(r.Context(), userID, setID, req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update flashcard set")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, setToResponse(view))
}

// Delete handles DELETE /flashcard-sets/{id}. The set's flashcards are
// deleted with it.
func (h *FlashcardSetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, setID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.sets.DeleteSet(r.Context(), userID, setID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete flashcard set")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
