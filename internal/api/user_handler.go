package api

import (
	"net/http"

	"github.com/phrazzld/flashcards-api/internal/api/shared"
	"github.com/phrazzld/flashcards-api/internal/service"
)

// UserHandler serves the my-users resource.
type UserHandler struct {
	users service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List handles GET /my-users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list users")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, usersToResponse(users))
}

// Get handles GET /my-users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.users.GetUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve user")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// Update handles PUT /my-users/{id}. Only the account owner may update it.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	callerID, userID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.UpdateUser(r.Context(), callerID, userID, service.UserUpdate{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update user")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// Delete handles DELETE /my-users/{id}. Only the account owner may delete it.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, userID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.users.DeleteUser(r.Context(), callerID, userID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete user")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
