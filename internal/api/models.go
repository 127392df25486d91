package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashcards-api/internal/domain"
)

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    string    `json:"expires_at,omitempty"`
}

// RefreshTokenRequest is the payload for POST /auth/refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse carries a new access/refresh token pair.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

// UpdateUserRequest changes the caller's username and/or password.
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
}

// UserResponse is the public representation of a user.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// FlashcardSetRequest is the payload for creating or renaming a set.
type FlashcardSetRequest struct {
	Name string `json:"name"`
}

// FlashcardSetResponse is a set with its derived attributes.
type FlashcardSetResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Owner         uuid.UUID `json:"owner"`
	OwnerName     string    `json:"owner_name"`
	Created       time.Time `json:"created"`
	NumFlashcards int       `json:"num_flashcards"`
}

// CreateFlashcardRequest is the payload for POST /flashcards. A missing
// flashcard_set decodes to uuid.Nil and is rejected as a dangling reference.
type CreateFlashcardRequest struct {
	Front        string    `json:"front"`
	Back         string    `json:"back"`
	FlashcardSet uuid.UUID `json:"flashcard_set"`
}

// UpdateFlashcardRequest is the payload for PUT /flashcards/{id}.
type UpdateFlashcardRequest struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// FlashcardResponse is a card with its owner and set attributes.
type FlashcardResponse struct {
	ID           uuid.UUID `json:"id"`
	Front        string    `json:"front"`
	Back         string    `json:"back"`
	Owner        uuid.UUID `json:"owner"`
	OwnerName    string    `json:"owner_name"`
	FlashcardSet uuid.UUID `json:"flashcard_set"`
	SetName      string    `json:"set_name"`
	SetCreated   time.Time `json:"set_created"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt}
}

func usersToResponse(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userToResponse(u))
	}
	return out
}

func setToResponse(v *domain.FlashcardSetView) FlashcardSetResponse {
	return FlashcardSetResponse{
		ID:            v.ID,
		Name:          v.Name,
		Owner:         v.OwnerID,
		OwnerName:     v.OwnerName,
		Created:       v.Created,
		NumFlashcards: v.NumFlashcards,
	}
}

func setsToResponse(views []*domain.FlashcardSetView) []FlashcardSetResponse {
	out := make([]FlashcardSetResponse, 0, len(views))
	for _, v := range views {
		out = append(out, setToResponse(v))
	}
	return out
}

func cardToResponse(v *domain.FlashcardView) FlashcardResponse {
	return FlashcardResponse{
		ID:           v.ID,
		Front:        v.Front,
		Back:         v.Back,
		Owner:        v.OwnerID,
		OwnerName:    v.OwnerName,
		FlashcardSet: v.FlashcardSetID,
		SetName:      v.SetName,
		SetCreated:   v.SetCreated,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func cardsToResponse(views []*domain.FlashcardView) []FlashcardResponse {
	out := make([]FlashcardResponse, 0, len(views))
	for _, v := range views {
		out = append(out, cardToResponse(v))
	}
	return out
}
