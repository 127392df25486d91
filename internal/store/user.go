package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/flashcards-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create inserts a user whose HashedPassword is already set.
	// Returns ErrUsernameExists if the username is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUsername retrieves a user by username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// List returns all users ordered by username.
	List(ctx context.Context) ([]*domain.User, error)

	// Update writes username, hashed password and updated_at.
	// Returns ErrUserNotFound if the user does not exist and
	// ErrUsernameExists if the new username is taken.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user. Their sets and flashcards are removed by the
	// database through ON DELETE CASCADE.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a UserStore that runs its statements on tx.
	WithTx(tx *sql.Tx) UserStore
}
