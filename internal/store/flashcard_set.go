package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/flashcards-api/internal/domain"
)

// FlashcardSetStore defines the interface for flashcard set persistence.
type FlashcardSetStore interface {
	// Create inserts the set as given. It does not run domain validation;
	// the owner reference is still enforced and a missing owner yields
	// ErrReferentialIntegrity.
	Create(ctx context.Context, set *domain.FlashcardSet) error

	// GetByID retrieves a set by ID.
	// Returns ErrFlashcardSetNotFound if the set does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FlashcardSet, error)

	// GetView retrieves a set together with owner_name and num_flashcards.
	// Returns ErrFlashcardSetNotFound if the set does not exist.
	GetView(ctx context.Context, id uuid.UUID) (*domain.FlashcardSetView, error)

	// ListViewsByOwner returns the owner's sets, oldest first, with derived
	// attributes.
	ListViewsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.FlashcardSetView, error)

	// CountFlashcards returns the live number of flashcards in the set.
	CountFlashcards(ctx context.Context, id uuid.UUID) (int, error)

	// Update writes name and updated_at. Created is never modified.
	// Returns ErrFlashcardSetNotFound if the set does not exist.
	Update(ctx context.Context, set *domain.FlashcardSet) error

	// Delete removes a set and, through ON DELETE CASCADE, its flashcards.
	// Returns ErrFlashcardSetNotFound if the set does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a FlashcardSetStore that runs its statements on tx.
	WithTx(tx *sql.Tx) FlashcardSetStore
}
