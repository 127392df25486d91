package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/flashcards-api/internal/domain"
)

// FlashcardStore defines the interface for flashcard persistence.
type FlashcardStore interface {
	// Create inserts the card as given, without domain validation.
	// Returns ErrReferentialIntegrity if the owner or set does not exist,
	// including when FlashcardSetID is the zero UUID.
	Create(ctx context.Context, card *domain.Flashcard) error

	// GetByID retrieves a card by ID.
	// Returns ErrFlashcardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error)

	// GetView retrieves a card with owner_name, set_name and set_created.
	// Returns ErrFlashcardNotFound if the card does not exist.
	GetView(ctx context.Context, id uuid.UUID) (*domain.FlashcardView, error)

	// ListByOwner returns every card owned by ownerID across all sets,
	// oldest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.FlashcardView, error)

	// ListBySet returns every card in the set regardless of owner, oldest
	// first.
	ListBySet(ctx context.Context, setID uuid.UUID) ([]*domain.FlashcardView, error)

	// CountByOwner returns the number of cards owned by ownerID.
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)

	// CountBySet returns the number of cards in the set.
	CountBySet(ctx context.Context, setID uuid.UUID) (int, error)

	// Update writes front, back and updated_at.
	// Returns ErrFlashcardNotFound if the card does not exist.
	Update(ctx context.Context, card *domain.Flashcard) error

	// Delete removes a card.
	// Returns ErrFlashcardNotFound if the card does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a FlashcardStore that runs its statements on tx.
	WithTx(tx *sql.Tx) FlashcardStore
}
