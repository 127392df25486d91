package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/flashcards-api/internal/domain"
	"github.com/phrazzld/flashcards-api/internal/platform/logger"
	"github.com/phrazzld/flashcards-api/internal/store"
)

// FlashcardService provides flashcard operations and the per-set listings.
type FlashcardService interface {
	// CreateFlashcard adds a card to a set owned by ownerID.
	// An unknown set yields store.ErrReferentialIntegrity.
	CreateFlashcard(ctx context.Context, ownerID, setID uuid.UUID, front, back string) (*domain.FlashcardView, error)

	// GetFlashcard retrieves a card with its owner and set attributes.
	GetFlashcard(ctx context.Context, cardID uuid.UUID) (*domain.FlashcardView, error)

	// ListFlashcards returns the cards owned by ownerID. When setID is not
	// uuid.Nil only the caller's cards in that set are returned.
	ListFlashcards(ctx context.Context, ownerID, setID uuid.UUID) ([]*domain.FlashcardView, error)

	// UpdateFlashcard replaces front and back of a card owned by the caller.
	UpdateFlashcard(ctx context.Context, callerID, cardID uuid.UUID, front, back string) (*domain.FlashcardView, error)

	// DeleteFlashcard removes a card owned by the caller.
	DeleteFlashcard(ctx context.Context, callerID, cardID uuid.UUID) error

	// ListBySet returns every card in a set regardless of owner, oldest first.
	ListBySet(ctx context.Context, setID uuid.UUID) ([]*domain.FlashcardView, error)

	// LearningList returns the cards of a set shuffled for a study session.
	LearningList(ctx context.Context, setID uuid.UUID, opts LearningOptions) (*LearningSession, error)
}

type flashcardServiceImpl struct {
	db     *sql.DB
	sets   store.FlashcardSetStore
	cards  store.FlashcardStore
	logger *slog.Logger
}

var _ FlashcardService = (*flashcardServiceImpl)(nil)

// NewFlashcardService creates a new FlashcardService.
func NewFlashcardService(
	db *sql.DB,
	sets store.FlashcardSetStore,
	cards store.FlashcardStore,
	logger *slog.Logger,
) (FlashcardService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if sets == nil {
		return nil, domain.NewValidationError("sets", "cannot be nil", domain.ErrValidation)
	}
	if cards == nil {
		return nil, domain.NewValidationError("cards", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &flashcardServiceImpl{
		db:     db,
		sets:   sets,
		cards:  cards,
		logger: logger.With(slog.String("component", "flashcard_service")),
	}, nil
}

// CreateFlashcard implements FlashcardService.
func (s *flashcardServiceImpl) CreateFlashcard(
	ctx context.Context,
	ownerID, setID uuid.UUID,
	front, back string,
) (*domain.FlashcardView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := domain.NewFlashcard(ownerID, setID, front, back)
	if err != nil {
		return nil, NewServiceError("create_flashcard", "invalid flashcard", err)
	}

	var view *domain.FlashcardView
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		set, err := s.sets.WithTx(tx).GetByID(ctx, setID)
		if err != nil {
			if store.IsNotFoundError(err) {
				return store.NewStoreError("flashcard", "create", "flashcard set does not exist",
					store.ErrReferentialIntegrity)
			}
			return err
		}
		if set.OwnerID != ownerID {
			return ErrNotOwned
		}

		txCards := s.cards.WithTx(tx)
		if err := txCards.Create(ctx, card); err != nil {
			return err
		}
		view, err = txCards.GetView(ctx, card.ID)
		return err
	})
	if err != nil {
		log.Debug("flashcard create failed",
			slog.String("error", err.Error()),
			slog.String("set_id", setID.String()))
		return nil, NewServiceError("create_flashcard", "failed to save flashcard", err)
	}

	log.Info("flashcard created",
		slog.String("card_id", card.ID.String()),
		slog.String("set_id", setID.String()))
	return view, nil
}

// GetFlashcard implements FlashcardService.
func (s *flashcardServiceImpl) GetFlashcard(ctx context.Context, cardID uuid.UUID) (*domain.FlashcardView, error) {
	view, err := s.cards.GetView(ctx, cardID)
	if err != nil {
		return nil, NewServiceError("get_flashcard", "failed to retrieve flashcard", err)
	}
	return view, nil
}

// ListFlashcards implements FlashcardService.
func (s *flashcardServiceImpl) ListFlashcards(
	ctx context.Context,
	ownerID, setID uuid.UUID,
) ([]*domain.FlashcardView, error) {
	if setID == uuid.Nil {
		cards, err := s.cards.ListByOwner(ctx, ownerID)
		if err != nil {
			return nil, NewServiceError("list_flashcards", "failed to list flashcards", err)
		}
		return cards, nil
	}

	inSet, err := s.ListBySet(ctx, setID)
	if err != nil {
		return nil, err
	}

	cards := make([]*domain.FlashcardView, 0, len(inSet))
	for _, c := range inSet {
		if c.OwnerID == ownerID {
			cards = append(cards, c)
		}
	}
	return cards, nil
}

// UpdateFlashcard implements FlashcardService.
func (s *flashcardServiceImpl) UpdateFlashcard(
	ctx context.Context,
	callerID, cardID uuid.UUID,
	front, back string,
) (*domain.FlashcardView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var view *domain.FlashcardView
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txCards := s.cards.WithTx(tx)

		card, err := s.ownedCard(ctx, txCards, callerID, cardID)
		if err != nil {
			return err
		}
		if err := card.UpdateContent(front, back); err != nil {
			return err
		}
		if err := txCards.Update(ctx, card); err != nil {
			return err
		}
		view, err = txCards.GetView(ctx, cardID)
		return err
	})
	if err != nil {
		log.Debug("flashcard update failed",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, NewServiceError("update_flashcard", "failed to update flashcard", err)
	}

	log.Info("flashcard updated", slog.String("card_id", cardID.String()))
	return view, nil
}

// DeleteFlashcard implements FlashcardService.
func (s *flashcardServiceImpl) DeleteFlashcard(ctx context.Context, callerID, cardID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txCards := s.cards.WithTx(tx)
		if _, err := s.ownedCard(ctx, txCards, callerID, cardID); err != nil {
			return err
		}
		return txCards.Delete(ctx, cardID)
	})
	if err != nil {
		return NewServiceError("delete_flashcard", "failed to delete flashcard", err)
	}

	log.Info("flashcard deleted", slog.String("card_id", cardID.String()))
	return nil
}

// ListBySet implements FlashcardService.
func (s *flashcardServiceImpl) ListBySet(ctx context.Context, setID uuid.UUID) ([]*domain.FlashcardView, error) {
	var cards []*domain.FlashcardView
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		// The set lookup distinguishes an unknown set from an empty one.
		if _, err := s.sets.WithTx(tx).GetByID(ctx, setID); err != nil {
			return err
		}
		var err error
		cards, err = s.cards.WithTx(tx).ListBySet(ctx, setID)
		return err
	})
	if err != nil {
		return nil, NewServiceError("list_by_set", "failed to list flashcards in set", err)
	}
	return cards, nil
}

// LearningList implements FlashcardService.
func (s *flashcardServiceImpl) LearningList(
	ctx context.Context,
	setID uuid.UUID,
	opts LearningOptions,
) (*LearningSession, error) {
	if opts.Limit < 0 {
		return nil, NewServiceError("learning_list", "invalid limit",
			domain.NewValidationError("limit", "must not be negative", domain.ErrValidation))
	}

	cards, err := s.ListBySet(ctx, setID)
	if err != nil {
		return nil, err
	}

	session := newLearningSession(cards, opts)

	logger.FromContextOrDefault(ctx, s.logger).Debug("learning session prepared",
		slog.String("set_id", setID.String()),
		slog.Int("card_count", len(session.Cards)),
		slog.Int64("seed", session.Seed))
	return session, nil
}

// ownedCard loads a card and checks that callerID owns it.
func (s *flashcardServiceImpl) ownedCard(
	ctx context.Context,
	cards store.FlashcardStore,
	callerID, cardID uuid.UUID,
) (*domain.Flashcard, error) {
	card, err := cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card.OwnerID != callerID {
		logger.FromContextOrDefault(ctx, s.logger).Warn("flashcard not owned by caller",
			slog.String("card_id", cardID.String()),
			slog.String("caller_id", callerID.String()))
		return nil, ErrNotOwned
	}
	return card, nil
}
