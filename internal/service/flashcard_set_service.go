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

// FlashcardSetService provides flashcard set operations.
type FlashcardSetService interface {
	// CreateSet creates a set owned by ownerID.
	CreateSet(ctx context.Context, ownerID uuid.UUID, name string) (*domain.FlashcardSetView, error)

	// GetSet retrieves a set with its owner name and flashcard count.
	GetSet(ctx context.Context, setID uuid.UUID) (*domain.FlashcardSetView, error)

	// ListSets returns the sets owned by ownerID, oldest first.
	ListSets(ctx context.Context, ownerID uuid.UUID) ([]*domain.FlashcardSetView, error)

	// RenameSet changes the name of a set owned by the caller.
	RenameSet(ctx context.Context, callerID, setID uuid.UUID, name string) (*domain.FlashcardSetView, error)

	// DeleteSet removes a set owned by the caller and all of its flashcards.
	DeleteSet(ctx context.Context, callerID, setID uuid.UUID) error
}

type flashcardSetServiceImpl struct {
	db     *sql.DB
	sets   store.FlashcardSetStore
	logger *slog.Logger
}

var _ FlashcardSetService = (*flashcardSetServiceImpl)(nil)

// NewFlashcardSetService creates a new FlashcardSetService.
func NewFlashcardSetService(
	db *sql.DB,
	sets store.FlashcardSetStore,
	logger *slog.Logger,
) (FlashcardSetService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if sets == nil {
		return nil, domain.NewValidationError("sets", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &flashcardSetServiceImpl{
		db:     db,
		sets:   sets,
		logger: logger.With(slog.String("component", "flashcard_set_service")),
	}, nil
}

// CreateSet implements FlashcardSetService.
func (s *flashcardSetServiceImpl) CreateSet(
	ctx context.Context,
	ownerID uuid.UUID,
	name string,
) (*domain.FlashcardSetView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	set, err := domain.NewFlashcardSet(ownerID, name)
	if err != nil {
		return nil, NewServiceError("create_set", "invalid flashcard set", err)
	}

	var view *domain.FlashcardSetView
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txSets := s.sets.WithTx(tx)
		if err := txSets.Create(ctx, set); err != nil {
			return err
		}
		var err error
		view, err = txSets.GetView(ctx, set.ID)
		return err
	})
	if err != nil {
		log.Error("failed to create flashcard set",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, NewServiceError("create_set", "failed to save flashcard set", err)
	}

	log.Info("flashcard set created",
		slog.String("set_id", set.ID.String()),
		slog.String("owner_id", ownerID.String()))
	return view, nil
}

// GetSet implements FlashcardSetService.
func (s *flashcardSetServiceImpl) GetSet(ctx context.Context, setID uuid.UUID) (*domain.FlashcardSetView, error) {
	view, err := s.sets.GetView(ctx, setID)
	if err != nil {
		return nil, NewServiceError("get_set", "failed to retrieve flashcard set", err)
	}
	return view, nil
}

// ListSets implements FlashcardSetService.
func (s *flashcardSetServiceImpl) ListSets(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.FlashcardSetView, error) {
	views, err := s.sets.ListViewsByOwner(ctx, ownerID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list flashcard sets",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, NewServiceError("list_sets", "failed to list flashcard sets", err)
	}
	return views, nil
}

// RenameSet implements FlashcardSetService.
func (s *flashcardSetServiceImpl) RenameSet(
	ctx context.Context,
	callerID, setID uuid.UUID,
	name string,
) (*domain.FlashcardSetView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var view *domain.FlashcardSetView
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txSets := s.sets.WithTx(tx)

		set, err := s.ownedSet(ctx, txSets, callerID, setID)
		if err != nil {
			return err
		}
		if err := set.Rename(name); err != nil {
			return err
		}
		if err := txSets.Update(ctx, set); err != nil {
			return err
		}
		view, err = txSets.GetView(ctx, setID)
		return err
	})
	if err != nil {
		log.Debug("flashcard set rename failed",
			slog.String("error", err.Error()),
			slog.String("set_id", setID.String()))
		return nil, NewServiceError("rename_set", "failed to rename flashcard set", err)
	}

	log.Info("flashcard set renamed", slog.String("set_id", setID.String()))
	return view, nil
}

// DeleteSet implements FlashcardSetService.
func (s *flashcardSetServiceImpl) DeleteSet(ctx context.Context, callerID, setID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txSets := s.sets.WithTx(tx)
		if _, err := s.ownedSet(ctx, txSets, callerID, setID); err != nil {
			return err
		}
		return txSets.Delete(ctx, setID)
	})
	if err != nil {
		return NewServiceError("delete_set", "failed to delete flashcard set", err)
	}

	log.Info("flashcard set deleted", slog.String("set_id", setID.String()))
	return nil
}

// ownedSet loads a set and checks that callerID owns it.
func (s *flashcardSetServiceImpl) ownedSet(
	ctx context.Context,
	sets store.FlashcardSetStore,
	callerID, setID uuid.UUID,
) (*domain.FlashcardSet, error) {
	set, err := sets.GetByID(ctx, setID)
	if err != nil {
		return nil, err
	}
	if set.OwnerID != callerID {
		logger.FromContextOrDefault(ctx, s.logger).Warn("flashcard set not owned by caller",
			slog.String("set_id", setID.String()),
			slog.String("caller_id", callerID.String()))
		return nil, ErrNotOwned
	}
	return set, nil
}
