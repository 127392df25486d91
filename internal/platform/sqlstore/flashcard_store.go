package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/flashcards-api/internal/domain"
	"github.com/phrazzld/flashcards-api/internal/platform/logger"
	"github.com/phrazzld/flashcards-api/internal/store"
)

// FlashcardStore implements store.FlashcardStore over database/sql.
type FlashcardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewFlashcardStore creates a FlashcardStore. If logger is nil, a default
// logger will be used.
func NewFlashcardStore(db store.DBTX, logger *slog.Logger) *FlashcardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &FlashcardStore{
		db:     db,
		logger: logger.With(slog.String("component", "flashcard_store")),
	}
}

var _ store.FlashcardStore = (*FlashcardStore)(nil)

// cardViewQuery selects cards with owner and set attributes.
const cardViewQuery = `
	SELECT c.id, c.front, c.back, c.owner_id, c.flashcard_set_id, c.created_at, c.updated_at,
		u.username, s.name, s.created
	FROM flashcards c
	JOIN users u ON u.id = c.owner_id
	JOIN flashcard_sets s ON s.id = c.flashcard_set_id
`

// Create implements store.FlashcardStore.Create.
// The card is inserted as given. A missing or dangling set reference fails
// with store.ErrReferentialIntegrity even when the text fields are valid.
func (s *FlashcardStore) Create(ctx context.Context, card *domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO flashcards (id, front, back, owner_id, flashcard_set_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		card.ID,
		card.Front,
		card.Back,
		card.OwnerID,
		card.FlashcardSetID,
		card.CreatedAt,
		card.UpdatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during flashcard creation",
				slog.String("card_id", card.ID.String()),
				slog.String("owner_id", card.OwnerID.String()),
				slog.String("set_id", card.FlashcardSetID.String()))
			return store.NewStoreError("flashcard", "create",
				"owner or flashcard set does not exist", store.ErrReferentialIntegrity)
		}
		log.Error("failed to create flashcard",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return store.NewStoreError("flashcard", "create", "failed to insert flashcard", MapError(err))
	}

	log.Info("flashcard created",
		slog.String("card_id", card.ID.String()),
		slog.String("set_id", card.FlashcardSetID.String()))
	return nil
}

// GetByID implements store.FlashcardStore.GetByID.
func (s *FlashcardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var card domain.Flashcard
	err := s.db.QueryRowContext(ctx, `
		SELECT id, front, back, owner_id, flashcard_set_id, created_at, updated_at
		FROM flashcards
		WHERE id = $1
	`, id).Scan(
		&card.ID,
		&card.Front,
		&card.Back,
		&card.OwnerID,
		&card.FlashcardSetID,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("flashcard not found", slog.String("card_id", id.String()))
			return nil, store.ErrFlashcardNotFound
		}
		log.Error("failed to get flashcard",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return nil, store.NewStoreError("flashcard", "get", "failed to query flashcard", MapError(err))
	}

	card.CreatedAt = card.CreatedAt.UTC()
	card.UpdatedAt = card.UpdatedAt.UTC()
	return &card, nil
}

// GetView implements store.FlashcardStore.GetView.
func (s *FlashcardStore) GetView(ctx context.Context, id uuid.UUID) (*domain.FlashcardView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	view, err := scanCardView(s.db.QueryRowContext(ctx, cardViewQuery+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("flashcard not found", slog.String("card_id", id.String()))
			return nil, store.ErrFlashcardNotFound
		}
		log.Error("failed to get flashcard view",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return nil, store.NewStoreError("flashcard", "get", "failed to query flashcard", MapError(err))
	}
	return view, nil
}

// ListByOwner implements store.FlashcardStore.ListByOwner.
func (s *FlashcardStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.FlashcardView, error) {
	return s.list(ctx, cardViewQuery+` WHERE c.owner_id = $1 ORDER BY c.created_at, c.id`, ownerID)
}

// ListBySet implements store.FlashcardStore.ListBySet.
func (s *FlashcardStore) ListBySet(ctx context.Context, setID uuid.UUID) ([]*domain.FlashcardView, error) {
	return s.list(ctx, cardViewQuery+` WHERE c.flashcard_set_id = $1 ORDER BY c.created_at, c.id`, setID)
}

func (s *FlashcardStore) list(ctx context.Context, query string, arg uuid.UUID) ([]*domain.FlashcardView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		log.Error("failed to list flashcards",
			slog.String("error", err.Error()),
			slog.String("filter_id", arg.String()))
		return nil, store.NewStoreError("flashcard", "list", "failed to query flashcards", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	views := []*domain.FlashcardView{}
	for rows.Next() {
		view, err := scanCardView(rows)
		if err != nil {
			return nil, store.NewStoreError("flashcard", "list", "failed to scan flashcard", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("flashcard", "list", "failed to iterate flashcards", err)
	}

	return views, nil
}

// CountByOwner implements store.FlashcardStore.CountByOwner.
func (s *FlashcardStore) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM flashcards WHERE owner_id = $1`, ownerID)
}

// CountBySet implements store.FlashcardStore.CountBySet.
func (s *FlashcardStore) CountBySet(ctx context.Context, setID uuid.UUID) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM flashcards WHERE flashcard_set_id = $1`, setID)
}

func (s *FlashcardStore) count(ctx context.Context, query string, arg uuid.UUID) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, query, arg).Scan(&n); err != nil {
		return 0, store.NewStoreError("flashcard", "count", "failed to count flashcards", MapError(err))
	}
	return n, nil
}

// Update implements store.FlashcardStore.Update.
// Only front, back and updated_at are written.
func (s *FlashcardStore) Update(ctx context.Context, card *domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `
		UPDATE flashcards
		SET front = $1, back = $2, updated_at = $3
		WHERE id = $4
	`,
		card.Front,
		card.Back,
		card.UpdatedAt,
		card.ID,
	)
	if err != nil {
		log.Error("failed to update flashcard",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return store.NewStoreError("flashcard", "update", "failed to update flashcard", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrFlashcardNotFound); err != nil {
		return err
	}

	log.Info("flashcard updated", slog.String("card_id", card.ID.String()))
	return nil
}

// Delete implements store.FlashcardStore.Delete.
func (s *FlashcardStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM flashcards WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete flashcard",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return store.NewStoreError("flashcard", "delete", "failed to delete flashcard", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrFlashcardNotFound); err != nil {
		return err
	}

	log.Info("flashcard deleted", slog.String("card_id", id.String()))
	return nil
}

// WithTx implements store.FlashcardStore.WithTx.
func (s *FlashcardStore) WithTx(tx *sql.Tx) store.FlashcardStore {
	return &FlashcardStore{
		db:     tx,
		logger: s.logger,
	}
}

func scanCardView(row rowScanner) (*domain.FlashcardView, error) {
	var v domain.FlashcardView
	if err := row.Scan(
		&v.ID,
		&v.Front,
		&v.Back,
		&v.OwnerID,
		&v.FlashcardSetID,
		&v.CreatedAt,
		&v.UpdatedAt,
		&v.OwnerName,
		&v.SetName,
		&v.SetCreated,
	); err != nil {
		return nil, err
	}
	v.CreatedAt = v.CreatedAt.UTC()
	v.UpdatedAt = v.UpdatedAt.UTC()
	v.SetCreated = v.SetCreated.UTC()
	return &v, nil
}
