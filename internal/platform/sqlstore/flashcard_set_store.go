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

// FlashcardSetStore implements store.FlashcardSetStore over database/sql.
type FlashcardSetStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewFlashcardSetStore creates a FlashcardSetStore. If logger is nil, a
// default logger will be used.
func NewFlashcardSetStore(db store.DBTX, logger *slog.Logger) *FlashcardSetStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &FlashcardSetStore{
		db:     db,
		logger: logger.With(slog.String("component", "flashcard_set_store")),
	}
}

var _ store.FlashcardSetStore = (*FlashcardSetStore)(nil)

// setViewQuery selects a set with its owner's username and the live card count.
const setViewQuery = `
	SELECT s.id, s.name, s.owner_id, s.created, s.updated_at,
		u.username,
		(SELECT COUNT(*) FROM flashcards f WHERE f.flashcard_set_id = s.id)
	FROM flashcard_sets s
	JOIN users u ON u.id = s.owner_id
`

// Create implements store.FlashcardSetStore.Create.
// The set is inserted as given; the database rejects an unknown owner.
func (s *FlashcardSetStore) Create(ctx context.Context, set *domain.FlashcardSet) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO flashcard_sets (id, name, owner_id, created, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`,
		set.ID,
		set.Name,
		set.OwnerID,
		set.Created,
		set.UpdatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during flashcard set creation",
				slog.String("set_id", set.ID.String()),
				slog.String("owner_id", set.OwnerID.String()))
			return store.NewStoreError("flashcard set", "create",
				"owner does not exist", store.ErrReferentialIntegrity)
		}
		log.Error("failed to create flashcard set",
			slog.String("error", err.Error()),
			slog.String("set_id", set.ID.String()))
		return store.NewStoreError("flashcard set", "create", "failed to insert flashcard set", MapError(err))
	}

	log.Info("flashcard set created",
		slog.String("set_id", set.ID.String()),
		slog.String("owner_id", set.OwnerID.String()))
	return nil
}

// GetByID implements store.FlashcardSetStore.GetByID.
func (s *FlashcardSetStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.FlashcardSet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var set domain.FlashcardSet
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, owner_id, created, updated_at
		FROM flashcard_sets
		WHERE id = $1
	`, id).Scan(
		&set.ID,
		&set.Name,
		&set.OwnerID,
		&set.Created,
		&set.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("flashcard set not found", slog.String("set_id", id.String()))
			return nil, store.ErrFlashcardSetNotFound
		}
		log.Error("failed to get flashcard set",
			slog.String("error", err.Error()),
			slog.String("set_id", id.String()))
		return nil, store.NewStoreError("flashcard set", "get", "failed to query flashcard set", MapError(err))
	}

	set.Created = set.Created.UTC()
	set.UpdatedAt = set.UpdatedAt.UTC()
	return &set, nil
}

// GetView implements store.FlashcardSetStore.GetView.
func (s *FlashcardSetStore) GetView(ctx context.Context, id uuid.UUID) (*domain.FlashcardSetView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	view, err := scanSetView(s.db.QueryRowContext(ctx, setViewQuery+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("flashcard set not found", slog.String("set_id", id.String()))
			return nil, store.ErrFlashcardSetNotFound
		}
		log.Error("failed to get flashcard set view",
			slog.String("error", err.Error()),
			slog.String("set_id", id.String()))
		return nil, store.NewStoreError("flashcard set", "get", "failed to query flashcard set", MapError(err))
	}
	return view, nil
}

// ListViewsByOwner implements store.FlashcardSetStore.ListViewsByOwner.
func (s *FlashcardSetStore) ListViewsByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.FlashcardSetView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		setViewQuery+` WHERE s.owner_id = $1 ORDER BY s.created, s.id`, ownerID)
	if err != nil {
		log.Error("failed to list flashcard sets",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, store.NewStoreError("flashcard set", "list", "failed to query flashcard sets", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	views := []*domain.FlashcardSetView{}
	for rows.Next() {
		view, err := scanSetView(rows)
		if err != nil {
			return nil, store.NewStoreError("flashcard set", "list", "failed to scan flashcard set", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("flashcard set", "list", "failed to iterate flashcard sets", err)
	}

	log.Debug("listed flashcard sets",
		slog.String("owner_id", ownerID.String()),
		slog.Int("count", len(views)))
	return views, nil
}

// CountFlashcards implements store.FlashcardSetStore.CountFlashcards.
func (s *FlashcardSetStore) CountFlashcards(ctx context.Context, id uuid.UUID) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM flashcards WHERE flashcard_set_id = $1`, id).Scan(&n)
	if err != nil {
		return 0, store.NewStoreError("flashcard set", "count", "failed to count flashcards", MapError(err))
	}
	return n, nil
}

// Update implements store.FlashcardSetStore.Update.
func (s *FlashcardSetStore) Update(ctx context.Context, set *domain.FlashcardSet) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `
		UPDATE flashcard_sets
		SET name = $1, updated_at = $2
		WHERE id = $3
	`,
		set.Name,
		set.UpdatedAt,
		set.ID,
	)
	if err != nil {
		log.Error("failed to update flashcard set",
			slog.String("error", err.Error()),
			slog.String("set_id", set.ID.String()))
		return store.NewStoreError("flashcard set", "update", "failed to update flashcard set", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrFlashcardSetNotFound); err != nil {
		return err
	}

	log.Info("flashcard set updated", slog.String("set_id", set.ID.String()))
	return nil
}

// Delete implements store.FlashcardSetStore.Delete.
func (s *FlashcardSetStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM flashcard_sets WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete flashcard set",
			slog.String("error", err.Error()),
			slog.String("set_id", id.String()))
		return store.NewStoreError("flashcard set", "delete", "failed to delete flashcard set", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrFlashcardSetNotFound); err != nil {
		return err
	}

	log.Info("flashcard set deleted", slog.String("set_id", id.String()))
	return nil
}

// WithTx implements store.FlashcardSetStore.WithTx.
func (s *FlashcardSetStore) WithTx(tx *sql.Tx) store.FlashcardSetStore {
	return &FlashcardSetStore{
		db:     tx,
		logger: s.logger,
	}
}

func scanSetView(row rowScanner) (*domain.FlashcardSetView, error) {
	var v domain.FlashcardSetView
	if err := row.Scan(
		&v.ID,
		&v.Name,
		&v.OwnerID,
		&v.Created,
		&v.UpdatedAt,
		&v.OwnerName,
		&v.NumFlashcards,
	); err != nil {
		return nil, err
	}
	v.Created = v.Created.UTC()
	v.UpdatedAt = v.UpdatedAt.UTC()
	return &v, nil
}
