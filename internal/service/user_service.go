package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashcards-api/internal/domain"
	"github.com/phrazzld/flashcards-api/internal/platform/logger"
	"github.com/phrazzld/flashcards-api/internal/service/auth"
	"github.com/phrazzld/flashcards-api/internal/store"
)

// UserUpdate holds the fields a user may change on their own account.
// Nil fields are left unchanged.
type UserUpdate struct {
	Username *string
	Password *string
}

// UserService provides registration, authentication and account management.
type UserService interface {
	// Register creates a user with a hashed password.
	Register(ctx context.Context, username, password string) (*domain.User, error)

	// Authenticate returns the user when username and password match,
	// or ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// ListUsers returns all users ordered by username.
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// UpdateUser changes the caller's own username and/or password.
	UpdateUser(ctx context.Context, callerID, userID uuid.UUID, update UserUpdate) (*domain.User, error)

	// DeleteUser removes the caller's own account together with everything it owns.
	DeleteUser(ctx context.Context, callerID, userID uuid.UUID) error
}

type userServiceImpl struct {
	db       *sql.DB
	users    store.UserStore
	hasher   auth.PasswordHasher
	verifier auth.PasswordVerifier
	logger   *slog.Logger

	// dummyHash is compared against on unknown usernames so a failed login
	// costs the same whether or not the account exists.
	dummyHash string
}

var _ UserService = (*userServiceImpl)(nil)

// NewUserService creates a new UserService.
// It returns an error if any of the required dependencies are nil.
func NewUserService(
	db *sql.DB,
	users store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) (UserService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if hasher == nil {
		return nil, domain.NewValidationError("hasher", "cannot be nil", domain.ErrValidation)
	}
	if verifier == nil {
		return nil, domain.NewValidationError("verifier", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	dummyHash, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("failed to prepare login hash: %w", err)
	}

	return &userServiceImpl{
		db:        db,
		users:     users,
		hasher:    hasher,
		verifier:  verifier,
		logger:    logger.With(slog.String("component", "user_service")),
		dummyHash: dummyHash,
	}, nil
}

// Register implements UserService.
func (s *userServiceImpl) Register(ctx context.Context, username, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(username, password)
	if err != nil {
		log.Debug("rejected registration", slog.String("error", err.Error()))
		return nil, NewServiceError("register", "invalid user", err)
	}

	if err := s.hashPassword(user); err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, NewServiceError("register", "failed to hash password", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.users.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if store.IsDuplicateError(err) {
			log.Debug("username already taken", slog.String("username", username))
		} else {
			log.Error("failed to save user", slog.String("error", err.Error()))
		}
		return nil, NewServiceError("register", "failed to save user", err)
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return user, nil
}

// Authenticate implements UserService.
func (s *userServiceImpl) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("login for unknown username")
			_ = s.verifier.Compare(s.dummyHash, password)
			return nil, NewServiceError("authenticate", "invalid credentials", ErrInvalidCredentials)
		}
		log.Error("failed to look up user", slog.String("error", err.Error()))
		return nil, NewServiceError("authenticate", "failed to look up user", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("password mismatch", slog.String("user_id", user.ID.String()))
		return nil, NewServiceError("authenticate", "invalid credentials", ErrInvalidCredentials)
	}

	return user, nil
}

// GetUser implements UserService.
func (s *userServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, NewServiceError("get_user", "failed to retrieve user", err)
	}
	return user, nil
}

// ListUsers implements UserService.
func (s *userServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list users",
			slog.String("error", err.Error()))
		return nil, NewServiceError("list_users", "failed to list users", err)
	}
	return users, nil
}

// UpdateUser implements UserService.
func (s *userServiceImpl) UpdateUser(
	ctx context.Context,
	callerID, userID uuid.UUID,
	update UserUpdate,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var user *domain.User
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txUsers := s.users.WithTx(tx)

		existing, err := txUsers.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if existing.ID != callerID {
			return ErrNotOwned
		}

		if update.Username != nil {
			existing.Username = *update.Username
		}
		if update.Password != nil {
			existing.Password = *update.Password
			if existing.Password == "" {
				return domain.NewValidationError("password", "cannot be empty", domain.ErrValidation)
			}
		}
		if err := existing.Validate(); err != nil {
			return err
		}
		if existing.Password != "" {
			if err := s.hashPassword(existing); err != nil {
				return err
			}
		}

		existing.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
		if err := txUsers.Update(ctx, existing); err != nil {
			return err
		}
		user = existing
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotOwned) {
			log.Warn("attempt to update another user's account",
				slog.String("caller_id", callerID.String()),
				slog.String("user_id", userID.String()))
		}
		return nil, NewServiceError("update_user", "failed to update user", err)
	}

	log.Info("user updated", slog.String("user_id", userID.String()))
	return user, nil
}

// DeleteUser implements UserService.
func (s *userServiceImpl) DeleteUser(ctx context.Context, callerID, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txUsers := s.users.WithTx(tx)

		existing, err := txUsers.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if existing.ID != callerID {
			return ErrNotOwned
		}
		return txUsers.Delete(ctx, userID)
	})
	if err != nil {
		return NewServiceError("delete_user", "failed to delete user", err)
	}

	log.Info("user deleted", slog.String("user_id", userID.String()))
	return nil
}

// hashPassword replaces the plaintext password with its hash.
func (s *userServiceImpl) hashPassword(user *domain.User) error {
	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		return err
	}
	user.HashedPassword = hashed
	user.Password = ""
	return nil
}
