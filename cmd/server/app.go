package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/flashcards-api/internal/config"
	"github.com/phrazzld/flashcards-api/internal/platform/sqlstore"
	"github.com/phrazzld/flashcards-api/internal/service"
	"github.com/phrazzld/flashcards-api/internal/service/auth"
)

// application holds the shared dependencies of the server and releases them
// on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService  auth.JWTService
	userService service.UserService
	setService  service.FlashcardSetService
	cardService service.FlashcardService
}

// newApplication wires stores and services on top of an open, migrated
// database connection.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	userStore := sqlstore.NewUserStore(db, logger)
	setStore := sqlstore.NewFlashcardSetStore(db, logger)
	cardStore := sqlstore.NewFlashcardStore(db, logger)

	app.userService, err = service.NewUserService(
		db,
		userStore,
		auth.NewBcryptHasher(cfg.Auth.BCryptCost),
		auth.NewBcryptVerifier(),
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.setService, err = service.NewFlashcardSetService(db, setStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create flashcard set service: %w", err)
	}

	app.cardService, err = service.NewFlashcardService(db, setStore, cardStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create flashcard service: %w", err)
	}

	logger.Info("application initialized")
	return app, nil
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("application shutdown completed")
}
