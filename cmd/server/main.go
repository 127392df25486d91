// Package main implements the flashcards API server. The binary serves the
// HTTP API and manages the database schema.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/flashcards-api/internal/config"
	"github.com/phrazzld/flashcards-api/internal/platform/database"
	"github.com/phrazzld/flashcards-api/internal/platform/logger"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "flashcards-api",
		Short:        "Flashcards API server",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"path to a YAML config file (default: ./config.yaml or ./config/config.yaml)")

	root.AddCommand(newServeCmd(&configPath), newMigrateCmd(&configPath), newHashPasswordCmd())
	return root
}

func newServeCmd(configPath *string) *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := initializeApp(*configPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			db, err := database.Open(ctx, cfg.Database, log)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}

			if !skipMigrations {
				if err := database.Migrate(ctx, db, cfg.Database.Driver, log); err != nil {
					_ = db.Close()
					return fmt.Errorf("failed to apply migrations: %w", err)
				}
			}

			app, err := newApplication(cfg, log, db)
			if err != nil {
				_ = db.Close()
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return app.Run(ctx)
		},
	}
	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply pending migrations on startup")
	return cmd
}

func newMigrateCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(cmd.Context(), *configPath, func(ctx context.Context, m *database.Migrator) error {
					return m.Up(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(cmd.Context(), *configPath, func(ctx context.Context, m *database.Migrator) error {
					return m.Down(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(cmd.Context(), *configPath, func(ctx context.Context, m *database.Migrator) error {
					statuses, err := m.Status(ctx)
					if err != nil {
						return err
					}
					out := cmd.OutOrStdout()
					for _, s := range statuses {
						state := "pending"
						if s.Applied {
							state = "applied"
						}
						fmt.Fprintf(out, "%-8s %5d  %s\n", state, s.Version, s.Name)
					}
					return nil
				})
			},
		},
	)
	return cmd
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp(configPath string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver))
	return cfg, log, nil
}

// withMigrator opens the configured database, runs fn with a migrator for it
// and closes the connection afterwards.
func withMigrator(
	ctx context.Context,
	configPath string,
	fn func(ctx context.Context, m *database.Migrator) error,
) error {
	cfg, log, err := initializeApp(configPath)
	if err != nil {
		return err
	}

	db, err := database.Open(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database connection", slog.String("error", err.Error()))
		}
	}()

	m, err := database.NewMigrator(db, cfg.Database.Driver, log)
	if err != nil {
		return err
	}
	return fn(ctx, m)
}
