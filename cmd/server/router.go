package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/flashcards-api/internal/api"
	apiMiddleware "github.com/phrazzld/flashcards-api/internal/api/middleware"
	"github.com/rs/cors"
)

// setupRouter creates the router with middleware, the health check and the
// API routes under /api.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(app.corsMiddleware())
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	handlers := api.Handlers{
		Auth:          api.NewAuthHandler(app.userService, app.jwtService),
		Users:         api.NewUserHandler(app.userService),
		FlashcardSets: api.NewFlashcardSetHandler(app.setService),
		Flashcards:    api.NewFlashcardHandler(app.cardService),
	}

	r.Route("/api", func(r chi.Router) {
		api.MountRoutes(r, handlers, authMiddleware.Authenticate)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}

func (app *application) corsMiddleware() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: app.config.CORS.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		ExposedHeaders:   []string{apiMiddleware.TraceHeader, api.LearningSeedHeader},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler
}
