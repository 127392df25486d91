package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handlers groups the API handlers mounted by MountRoutes.
type Handlers struct {
	Auth          *AuthHandler
	Users         *UserHandler
	FlashcardSets *FlashcardSetHandler
	Flashcards    *FlashcardHandler
}

// MountRoutes registers the API routes on r. Every route except the auth
// endpoints is wrapped in authenticate.
func MountRoutes(r chi.Router, h Handlers, authenticate func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
		r.Post("/refresh", h.Auth.RefreshToken)
	})

	r.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Route("/my-users", func(r chi.Router) {
			r.Get("/", h.Users.List)
			r.Get("/{id}", h.Users.Get)
			r.Put("/{id}", h.Users.Update)
			r.Delete("/{id}", h.Users.Delete)
		})

		r.Route("/flashcard-sets", func(r chi.Router) {
			r.Get("/", h.FlashcardSets.List)
			r.Post("/", h.FlashcardSets.Create)
			r.Get("/{id}", h.FlashcardSets.Get)
			r.Put("/{id}", h.FlashcardSets.Update)
			r.Delete("/{id}", h.FlashcardSets.Delete)
		})

		r.Route("/flashcards", func(r chi.Router) {
			r.Get("/", h.Flashcards.List)
			r.Post("/", h.Flashcards.Create)
			r.Get("/{id}", h.Flashcards.Get)
			r.Put("/{id}", h.Flashcards.Update)
			r.Delete("/{id}", h.Flashcards.Delete)
		})

		r.Get("/flashcard-list/{flashcard_set_pk}", h.Flashcards.ListBySet)
		r.Get("/flashcard-learning-list/{flashcard_set_pk}", h.Flashcards.LearningList)
	})
}
