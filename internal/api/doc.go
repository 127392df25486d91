// Package api is the HTTP adapter of the flashcards service. It decodes and
// validates requests, calls the services and maps their errors to JSON error
// responses with appropriate status codes.
//
// Routes are mounted under /api by MountRoutes: auth (register, login,
// refresh), my-users, flashcard-sets, flashcards, and the per-set
// flashcard-list and flashcard-learning-list views.
package api
