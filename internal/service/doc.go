// Package service contains the application use cases. It orchestrates domain
// entities and the repositories defined in internal/store.
//
// Every write runs inside store.RunInTransaction and validates the entity in
// full before it reaches the store. Ownership is enforced here: only the
// owner of a flashcard set or flashcard may change or delete it, and
// flashcards can only be added to a set owned by the caller.
//
// Errors are returned as *ServiceError values wrapping sentinel errors from
// this package, internal/store and internal/domain, so callers can inspect
// them with errors.Is and errors.As.
package service
