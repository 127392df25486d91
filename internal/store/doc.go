// Package store declares the persistence contracts for users, flashcard sets
// and flashcards, the error kinds every implementation reports, and
// RunInTransaction for multi-statement writes.
//
// Implementations live in internal/platform/sqlstore.
package store
