// Package domain defines users, flashcard sets and flashcards together with
// their validation rules and the read models that carry query-time derived
// attributes (owner name, set name, flashcard count).
//
// Validate is the full validation pass. Persisting an entity never validates
// it implicitly; the services call Validate (directly or through the New*
// constructors) before every write.
package domain
