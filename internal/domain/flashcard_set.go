package domain

import (
	"time"

	"github.com/google/uuid"
)

// FlashcardSet is a named collection of flashcards belonging to one user.
// Created is assigned once and never changes.
type FlashcardSet struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name" validate:"notblank,max=255"`
	OwnerID   uuid.UUID `json:"owner"`
	Created   time.Time `json:"created"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewFlashcardSet creates a validated set owned by ownerID.
func NewFlashcardSet(ownerID uuid.UUID, name string) (*FlashcardSet, error) {
	ts := now()
	set := &FlashcardSet{
		ID:        uuid.New(),
		Name:      name,
		OwnerID:   ownerID,
		Created:   ts,
		UpdatedAt: ts,
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}

	return set, nil
}

// Validate runs full validation on the text fields. Owner existence is a
// referential-integrity concern and is enforced by the store.
func (s *FlashcardSet) Validate() error {
	if verr := validateStruct(s); verr != nil {
		return verr
	}
	return nil
}

// Rename changes the set name. The set is left untouched when the new name
// is invalid.
func (s *FlashcardSet) Rename(name string) error {
	previous := s.Name
	s.Name = name

	if err := s.Validate(); err != nil {
		s.Name = previous
		return err
	}

	s.UpdatedAt = now()
	return nil
}

func (s *FlashcardSet) String() string {
	return s.Name
}

// FlashcardSetView is a set together with attributes derived at query time.
type FlashcardSetView struct {
	FlashcardSet
	OwnerName     string `json:"owner_name"`
	NumFlashcards int    `json:"num_flashcards"`
}
