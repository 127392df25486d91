package domain

import (
	"time"

	"github.com/google/uuid"
)

// Flashcard is a front/back pair inside a FlashcardSet.
type Flashcard struct {
	ID             uuid.UUID `json:"id"`
	Front          string    `json:"front" validate:"notblank"`
	Back           string    `json:"back" validate:"notblank"`
	OwnerID        uuid.UUID `json:"owner"`
	FlashcardSetID uuid.UUID `json:"flashcard_set"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewFlashcard creates a validated flashcard. Whether setID refers to an
// existing set is only known once the card is stored.
func NewFlashcard(ownerID, setID uuid.UUID, front, back string) (*Flashcard, error) {
	ts := now()
	card := &Flashcard{
		ID:             uuid.New(),
		Front:          front,
		Back:           back,
		OwnerID:        ownerID,
		FlashcardSetID: setID,
		CreatedAt:      ts,
		UpdatedAt:      ts,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks front and back independently and reports both failures
// when both are empty.
func (c *Flashcard) Validate() error {
	if verr := validateStruct(c); verr != nil {
		return verr
	}
	return nil
}

// UpdateContent replaces front and back. The card is left untouched when
// the new content is invalid.
func (c *Flashcard) UpdateContent(front, back string) error {
	prevFront, prevBack := c.Front, c.Back
	c.Front, c.Back = front, back

	if err := c.Validate(); err != nil {
		c.Front, c.Back = prevFront, prevBack
		return err
	}

	c.UpdatedAt = now()
	return nil
}

func (c *Flashcard) String() string {
	return c.Front + " - " + c.Back
}

// FlashcardView is a card together with attributes of its owner and set.
type FlashcardView struct {
	Flashcard
	OwnerName  string    `json:"owner_name"`
	SetName    string    `json:"set_name"`
	SetCreated time.Time `json:"set_created"`
}
