package domain

import (
	"time"

	"github.com/google/uuid"
)

// Password length limits. The upper bound is bcrypt's input limit.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// User is a registered account. Users own flashcard sets and flashcards.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username" validate:"required,min=3,max=150,username"`
	Password       string    `json:"-"` // Plaintext, only present during registration/updates
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given username and plaintext password.
// The caller is responsible for hashing the password before storing the user.
func NewUser(username, password string) (*User, error) {
	ts := now()
	user := &User{
		ID:        uuid.New(),
		Username:  username,
		Password:  password,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks every field of the user and reports all failures at once.
func (u *User) Validate() error {
	verr := validateStruct(u)
	if verr == nil {
		verr = &ValidationError{Err: ErrValidation}
	}

	if u.Password != "" {
		switch n := len(u.Password); {
		case n < MinPasswordLength:
			verr.Add("password", "must be at least 8 characters long")
		case n > MaxPasswordLength:
			verr.Add("password", "must be at most 72 characters long")
		}
	} else if u.HashedPassword == "" {
		// Existing users carry only the hash.
		verr.Add("password", "cannot be empty")
	}

	if len(verr.Errors) > 0 {
		return verr
	}
	return nil
}

func (u *User) String() string {
	return u.Username
}
