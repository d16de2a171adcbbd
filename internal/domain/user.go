package domain

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Password length bounds, enforced on the plaintext before hashing.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72 // bcrypt input limit
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User-specific validation errors.
var (
	ErrUserIDEmpty      = errors.New("user ID cannot be empty")
	ErrEmailEmpty       = errors.New("email cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong  = errors.New("password must be at most 72 characters")
	ErrDisplayNameEmpty = errors.New("display name cannot be empty")
)

// User is a registered learner. Password holds the plaintext only between
// construction and hashing; HashedPassword is what gets persisted.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	DisplayName    string    `json:"display_name"`
	Password       string    `json:"-"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new user with the given email, display name, and
// plaintext password. The password is validated but not hashed here.
func NewUser(email, displayName, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:          uuid.New(),
		Email:       email,
		DisplayName: displayName,
		Password:    password,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data. Password rules apply only
// while a plaintext password is present.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrUserIDEmpty
	}
	if u.Email == "" {
		return ErrEmailEmpty
	}
	if !emailRegex.MatchString(u.Email) {
		return ErrInvalidEmail
	}
	if u.DisplayName == "" {
		return ErrDisplayNameEmpty
	}
	if u.Password != "" {
		if len(u.Password) < MinPasswordLength {
			return ErrPasswordTooShort
		}
		if len(u.Password) > MaxPasswordLength {
			return ErrPasswordTooLong
		}
	}
	return nil
}
