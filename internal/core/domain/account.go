package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	MinUsernameLength = 3
	MinPasswordLength = 6
)

// Account models an authenticated actor in the platform.
type Account struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// NormalizeRole maps any value outside the known role set to RoleUser.
func NormalizeRole(role string) string {
	if role == RoleAdmin || role == RoleUser {
		return role
	}
	return RoleUser
}

// ValidateUsername checks the registration rules for a username.
// Lengths count characters, not bytes, so multi-byte usernames are
// measured the same way the legacy store measured them. Commas and
// spaces are rejected for compatibility with the legacy comma-delimited
// export format.
func ValidateUsername(username string) error {
	if utf8.RuneCountInString(username) < MinUsernameLength {
		return ErrUsernameTooShort
	}
	if strings.ContainsAny(username, ", ") {
		return ErrUsernameInvalidChars
	}
	return nil
}

// ValidatePassword checks the registration rules for a plaintext password.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
