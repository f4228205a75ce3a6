package domain

import "errors"

// Credential errors. Registration validation failures carry one message per
// violated rule so the caller can surface the triggering reason verbatim.
var (
	ErrUsernameTooShort     = errors.New("username must be at least 3 characters")
	ErrUsernameInvalidChars = errors.New("username cannot contain commas or spaces")
	ErrPasswordTooShort     = errors.New("password must be at least 6 characters")
	ErrUserExists           = errors.New("username already exists")
	ErrUserNotFound         = errors.New("username not found")
	ErrIncorrectPassword    = errors.New("incorrect password")
)

// Record errors shared across the three dashboard domains.
var (
	ErrIncidentNotFound = errors.New("incident not found")
	ErrDatasetNotFound  = errors.New("dataset not found")
	ErrTicketNotFound   = errors.New("ticket not found")
	ErrEmptyDescription = errors.New("description cannot be empty")
	ErrInvalidSeverity  = errors.New("invalid severity")
	ErrInvalidPriority  = errors.New("invalid priority")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrNegativeDuration = errors.New("resolution time cannot be negative")
	ErrForbidden        = errors.New("access forbidden")
)

// Advisor errors map upstream chat-completion failures to stable causes.
var (
	ErrAdvisorKeyInvalid  = errors.New("advisor API key invalid")
	ErrAdvisorRateLimited = errors.New("advisor rate limit exceeded")
	ErrAdvisorUpstream    = errors.New("advisor service unavailable")
	ErrUnknownAdviceTopic = errors.New("unknown advice topic")
)

// IsValidationError reports whether err is one of the registration shape
// violations (re-registering cannot fix uniqueness, so ErrUserExists is
// deliberately excluded).
func IsValidationError(err error) bool {
	return errors.Is(err, ErrUsernameTooShort) ||
		errors.Is(err, ErrUsernameInvalidChars) ||
		errors.Is(err, ErrPasswordTooShort)
}
