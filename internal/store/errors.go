package store

import (
	"errors"

	"github.com/lib/pq"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrUnsupported is returned by operations the schema does not allow,
// such as updating or deleting accounts and comments.
var ErrUnsupported = errors.New("operation not supported")

var (
	// ErrUsernameTaken reports a unique violation on accounts.username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEmailTaken reports a unique violation on accounts.email.
	ErrEmailTaken = errors.New("email already taken")
)

const (
	constraintAccountsUsername = "accounts_username_key"
	constraintAccountsEmail    = "accounts_email_key"
)

// translateUniqueViolation maps unique violations on known constraints to
// sentinel errors and returns every other error unchanged.
func translateUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code.Name() != "unique_violation" {
		return err
	}
	switch pqErr.Constraint {
	case constraintAccountsUsername:
		return ErrUsernameTaken
	case constraintAccountsEmail:
		return ErrEmailTaken
	default:
		return err
	}
}
