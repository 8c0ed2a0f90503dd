// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by username or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUsername is returned when attempting to create a user with a
	// username that already exists.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrDuplicateEmail is returned when attempting to create a user with an
	// email that already exists.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrEmailTaken is returned when a profile update would collide with
	// another user's email address.
	ErrEmailTaken = errors.New("email already in use")

	// ErrInvalidCredentials is returned when authentication fails.
	// A wrong username, a wrong password and a wrong one-time code all map to
	// this same value so the caller cannot tell which check failed.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidDepartment is returned when a department is not one of the
	// fixed list.
	ErrInvalidDepartment = errors.New("unknown department")

	// ErrTwoFactorNotSetUp is returned when verifying a 2FA setup for a user
	// that has no stored secret.
	ErrTwoFactorNotSetUp = errors.New("two-factor authentication not set up for this user")

	// ErrInvalidResetToken is returned when a password-reset token is unknown,
	// already consumed, or expired.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)
