package validators

import "errors"

var (
	// ErrWeakPassword is returned when a candidate password does not meet
	// the minimum strength policy (length, character classes). It is
	// detected before any persistence happens.
	ErrWeakPassword = errors.New("password must be at least 8 characters and contain a lowercase letter, an uppercase letter and a digit")

	// ErrInvalidEmail is returned when an email address fails structural
	// validation.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrEmptyName is returned when a display name is empty or whitespace.
	ErrEmptyName = errors.New("name is required")
)
