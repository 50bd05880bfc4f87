// Package validators provides input validation for the credential flows.
// Validation logic lives here, decoupled from transport and storage, so the
// same rules apply at registration and at profile update.
package validators

import (
	"net/mail"
	"strings"
	"unicode"
)

// minPasswordLength is the minimum accepted password length.
const minPasswordLength = 8

// ValidatePassword enforces the password strength policy: at least
// minPasswordLength characters, with at least one lowercase letter, one
// uppercase letter and one digit.
//
// Returns ErrWeakPassword on any violation. The check runs before hashing
// or persistence so a weak password never reaches the store.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}

	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasLower || !hasUpper || !hasDigit {
		return ErrWeakPassword
	}

	return nil
}

// ValidateEmail checks that the address parses as a single RFC 5322
// mailbox. Returns ErrInvalidEmail otherwise.
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	return nil
}

// ValidateName checks that the display name is non-blank.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	return nil
}

// NormalizeEmail lowercases and trims an email address so lookups are
// case-insensitive. Uniqueness in the store relies on addresses being
// normalized before every write and read.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
