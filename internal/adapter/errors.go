package adapter

import "errors"

var (
	// ErrUnauthorized is returned when the server rejects the request
	// with 401 even after a successful session renewal, or when login
	// credentials are wrong.
	ErrUnauthorized = errors.New("client unauthorized")

	// ErrSessionExpired is returned when the session could not be
	// renewed: the refresh token is missing, expired, or superseded.
	// The caller must transition to the logged-out state.
	ErrSessionExpired = errors.New("session expired")

	// ErrEmailAlreadyExists is returned by Register when the email is
	// already taken.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidOTP is returned by Verify on a wrong or expired code.
	ErrInvalidOTP = errors.New("verification code is invalid or expired")

	// ErrNotVerified is returned by Login when the account's email was
	// never confirmed.
	ErrNotVerified = errors.New("account is not verified")

	// ErrNotFound is returned when the requested account does not exist.
	ErrNotFound = errors.New("not found")
)
