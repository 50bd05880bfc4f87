package service

import "errors"

var (
	// ErrInvalidDataProvided is returned when a request is missing required
	// fields (empty email, empty password, and so on).
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is returned on login when the user does not
	// exist or the password does not match. The two cases share one error
	// on purpose, to prevent account enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNotVerified is returned on login when the password is correct but
	// the account's email has not been confirmed yet.
	ErrNotVerified = errors.New("account email is not verified")

	// ErrNoRefreshToken is returned by the refresh flow when no refresh
	// token was presented at all.
	ErrNoRefreshToken = errors.New("no refresh token provided")

	// ErrInvalidRefreshToken is returned by the refresh flow when the
	// presented token fails signature or expiry checks, or does not equal
	// the value currently stored for the user (revoked by rotation or
	// logout). All causes share one error; any of them ends the session.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrTokenIsExpiredOrInvalid is returned when an access token fails
	// verification for any reason. Callers are expected to trigger the
	// client-side refresh flow, not to inspect the cause.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrTokenCreationFailed wraps low-level JWT signing failures.
	ErrTokenCreationFailed = errors.New("token creation failed")
)
