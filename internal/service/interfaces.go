package service

import (
	"context"

	"github.com/devdesk/devdesk/models"
)

// RegisterResult reports the outcome of a registration: the created user
// and whether the OTP email actually went out. A failed dispatch does not
// fail the registration; callers surface it so the UI can offer a resend.
type RegisterResult struct {
	User            models.User
	EmailDispatched bool
}

// AuthService orchestrates the whole account lifecycle: registration with
// email verification, login, token rotation on refresh, logout, profile
// management and account deletion.
type AuthService interface {
	// Register creates an unverified account, stores a fresh OTP and
	// dispatches it via the email collaborator. No session is created.
	Register(ctx context.Context, name, email, password string) (RegisterResult, error)

	// Verify consumes the OTP, marks the account verified and opens a
	// session (token pair) in one step.
	Verify(ctx context.Context, email, otp string) (models.User, models.TokenPair, error)

	// Login authenticates by email and password and opens a session.
	Login(ctx context.Context, email, password string) (models.User, models.TokenPair, error)

	// Refresh rotates the session: both tokens are reissued and the old
	// refresh token value becomes invalid atomically.
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)

	// Logout revokes whatever session holds the given refresh token.
	// An empty or unknown token is not an error.
	Logout(ctx context.Context, refreshToken string) error

	// Me returns the account for an authenticated user id.
	Me(ctx context.Context, userID string) (models.User, error)

	// UpdateProfile applies a partial profile change (name and/or
	// password, the latter strength-checked and rehashed).
	UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (models.User, error)

	// DeleteAccount removes the account and everything it owns, and
	// revokes the session.
	DeleteAccount(ctx context.Context, userID string) error

	// ParseAccessToken verifies an access token and returns its claims.
	// Used by the session middleware on every protected request.
	ParseAccessToken(ctx context.Context, tokenString string) (models.Token, error)
}
