package store

import (
	"context"
	"time"

	"github.com/devdesk/devdesk/models"
)

// UserRepository is the credential store: the single authority over user
// records, their verification state, and the currently valid refresh token.
type UserRepository interface {
	// CreateUser persists a new unverified user and returns the stored
	// record with server-assigned fields. Fails with
	// [ErrEmailAlreadyExists] on a duplicate email.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail looks a user up by normalized email.
	// Fails with [ErrNoUserWasFound] when absent.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID looks a user up by id.
	// Fails with [ErrNoUserWasFound] when absent.
	FindUserByID(ctx context.Context, userID string) (models.User, error)

	// SetOTP stores a pending verification code and its expiry instant.
	// Both columns are written together so they are always present or
	// absent as a pair.
	SetOTP(ctx context.Context, userID, code string, expiresAt time.Time) error

	// ConsumeOTP marks the user verified and clears the OTP columns in a
	// single conditional update: the code must match and must not be
	// expired at the given instant. Fails with [ErrOTPInvalidOrExpired]
	// otherwise, and returns the verified user on success.
	ConsumeOTP(ctx context.Context, email, code string, now time.Time) (models.User, error)

	// SetRefreshToken unconditionally overwrites the stored refresh token
	// value. Pass nil to revoke the session entirely.
	SetRefreshToken(ctx context.Context, userID string, token *string) error

	// RotateRefreshToken replaces the stored refresh token only when the
	// currently stored value equals oldToken (compare-and-swap). A
	// concurrent rotation that already replaced the value makes this fail
	// with [ErrRefreshTokenMismatch], which is the intended revocation
	// semantics, not a race to be retried.
	RotateRefreshToken(ctx context.Context, userID, oldToken, newToken string) error

	// ClearRefreshTokenByValue revokes whatever session currently holds
	// the given refresh token value. Used by logout, which carries no
	// authenticated identity. Matching zero rows is not an error.
	ClearRefreshTokenByValue(ctx context.Context, token string) error

	// UpdateProfile applies a partial update (name and/or password hash)
	// and returns the updated record. Fails with [ErrNoFieldsToUpdate]
	// when the update is empty and [ErrNoUserWasFound] when the user is
	// gone.
	UpdateProfile(ctx context.Context, userID string, name, passwordHash *string) (models.User, error)

	// DeleteUser removes the user together with every project and task the
	// user owns, in one transaction.
	DeleteUser(ctx context.Context, userID string) error

	// ClearExpiredOTPs clears OTP columns whose expiry instant lies before
	// now and returns the number of affected accounts. Used by the cleanup
	// worker.
	ClearExpiredOTPs(ctx context.Context, now time.Time) (int64, error)
}

// ProjectRepository covers the slice of project/task persistence the auth
// subsystem needs: creating owned records (fixtures, collaborator boundary)
// and counting them to observe cascade deletion.
type ProjectRepository interface {
	CreateProject(ctx context.Context, project models.Project) (models.Project, error)
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)
	CountOwnedBy(ctx context.Context, userID string) (projects int64, tasks int64, err error)
}
