// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/devdesk/devdesk/internal/logger"
	"github.com/devdesk/devdesk/models"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup, OTP consumption and refresh token
// bookkeeping against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// scanUser reads a full user row in the canonical column order shared by
// every query in sql_queries.go.
func scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.IsVerified,
		&user.OTP,
		&user.OTPExpiresAt,
		&user.RefreshToken,
		&user.CreatedAt,
	)
	return user, err
}

// CreateUser persists a new unverified user record and returns the fully
// populated [models.User] with server-assigned fields.
//
// The id is generated here (UUID) so the INSERT stays a single round trip
// with a RETURNING clause.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	row := r.db.QueryRowContext(ctx, createUser, user.ID, user.Name, user.Email, user.PasswordHash, user.OTP, user.OTPExpiresAt)

	created, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: user insert failed")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// FindUserByEmail retrieves a user record by normalized email address.
//
// Error handling:
//   - sql.ErrNoRows → [ErrNoUserWasFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	found, err := scanUser(r.db.QueryRowContext(ctx, findUserByEmail, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("error: user lookup failed")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// FindUserByID retrieves a user record by id. Error handling mirrors
// [userRepository.FindUserByEmail].
func (r *userRepository) FindUserByID(ctx context.Context, userID string) (models.User, error) {
	log := logger.FromContext(ctx)

	found, err := scanUser(r.db.QueryRowContext(ctx, findUserByID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByID").Msg("error: user lookup failed")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// SetOTP stores the pending verification code and its expiry as a pair.
func (r *userRepository) SetOTP(ctx context.Context, userID, code string, expiresAt time.Time) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, setOTP, userID, code, expiresAt)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.SetOTP").Msg("error: otp update failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// ConsumeOTP performs the whole verification check in one conditional
// UPDATE: the stored code must equal the presented one and must not be
// expired at the supplied instant. On success the account is marked
// verified and both OTP columns are cleared atomically.
//
// A wrong code, a missing code, and an expired code all surface as the
// same [ErrOTPInvalidOrExpired].
func (r *userRepository) ConsumeOTP(ctx context.Context, email, code string, now time.Time) (models.User, error) {
	log := logger.FromContext(ctx)

	verified, err := scanUser(r.db.QueryRowContext(ctx, consumeOTP, email, code, now))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrOTPInvalidOrExpired
		}
		log.Err(err).Str("func", "*userRepository.ConsumeOTP").Msg("error: otp consume failed")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return verified, nil
}

// SetRefreshToken unconditionally overwrites the stored refresh token.
// A nil token revokes the session.
func (r *userRepository) SetRefreshToken(ctx context.Context, userID string, token *string) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, setRefreshToken, userID, token)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.SetRefreshToken").Msg("error: refresh token update failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// RotateRefreshToken swaps the stored refresh token for a new one, but
// only if the stored value still equals oldToken. Zero affected rows means
// the presented token was already superseded (concurrent refresh, logout,
// or theft of an old token) and maps to [ErrRefreshTokenMismatch].
func (r *userRepository) RotateRefreshToken(ctx context.Context, userID, oldToken, newToken string) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, rotateRefreshToken, userID, oldToken, newToken)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.RotateRefreshToken").Msg("error: refresh token rotation failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrRefreshTokenMismatch
	}

	return nil
}

// ClearRefreshTokenByValue revokes whichever session holds the given
// refresh token value. Logout calls this without knowing the user id;
// matching nothing is fine.
func (r *userRepository) ClearRefreshTokenByValue(ctx context.Context, token string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, clearRefreshTokenByValue, token); err != nil {
		log.Err(err).Str("func", "*userRepository.ClearRefreshTokenByValue").Msg("error: refresh token clear failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// UpdateProfile builds a partial UPDATE with squirrel from the provided
// fields and returns the updated record.
func (r *userRepository) UpdateProfile(ctx context.Context, userID string, name, passwordHash *string) (models.User, error) {
	log := logger.FromContext(ctx)

	builder := sq.Update("users").
		PlaceholderFormat(sq.Dollar).
		Where(sq.Eq{"id": userID}).
		Suffix("RETURNING id, name, email, password_hash, is_verified, otp, otp_expires_at, refresh_token, created_at")

	hasChanges := false
	if name != nil {
		builder = builder.Set("name", *name)
		hasChanges = true
	}
	if passwordHash != nil {
		builder = builder.Set("password_hash", *passwordHash)
		hasChanges = true
	}
	if !hasChanges {
		return models.User{}, ErrNoFieldsToUpdate
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateProfile").Msg("error: building update query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.UpdateProfile").Msg("error: profile update failed")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return updated, nil
}

// DeleteUser removes the account and everything it owns in one
// transaction: tasks first, then projects, then the user row. The schema
// also declares ON DELETE CASCADE, so the explicit deletes double as
// protection against schema drift.
func (r *userRepository) DeleteUser(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error: beginning transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for _, query := range []string{deleteTasksOwnedBy, deleteProjectsOwnedBy} {
		if _, err = tx.ExecContext(ctx, query, userID); err != nil {
			log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error: cascade delete failed")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	res, err := tx.ExecContext(ctx, deleteUserByID, userID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error: user delete failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error: committing transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// ClearExpiredOTPs sweeps away every OTP whose expiry instant has passed.
func (r *userRepository) ClearExpiredOTPs(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, clearExpiredOTPs, now)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ClearExpiredOTPs").Msg("error: otp sweep failed")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}
