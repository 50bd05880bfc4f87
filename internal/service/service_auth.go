// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/devdesk/devdesk/internal/config"
	"github.com/devdesk/devdesk/internal/logger"
	"github.com/devdesk/devdesk/internal/mailer"
	"github.com/devdesk/devdesk/internal/store"
	"github.com/devdesk/devdesk/internal/utils"
	"github.com/devdesk/devdesk/internal/validators"
	"github.com/devdesk/devdesk/models"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor applied to every stored password hash.
const bcryptCost = 12

// otpEmailSubject is the subject line of the verification message.
const otpEmailSubject = "Your DevDesk verification code"

// authService is the concrete implementation of AuthService.
// It coordinates the credential store, the token issuer and the email
// collaborator; it owns no state beyond configuration, so it is safe for
// concurrent use.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// mailer delivers OTP verification messages.
	mailer mailer.Mailer

	// accessSignKey and refreshSignKey sign the two token kinds. The
	// refresh key may equal the access key (configured fallback); the
	// token kind claim keeps the classes apart in that case.
	accessSignKey  string
	refreshSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued token.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// accessDuration and refreshDuration control how long a newly issued
	// token of each kind remains valid.
	accessDuration  time.Duration
	refreshDuration time.Duration

	// otpDuration is the validity window of a registration OTP.
	otpDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and mail collaborator, populated with security parameters
// from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, mail mailer.Mailer, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:  userRepository,
		mailer:          mail,
		accessSignKey:   cfg.AccessKey(),
		refreshSignKey:  cfg.RefreshKey(),
		tokenIssuer:     cfg.TokenIssuer,
		accessDuration:  cfg.AccessTokenDuration,
		refreshDuration: cfg.RefreshTokenDuration,
		otpDuration:     cfg.OTPDuration,
		logger:          logger,
	}
}

// Register creates a new unverified account.
//
// The password is strength-checked before anything is persisted, then
// hashed with bcrypt. A fresh 6-digit OTP is stored together with its
// expiry and dispatched via the email collaborator. A dispatch failure is
// reported through [RegisterResult.EmailDispatched] but never rolls the
// account back: losing a valid registration over a transient mail-provider
// issue is worse than asking the user to request a resend.
//
// Returns:
//   - ErrInvalidDataProvided if name, email, or password is empty,
//     or the email is malformed.
//   - validators.ErrWeakPassword if the password fails the policy.
//   - store.ErrEmailAlreadyExists if the email is taken, regardless of the
//     existing account's verification state.
func (a *authService) Register(ctx context.Context, name, email, password string) (RegisterResult, error) {
	log := logger.FromContext(ctx)

	email = validators.NormalizeEmail(email)
	if err := validators.ValidateName(name); err != nil {
		log.Err(err).Msg("invalid registration data provided")
		return RegisterResult{}, ErrInvalidDataProvided
	}
	if err := validators.ValidateEmail(email); err != nil {
		log.Err(err).Msg("invalid registration data provided")
		return RegisterResult{}, ErrInvalidDataProvided
	}
	if err := validators.ValidatePassword(password); err != nil {
		log.Err(err).Str("email", email).Msg("weak password rejected")
		return RegisterResult{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return RegisterResult{}, fmt.Errorf("password hashing failed: %w", err)
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		log.Err(err).Msg("otp generation failed")
		return RegisterResult{}, fmt.Errorf("otp generation failed: %w", err)
	}
	expiresAt := time.Now().Add(a.otpDuration)

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		OTP:          &code,
		OTPExpiresAt: &expiresAt,
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", email).Msg("user creation ended with error")
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			return RegisterResult{}, err
		}
		return RegisterResult{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	result := RegisterResult{User: registeredUser, EmailDispatched: true}
	body := fmt.Sprintf("Hi %s,\n\nYour DevDesk verification code is %s.\nIt expires in %s.\n", name, code, a.otpDuration)
	if err = a.mailer.Send(ctx, email, otpEmailSubject, body); err != nil {
		// The account stays; the caller learns the code never arrived.
		log.Err(err).Str("email", email).Msg("otp email dispatch failed")
		result.EmailDispatched = false
	}

	return result, nil
}

// Verify consumes the OTP and opens a session for the now-verified user.
//
// Returns:
//   - ErrInvalidDataProvided if email or otp is empty.
//   - store.ErrNoUserWasFound if no account has this email.
//   - store.ErrOTPInvalidOrExpired on a wrong or expired code (the two are
//     indistinguishable by design).
func (a *authService) Verify(ctx context.Context, email, otp string) (models.User, models.TokenPair, error) {
	log := logger.FromContext(ctx)

	email = validators.NormalizeEmail(email)
	if email == "" || otp == "" {
		log.Error().Msg("invalid verification data provided")
		return models.User{}, models.TokenPair{}, ErrInvalidDataProvided
	}

	// Distinguish "no such account" from "wrong code" server-side; the
	// HTTP layer maps them to 404 and 400 respectively.
	if _, err := a.userRepository.FindUserByEmail(ctx, email); err != nil {
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, models.TokenPair{}, err
	}

	verifiedUser, err := a.userRepository.ConsumeOTP(ctx, email, otp, time.Now())
	if err != nil {
		log.Err(err).Str("email", email).Msg("otp consumption failed")
		return models.User{}, models.TokenPair{}, err
	}

	pair, err := a.openSession(ctx, verifiedUser.ID)
	if err != nil {
		return models.User{}, models.TokenPair{}, err
	}

	return verifiedUser, pair, nil
}

// Login authenticates an existing user and opens a session.
//
// Returns:
//   - ErrInvalidDataProvided if email or password is empty.
//   - ErrInvalidCredentials when the account is absent or the password
//     does not match — the same error either way, so callers cannot probe
//     which emails are registered.
//   - ErrNotVerified when the password matches but the email was never
//     confirmed. Login is blocked entirely; requesting a fresh OTP is a
//     separate concern.
func (a *authService) Login(ctx context.Context, email, password string) (models.User, models.TokenPair, error) {
	log := logger.FromContext(ctx)

	email = validators.NormalizeEmail(email)
	if email == "" || password == "" {
		log.Error().Msg("invalid login data provided")
		return models.User{}, models.TokenPair{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			// Equalize the work factor between "absent" and "wrong
			// password" so response timing does not leak account
			// existence.
			_ = bcrypt.CompareHashAndPassword([]byte("$2a$12$0000000000000000000000uGZxIO9qlXa3J4LANvFVm2gPcUXg2my"), []byte(password))
			return models.User{}, models.TokenPair{}, ErrInvalidCredentials
		}
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, models.TokenPair{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("email", email).Msg("wrong password")
		return models.User{}, models.TokenPair{}, ErrInvalidCredentials
	}

	if !foundUser.IsVerified {
		log.Warn().Str("email", email).Msg("login attempt on unverified account")
		return models.User{}, models.TokenPair{}, ErrNotVerified
	}

	pair, err := a.openSession(ctx, foundUser.ID)
	if err != nil {
		return models.User{}, models.TokenPair{}, err
	}

	return foundUser, pair, nil
}

// Refresh rotates the session bound to the presented refresh token.
//
// The token must pass signature, expiry and issuer checks AND must equal
// the value currently stored for its user. The store swap is a
// compare-and-swap, so of two concurrent refreshes with the same token
// exactly one wins; the loser gets ErrInvalidRefreshToken. That is the
// revocation model working as intended.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	if refreshToken == "" {
		return models.TokenPair{}, ErrNoRefreshToken
	}

	token, err := utils.ValidateSessionToken(refreshToken, a.refreshSignKey, a.tokenIssuer, models.TokenKindRefresh)
	if err != nil {
		log.Err(err).Msg("refresh token failed verification")
		return models.TokenPair{}, ErrInvalidRefreshToken
	}

	pair, err := a.issuePair(token.UserID)
	if err != nil {
		return models.TokenPair{}, err
	}

	if err = a.userRepository.RotateRefreshToken(ctx, token.UserID, refreshToken, pair.Refresh.SignedString); err != nil {
		log.Err(err).Str("userID", token.UserID).Msg("refresh token rotation rejected")
		if errors.Is(err, store.ErrRefreshTokenMismatch) {
			return models.TokenPair{}, ErrInvalidRefreshToken
		}
		return models.TokenPair{}, fmt.Errorf("refresh token rotation failed: %w", err)
	}

	return pair, nil
}

// Logout revokes the session holding the given refresh token. The flow
// never fails the caller over an empty or unknown token; clearing cookies
// client-side is the part that matters.
func (a *authService) Logout(ctx context.Context, refreshToken string) error {
	log := logger.FromContext(ctx)

	if refreshToken == "" {
		return nil
	}

	if err := a.userRepository.ClearRefreshTokenByValue(ctx, refreshToken); err != nil {
		log.Err(err).Msg("refresh token clear failed during logout")
		return fmt.Errorf("refresh token clear failed: %w", err)
	}

	return nil
}

// Me returns the account for an authenticated user id.
func (a *authService) Me(ctx context.Context, userID string) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Str("userID", userID).Msg("user search by id failed")
		return models.User{}, err
	}

	return user, nil
}

// UpdateProfile applies a partial profile change. A new password passes
// the same strength policy as at registration and is rehashed; the stored
// session stays valid.
func (a *authService) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if update.Name == nil && update.Password == nil {
		return models.User{}, ErrInvalidDataProvided
	}

	var passwordHash *string
	if update.Password != nil {
		if err := validators.ValidatePassword(*update.Password); err != nil {
			log.Err(err).Str("userID", userID).Msg("weak password rejected on profile update")
			return models.User{}, err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcryptCost)
		if err != nil {
			log.Err(err).Msg("password hashing failed")
			return models.User{}, fmt.Errorf("password hashing failed: %w", err)
		}
		hashStr := string(hash)
		passwordHash = &hashStr
	}

	if update.Name != nil {
		if err := validators.ValidateName(*update.Name); err != nil {
			return models.User{}, ErrInvalidDataProvided
		}
	}

	updated, err := a.userRepository.UpdateProfile(ctx, userID, update.Name, passwordHash)
	if err != nil {
		log.Err(err).Str("userID", userID).Msg("profile update failed")
		return models.User{}, err
	}

	return updated, nil
}

// DeleteAccount removes the account together with all owned projects and
// tasks. The refresh token disappears with the user row, so every
// outstanding session dies with the account.
func (a *authService) DeleteAccount(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	if err := a.userRepository.DeleteUser(ctx, userID); err != nil {
		log.Err(err).Str("userID", userID).Msg("account deletion failed")
		return err
	}

	log.Info().Str("userID", userID).Msg("account deleted")
	return nil
}

// ParseAccessToken validates and parses a raw access token string.
//
// Any validation failure (expired, wrong issuer, wrong kind, malformed) is
// normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseAccessToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateSessionToken(tokenString, a.accessSignKey, a.tokenIssuer, models.TokenKindAccess)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// issuePair creates a fresh access+refresh token pair for the user without
// touching the store.
func (a *authService) issuePair(userID string) (models.TokenPair, error) {
	access, err := utils.GenerateSessionToken(a.tokenIssuer, userID, models.TokenKindAccess, a.accessDuration, a.accessSignKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	refresh, err := utils.GenerateSessionToken(a.tokenIssuer, userID, models.TokenKindRefresh, a.refreshDuration, a.refreshSignKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return models.TokenPair{Access: access, Refresh: refresh}, nil
}

// openSession issues a token pair and stores the refresh value as the
// account's single outstanding session.
func (a *authService) openSession(ctx context.Context, userID string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	pair, err := a.issuePair(userID)
	if err != nil {
		log.Err(err).Str("userID", userID).Msg("token pair creation failed")
		return models.TokenPair{}, err
	}

	refreshValue := pair.Refresh.SignedString
	if err = a.userRepository.SetRefreshToken(ctx, userID, &refreshValue); err != nil {
		log.Err(err).Str("userID", userID).Msg("refresh token persistence failed")
		return models.TokenPair{}, fmt.Errorf("refresh token persistence failed: %w", err)
	}

	return pair, nil
}
