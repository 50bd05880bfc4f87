// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/devdesk/devdesk/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrWrongTokenKind is returned by ValidateSessionToken when a structurally
// valid token carries a "token_use" claim different from the expected kind
// (e.g. a refresh token presented where an access token is required).
var ErrWrongTokenKind = errors.New("wrong token kind")

// GenerateSessionToken creates a signed HMAC-SHA256 JWT session token of
// the given kind.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//   - token_use:       kind, either [models.TokenKindAccess] or
//     [models.TokenKindRefresh]
//
// All parameters are required. Returns an error if any of them are empty
// or zero.
func GenerateSessionToken(issuer, userID, kind string, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || userID == "" || kind == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating session token")
	}

	now := time.Now()
	claims := models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		TokenUse: kind,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing session token: %w", err)
	}

	return models.Token{Token: token, SessionClaims: claims, SignedString: tokenString, UserID: userID}, nil
}

// ValidateSessionToken validates the given JWT token string and extracts
// its claims.
//
// Validation includes:
//   - Signature verification using the provided sign key
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim check
//   - "token_use" claim match against the expected kind — this is what
//     keeps access and refresh tokens apart when both kinds fall back to a
//     shared sign key
//   - Subject (sub) claim presence
//
// Returns the decoded token model on success, [ErrWrongTokenKind] when the
// kind claim does not match, or a wrapped error on any other validation
// failure.
func ValidateSessionToken(tokenString, signKey, tokenIssuer, kind string) (models.Token, error) {
	claims := &models.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.TokenUse != kind {
		return models.Token{}, ErrWrongTokenKind
	}

	if claims.Subject == "" {
		return models.Token{}, errors.New("empty subject error")
	}

	return models.Token{Token: token, SessionClaims: *claims, SignedString: tokenString, UserID: claims.Subject}, nil
}
