// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer for talking to the DevDesk
// server.
//
// The primary abstraction is [ServerAdapter], which decouples client-side
// session handling from the underlying protocol. The package ships an
// HTTP/REST implementation ([NewHTTPServerAdapter]) built on resty with an
// in-memory cookie jar: session tokens live in httpOnly cookies and never
// surface in client code.
//
// Every authenticated call funnels through a single send path that renews
// the session once on HTTP 401 (via POST /api/auth/refresh) and replays
// the original request. Concurrent 401s share one in-flight refresh. A
// failed renewal surfaces as [ErrSessionExpired]; a second 401 after the
// replay is returned as [ErrUnauthorized].
package adapter

import (
	"context"

	"github.com/devdesk/devdesk/models"
)

// ServerAdapter defines transport-agnostic communication with the DevDesk
// server. Implementations are responsible for serialisation, session
// cookie management, and mapping transport-level errors to the sentinel
// values defined in this package.
type ServerAdapter interface {
	// Register creates a new account. The returned response reports
	// whether the verification email went out. Returns
	// [ErrEmailAlreadyExists] when the email is taken.
	Register(ctx context.Context, name, email, password string) (models.RegisterResponse, error)

	// Verify confirms the account with the emailed code and opens a
	// session (the server sets the session cookies). Returns
	// [ErrInvalidOTP] on a wrong or expired code and [ErrNotFound] when
	// the account does not exist.
	Verify(ctx context.Context, email, otp string) (models.UserSummary, error)

	// Login authenticates and opens a session. Returns [ErrUnauthorized]
	// on bad credentials and [ErrNotVerified] when the email was never
	// confirmed.
	Login(ctx context.Context, email, password string) (models.UserSummary, error)

	// Logout revokes the session server-side and drops the local cookies.
	// It never fails over a missing session.
	Logout(ctx context.Context) error

	// Me fetches the current account. Renews the session once on 401.
	Me(ctx context.Context) (models.UserSummary, error)

	// UpdateProfile applies a partial profile change. Renews the session
	// once on 401.
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) error

	// DeleteAccount removes the account and all owned data. Renews the
	// session once on 401.
	DeleteAccount(ctx context.Context) error
}
