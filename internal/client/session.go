// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client holds the client-side session state machine.
//
// The SessionController is the single owner of "who is logged in" on the
// client: an explicit, injectable state object replacing any notion of a
// global current user. State transitions follow
// anonymous → loading → authenticated | anonymous, and observers are
// notified of every change through Subscribe.
package client

import (
	"context"
	"errors"
	"sync"

	"github.com/devdesk/devdesk/internal/adapter"
	"github.com/devdesk/devdesk/internal/logger"
	"github.com/devdesk/devdesk/models"
)

// SessionState enumerates the controller's states.
type SessionState string

const (
	// StateAnonymous means no session: either none was ever opened or
	// the last one ended.
	StateAnonymous SessionState = "anonymous"

	// StateLoading means a session probe or login is in flight.
	StateLoading SessionState = "loading"

	// StateAuthenticated means a session is open and User is populated.
	StateAuthenticated SessionState = "authenticated"
)

// Session is the value snapshot handed to observers and returned by
// Current. User is zero unless State is [StateAuthenticated].
type Session struct {
	State SessionState
	User  models.UserSummary
}

// SessionController tracks the authenticated identity on the client. All
// methods are safe for concurrent use.
type SessionController struct {
	adapter adapter.ServerAdapter
	logger  *logger.Logger

	mu        sync.RWMutex
	session   Session
	observers []func(Session)
}

// NewSessionController constructs a controller in the anonymous state.
func NewSessionController(serverAdapter adapter.ServerAdapter, logger *logger.Logger) *SessionController {
	return &SessionController{
		adapter: serverAdapter,
		logger:  logger,
		session: Session{State: StateAnonymous},
	}
}

// Current returns a snapshot of the session.
func (c *SessionController) Current() Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// Subscribe registers an observer invoked on every state change. The
// observer is called synchronously with the new snapshot; it must not call
// back into the controller.
func (c *SessionController) Subscribe(observer func(Session)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, observer)
}

// Restore probes the server for an existing session (cookies surviving
// from a previous run) and settles into authenticated or anonymous. Called
// once on startup.
func (c *SessionController) Restore(ctx context.Context) error {
	c.transition(Session{State: StateLoading})

	user, err := c.adapter.Me(ctx)
	if err != nil {
		c.transition(Session{State: StateAnonymous})
		if errors.Is(err, adapter.ErrUnauthorized) || errors.Is(err, adapter.ErrSessionExpired) {
			return nil
		}
		return err
	}

	c.transition(Session{State: StateAuthenticated, User: user})
	return nil
}

// Register creates a new account. Registration alone opens no session, so
// the state is untouched; the flow continues with CompleteLogin once the
// emailed code arrives.
func (c *SessionController) Register(ctx context.Context, name, email, password string) (models.RegisterResponse, error) {
	return c.adapter.Register(ctx, name, email, password)
}

// Login authenticates and transitions to authenticated on success. A
// failure lands back in anonymous and propagates to the caller.
func (c *SessionController) Login(ctx context.Context, email, password string) error {
	c.transition(Session{State: StateLoading})

	user, err := c.adapter.Login(ctx, email, password)
	if err != nil {
		c.transition(Session{State: StateAnonymous})
		return err
	}

	c.transition(Session{State: StateAuthenticated, User: user})
	return nil
}

// CompleteLogin finishes registration: it verifies the emailed code, which
// also opens the first session for the account.
func (c *SessionController) CompleteLogin(ctx context.Context, email, otp string) error {
	c.transition(Session{State: StateLoading})

	user, err := c.adapter.Verify(ctx, email, otp)
	if err != nil {
		c.transition(Session{State: StateAnonymous})
		return err
	}

	c.transition(Session{State: StateAuthenticated, User: user})
	return nil
}

// Logout ends the session. Local state is cleared regardless of the server
// outcome: the local transition is the authoritative UI signal, and a
// failed revocation only means the server-side token lives until expiry.
func (c *SessionController) Logout(ctx context.Context) error {
	err := c.adapter.Logout(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("server-side logout failed, clearing local session anyway")
	}

	c.transition(Session{State: StateAnonymous})
	return err
}

// DeleteAccount removes the account and clears the local session.
func (c *SessionController) DeleteAccount(ctx context.Context) error {
	if err := c.adapter.DeleteAccount(ctx); err != nil {
		return err
	}

	c.transition(Session{State: StateAnonymous})
	return nil
}

// UpdateProfile applies a partial profile change and refreshes the cached
// user snapshot.
func (c *SessionController) UpdateProfile(ctx context.Context, update models.ProfileUpdate) error {
	if err := c.adapter.UpdateProfile(ctx, update); err != nil {
		return err
	}

	user, err := c.adapter.Me(ctx)
	if err != nil {
		return err
	}

	c.transition(Session{State: StateAuthenticated, User: user})
	return nil
}

func (c *SessionController) transition(next Session) {
	c.mu.Lock()
	c.session = next
	observers := make([]func(Session), len(c.observers))
	copy(observers, c.observers)
	c.mu.Unlock()

	for _, observer := range observers {
		observer(next)
	}
}
