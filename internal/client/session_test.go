package client

import (
	"context"
	"errors"
	"testing"

	"github.com/devdesk/devdesk/internal/adapter"
	"github.com/devdesk/devdesk/internal/logger"
	"github.com/devdesk/devdesk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock adapter
// ─────────────────────────────────────────────

type mockServerAdapter struct {
	RegisterFn      func(ctx context.Context, name, email, password string) (models.RegisterResponse, error)
	VerifyFn        func(ctx context.Context, email, otp string) (models.UserSummary, error)
	LoginFn         func(ctx context.Context, email, password string) (models.UserSummary, error)
	LogoutFn        func(ctx context.Context) error
	MeFn            func(ctx context.Context) (models.UserSummary, error)
	UpdateProfileFn func(ctx context.Context, update models.ProfileUpdate) error
	DeleteAccountFn func(ctx context.Context) error
}

func (m *mockServerAdapter) Register(ctx context.Context, name, email, password string) (models.RegisterResponse, error) {
	return m.RegisterFn(ctx, name, email, password)
}

func (m *mockServerAdapter) Verify(ctx context.Context, email, otp string) (models.UserSummary, error) {
	return m.VerifyFn(ctx, email, otp)
}

func (m *mockServerAdapter) Login(ctx context.Context, email, password string) (models.UserSummary, error) {
	return m.LoginFn(ctx, email, password)
}

func (m *mockServerAdapter) Logout(ctx context.Context) error {
	return m.LogoutFn(ctx)
}

func (m *mockServerAdapter) Me(ctx context.Context) (models.UserSummary, error) {
	return m.MeFn(ctx)
}

func (m *mockServerAdapter) UpdateProfile(ctx context.Context, update models.ProfileUpdate) error {
	return m.UpdateProfileFn(ctx, update)
}

func (m *mockServerAdapter) DeleteAccount(ctx context.Context) error {
	return m.DeleteAccountFn(ctx)
}

var testUser = models.UserSummary{ID: "u-1", Name: "Alice", Email: "alice@example.com", IsVerified: true}

// recordStates subscribes an observer that collects every state the
// controller passes through.
func recordStates(c *SessionController) *[]SessionState {
	var states []SessionState
	c.Subscribe(func(s Session) {
		states = append(states, s.State)
	})
	return &states
}

// ─────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────

func TestNewSessionController_StartsAnonymous(t *testing.T) {
	c := NewSessionController(&mockServerAdapter{}, logger.Nop())

	current := c.Current()

	assert.Equal(t, StateAnonymous, current.State)
	assert.Empty(t, current.User.ID)
}

func TestRestore_ExistingSession(t *testing.T) {
	a := &mockServerAdapter{
		MeFn: func(ctx context.Context) (models.UserSummary, error) {
			return testUser, nil
		},
	}
	c := NewSessionController(a, logger.Nop())
	states := recordStates(c)

	err := c.Restore(context.Background())

	require.NoError(t, err)
	assert.Equal(t, StateAuthenticated, c.Current().State)
	assert.Equal(t, testUser, c.Current().User)
	assert.Equal(t, []SessionState{StateLoading, StateAuthenticated}, *states)
}

// TestRestore_NoSessionIsNotAnError pins that an absent or expired session
// settles into anonymous without surfacing an error: at startup "not
// logged in" is a normal outcome, not a failure.
func TestRestore_NoSessionIsNotAnError(t *testing.T) {
	for _, probeErr := range []error{adapter.ErrUnauthorized, adapter.ErrSessionExpired} {
		a := &mockServerAdapter{
			MeFn: func(ctx context.Context) (models.UserSummary, error) {
				return models.UserSummary{}, probeErr
			},
		}
		c := NewSessionController(a, logger.Nop())

		err := c.Restore(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, StateAnonymous, c.Current().State)
	}
}

func TestRestore_TransportErrorPropagates(t *testing.T) {
	probeErr := errors.New("connection refused")
	a := &mockServerAdapter{
		MeFn: func(ctx context.Context) (models.UserSummary, error) {
			return models.UserSummary{}, probeErr
		},
	}
	c := NewSessionController(a, logger.Nop())

	err := c.Restore(context.Background())

	assert.ErrorIs(t, err, probeErr)
	assert.Equal(t, StateAnonymous, c.Current().State)
}

func TestRegister_DoesNotTouchSessionState(t *testing.T) {
	a := &mockServerAdapter{
		RegisterFn: func(ctx context.Context, name, email, password string) (models.RegisterResponse, error) {
			return models.RegisterResponse{Message: "check your email", EmailDispatched: true}, nil
		},
	}
	c := NewSessionController(a, logger.Nop())
	states := recordStates(c)

	out, err := c.Register(context.Background(), "Alice", "alice@example.com", "Abcd1234")

	require.NoError(t, err)
	assert.True(t, out.EmailDispatched)
	assert.Equal(t, StateAnonymous, c.Current().State)
	assert.Empty(t, *states)
}

func TestLogin_Success(t *testing.T) {
	a := &mockServerAdapter{
		LoginFn: func(ctx context.Context, email, password string) (models.UserSummary, error) {
			return testUser, nil
		},
	}
	c := NewSessionController(a, logger.Nop())
	states := recordStates(c)

	err := c.Login(context.Background(), "alice@example.com", "Abcd1234")

	require.NoError(t, err)
	assert.Equal(t, StateAuthenticated, c.Current().State)
	assert.Equal(t, []SessionState{StateLoading, StateAuthenticated}, *states)
}

func TestLogin_FailureLandsInAnonymous(t *testing.T) {
	a := &mockServerAdapter{
		LoginFn: func(ctx context.Context, email, password string) (models.UserSummary, error) {
			return models.UserSummary{}, adapter.ErrUnauthorized
		},
	}
	c := NewSessionController(a, logger.Nop())
	states := recordStates(c)

	err := c.Login(context.Background(), "alice@example.com", "Wrong1234")

	assert.ErrorIs(t, err, adapter.ErrUnauthorized)
	assert.Equal(t, StateAnonymous, c.Current().State)
	assert.Equal(t, []SessionState{StateLoading, StateAnonymous}, *states)
}

func TestCompleteLogin_OpensFirstSession(t *testing.T) {
	a := &mockServerAdapter{
		VerifyFn: func(ctx context.Context, email, otp string) (models.UserSummary, error) {
			assert.Equal(t, "123456", otp)
			return testUser, nil
		},
	}
	c := NewSessionController(a, logger.Nop())

	err := c.CompleteLogin(context.Background(), "alice@example.com", "123456")

	require.NoError(t, err)
	assert.Equal(t, StateAuthenticated, c.Current().State)
}

func TestCompleteLogin_WrongCode(t *testing.T) {
	a := &mockServerAdapter{
		VerifyFn: func(ctx context.Context, email, otp string) (models.UserSummary, error) {
			return models.UserSummary{}, adapter.ErrInvalidOTP
		},
	}
	c := NewSessionController(a, logger.Nop())

	err := c.CompleteLogin(context.Background(), "alice@example.com", "000000")

	assert.ErrorIs(t, err, adapter.ErrInvalidOTP)
	assert.Equal(t, StateAnonymous, c.Current().State)
}

// TestLogout_AlwaysClearsLocalState pins that the local session ends even
// when server-side revocation fails; the error still propagates so the
// caller can log it.
func TestLogout_AlwaysClearsLocalState(t *testing.T) {
	revocationErr := errors.New("server unreachable")
	a := &mockServerAdapter{
		LoginFn: func(ctx context.Context, email, password string) (models.UserSummary, error) {
			return testUser, nil
		},
		LogoutFn: func(ctx context.Context) error {
			return revocationErr
		},
	}
	c := NewSessionController(a, logger.Nop())
	require.NoError(t, c.Login(context.Background(), "alice@example.com", "Abcd1234"))

	err := c.Logout(context.Background())

	assert.ErrorIs(t, err, revocationErr)
	assert.Equal(t, StateAnonymous, c.Current().State)
}

func TestDeleteAccount(t *testing.T) {
	a := &mockServerAdapter{
		LoginFn: func(ctx context.Context, email, password string) (models.UserSummary, error) {
			return testUser, nil
		},
		DeleteAccountFn: func(ctx context.Context) error {
			return nil
		},
	}
	c := NewSessionController(a, logger.Nop())
	require.NoError(t, c.Login(context.Background(), "alice@example.com", "Abcd1234"))

	require.NoError(t, c.DeleteAccount(context.Background()))
	assert.Equal(t, StateAnonymous, c.Current().State)
}

func TestDeleteAccount_FailureKeepsSession(t *testing.T) {
	a := &mockServerAdapter{
		LoginFn: func(ctx context.Context, email, password string) (models.UserSummary, error) {
			return testUser, nil
		},
		DeleteAccountFn: func(ctx context.Context) error {
			return adapter.ErrSessionExpired
		},
	}
	c := NewSessionController(a, logger.Nop())
	require.NoError(t, c.Login(context.Background(), "alice@example.com", "Abcd1234"))

	err := c.DeleteAccount(context.Background())

	assert.ErrorIs(t, err, adapter.ErrSessionExpired)
	assert.Equal(t, StateAuthenticated, c.Current().State)
}

func TestUpdateProfile_RefreshesSnapshot(t *testing.T) {
	renamed := testUser
	renamed.Name = "Alicia"
	a := &mockServerAdapter{
		LoginFn: func(ctx context.Context, email, password string) (models.UserSummary, error) {
			return testUser, nil
		},
		UpdateProfileFn: func(ctx context.Context, update models.ProfileUpdate) error {
			require.NotNil(t, update.Name)
			assert.Equal(t, "Alicia", *update.Name)
			return nil
		},
		MeFn: func(ctx context.Context) (models.UserSummary, error) {
			return renamed, nil
		},
	}
	c := NewSessionController(a, logger.Nop())
	require.NoError(t, c.Login(context.Background(), "alice@example.com", "Abcd1234"))

	name := "Alicia"
	err := c.UpdateProfile(context.Background(), models.ProfileUpdate{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, "Alicia", c.Current().User.Name)
}

func TestSubscribe_MultipleObservers(t *testing.T) {
	a := &mockServerAdapter{
		LoginFn: func(ctx context.Context, email, password string) (models.UserSummary, error) {
			return testUser, nil
		},
	}
	c := NewSessionController(a, logger.Nop())

	first := recordStates(c)
	second := recordStates(c)

	require.NoError(t, c.Login(context.Background(), "alice@example.com", "Abcd1234"))

	assert.Equal(t, *first, *second)
	assert.Len(t, *first, 2)
}
