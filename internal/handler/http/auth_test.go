// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/devdesk/devdesk/internal/config"
	"github.com/devdesk/devdesk/internal/logger"
	"github.com/devdesk/devdesk/internal/service"
	"github.com/devdesk/devdesk/internal/store"
	"github.com/devdesk/devdesk/internal/utils"
	"github.com/devdesk/devdesk/internal/validators"
	"github.com/devdesk/devdesk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerFn         func(ctx context.Context, name, email, password string) (service.RegisterResult, error)
	verifyFn           func(ctx context.Context, email, otp string) (models.User, models.TokenPair, error)
	loginFn            func(ctx context.Context, email, password string) (models.User, models.TokenPair, error)
	refreshFn          func(ctx context.Context, refreshToken string) (models.TokenPair, error)
	logoutFn           func(ctx context.Context, refreshToken string) error
	meFn               func(ctx context.Context, userID string) (models.User, error)
	updateProfileFn    func(ctx context.Context, userID string, update models.ProfileUpdate) (models.User, error)
	deleteAccountFn    func(ctx context.Context, userID string) error
	parseAccessTokenFn func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) Register(ctx context.Context, name, email, password string) (service.RegisterResult, error) {
	return m.registerFn(ctx, name, email, password)
}

func (m *mockAuthService) Verify(ctx context.Context, email, otp string) (models.User, models.TokenPair, error) {
	return m.verifyFn(ctx, email, otp)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (models.User, models.TokenPair, error) {
	return m.loginFn(ctx, email, password)
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	return m.refreshFn(ctx, refreshToken)
}

func (m *mockAuthService) Logout(ctx context.Context, refreshToken string) error {
	return m.logoutFn(ctx, refreshToken)
}

func (m *mockAuthService) Me(ctx context.Context, userID string) (models.User, error) {
	return m.meFn(ctx, userID)
}

func (m *mockAuthService) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (models.User, error) {
	return m.updateProfileFn(ctx, userID, update)
}

func (m *mockAuthService) DeleteAccount(ctx context.Context, userID string) error {
	return m.deleteAccountFn(ctx, userID)
}

func (m *mockAuthService) ParseAccessToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseAccessTokenFn(ctx, tokenString)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newHandlerWithAuth builds a Handler with the given AuthService mock.
func newHandlerWithAuth(t *testing.T, auth service.AuthService) *Handler {
	t.Helper()
	svcs := &service.Services{AuthService: auth}
	app := config.App{
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 168 * time.Hour,
		Environment:          config.EnvDevelopment,
	}
	return NewHandler(svcs, app, nil, logger.Nop())
}

// jsonBody serialises v to a JSON request body string.
func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// stubPair returns a TokenPair with the given signed strings.
func stubPair(access, refresh string) models.TokenPair {
	return models.TokenPair{
		Access:  models.Token{SignedString: access},
		Refresh: models.Token{SignedString: refresh},
	}
}

// cookieByName extracts a Set-Cookie value from the recorded response.
func cookieByName(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// withUserID places a user ID into the request context the way the
// session middleware does.
func withUserID(r *http.Request, userID string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), utils.UserIDCtxKey, userID))
}

// validUser is a convenience fixture used across multiple tests.
var validUser = models.User{
	ID:         "5f1c2a9e-0000-4000-8000-000000000001",
	Name:       "Alice",
	Email:      "alice@example.com",
	IsVerified: true,
	CreatedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
}

var registerReq = models.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "Abcd1234"}
var loginReq = models.LoginRequest{Email: "alice@example.com", Password: "Abcd1234"}

// ─────────────────────────────────────────────
// register
// ─────────────────────────────────────────────

// TestRegister_Success verifies that a valid registration request results
// in 201 Created with the dispatch flag set and no session cookies.
func TestRegister_Success(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, name, email, _ string) (service.RegisterResult, error) {
			return service.RegisterResult{User: validUser, EmailDispatched: true}, nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(jsonBody(t, registerReq)))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.RegisterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.EmailDispatched)
	assert.Empty(t, rec.Result().Cookies(), "registration must not open a session")
}

// TestRegister_EmailDispatchFailed verifies that a dispatch failure still
// yields 201 but reports email_dispatched=false.
func TestRegister_EmailDispatchFailed(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, _, _, _ string) (service.RegisterResult, error) {
			return service.RegisterResult{User: validUser, EmailDispatched: false}, nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(jsonBody(t, registerReq)))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.RegisterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.EmailDispatched)
}

// TestRegister_InvalidJSON verifies that a malformed request body results
// in 400 Bad Request.
func TestRegister_InvalidJSON(t *testing.T) {
	h := newHandlerWithAuth(t, &mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{invalid json}"))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid JSON was passed")
}

// TestRegister_WeakPassword verifies that validators.ErrWeakPassword maps
// to 400 Bad Request.
func TestRegister_WeakPassword(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, _, _, _ string) (service.RegisterResult, error) {
			return service.RegisterResult{}, validators.ErrWeakPassword
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(jsonBody(t, registerReq)))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestRegister_EmailAlreadyExists verifies that store.ErrEmailAlreadyExists
// maps to 409 Conflict.
func TestRegister_EmailAlreadyExists(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, _, _, _ string) (service.RegisterResult, error) {
			return service.RegisterResult{}, store.ErrEmailAlreadyExists
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(jsonBody(t, registerReq)))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "email already exists")
}

// TestRegister_UnexpectedError verifies that an unknown error maps to
// 500 Internal Server Error.
func TestRegister_UnexpectedError(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, _, _, _ string) (service.RegisterResult, error) {
			return service.RegisterResult{}, errors.New("db connection lost")
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(jsonBody(t, registerReq)))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// ─────────────────────────────────────────────
// verify
// ─────────────────────────────────────────────

// TestVerify_Success verifies that a correct code yields 200 OK, the
// user summary, and both session cookies.
func TestVerify_Success(t *testing.T) {
	auth := &mockAuthService{
		verifyFn: func(_ context.Context, email, otp string) (models.User, models.TokenPair, error) {
			return validUser, stubPair("acc.jwt", "ref.jwt"), nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	body := jsonBody(t, models.VerifyRequest{Email: "alice@example.com", OTP: "123456"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/verify", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.verify(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	access := cookieByName(t, rec, AccessTokenCookie)
	refresh := cookieByName(t, rec, RefreshTokenCookie)
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	assert.Equal(t, "acc.jwt", access.Value)
	assert.Equal(t, "ref.jwt", refresh.Value)
	assert.True(t, access.HttpOnly)
	assert.True(t, refresh.HttpOnly)

	var resp models.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, validUser.ID, resp.User.ID)
}

// TestVerify_InvalidOTP verifies that store.ErrOTPInvalidOrExpired maps
// to 400 Bad Request without cookies.
func TestVerify_InvalidOTP(t *testing.T) {
	auth := &mockAuthService{
		verifyFn: func(_ context.Context, _, _ string) (models.User, models.TokenPair, error) {
			return models.User{}, models.TokenPair{}, store.ErrOTPInvalidOrExpired
		},
	}

	h := newHandlerWithAuth(t, auth)
	body := jsonBody(t, models.VerifyRequest{Email: "alice@example.com", OTP: "000000"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/verify", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.verify(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

// TestVerify_UserNotFound verifies that store.ErrNoUserWasFound maps to
// 404 Not Found.
func TestVerify_UserNotFound(t *testing.T) {
	auth := &mockAuthService{
		verifyFn: func(_ context.Context, _, _ string) (models.User, models.TokenPair, error) {
			return models.User{}, models.TokenPair{}, store.ErrNoUserWasFound
		},
	}

	h := newHandlerWithAuth(t, auth)
	body := jsonBody(t, models.VerifyRequest{Email: "ghost@example.com", OTP: "123456"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/verify", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.verify(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

// TestLogin_Success verifies that a valid login yields 200 OK, the user
// summary, and both session cookies.
func TestLogin_Success(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, _, _ string) (models.User, models.TokenPair, error) {
			return validUser, stubPair("acc.jwt", "ref.jwt"), nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(jsonBody(t, loginReq)))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, cookieByName(t, rec, AccessTokenCookie))
	require.NotNil(t, cookieByName(t, rec, RefreshTokenCookie))

	var resp models.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, validUser.Email, resp.User.Email)
}

// TestLogin_InvalidCredentials verifies that service.ErrInvalidCredentials
// maps to 401 with the same message regardless of which factor failed.
func TestLogin_InvalidCredentials(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, _, _ string) (models.User, models.TokenPair, error) {
			return models.User{}, models.TokenPair{}, service.ErrInvalidCredentials
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(jsonBody(t, loginReq)))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid email/password")
	assert.Empty(t, rec.Result().Cookies())
}

// TestLogin_NotVerified verifies that service.ErrNotVerified maps to
// 403 Forbidden.
func TestLogin_NotVerified(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, _, _ string) (models.User, models.TokenPair, error) {
			return models.User{}, models.TokenPair{}, service.ErrNotVerified
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(jsonBody(t, loginReq)))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "not verified")
}

// TestLogin_WrappedInvalidCredentials verifies that a wrapped
// service.ErrInvalidCredentials is still matched via errors.Is.
func TestLogin_WrappedInvalidCredentials(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, _, _ string) (models.User, models.TokenPair, error) {
			return models.User{}, models.TokenPair{}, errors.Join(errors.New("outer"), service.ErrInvalidCredentials)
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(jsonBody(t, loginReq)))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ─────────────────────────────────────────────
// refresh
// ─────────────────────────────────────────────

// TestRefresh_Success verifies that a valid refresh cookie yields 200 OK
// and rotated session cookies.
func TestRefresh_Success(t *testing.T) {
	auth := &mockAuthService{
		refreshFn: func(_ context.Context, refreshToken string) (models.TokenPair, error) {
			require.Equal(t, "old.ref", refreshToken)
			return stubPair("new.acc", "new.ref"), nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: RefreshTokenCookie, Value: "old.ref"})
	rec := httptest.NewRecorder()

	h.refresh(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "new.acc", cookieByName(t, rec, AccessTokenCookie).Value)
	assert.Equal(t, "new.ref", cookieByName(t, rec, RefreshTokenCookie).Value)
}

// TestRefresh_NoCookie verifies that a missing refresh cookie yields
// 401 Unauthorized and clears both cookies.
func TestRefresh_NoCookie(t *testing.T) {
	h := newHandlerWithAuth(t, &mockAuthService{})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	rec := httptest.NewRecorder()

	h.refresh(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	access := cookieByName(t, rec, AccessTokenCookie)
	require.NotNil(t, access)
	assert.Empty(t, access.Value)
	assert.Negative(t, access.MaxAge)
}

// TestRefresh_InvalidToken verifies that a superseded or forged token
// yields 403 Forbidden and clears both cookies.
func TestRefresh_InvalidToken(t *testing.T) {
	auth := &mockAuthService{
		refreshFn: func(_ context.Context, _ string) (models.TokenPair, error) {
			return models.TokenPair{}, service.ErrInvalidRefreshToken
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: RefreshTokenCookie, Value: "superseded.ref"})
	rec := httptest.NewRecorder()

	h.refresh(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)

	refresh := cookieByName(t, rec, RefreshTokenCookie)
	require.NotNil(t, refresh)
	assert.Empty(t, refresh.Value)
	assert.Negative(t, refresh.MaxAge)
}

// ─────────────────────────────────────────────
// logout
// ─────────────────────────────────────────────

// TestLogout_Success verifies 200 OK and cleared cookies.
func TestLogout_Success(t *testing.T) {
	var revoked string
	auth := &mockAuthService{
		logoutFn: func(_ context.Context, refreshToken string) error {
			revoked = refreshToken
			return nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: RefreshTokenCookie, Value: "ref.jwt"})
	rec := httptest.NewRecorder()

	h.logout(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ref.jwt", revoked)

	access := cookieByName(t, rec, AccessTokenCookie)
	require.NotNil(t, access)
	assert.Negative(t, access.MaxAge)
}

// TestLogout_NoCookie verifies that logout succeeds even without a
// session.
func TestLogout_NoCookie(t *testing.T) {
	auth := &mockAuthService{
		logoutFn: func(_ context.Context, refreshToken string) error {
			assert.Empty(t, refreshToken)
			return nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()

	h.logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

// TestLogout_RevocationFails verifies that a store failure still yields
// 200 OK with cleared cookies.
func TestLogout_RevocationFails(t *testing.T) {
	auth := &mockAuthService{
		logoutFn: func(_ context.Context, _ string) error {
			return errors.New("db down")
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: RefreshTokenCookie, Value: "ref.jwt"})
	rec := httptest.NewRecorder()

	h.logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

// ─────────────────────────────────────────────
// me
// ─────────────────────────────────────────────

// TestMe_Success verifies 200 OK with the public summary and no secret
// fields in the payload.
func TestMe_Success(t *testing.T) {
	secret := "hash"
	u := validUser
	u.PasswordHash = secret
	u.RefreshToken = &secret

	auth := &mockAuthService{
		meFn: func(_ context.Context, userID string) (models.User, error) {
			require.Equal(t, validUser.ID, userID)
			return u, nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := withUserID(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil), validUser.ID)
	rec := httptest.NewRecorder()

	h.me(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hash")

	var resp models.UserSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, validUser.Email, resp.Email)
}

// TestMe_NoContextUserID verifies 401 when the middleware did not run.
func TestMe_NoContextUserID(t *testing.T) {
	h := newHandlerWithAuth(t, &mockAuthService{})
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()

	h.me(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// TestMe_UserNotFound verifies 404 when the account is gone.
func TestMe_UserNotFound(t *testing.T) {
	auth := &mockAuthService{
		meFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := withUserID(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil), validUser.ID)
	rec := httptest.NewRecorder()

	h.me(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// profile
// ─────────────────────────────────────────────

// TestUpdateProfile_Success verifies 200 OK on a name change.
func TestUpdateProfile_Success(t *testing.T) {
	auth := &mockAuthService{
		updateProfileFn: func(_ context.Context, userID string, update models.ProfileUpdate) (models.User, error) {
			require.NotNil(t, update.Name)
			assert.Equal(t, "Alicia", *update.Name)
			return validUser, nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	body := `{"name":"Alicia"}`
	req := withUserID(httptest.NewRequest(http.MethodPut, "/api/auth/profile", strings.NewReader(body)), validUser.ID)
	rec := httptest.NewRecorder()

	h.updateProfile(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

// TestUpdateProfile_Empty verifies that an update with no fields maps to
// 400 Bad Request.
func TestUpdateProfile_Empty(t *testing.T) {
	auth := &mockAuthService{
		updateProfileFn: func(_ context.Context, _ string, _ models.ProfileUpdate) (models.User, error) {
			return models.User{}, service.ErrInvalidDataProvided
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := withUserID(httptest.NewRequest(http.MethodPut, "/api/auth/profile", strings.NewReader(`{}`)), validUser.ID)
	rec := httptest.NewRecorder()

	h.updateProfile(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestDeleteAccount_Success verifies 200 OK and cleared cookies.
func TestDeleteAccount_Success(t *testing.T) {
	auth := &mockAuthService{
		deleteAccountFn: func(_ context.Context, userID string) error {
			require.Equal(t, validUser.ID, userID)
			return nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := withUserID(httptest.NewRequest(http.MethodDelete, "/api/auth/profile", nil), validUser.ID)
	rec := httptest.NewRecorder()

	h.deleteAccount(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	access := cookieByName(t, rec, AccessTokenCookie)
	require.NotNil(t, access)
	assert.Negative(t, access.MaxAge)
}

// TestDeleteAccount_NotFound verifies 404 when the account is already
// gone.
func TestDeleteAccount_NotFound(t *testing.T) {
	auth := &mockAuthService{
		deleteAccountFn: func(_ context.Context, _ string) error {
			return store.ErrNoUserWasFound
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := withUserID(httptest.NewRequest(http.MethodDelete, "/api/auth/profile", nil), validUser.ID)
	rec := httptest.NewRecorder()

	h.deleteAccount(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// cookie attributes
// ─────────────────────────────────────────────

// TestSessionCookies_ProductionAttributes verifies Secure + SameSite=None
// in production and SameSite=Strict without Secure in development.
func TestSessionCookies_ProductionAttributes(t *testing.T) {
	svcs := &service.Services{}
	prod := NewHandler(svcs, config.App{Environment: config.EnvProduction}, nil, logger.Nop())
	dev := NewHandler(svcs, config.App{Environment: config.EnvDevelopment}, nil, logger.Nop())

	p := prod.sessionCookie(AccessTokenCookie, "v", 60)
	assert.True(t, p.Secure)
	assert.Equal(t, http.SameSiteNoneMode, p.SameSite)
	assert.True(t, p.HttpOnly)

	d := dev.sessionCookie(AccessTokenCookie, "v", 60)
	assert.False(t, d.Secure)
	assert.Equal(t, http.SameSiteStrictMode, d.SameSite)
	assert.True(t, d.HttpOnly)
}
