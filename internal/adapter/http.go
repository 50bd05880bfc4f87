// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"

	"github.com/devdesk/devdesk/internal/config"
	"github.com/devdesk/devdesk/internal/logger"
	"github.com/devdesk/devdesk/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *resty.Client

	// refreshMu serialises session renewal; refreshGen counts completed
	// renewals so that concurrent 401s reuse one in-flight refresh
	// instead of stampeding the refresh endpoint.
	refreshMu  sync.Mutex
	refreshGen uint64

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// cfg.BaseURL, configures the underlying resty client with the resolved
// base URL and request timeout, and attaches an in-memory cookie jar so
// the server-set session cookies travel with every request.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a valid
// URL.
func NewHTTPServerAdapter(cfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base url: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout).
		SetCookieJar(jar)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Register implements [ServerAdapter]. It POSTs the account data to
// POST /api/auth/register and decodes the acknowledgement, which carries
// the email-dispatch outcome.
func (h *httpServerAdapter) Register(ctx context.Context, name, email, password string) (models.RegisterResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.RegisterRequest{Name: name, Email: email, Password: password}).
		Post("/api/auth/register")
	if err != nil {
		return models.RegisterResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RegisterResponse{}, err
	}

	var out models.RegisterResponse
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return models.RegisterResponse{}, fmt.Errorf("decode register response: %w", err)
	}

	return out, nil
}

// Verify implements [ServerAdapter]. It POSTs the emailed code to
// POST /api/auth/verify; on success the server sets the session cookies
// into the jar and the verified account summary is returned.
func (h *httpServerAdapter) Verify(ctx context.Context, email, otp string) (models.UserSummary, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.VerifyRequest{Email: email, OTP: otp}).
		Post("/api/auth/verify")
	if err != nil {
		return models.UserSummary{}, fmt.Errorf("verify request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserSummary{}, err
	}

	var out models.SessionResponse
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return models.UserSummary{}, fmt.Errorf("decode verify response: %w", err)
	}

	return out.User, nil
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// POST /api/auth/login; on success the server sets the session cookies
// into the jar and the account summary is returned.
func (h *httpServerAdapter) Login(ctx context.Context, email, password string) (models.UserSummary, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.LoginRequest{Email: email, Password: password}).
		Post("/api/auth/login")
	if err != nil {
		return models.UserSummary{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserSummary{}, err
	}

	var out models.SessionResponse
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return models.UserSummary{}, fmt.Errorf("decode login response: %w", err)
	}

	return out.User, nil
}

// Logout implements [ServerAdapter]. The server clears the cookies in its
// response; the jar picks the expirations up automatically.
func (h *httpServerAdapter) Logout(ctx context.Context) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Post("/api/auth/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}

	return mapHTTPError(resp)
}

// Me implements [ServerAdapter].
func (h *httpServerAdapter) Me(ctx context.Context) (models.UserSummary, error) {
	resp, err := h.sendAuthed(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.Get("/api/auth/me")
	})
	if err != nil {
		return models.UserSummary{}, err
	}

	var out models.UserSummary
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return models.UserSummary{}, fmt.Errorf("decode me response: %w", err)
	}

	return out, nil
}

// UpdateProfile implements [ServerAdapter].
func (h *httpServerAdapter) UpdateProfile(ctx context.Context, update models.ProfileUpdate) error {
	_, err := h.sendAuthed(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.
			SetHeader("Content-Type", "application/json").
			SetBody(update).
			Put("/api/auth/profile")
	})
	return err
}

// DeleteAccount implements [ServerAdapter].
func (h *httpServerAdapter) DeleteAccount(ctx context.Context) error {
	_, err := h.sendAuthed(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.Delete("/api/auth/profile")
	})
	return err
}

// sendAuthed is the single send path for authenticated calls. It sends
// the request, and on HTTP 401 renews the session exactly once and
// replays the request. The outcome of the replay is final: a second 401
// propagates as [ErrUnauthorized]; a failed renewal propagates as
// [ErrSessionExpired] instead of the original 401.
func (h *httpServerAdapter) sendAuthed(ctx context.Context, do func(*resty.Request) (*resty.Response, error)) (*resty.Response, error) {
	gen := h.currentGen()

	resp, err := do(h.client.R().SetContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		if err = h.refreshSession(ctx, gen); err != nil {
			return nil, err
		}

		resp, err = do(h.client.R().SetContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("request replay: %w", err)
		}
	}

	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp, nil
}

func (h *httpServerAdapter) currentGen() uint64 {
	h.refreshMu.Lock()
	defer h.refreshMu.Unlock()
	return h.refreshGen
}

// refreshSession renews the session via POST /api/auth/refresh. gen is
// the renewal generation observed before the failed request: if another
// goroutine already completed a renewal since, the 401 was answered with
// stale cookies and the new session is reused without a second refresh
// call.
func (h *httpServerAdapter) refreshSession(ctx context.Context, gen uint64) error {
	h.refreshMu.Lock()
	defer h.refreshMu.Unlock()

	if h.refreshGen != gen {
		return nil
	}

	resp, err := h.client.R().
		SetContext(ctx).
		Post("/api/auth/refresh")
	if err != nil {
		return fmt.Errorf("refresh request: %w", err)
	}

	if resp.IsError() {
		h.logger.Warn().Int("status", resp.StatusCode()).Msg("session renewal rejected")
		return ErrSessionExpired
	}

	h.refreshGen++
	return nil
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		if strings.Contains(strings.ToLower(body), "not verified") {
			return ErrNotVerified
		}
		return ErrSessionExpired
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrEmailAlreadyExists
	}

	if resp.StatusCode() == http.StatusBadRequest && strings.Contains(strings.ToLower(body), "verification code") {
		return ErrInvalidOTP
	}

	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}
	return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
}
