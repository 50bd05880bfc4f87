// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/devdesk/devdesk/models"
)

// Cookie names carrying the two session tokens. Both cookies are httpOnly:
// scripts never see token material, which is the whole point of the
// cookie-based session design.
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// sessionCookie builds one session cookie with environment-dependent
// attributes. Production deployments sit cross-origin behind TLS, so the
// cookie gets Secure plus SameSite=None; development keeps SameSite=Strict
// without Secure so plain-HTTP localhost works.
func (h *Handler) sessionCookie(name, value string, maxAge int) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	if h.app.IsProduction() {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}

// setSessionCookies attaches both tokens of the pair to the response, with
// MaxAge tracking the configured token lifetimes.
func (h *Handler) setSessionCookies(w http.ResponseWriter, pair models.TokenPair) {
	http.SetCookie(w, h.sessionCookie(AccessTokenCookie, pair.Access.SignedString, int(h.app.AccessTokenDuration.Seconds())))
	http.SetCookie(w, h.sessionCookie(RefreshTokenCookie, pair.Refresh.SignedString, int(h.app.RefreshTokenDuration.Seconds())))
}

// clearSessionCookies expires both session cookies. The attribute set must
// match the one used when setting them, otherwise browsers keep the
// originals.
func (h *Handler) clearSessionCookies(w http.ResponseWriter) {
	http.SetCookie(w, h.sessionCookie(AccessTokenCookie, "", -1))
	http.SetCookie(w, h.sessionCookie(RefreshTokenCookie, "", -1))
}
