// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Session authentication, logging, tracing, and CORS
// concerns are all handled at this layer before requests are forwarded to
// the service layer.
package http

import (
	"context"
	"net/http"

	"github.com/devdesk/devdesk/internal/logger"
	"github.com/devdesk/devdesk/internal/utils"
)

// auth is the session middleware guarding protected routes.
//
// It reads the access token from the [AccessTokenCookie] cookie — never
// from a header or the URL — validates it via
// [service.AuthService.ParseAccessToken], and on success stores the
// authenticated user's ID in the request context under
// [utils.UserIDCtxKey] before delegating to the next handler.
//
// Requests are rejected with HTTP 401 Unauthorized when:
//   - The cookie is absent or empty ([ErrNoAccessTokenCookie]).
//   - The token is expired, malformed, carries the wrong kind claim, or
//     fails signature or issuer verification.
//
// The middleware never attempts a refresh itself; renewing the session on
// a 401 is the client's job.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		cookie, err := r.Cookie(AccessTokenCookie)
		if err != nil || cookie.Value == "" {
			log.Err(ErrNoAccessTokenCookie).Send()
			http.Error(w, ErrNoAccessTokenCookie.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseAccessToken(ctx, cookie.Value)
		if err != nil {
			log.Err(err).Msg("access token failed verification")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		// Store the authenticated user's ID in the context so that downstream
		// handlers can retrieve it without re-parsing the token.
		ctx = context.WithValue(ctx, utils.UserIDCtxKey, token.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
