package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/devdesk/devdesk/internal/logger"
	"github.com/devdesk/devdesk/internal/service"
	"github.com/devdesk/devdesk/internal/store"
	"github.com/devdesk/devdesk/internal/utils"
	"github.com/devdesk/devdesk/internal/validators"
	"github.com/devdesk/devdesk/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	result, err := h.services.AuthService.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		case errors.Is(err, validators.ErrWeakPassword):
			log.Err(err).Msg("weak password")
			http.Error(w, validators.ErrWeakPassword.Error(), http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrEmailAlreadyExists):
			log.Err(err).Msg("email already exists")
			http.Error(w, "email already exists", http.StatusConflict)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user registration")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	message := "registered, check your email for the verification code"
	if !result.EmailDispatched {
		message = "registered, but the verification email could not be sent; request a new code"
	}

	utils.WriteJSON(w, models.RegisterResponse{Message: message, EmailDispatched: result.EmailDispatched}, http.StatusCreated)
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	verifiedUser, pair, err := h.services.AuthService.Verify(ctx, req.Email, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrNoUserWasFound):
			log.Err(err).Msg("no user was found")
			http.Error(w, "no user was found", http.StatusNotFound)
			return
		case errors.Is(err, store.ErrOTPInvalidOrExpired):
			log.Err(err).Msg("otp invalid or expired")
			http.Error(w, "verification code is invalid or expired", http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during email verification")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	h.setSessionCookies(w, pair)
	utils.WriteJSON(w, models.SessionResponse{Message: "email verified", User: verifiedUser.Summary()}, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	foundUser, pair, err := h.services.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrInvalidCredentials):
			log.Err(err).Msg("invalid email/password")
			http.Error(w, "invalid email/password", http.StatusUnauthorized)
			return
		case errors.Is(err, service.ErrNotVerified):
			log.Err(err).Msg("account is not verified")
			http.Error(w, "account is not verified", http.StatusForbidden)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	log.Debug().Str("id", foundUser.ID).Msg("user successfully logged in")

	h.setSessionCookies(w, pair)
	utils.WriteJSON(w, models.SessionResponse{Message: "logged in", User: foundUser.Summary()}, http.StatusOK)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	cookie, err := r.Cookie(RefreshTokenCookie)
	if err != nil || cookie.Value == "" {
		log.Err(service.ErrNoRefreshToken).Send()
		h.clearSessionCookies(w)
		http.Error(w, service.ErrNoRefreshToken.Error(), http.StatusUnauthorized)
		return
	}

	pair, err := h.services.AuthService.Refresh(ctx, cookie.Value)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRefreshToken):
			// Superseded, expired, or forged token: the whole session is
			// gone, so the cookies go with it.
			log.Err(err).Msg("refresh token rejected")
			h.clearSessionCookies(w)
			http.Error(w, "refresh token is invalid", http.StatusForbidden)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during session refresh")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	h.setSessionCookies(w, pair)
	utils.WriteJSON(w, models.MessageResponse{Message: "session refreshed"}, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var refreshToken string
	if cookie, err := r.Cookie(RefreshTokenCookie); err == nil {
		refreshToken = cookie.Value
	}

	if err := h.services.AuthService.Logout(ctx, refreshToken); err != nil {
		// Revocation failed server-side, but the client still drops the
		// cookies: logout must always succeed from the caller's view.
		log.Err(err).Msg("server-side session revocation failed")
	}

	h.clearSessionCookies(w)
	utils.WriteJSON(w, models.MessageResponse{Message: "logged out"}, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	foundUser, err := h.services.AuthService.Me(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNoUserWasFound):
			log.Err(err).Msg("no user was found")
			http.Error(w, "no user was found", http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("unexpected error occurred fetching current user")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, foundUser.Summary(), http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var update models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if _, err := h.services.AuthService.UpdateProfile(ctx, userID, update); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		case errors.Is(err, validators.ErrWeakPassword):
			log.Err(err).Msg("weak password")
			http.Error(w, validators.ErrWeakPassword.Error(), http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrNoUserWasFound):
			log.Err(err).Msg("no user was found")
			http.Error(w, "no user was found", http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during profile update")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "profile updated"}, http.StatusOK)
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.AuthService.DeleteAccount(ctx, userID); err != nil {
		switch {
		case errors.Is(err, store.ErrNoUserWasFound):
			log.Err(err).Msg("no user was found")
			http.Error(w, "no user was found", http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during account deletion")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	h.clearSessionCookies(w)
	utils.WriteJSON(w, models.MessageResponse{Message: "account deleted"}, http.StatusOK)
}
