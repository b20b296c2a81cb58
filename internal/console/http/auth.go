package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/lodgepole/console/internal/console/service"
	"github.com/lodgepole/console/pkg/httpx"
	"github.com/lodgepole/console/pkg/slogx"
)

// AuthHandler serves the signup/login/me/logout endpoints and the
// invite-signup completion.
type AuthHandler struct {
	AuthService *service.AuthService

	SessionTTL    time.Duration
	SecureCookies bool
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	user, token, err := h.AuthService.Signup(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			httpx.WriteError(w, http.StatusBadRequest, "All fields are required")
		case errors.Is(err, service.ErrPasswordTooShort):
			httpx.WriteError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		case errors.Is(err, service.ErrDuplicateEmail):
			httpx.WriteError(w, http.StatusBadRequest, "User already exists with this email")
		default:
			log.Error("signup failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "Server error during signup")
		}
		return
	}

	setSessionCookie(w, token, h.SessionTTL, h.SecureCookies)
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "User created successfully",
		"user":    toUserPayload(user),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	user, token, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			httpx.WriteError(w, http.StatusBadRequest, "Email and password are required")
		case errors.Is(err, service.ErrInvalidCredentials):
			// Identical response for unknown email and wrong password.
			httpx.WriteError(w, http.StatusBadRequest, "Invalid email or password")
		default:
			log.Error("login failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "Server error during login")
		}
		return
	}

	setSessionCookie(w, token, h.SessionTTL, h.SecureCookies)
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    toUserPayload(user),
	})
}

// HandleMe projects the middleware-resolved caller. RequireAuth already
// loaded the record; failure here means the chain is miswired.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"user": toUserPayload(user),
	})
}

// HandleLogout is stateless: it only instructs the browser to discard
// the cookie.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w, h.SecureCookies)
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Logout successful",
	})
}

type inviteSignupRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h *AuthHandler) HandleSignupWithInvite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	token := r.PathValue("token")

	var req inviteSignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	user, sessionToken, err := h.AuthService.SignupWithInvite(ctx, token, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			httpx.WriteError(w, http.StatusBadRequest, "Name and password are required")
		case errors.Is(err, service.ErrPasswordTooShort):
			httpx.WriteError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		case errors.Is(err, service.ErrInviteNotFound):
			httpx.WriteError(w, http.StatusBadRequest, "Invalid or expired invite token")
		case errors.Is(err, service.ErrInviteExpired):
			httpx.WriteError(w, http.StatusBadRequest, "Invite token has expired")
		case errors.Is(err, service.ErrDuplicateEmail):
			httpx.WriteError(w, http.StatusBadRequest, "User already exists with this email")
		default:
			log.Error("invite signup failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "Server error during signup")
		}
		return
	}

	setSessionCookie(w, sessionToken, h.SessionTTL, h.SecureCookies)
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "User created successfully",
		"user":    toUserPayload(user),
	})
}
