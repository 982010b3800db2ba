package handler

import (
	"log/slog"
	"net/http"

	"github.com/rs/xid"

	"github.com/tkonda/placement-prep/internal/apperror"
	"github.com/tkonda/placement-prep/internal/auth"
	"github.com/tkonda/placement-prep/internal/model"
	"github.com/tkonda/placement-prep/internal/service"
)

const stateCookieName = "oauth_state"

// AuthHandler serves registration, login, Google OAuth, logout, and /me.
type AuthHandler struct {
	auths       *service.AuthService
	google      *auth.GoogleProvider
	frontendURL string
	cookieTTL   int // seconds
	logger      *slog.Logger
}

func NewAuthHandler(
	auths *service.AuthService,
	google *auth.GoogleProvider,
	frontendURL string,
	cookieTTL int,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		auths:       auths,
		google:      google,
		frontendURL: frontendURL,
		cookieTTL:   cookieTTL,
		logger:      logger,
	}
}

// setSessionCookie stores the token the same way the middleware reads it.
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   h.cookieTTL,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type authResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        *model.User `json:"user"`
}

// HandleRegister creates an account and signs it in.
//
// HTTP: POST /api/auth/register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.auths.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     model.Role(req.Role),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.setSessionCookie(w, result.Token)
	writeJSON(w, http.StatusOK, authResponse{AccessToken: result.Token, TokenType: "bearer", User: result.User})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin authenticates a password account.
//
// HTTP: POST /api/auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.auths.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	h.setSessionCookie(w, result.Token)
	writeJSON(w, http.StatusOK, authResponse{AccessToken: result.Token, TokenType: "bearer", User: result.User})
}

type googleLoginResponse struct {
	URL string `json:"url"`
}

// HandleGoogleLogin hands the frontend the URL of Google's consent page.
// The random state lands in a short-lived cookie and is checked on callback.
//
// HTTP: GET /api/auth/google-login
func (h *AuthHandler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	state := xid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, googleLoginResponse{URL: h.google.AuthURL(state)})
}

// HandleGoogleCallback completes the OAuth flow and redirects to the
// frontend with the session cookie set.
//
// HTTP: GET /api/auth/google-callback?code=...&state=...
func (h *AuthHandler) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || r.URL.Query().Get("state") != stateCookie.Value {
		h.logger.Warn("google callback: state mismatch")
		writeError(w, apperror.ValidationFailed("state", "invalid OAuth state"))
		return
	}
	// single-use
	http.SetCookie(w, &http.Cookie{Name: stateCookieName, Value: "", Path: "/", MaxAge: -1})

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.logger.Info("google callback: user denied authorization", slog.String("error", errParam))
		http.Redirect(w, r, h.frontendURL+"?auth=denied", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, apperror.ValidationFailed("code", "missing OAuth code"))
		return
	}

	gu, err := h.google.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("google callback: exchange failed", slog.String("error", err.Error()))
		writeError(w, apperror.Upstream(err))
		return
	}

	result, err := h.auths.LoginOrRegisterGoogle(r.Context(), gu)
	if err != nil {
		writeError(w, err)
		return
	}

	h.setSessionCookie(w, result.Token)
	http.Redirect(w, r, h.frontendURL+"/dashboard", http.StatusSeeOther)
}

// HandleMe returns the authenticated user.
//
// HTTP: GET /api/auth/me
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated())
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// HandleLogout revokes the user's sessions and clears the cookie.
//
// HTTP: POST /api/auth/logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated())
		return
	}

	if err := h.auths.Logout(r.Context(), user.ID); err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, MessageResponse{Message: "logged out successfully"})
}
