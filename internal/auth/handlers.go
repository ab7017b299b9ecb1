package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/oauth2"

	"github.com/rpggio/tally/internal/domain/user"
)

const (
	stateCookie    = "tally_oauth_state"
	verifierCookie = "tally_oauth_verifier"
	cookieMaxAge   = 10 * time.Minute
)

// Provider is an OAuth sign-in provider.
type Provider interface {
	AuthCodeURL(state, verifier string) string
	Profile(ctx context.Context, code, verifier string) (user.Profile, error)
}

// Users is the user store the handlers sign in against.
type Users interface {
	SignIn(ctx context.Context, p user.Profile) (*user.User, error)
	Get(ctx context.Context, id string) (*user.User, error)
}

// Handler serves the sign-in endpoints.
type Handler struct {
	provider Provider
	users    Users
	tokens   *TokenIssuer
	logger   *slog.Logger
}

// NewHandler creates the auth handler. provider may be nil when Google
// sign-in is not configured; /auth/me still works.
func NewHandler(provider Provider, users Users, tokens *TokenIssuer, logger *slog.Logger) *Handler {
	return &Handler{provider: provider, users: users, tokens: tokens, logger: logger}
}

// Routes mounts /google/login, /google/callback and /me.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/google/login", h.handleLogin)
	r.Get("/google/callback", h.handleCallback)
	r.Get("/me", h.handleMe)
	return r
}

type tokenResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      *user.User `json:"user"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if h.provider == nil {
		writeError(w, http.StatusNotFound, "google sign-in is not configured")
		return
	}
	state := oauth2.GenerateVerifier()
	verifier := oauth2.GenerateVerifier()
	setCookie(w, r, stateCookie, state)
	setCookie(w, r, verifierCookie, verifier)
	http.Redirect(w, r, h.provider.AuthCodeURL(state, verifier), http.StatusFound)
}

func (h *Handler) handleCallback(w http.ResponseWriter, r *http.Request) {
	if h.provider == nil {
		writeError(w, http.StatusNotFound, "google sign-in is not configured")
		return
	}
	if msg := r.URL.Query().Get("error"); msg != "" {
		writeError(w, http.StatusBadRequest, "sign-in failed: "+msg)
		return
	}

	state, err := r.Cookie(stateCookie)
	if err != nil || state.Value == "" || state.Value != r.URL.Query().Get("state") {
		writeError(w, http.StatusBadRequest, "invalid oauth state")
		return
	}
	verifier, err := r.Cookie(verifierCookie)
	if err != nil || verifier.Value == "" {
		writeError(w, http.StatusBadRequest, "missing oauth verifier")
		return
	}
	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "missing authorization code")
		return
	}
	clearCookie(w, stateCookie)
	clearCookie(w, verifierCookie)

	profile, err := h.provider.Profile(r.Context(), code, verifier.Value)
	if err != nil {
		h.logError(r, "google sign-in failed", err)
		writeError(w, http.StatusBadGateway, "sign-in failed")
		return
	}

	u, err := h.users.SignIn(r.Context(), profile)
	if err != nil {
		if errors.Is(err, user.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logError(r, "sign-in failed", err)
		writeError(w, http.StatusInternalServerError, "sign-in failed")
		return
	}

	token, expires, err := h.tokens.Issue(u.ID, u.Email)
	if err != nil {
		h.logError(r, "issue token failed", err)
		writeError(w, http.StatusInternalServerError, "sign-in failed")
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token, ExpiresAt: expires, User: u})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	token := BearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}
	userID, err := h.tokens.ResolveUser(r.Context(), token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid bearer token")
		return
	}
	u, err := h.users.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			writeError(w, http.StatusUnauthorized, "unknown user")
			return
		}
		h.logError(r, "get user failed", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": u})
}

// BearerToken extracts the token of an "Authorization: Bearer" header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func (h *Handler) logError(r *http.Request, msg string, err error) {
	if h.logger != nil {
		h.logger.ErrorContext(r.Context(), msg, "error", err)
	}
}

func setCookie(w http.ResponseWriter, r *http.Request, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/auth",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{Name: name, Value: "", Path: "/auth", MaxAge: -1, HttpOnly: true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
