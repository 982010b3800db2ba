package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tkonda/placement-prep/internal/model"
)

// SessionCookie is the name of the HTTP-only cookie that can carry the
// access token for browser clients. API clients use a bearer header
// instead; when both are present the cookie wins.
const SessionCookie = "session_token"

// UserResolver is the slice of the user store the middleware needs: turning
// a token subject into a live account.
type UserResolver interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// contextKey is an unexported type for context keys in this package, so no
// other package can read or shadow the values we store.
type contextKey string

const userKey contextKey = "user"

// Middleware authenticates requests before any handler logic runs.
type Middleware struct {
	tokens *TokenService
	users  UserResolver
	logger *slog.Logger
}

func NewMiddleware(tokens *TokenService, users UserResolver, logger *slog.Logger) *Middleware {
	return &Middleware{tokens: tokens, users: users, logger: logger}
}

// RequireAuth rejects the request with 401 unless it carries a valid token
// whose subject resolves to an existing user. The resolved user is placed
// in the request context for the downstream handler.
//
// A token for a deleted account fails exactly like a bad token: the
// response never reveals whether the subject ever existed.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.resolve(r)
		if err != nil {
			unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole composes on top of authentication: the request must carry a
// valid identity AND the account must have the given role. Authenticated
// users with the wrong role get 403, never 401.
func (m *Middleware) RequireRole(role model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// RequireAuth may already have resolved the user.
			user, ok := UserFromContext(r.Context())
			if !ok {
				var err error
				user, err = m.resolve(r)
				if err != nil {
					unauthorized(w)
					return
				}
			}

			if user.Role != role {
				m.logger.Warn("role check failed",
					slog.String("userID", user.ID),
					slog.String("have", string(user.Role)),
					slog.String("want", string(role)),
				)
				http.Error(w, `{"error":"forbidden","message":"insufficient permissions"}`, http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext retrieves the authenticated user set by RequireAuth or
// RequireRole. Returns (nil, false) on an unauthenticated request.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok && user != nil
}

// resolve extracts the token, verifies it, and loads the subject's account.
func (m *Middleware) resolve(r *http.Request) (*model.User, error) {
	token, err := extractToken(r)
	if err != nil {
		return nil, err
	}

	subject, err := m.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := m.users.FindByID(r.Context(), subject)
	if err != nil {
		// Vanished account, or the store is down. Either way the caller
		// is not authenticated; the detail stays in the server log.
		m.logger.Debug("token subject did not resolve",
			slog.String("subject", subject),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	return user, nil
}

// extractToken reads the access token from the request.
// Precedence: session cookie first, then "Authorization: Bearer <token>".
func extractToken(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
		return token, nil
	}

	return "", http.ErrNoCookie
}

func unauthorized(w http.ResponseWriter) {
	http.Error(w, `{"error":"unauthorized","message":"valid authentication required"}`, http.StatusUnauthorized)
}
