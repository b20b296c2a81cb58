package http

import (
	"context"
	"net/http"

	"github.com/lodgepole/console/internal/console/domain"
	"github.com/lodgepole/console/internal/console/service"
	"github.com/lodgepole/console/pkg/httpx"
	"github.com/lodgepole/console/pkg/jwtx"
	"github.com/lodgepole/console/pkg/slogx"
)

type ctxKey string

const ctxKeyUser ctxKey = "user"

// UserFromContext returns the authenticated user attached by
// RequireAuth.
func UserFromContext(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(ctxKeyUser).(domain.User)
	return u, ok
}

// RequireAuth resolves the caller's identity: it extracts the bearer
// token from the session cookie, verifies it and loads the user record
// into the request context. A valid token for a missing user is treated
// as unauthenticated, not as a server fault.
func RequireAuth(verifier jwtx.Verifier, users *service.UserService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			claims, err := verifier.Verify(cookie.Value)
			if err != nil {
				log.Warn("session token verification failed", "err", err)
				httpx.WriteError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			user, err := users.GetUserByID(ctx, claims.Subject)
			if err != nil {
				log.Warn("session token for unknown user", "user_id", claims.Subject)
				httpx.WriteError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx = context.WithValue(ctx, ctxKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates admin-only operations. Must sit after RequireAuth
// in the chain.
func RequireAdmin() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			if user.Role != domain.RoleAdmin {
				httpx.WriteError(w, http.StatusForbidden, "Admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
