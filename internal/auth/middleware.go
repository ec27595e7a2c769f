package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const playerKey contextKey = "player"

// Middleware returns an HTTP middleware that validates JWT tokens.
// Extracts the token from the Authorization header (Bearer scheme)
// and stores the player name in the request context.
func Middleware(jwtMgr *JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				http.Error(w, `{"error":"invalid authorization format"}`, http.StatusUnauthorized)
				return
			}

			claims, err := jwtMgr.ValidateAccessToken(parts[1])
			if err != nil {
				http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
				return
			}

			ctx := WithPlayer(r.Context(), claims.Player)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithPlayer returns a context carrying the authenticated player name.
func WithPlayer(ctx context.Context, player string) context.Context {
	return context.WithValue(ctx, playerKey, player)
}

// PlayerFromContext extracts the authenticated player from the request context.
func PlayerFromContext(ctx context.Context) string {
	p, _ := ctx.Value(playerKey).(string)
	return p
}
