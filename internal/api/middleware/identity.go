package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const (
	// UserIDKey holds the caller's subject claim, when present
	UserIDKey contextKey = "userID"
	// UserNameKey holds the caller's name claim, when present
	UserNameKey contextKey = "userName"
)

// Identity extracts the caller identity from an optional bearer token and
// attaches it to the request context. Identity is informational only:
// requests without a token, or with one that does not verify, pass through
// untouched. Core resolution never reads it.
func Identity(secret string) func(http.Handler) http.Handler {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				next.ServeHTTP(w, r)
				return
			}

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return key, nil
			})
			if err != nil || !token.Valid {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			if sub, err := claims.GetSubject(); err == nil && sub != "" {
				ctx = context.WithValue(ctx, UserIDKey, sub)
			}
			if name, ok := claims["name"].(string); ok && name != "" {
				ctx = context.WithValue(ctx, UserNameKey, name)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID gets the caller's subject from context
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}

// GetUserName gets the caller's name from context
func GetUserName(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(UserNameKey).(string)
	return name, ok
}
