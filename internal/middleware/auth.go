package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/taskhaven/taskhaven-go/internal/crypto"
	"github.com/taskhaven/taskhaven-go/internal/model"
	"github.com/taskhaven/taskhaven-go/internal/store"
)

type contextKey string

const userKey contextKey = "user"

// Authenticate returns middleware that resolves the Authorization
// header to a live user record. It requires a "Bearer <token>"
// header, validates the token, then looks the user up by the token's
// user id claim; a token that outlives its account is rejected.
// Failures carry distinct error codes so clients can tell a missing
// header, a malformed token, an expired token, a bad signature, and a
// vanished user apart.
func Authenticate(secret string, users store.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, http.StatusUnauthorized, "MISSING_CREDENTIALS", "missing authorization header")
				return
			}

			token, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || token == "" {
				writeJSONError(w, http.StatusUnauthorized, "MISSING_CREDENTIALS", "invalid authorization format")
				return
			}

			claims, err := crypto.ValidateToken(token, secret)
			if err != nil {
				switch {
				case errors.Is(err, crypto.ErrMalformedToken):
					writeJSONError(w, http.StatusUnauthorized, "MALFORMED_TOKEN", "malformed token")
				case errors.Is(err, crypto.ErrExpiredToken):
					writeJSONError(w, http.StatusUnauthorized, "EXPIRED_TOKEN", "token expired")
				default:
					writeJSONError(w, http.StatusUnauthorized, "INVALID_TOKEN", "invalid token")
				}
				return
			}

			user, err := users.GetUserByID(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					writeJSONError(w, http.StatusNotFound, "NOT_FOUND", "user not found")
					return
				}
				writeJSONError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext extracts the authenticated user from the request context.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok
}

func writeJSONError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": msg},
	})
}
