package middleware

import (
	"context"
	"net/http"
	"strings"

	"journal-service/internal/domain/entity"
	"journal-service/pkg/jwt"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey contextKey = "userID"
	GuestKey  contextKey = "guest"
)

// AuthMiddleware validates JWT tokens and resolves the acting user
type AuthMiddleware struct {
	tokenManager *jwt.TokenManager
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(tokenManager *jwt.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{
		tokenManager: tokenManager,
	}
}

// Auth validates the JWT token from the Authorization header. Requests
// without a token proceed as the shared guest user; requests carrying a
// malformed or invalid token are rejected.
func (m *AuthMiddleware) Auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			ctx := context.WithValue(r.Context(), UserIDKey, entity.GuestUserID)
			ctx = context.WithValue(ctx, GuestKey, true)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
			return
		}

		token := parts[1]
		if token == "" {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		claims, err := m.tokenManager.ValidateToken(token)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, GuestKey, false)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// RequireAuth rejects guest requests outright
func (m *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return m.Auth(func(w http.ResponseWriter, r *http.Request) {
		if IsGuest(r) {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID extracts the acting user ID from request context
func GetUserID(r *http.Request) uuid.UUID {
	userID, ok := r.Context().Value(UserIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

// IsGuest reports whether the request runs in guest mode
func IsGuest(r *http.Request) bool {
	guest, ok := r.Context().Value(GuestKey).(bool)
	if !ok {
		return false
	}
	return guest
}
