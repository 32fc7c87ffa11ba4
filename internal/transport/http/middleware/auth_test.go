package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"journal-service/internal/domain/entity"
	"journal-service/pkg/jwt"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const testSecret = "test-secret"

func newAuthMiddleware() *AuthMiddleware {
	return NewAuthMiddleware(jwt.NewTokenManager(testSecret, ""))
}

func signToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, &jwt.Claims{
		UserID: userID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestAuthWithoutHeaderRunsAsGuest(t *testing.T) {
	m := newAuthMiddleware()

	var gotUserID uuid.UUID
	var gotGuest bool
	handler := m.Auth(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = GetUserID(r)
		gotGuest = IsGuest(r)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/entries", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotUserID != entity.GuestUserID {
		t.Errorf("user id = %s, want the guest user", gotUserID)
	}
	if !gotGuest {
		t.Error("request must be flagged as guest")
	}
}

func TestAuthWithValidToken(t *testing.T) {
	m := newAuthMiddleware()
	userID := uuid.New()

	var gotUserID uuid.UUID
	var gotGuest bool
	handler := m.Auth(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = GetUserID(r)
		gotGuest = IsGuest(r)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/entries", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, userID))

	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotUserID != userID {
		t.Errorf("user id = %s, want %s", gotUserID, userID)
	}
	if gotGuest {
		t.Error("authenticated request must not be flagged as guest")
	}
}

func TestAuthRejectsBadHeaders(t *testing.T) {
	m := newAuthMiddleware()

	handler := m.Auth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	cases := []struct {
		name   string
		header string
	}{
		{"missing scheme", "some-token"},
		{"wrong scheme", "Basic abc"},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer not.a.jwt"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/entries", nil)
			req.Header.Set("Authorization", tc.header)

			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestRequireAuthRejectsGuests(t *testing.T) {
	m := newAuthMiddleware()

	handler := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for a guest")
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/goals", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuthAllowsAuthenticatedUsers(t *testing.T) {
	m := newAuthMiddleware()

	called := false
	handler := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "/api/goals", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.New()))

	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK || !called {
		t.Fatalf("status = %d, called = %v; want 200 and the handler invoked", rec.Code, called)
	}
}
