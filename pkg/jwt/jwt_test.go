package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwtlib.Claims) string {
	t.Helper()
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestValidateToken(t *testing.T) {
	tm := NewTokenManager(testSecret, "auth-service")
	userID := uuid.New()

	tokenString := signToken(t, testSecret, &Claims{
		UserID: userID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    "auth-service",
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := tm.ValidateToken(tokenString)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("user id = %s, want %s", claims.UserID, userID)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	tm := NewTokenManager(testSecret, "")

	tokenString := signToken(t, "other-secret", &Claims{
		UserID: uuid.New(),
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	if _, err := tm.ValidateToken(tokenString); err == nil {
		t.Fatal("expected validation to fail with the wrong secret")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	tm := NewTokenManager(testSecret, "")

	tokenString := signToken(t, testSecret, &Claims{
		UserID: uuid.New(),
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	if _, err := tm.ValidateToken(tokenString); err == nil {
		t.Fatal("expected validation to fail for an expired token")
	}
}

func TestValidateTokenSubjectFallback(t *testing.T) {
	tm := NewTokenManager(testSecret, "")
	userID := uuid.New()

	// Tokens from the auth service carry the user id in the subject only
	tokenString := signToken(t, testSecret, jwtlib.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
	})

	claims, err := tm.ValidateToken(tokenString)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("user id = %s, want subject fallback %s", claims.UserID, userID)
	}
}

func TestValidateTokenWithoutUserID(t *testing.T) {
	tm := NewTokenManager(testSecret, "")

	tokenString := signToken(t, testSecret, jwtlib.RegisteredClaims{
		Subject:   "not-a-uuid",
		ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
	})

	if _, err := tm.ValidateToken(tokenString); err == nil {
		t.Fatal("expected validation to fail without a user id")
	}
}

func TestValidateTokenRejectsUnexpectedMethod(t *testing.T) {
	tm := NewTokenManager(testSecret, "")

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, &Claims{
		UserID: uuid.New(),
	})
	tokenString, err := token.SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	if _, err := tm.ValidateToken(tokenString); err == nil {
		t.Fatal("expected validation to reject the none algorithm")
	}
}
