package jwt

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims represents JWT claims
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenManager handles JWT token validation. Tokens are issued by the auth
// service; this service only verifies them.
type TokenManager struct {
	secret string
	issuer string
}

// NewTokenManager creates a new token manager
func NewTokenManager(secret, issuer string) *TokenManager {
	return &TokenManager{
		secret: secret,
		issuer: issuer,
	}
}

// ValidateToken validates a token and returns claims
func (tm *TokenManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tm.secret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.UserID == uuid.Nil {
		if sub, err := uuid.Parse(claims.Subject); err == nil {
			claims.UserID = sub
		}
	}

	if claims.UserID == uuid.Nil {
		return nil, fmt.Errorf("token carries no user id")
	}

	return claims, nil
}
