package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"openchat/domain"
	"openchat/errors"
)

// Claims is the data stored inside a session JWT.
type Claims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies session tokens. The signing secret comes
// from configuration; it is never compiled into the binary.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Generate creates a signed HS256 JWT for a user.
func (m *TokenManager) Generate(userID domain.UserID, name string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: string(userID),
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "openchat",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses a token string and returns the authenticated user identity.
// Every real-time handshake goes through here: a client-asserted user id is
// never trusted.
func (m *TokenManager) Verify(tokenString string) (domain.UserID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return "", errors.ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", errors.ErrInvalidToken
	}
	return domain.UserID(claims.UserID), nil
}
