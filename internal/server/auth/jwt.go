// Package auth implements the credential primitives of the server: signed,
// time-limited access tokens and one-way password hashing.
package auth

import (
	"time"

	"github.com/dmitrijs2005/taskvault/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims binds a token to a user identity. Beyond the registered claims the
// token carries nothing but the user id: no roles, no scopes.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// GenerateToken mints an HS256-signed token asserting userID for
// validityDuration from now.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies tokenString and returns the asserted user id.
// Malformed, wrongly signed, and expired tokens all fail with
// common.ErrInvalidToken; verification is stateless and expiry is the only
// de-authorization mechanism.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		return "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
