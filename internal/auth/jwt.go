// Package auth issues and verifies bearer tokens and federated
// identity tokens.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Sadok2512/NoteAI-1/internal/apperr"
)

// Claims bundles the registered claims with the user identity carried
// by every issued token.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// GenerateToken mints an HS256 token for the given user, valid for
// validityDuration.
func GenerateToken(userID, email string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID: userID,
		Email:  email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the token signature and expiry and returns its
// claims. Any verification failure maps to apperr.ErrUnauthorized.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, apperr.ErrUnauthorized
	}

	if !token.Valid || claims.UserID == "" {
		return nil, apperr.ErrUnauthorized
	}

	return claims, nil
}
