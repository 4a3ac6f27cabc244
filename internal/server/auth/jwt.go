// Package auth issues and checks the feed server's HS256 access tokens.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/baconnect/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the registered claims plus the username the token was
// issued to.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

func GenerateToken(username string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Username: username,
	})

	return token.SignedString(secretKey)
}

// UsernameFromToken validates tokenString and returns its username.
// Expired tokens yield common.ErrTokenExpired; any other failure
// common.ErrInvalidToken.
func UsernameFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if errors.Is(err, jwt.ErrTokenExpired) {
		return "", common.ErrTokenExpired
	}
	if err != nil || !token.Valid || claims.Username == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Username, nil
}
