package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/baconnect/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := GenerateToken("valentina", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	got, err := UsernameFromToken(tok, secret)
	if err != nil {
		t.Fatalf("UsernameFromToken error: %v", err)
	}
	if got != "valentina" {
		t.Fatalf("username mismatch: got %q", got)
	}
}

func TestUsernameFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := GenerateToken("u1", secret, -time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := UsernameFromToken(tok, secret); !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestUsernameFromToken_Invalid(t *testing.T) {
	t.Parallel()

	signed, err := GenerateToken("u2", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	noName, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("k"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"wrong secret", signed, "wrong-secret"},
		{"malformed", "not.a.jwt", "k"},
		{"empty", "", "k"},
		{"no username", noName, "k"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UsernameFromToken(tt.token, []byte(tt.secret)); !errors.Is(err, common.ErrInvalidToken) {
				t.Fatalf("expected common.ErrInvalidToken, got %v", err)
			}
		})
	}
}
