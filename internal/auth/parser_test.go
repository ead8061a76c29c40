package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func TestParseValidToken(t *testing.T) {
	parser := NewParser("secret")
	token := sign(t, "secret", jwt.MapClaims{
		"sub":  "17",
		"role": "ADMIN",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	principal, err := parser.Parse(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if principal.UserID != "17" || principal.Role != "ADMIN" {
		t.Fatalf("principal = %+v", principal)
	}
	if !principal.IsAdmin() {
		t.Fatal("IsAdmin() = false for ADMIN role")
	}
}

func TestParseRejectsBadTokens(t *testing.T) {
	parser := NewParser("secret")

	cases := []string{
		"not-a-token",
		// wrong secret
		sign(t, "other-secret", jwt.MapClaims{"sub": "1", "role": "ADMIN", "exp": time.Now().Add(time.Hour).Unix()}),
		// expired
		sign(t, "secret", jwt.MapClaims{"sub": "1", "role": "ADMIN", "exp": time.Now().Add(-time.Hour).Unix()}),
		// no subject
		sign(t, "secret", jwt.MapClaims{"role": "ADMIN", "exp": time.Now().Add(time.Hour).Unix()}),
	}

	for i, token := range cases {
		if _, err := parser.Parse(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("case %d: err = %v, want ErrInvalidToken", i, err)
		}
	}
}
