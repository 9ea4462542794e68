package tokenstore

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestClaims(t *testing.T) {
	t.Parallel()
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "student@example.com",
		"auth": "STUDENT",
		"exp":  exp.Unix(),
	}).SignedString([]byte("not-the-server-key"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	c, err := Claims(signed)
	if err != nil {
		t.Fatalf("claims: %v", err)
	}
	if c.Subject != "student@example.com" || c.Role != "STUDENT" {
		t.Fatalf("unexpected claims: %+v", c)
	}
	if !c.ExpiresAt.Equal(exp) {
		t.Fatalf("expiry = %v, want %v", c.ExpiresAt, exp)
	}
	if c.Expired(time.Now()) || !c.Expired(exp.Add(time.Minute)) {
		t.Fatal("Expired mismatch")
	}
}

func TestClaims_Opaque(t *testing.T) {
	t.Parallel()
	if _, err := Claims("opaque-token"); err == nil {
		t.Fatal("expected error for non-JWT token")
	}
}
