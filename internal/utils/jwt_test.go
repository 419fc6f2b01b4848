package utils

import (
	"strings"
	"testing"
	"time"
)

func init() {
	SetJWTSecret("unit-test-signing-key")
}

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(7, "gymowner", "user", 24)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("expected a three-part JWT, got %q", token)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("UserID = %d, expected 7", claims.UserID)
	}
	if claims.Username != "gymowner" {
		t.Errorf("Username = %q, expected %q", claims.Username, "gymowner")
	}
	if claims.Role != "user" {
		t.Errorf("Role = %q, expected %q", claims.Role, "user")
	}
	if claims.Issuer != "fitforge" {
		t.Errorf("Issuer = %q, expected fitforge", claims.Issuer)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	for _, token := range []string{"", "abc", "a.b", "a.b.c.d", "header.payload.signature"} {
		if _, err := ParseToken(token); err == nil {
			t.Errorf("ParseToken(%q) should return error", token)
		}
	}
}

func TestParseToken_RotatedSecret(t *testing.T) {
	SetJWTSecret("key-before-rotation")
	token, _ := GenerateToken(1, "gymowner", "user", 24)

	SetJWTSecret("key-after-rotation")
	_, err := ParseToken(token)

	SetJWTSecret("unit-test-signing-key")

	if err == nil {
		t.Error("token signed with the old secret should no longer validate")
	}
}

func TestGenerateToken_ExpiryWindow(t *testing.T) {
	token, _ := GenerateToken(1, "gymowner", "user", 2)
	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining < time.Hour || remaining > 2*time.Hour+time.Minute {
		t.Errorf("expected roughly 2h validity, got %v", remaining)
	}
}

func TestGenerateToken_ZeroHoursFallsBack(t *testing.T) {
	token, _ := GenerateToken(1, "gymowner", "user", 0)
	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if time.Until(claims.ExpiresAt.Time) < 23*time.Hour {
		t.Error("zero expire hours should fall back to the 24h default")
	}
}
