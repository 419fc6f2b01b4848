package utils

import (
	"strings"
	"testing"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("lift-heavy-2024")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("expected a bcrypt hash, got %q", hash)
	}
	if !CheckPassword("lift-heavy-2024", hash) {
		t.Error("hash should verify against the original password")
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	hash1, _ := HashPassword("same-input")
	hash2, _ := HashPassword("same-input")
	if hash1 == hash2 {
		t.Error("bcrypt should salt each hash")
	}
}

func TestCheckPassword_Rejections(t *testing.T) {
	hash, _ := HashPassword("squat315")

	tests := []struct {
		name     string
		password string
	}{
		{"wrong password", "bench225"},
		{"empty password", ""},
		{"trailing char", "squat3155"},
		{"different case", "Squat315"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if CheckPassword(tt.password, hash) {
				t.Errorf("CheckPassword(%q) should fail", tt.password)
			}
		})
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	for _, hash := range []string{"", "not-a-hash", "$2a$corrupted"} {
		if CheckPassword("anything", hash) {
			t.Errorf("CheckPassword with hash %q should fail", hash)
		}
	}
}
