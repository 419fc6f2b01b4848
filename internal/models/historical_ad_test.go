package models

import "testing"

func TestAdContentHash_Deterministic(t *testing.T) {
	first := AdContentHash("Tired of gyms that ignore you?", "Join our community")

	for i := 0; i < 5; i++ {
		if got := AdContentHash("Tired of gyms that ignore you?", "Join our community"); got != first {
			t.Fatalf("hash changed between calls: %q then %q", first, got)
		}
	}

	if len(first) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(first))
	}
}

func TestAdContentHash_DistinguishesInputs(t *testing.T) {
	base := AdContentHash("primary text", "headline")

	if AdContentHash("primary text", "other headline") == base {
		t.Error("different headline should change the hash")
	}
	if AdContentHash("other primary", "headline") == base {
		t.Error("different primary text should change the hash")
	}
}

// The separator prevents (a+b, c) and (a, b+c) from colliding.
func TestAdContentHash_FieldBoundary(t *testing.T) {
	a := AdContentHash("alpha beta", "gamma")
	b := AdContentHash("alpha", "beta gamma")
	if a == b {
		t.Error("moving text across the field boundary must change the hash")
	}
}

func TestAdContentHash_EmptyHeadline(t *testing.T) {
	got := AdContentHash("primary only", "")
	if got == "" || len(got) != 64 {
		t.Errorf("empty headline should still hash, got %q", got)
	}
}
