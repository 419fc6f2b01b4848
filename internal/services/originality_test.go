package services

import (
	"testing"

	"github.com/fitforge/fitforge/internal/models"
)

func TestCheckOverlap_NoOverlap(t *testing.T) {
	result := CheckOverlap(
		"Fresh copy with entirely new phrasing throughout",
		[]string{"Old ad about something completely different here"},
		5,
	)

	if !result.IsOriginal {
		t.Error("expected original for disjoint texts")
	}
	if len(result.Violations) != 0 {
		t.Errorf("expected no violations, got %v", result.Violations)
	}
}

func TestCheckOverlap_TwoSharedWindows(t *testing.T) {
	historical := "Tired of diets that leave you hungry? Join our amazing community of driven women today."
	// Shares exactly two disjoint five-word runs with the historical ad:
	// "tired of diets that leave" and "our amazing community of driven".
	generated := "Tired of diets that leave no room for real life. Our amazing community of driven people trains daily."

	result := CheckOverlap(generated, []string{historical}, 5)

	if result.IsOriginal {
		t.Error("expected overlap to be detected")
	}
	if len(result.Violations) != 2 {
		t.Fatalf("expected exactly 2 violations, got %d: %v", len(result.Violations), result.Violations)
	}
}

// Two violations stay under the regeneration threshold: the orchestrator
// accepts the draft even though the checker reported overlap.
func TestAcceptDraft_UnderThreshold(t *testing.T) {
	if !AcceptDraft(0) {
		t.Error("0 violations must be accepted")
	}
	if !AcceptDraft(2) {
		t.Error("2 violations must be accepted (below threshold)")
	}
	if AcceptDraft(3) {
		t.Error("3 violations must trigger regeneration")
	}
	if AcceptDraft(7) {
		t.Error("7 violations must trigger regeneration")
	}
}

func TestCheckOverlap_CaseAndPunctuationInsensitive(t *testing.T) {
	historical := "Join our amazing community of driven women"
	generated := "JOIN OUR AMAZING COMMUNITY OF driven women!!!"

	result := CheckOverlap(generated, []string{historical}, 5)
	if result.IsOriginal {
		t.Error("case and trailing punctuation should not defeat overlap detection")
	}
}

func TestCheckOverlap_DeduplicatesRepeatedWindow(t *testing.T) {
	historical := "only five spots left today"
	generated := "only five spots left today and again only five spots left today"

	result := CheckOverlap(generated, []string{historical}, 5)
	if len(result.Violations) != 1 {
		t.Errorf("repeated identical window should count once, got %v", result.Violations)
	}
}

func TestCheckOverlap_EmptyCorpus(t *testing.T) {
	result := CheckOverlap("any generated text at all here", nil, 5)
	if !result.IsOriginal {
		t.Error("empty corpus must pass")
	}
}

func TestCheckOverlap_ShortTexts(t *testing.T) {
	result := CheckOverlap("too short", []string{"also short"}, 5)
	if !result.IsOriginal {
		t.Error("texts shorter than the window cannot overlap")
	}
}

func TestCheck_DisabledByRulesConfig(t *testing.T) {
	// A config with check_historical_ads off must pass without ever
	// touching the corpus; nil deps panic if the gate is missing.
	svc := NewOriginalityService(nil, nil)

	result := svc.Check("any generated text", "6-week-challenge", &models.OriginalityRules{
		CheckHistoricalAds:  false,
		MaxConsecutiveWords: 5,
	})

	if !result.IsOriginal {
		t.Error("disabled originality check should pass unconditionally")
	}
	if len(result.Violations) != 0 {
		t.Errorf("disabled check should report no violations, got %v", result.Violations)
	}
}
