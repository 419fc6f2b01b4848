package services

import (
	"testing"
)

func TestClassifyCampaignSlug(t *testing.T) {
	tests := []struct {
		slug     string
		expected CampaignType
	}{
		{"ladies-wanted", CampaignTypeRecruitment},
		{"mums-wanted-glasgow", CampaignTypeRecruitment},
		{"seeking-women-over-40", CampaignTypeRecruitment},
		{"personal-training-elite", CampaignTypeService},
		{"personal-training", CampaignTypeService},
		{"6-week-challenge", CampaignTypeChallenge},
		{"28-day-shred", CampaignTypeChallenge},
		{"8-week-program", CampaignTypeChallenge},
		{"12-week-transformation", CampaignTypeChallenge},
		{"total-transformation", CampaignTypeTransformation},
		{"body-transformation-journey", CampaignTypeTransformation},
		{"open-gym", CampaignTypeGeneric},
		{"", CampaignTypeGeneric},
	}

	for _, tt := range tests {
		got := ClassifyCampaignSlug(tt.slug)
		if got != tt.expected {
			t.Errorf("ClassifyCampaignSlug(%q) = %q, expected %q", tt.slug, got, tt.expected)
		}
	}
}

// Classification is a pure function of the slug: repeated calls must agree.
func TestClassifyCampaignSlug_Deterministic(t *testing.T) {
	slugs := []string{"ladies-wanted", "6-week-challenge", "personal-training-elite", "total-transformation", "open-gym"}

	for _, slug := range slugs {
		first := ClassifyCampaignSlug(slug)
		for i := 0; i < 10; i++ {
			if got := ClassifyCampaignSlug(slug); got != first {
				t.Fatalf("ClassifyCampaignSlug(%q) changed between calls: %q then %q", slug, first, got)
			}
		}
	}
}

// Recruitment wins over challenge when both signals are present.
func TestClassifyCampaignSlug_Precedence(t *testing.T) {
	got := ClassifyCampaignSlug("ladies-wanted-6-week")
	if got != CampaignTypeRecruitment {
		t.Errorf("recruitment tokens should take precedence, got %q", got)
	}
}

func TestFilterPatterns_RemovesIncompatibleTerms(t *testing.T) {
	patterns := PatternSet{
		CategoryLocalCallout: {
			"Attention Glasgow ladies!",
			"Calling all mums for our 6-week challenge",
		},
		CategoryScarcityCTA: {
			"Only 5 transformation spots left",
			"Message us JOIN to claim your place",
		},
	}

	filtered := FilterPatterns(patterns, CampaignTypeRecruitment)

	callouts := filtered[CategoryLocalCallout]
	if len(callouts) != 1 || callouts[0] != "Attention Glasgow ladies!" {
		t.Errorf("expected challenge-flavored callout removed, got %v", callouts)
	}

	ctas := filtered[CategoryScarcityCTA]
	if len(ctas) != 1 || ctas[0] != "Message us JOIN to claim your place" {
		t.Errorf("expected transformation-flavored CTA removed, got %v", ctas)
	}
}

func TestFilterPatterns_DoesNotMutateInput(t *testing.T) {
	patterns := PatternSet{
		CategoryLocalCallout: {"Join our 6-week challenge", "Attention ladies"},
	}

	FilterPatterns(patterns, CampaignTypeRecruitment)

	if len(patterns[CategoryLocalCallout]) != 2 {
		t.Error("FilterPatterns mutated its input")
	}
}

func TestFilterPatterns_GenericKeepsEverything(t *testing.T) {
	patterns := PatternSet{
		CategoryLocalCallout: {"Join our 6-week challenge", "Ladies wanted"},
	}

	filtered := FilterPatterns(patterns, CampaignTypeGeneric)
	if len(filtered[CategoryLocalCallout]) != 2 {
		t.Errorf("generic campaigns should keep all patterns, got %v", filtered[CategoryLocalCallout])
	}
}
