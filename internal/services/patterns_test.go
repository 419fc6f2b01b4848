package services

import (
	"fmt"
	"strings"
	"testing"
)

const sampleAd = `Attention Glasgow mums!

Tired of diets that leave you exhausted by 3pm?

That's why we created our supportive small-group program.

You'll get a personalised plan that fits around school runs.
✅ 3 coached sessions per week
✅ Simple meal guidance

This is for you if you're done with quick fixes.

Join 200+ mums who already train with us.

Money-back guarantee if you show up and don't see progress.

Only 8 spots left. Message us "START" to claim yours.`

func TestExtract_FindsAllCategories(t *testing.T) {
	e := NewPatternExtractor()
	result := e.Extract([]string{sampleAd})

	for _, cat := range AllCategories {
		if len(result.Patterns[cat]) == 0 {
			t.Errorf("category %s: expected at least one phrase, got none", cat)
		}
	}

	if len(result.Coverage) != 1 {
		t.Fatalf("expected coverage for 1 ad, got %d", len(result.Coverage))
	}
	for _, cat := range AllCategories {
		if !result.Coverage[0].Present[cat] {
			t.Errorf("coverage should mark %s present", cat)
		}
	}
}

func TestExtract_EmptyCorpus(t *testing.T) {
	e := NewPatternExtractor()
	result := e.Extract(nil)

	for _, cat := range AllCategories {
		if result.Patterns[cat] == nil {
			t.Errorf("category %s: expected empty slice, got nil", cat)
		}
		if len(result.Patterns[cat]) != 0 {
			t.Errorf("category %s: expected no phrases from empty corpus", cat)
		}
	}
}

func TestExtract_DeduplicatesCaseInsensitively(t *testing.T) {
	e := NewPatternExtractor()
	texts := []string{
		"Tired of fad diets that never stick?",
		"TIRED OF FAD DIETS that never stick?",
	}
	result := e.Extract(texts)

	if n := len(result.Patterns[CategoryProblemAgitate]); n != 1 {
		t.Errorf("expected 1 deduplicated phrase, got %d: %v", n, result.Patterns[CategoryProblemAgitate])
	}
}

func TestExtract_CapsPhrasesPerCategory(t *testing.T) {
	e := NewPatternExtractor()
	texts := make([]string, 8)
	for i := range texts {
		texts[i] = fmt.Sprintf("Tired of program number %d wasting your time?", i)
	}
	result := e.Extract(texts)

	if n := len(result.Patterns[CategoryProblemAgitate]); n != maxPatternsPerCategory {
		t.Errorf("expected phrases capped at %d, got %d", maxPatternsPerCategory, n)
	}
}

// A scarcity phrase without an action verb anywhere in the ad is urgency
// theatre, not a call to action, and must not be harvested.
func TestExtract_ScarcityRequiresActionVerb(t *testing.T) {
	e := NewPatternExtractor()

	withoutCTA := "Only 3 spots left for the new term."
	result := e.Extract([]string{withoutCTA})
	if len(result.Patterns[CategoryScarcityCTA]) != 0 {
		t.Errorf("scarcity without action verb should not match, got %v", result.Patterns[CategoryScarcityCTA])
	}

	withCTA := "Only 3 spots left for the new term. Message us to book."
	result = e.Extract([]string{withCTA})
	if len(result.Patterns[CategoryScarcityCTA]) == 0 {
		t.Error("scarcity with action verb should match")
	}
}

func TestExtract_PhrasesComeFromSource(t *testing.T) {
	e := NewPatternExtractor()
	result := e.Extract([]string{sampleAd})

	lowerAd := strings.ToLower(sampleAd)
	for cat, phrases := range result.Patterns {
		for _, p := range phrases {
			if !strings.Contains(lowerAd, strings.ToLower(p)) {
				t.Errorf("category %s: phrase %q not present in source text", cat, p)
			}
		}
	}
}
