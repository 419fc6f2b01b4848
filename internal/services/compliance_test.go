package services

import (
	"strings"
	"testing"

	"github.com/fitforge/fitforge/internal/models"
)

func TestParseVerdict_Compliant(t *testing.T) {
	s := &ComplianceService{}
	result := s.parseVerdict(`{"compliant": true, "violations": [], "fixed_text": ""}`)

	if result.Status != models.ComplianceStatusPassed {
		t.Errorf("status = %q, expected passed", result.Status)
	}
	if !result.Compliant {
		t.Error("expected compliant")
	}
}

func TestParseVerdict_FixedWhenRewriteSupplied(t *testing.T) {
	s := &ComplianceService{}
	result := s.parseVerdict(`{
		"compliant": false,
		"violations": [{"rule": "EXAGGERATED_CLAIMS", "reason": "guaranteed outcome", "snippet": "guaranteed results"}],
		"fixed_text": "Join a program built around steady progress."
	}`)

	if result.Status != models.ComplianceStatusFixed {
		t.Errorf("status = %q, expected fixed", result.Status)
	}
	if result.FixedText != "Join a program built around steady progress." {
		t.Errorf("unexpected fixed text %q", result.FixedText)
	}
	if len(result.Violations) != 1 || result.Violations[0].Rule != "EXAGGERATED_CLAIMS" {
		t.Errorf("unexpected violations %v", result.Violations)
	}
}

func TestParseVerdict_FailedWithoutRewrite(t *testing.T) {
	s := &ComplianceService{}
	result := s.parseVerdict(`{"compliant": false, "violations": [{"rule": "MEDICAL_CLAIMS", "reason": "claims to cure"}], "fixed_text": ""}`)

	if result.Status != models.ComplianceStatusFailed {
		t.Errorf("status = %q, expected failed", result.Status)
	}
}

func TestParseVerdict_StripsCodeFences(t *testing.T) {
	s := &ComplianceService{}
	raw := "```json\n{\"compliant\": true, \"violations\": [], \"fixed_text\": \"\"}\n```"
	result := s.parseVerdict(raw)

	if result.Status != models.ComplianceStatusPassed {
		t.Errorf("fenced verdict should parse, got status %q", result.Status)
	}
}

func TestParseVerdict_StripsLeadingProse(t *testing.T) {
	s := &ComplianceService{}
	raw := `Here is my evaluation:
{"compliant": true, "violations": [], "fixed_text": ""}`
	result := s.parseVerdict(raw)

	if result.Status != models.ComplianceStatusPassed {
		t.Errorf("verdict with leading prose should parse, got status %q", result.Status)
	}
}

func TestParseVerdict_GarbageBecomesParseError(t *testing.T) {
	s := &ComplianceService{}
	result := s.parseVerdict("I think the ad looks fine to me overall!")

	if result.Status != models.ComplianceStatusFailed {
		t.Errorf("status = %q, expected failed", result.Status)
	}
	if len(result.Violations) != 1 || result.Violations[0].Rule != "PARSE_ERROR" {
		t.Errorf("expected single PARSE_ERROR violation, got %v", result.Violations)
	}
}

func TestCheckWordsToAvoid_FlagsProhibitedWord(t *testing.T) {
	violations := CheckWordsToAvoid("Try this crazy diet hack", []string{"diet", "skinny"})

	if len(violations) != 1 {
		t.Fatalf("expected 1 violation, got %d: %v", len(violations), violations)
	}
	if violations[0].Rule != "WORDS_TO_AVOID" {
		t.Errorf("rule = %q, expected WORDS_TO_AVOID", violations[0].Rule)
	}
	if violations[0].Snippet != "diet" {
		t.Errorf("snippet = %q, expected diet", violations[0].Snippet)
	}
}

func TestCheckWordsToAvoid_WholeWordsOnly(t *testing.T) {
	// "dietitian" contains "diet" but is not the prohibited word itself.
	violations := CheckWordsToAvoid("Our dietitian reviews every plan", []string{"diet"})
	if len(violations) != 0 {
		t.Errorf("substring matches should not be flagged, got %v", violations)
	}
}

func TestCheckWordsToAvoid_CaseInsensitive(t *testing.T) {
	violations := CheckWordsToAvoid("No more DIET drama", []string{"diet"})
	if len(violations) != 1 {
		t.Errorf("expected case-insensitive match, got %v", violations)
	}
}

func TestCheckWordsToAvoid_MultiWordPhrase(t *testing.T) {
	violations := CheckWordsToAvoid("Stop falling for another crash diet plan", []string{"crash diet"})

	if len(violations) != 1 {
		t.Fatalf("expected 1 violation, got %d: %v", len(violations), violations)
	}
	if violations[0].Snippet != "crash diet" {
		t.Errorf("snippet = %q, expected crash diet", violations[0].Snippet)
	}
}

func TestCheckWordsToAvoid_MultiWordMustBeConsecutive(t *testing.T) {
	violations := CheckWordsToAvoid("A crash course on diet myths", []string{"crash diet"})
	if len(violations) != 0 {
		t.Errorf("non-adjacent words should not match a phrase, got %v", violations)
	}
}

func TestCheckWordsToAvoid_MultiWordAcrossPunctuation(t *testing.T) {
	violations := CheckWordsToAvoid("Forget the quick, fix your habits instead", []string{"quick fix"})
	if len(violations) != 1 {
		t.Errorf("punctuation between tokens should not block a phrase match, got %v", violations)
	}
}

func TestApplyWordsToAvoid_DowngradesPassedVerdict(t *testing.T) {
	result := &ComplianceResult{Status: models.ComplianceStatusPassed, Compliant: true}

	applyWordsToAvoid(result, "Try this quick fix before summer", []string{"quick fix"})

	if result.Status != models.ComplianceStatusFailed {
		t.Errorf("status = %q, expected failed", result.Status)
	}
	if result.Compliant {
		t.Error("result should no longer be compliant")
	}
	if len(result.Violations) != 1 || result.Violations[0].Rule != "WORDS_TO_AVOID" {
		t.Errorf("unexpected violations %v", result.Violations)
	}
}

func TestApplyWordsToAvoid_ScansFixedTextWhenRewritten(t *testing.T) {
	result := &ComplianceResult{
		Status:    models.ComplianceStatusFixed,
		FixedText: "A cleaner rewrite without banned words",
	}

	// The original text violates, the rewrite does not; the rewrite is
	// what would be published, so no violation is added.
	applyWordsToAvoid(result, "Original crash diet copy", []string{"crash diet"})

	if len(result.Violations) != 0 {
		t.Errorf("fixed text is clean, expected no violations, got %v", result.Violations)
	}
}

func TestComplianceScore(t *testing.T) {
	tests := []struct {
		status   string
		expected float64
	}{
		{models.ComplianceStatusPassed, 1.0},
		{models.ComplianceStatusFixed, 0.5},
		{models.ComplianceStatusFailed, 0},
	}

	for _, tt := range tests {
		if got := complianceScore(tt.status); got != tt.expected {
			t.Errorf("complianceScore(%q) = %v, expected %v", tt.status, got, tt.expected)
		}
	}
}

func TestBuildPrompt_IncludesContentAndRules(t *testing.T) {
	s := &ComplianceService{}
	prompt := s.buildPrompt(&CheckRequest{
		Content:      "Join our spring program",
		ContentType:  models.ContentTypeAdCaption,
		BrandTone:    "warm and direct",
		WordsToAvoid: []string{"diet"},
	})

	for _, want := range []string{
		"Join our spring program",
		models.ContentTypeAdCaption,
		"warm and direct",
		"brand-prohibited words in any form: diet",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "{{") {
		t.Error("prompt still contains unreplaced template markers")
	}
}
