package services

import (
	"testing"

	"github.com/fitforge/fitforge/internal/models"
)

func TestOriginalityOrDefaults_NilRules(t *testing.T) {
	got := OriginalityOrDefaults(nil)

	if got.MaxConsecutiveWords != DefaultMaxConsecutiveWords {
		t.Errorf("MaxConsecutiveWords = %d, expected %d", got.MaxConsecutiveWords, DefaultMaxConsecutiveWords)
	}
	if got.MaxRegenerationAttempts != DefaultMaxRegenerationAttempts {
		t.Errorf("MaxRegenerationAttempts = %d, expected %d", got.MaxRegenerationAttempts, DefaultMaxRegenerationAttempts)
	}
}

func TestOriginalityOrDefaults_ConfiguredValuesWin(t *testing.T) {
	rules := &ResolvedRules{
		Originality: models.OriginalityRules{
			MaxConsecutiveWords:     8,
			MaxRegenerationAttempts: 4,
		},
	}

	got := OriginalityOrDefaults(rules)
	if got.MaxConsecutiveWords != 8 {
		t.Errorf("MaxConsecutiveWords = %d, expected 8", got.MaxConsecutiveWords)
	}
	if got.MaxRegenerationAttempts != 4 {
		t.Errorf("MaxRegenerationAttempts = %d, expected 4", got.MaxRegenerationAttempts)
	}
}

func TestOriginalityOrDefaults_ZeroFieldsFallBack(t *testing.T) {
	rules := &ResolvedRules{}

	got := OriginalityOrDefaults(rules)
	if got.MaxConsecutiveWords != DefaultMaxConsecutiveWords {
		t.Errorf("zero MaxConsecutiveWords should take default, got %d", got.MaxConsecutiveWords)
	}
}

func TestSafetyOrDefaults_NilRulesEnforces(t *testing.T) {
	got := SafetyOrDefaults(nil)
	if !got.EnforceWordsToAvoid {
		t.Error("words-to-avoid enforcement should default on with no active config")
	}
}

func TestSafetyOrDefaults_ActiveConfigCanDisable(t *testing.T) {
	rules := &ResolvedRules{
		Safety: models.SafetyRules{EnforceWordsToAvoid: false},
	}

	got := SafetyOrDefaults(rules)
	if got.EnforceWordsToAvoid {
		t.Error("active config with enforcement off should win over the default")
	}
}
