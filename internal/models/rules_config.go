package models

import (
	"encoding/json"
	"time"
)

// RulesConfig is the global, versioned generation rules document. Exactly one
// row is active at a time; the pipeline reads the active row at request time
// so a rules update is picked up by the very next generation.
//
// The rule groups are stored as JSON text columns and parsed on read.
type RulesConfig struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	Name                 string    `gorm:"size:100;not null" json:"name"`
	Version              int       `gorm:"not null;default:1" json:"version"`
	IsActive             bool      `gorm:"index;default:false" json:"is_active"`
	ContentRulesJSON     string    `gorm:"type:text" json:"content_rules"`
	SafetyRulesJSON      string    `gorm:"type:text" json:"safety_rules"`
	FormattingRulesJSON  string    `gorm:"type:text" json:"formatting_rules"`
	OriginalityRulesJSON string    `gorm:"type:text" json:"originality_rules"`
	ToneRulesJSON        string    `gorm:"type:text" json:"tone_rules"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (RulesConfig) TableName() string { return "rules_configs" }

// ContentTypeRule is the output schema for one content type.
type ContentTypeRule struct {
	MaxLength int    `json:"max_length"`
	MaxWords  int    `json:"max_words"`
	Structure string `json:"structure"`
}

type SafetyRules struct {
	ProhibitedPhrases   []string `json:"prohibited_phrases"`
	EnforceWordsToAvoid bool     `json:"enforce_words_to_avoid"`
}

type FormattingRules struct {
	MaxWordsPerHeadline int    `json:"max_words_per_headline"`
	HookMinWords        int    `json:"hook_min_words"`
	HookMaxWords        int    `json:"hook_max_words"`
	BulletStyle         string `json:"bullet_style"`
	MaxEmojis           int    `json:"max_emojis"`
}

type OriginalityRules struct {
	MaxConsecutiveWords     int  `json:"max_consecutive_words"`
	CheckHistoricalAds      bool `json:"check_historical_ads"`
	MaxRegenerationAttempts int  `json:"max_regeneration_attempts"`
}

type ToneRules struct {
	FallbackTone       string `json:"fallback_tone"`
	RequireConsistency bool   `json:"require_consistency"`
}

// ContentRules parses the per-content-type schemas. Unknown or malformed
// JSON yields an empty map, not an error; callers fall back to defaults.
func (r *RulesConfig) ContentRules() map[string]ContentTypeRule {
	out := make(map[string]ContentTypeRule)
	if r.ContentRulesJSON != "" {
		_ = json.Unmarshal([]byte(r.ContentRulesJSON), &out)
	}
	return out
}

func (r *RulesConfig) Safety() SafetyRules {
	var out SafetyRules
	if r.SafetyRulesJSON != "" {
		_ = json.Unmarshal([]byte(r.SafetyRulesJSON), &out)
	}
	return out
}

func (r *RulesConfig) Formatting() FormattingRules {
	var out FormattingRules
	if r.FormattingRulesJSON != "" {
		_ = json.Unmarshal([]byte(r.FormattingRulesJSON), &out)
	}
	return out
}

func (r *RulesConfig) Originality() OriginalityRules {
	var out OriginalityRules
	if r.OriginalityRulesJSON != "" {
		_ = json.Unmarshal([]byte(r.OriginalityRulesJSON), &out)
	}
	return out
}

func (r *RulesConfig) Tone() ToneRules {
	var out ToneRules
	if r.ToneRulesJSON != "" {
		_ = json.Unmarshal([]byte(r.ToneRulesJSON), &out)
	}
	return out
}
