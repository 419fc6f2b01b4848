package models

import "testing"

func TestRulesConfig_ParsesRuleGroups(t *testing.T) {
	cfg := &RulesConfig{
		ContentRulesJSON:     `{"ad_caption": {"max_length": 2200, "structure": "hook, body, cta"}}`,
		SafetyRulesJSON:      `{"prohibited_phrases": ["comment YES"], "enforce_words_to_avoid": true}`,
		FormattingRulesJSON:  `{"max_words_per_headline": 7, "hook_min_words": 5, "hook_max_words": 10, "max_emojis": 3}`,
		OriginalityRulesJSON: `{"max_consecutive_words": 5, "check_historical_ads": true, "max_regeneration_attempts": 2}`,
		ToneRulesJSON:        `{"fallback_tone": "friendly and encouraging"}`,
	}

	content := cfg.ContentRules()
	if content[ContentTypeAdCaption].MaxLength != 2200 {
		t.Errorf("ad_caption max_length = %d, expected 2200", content[ContentTypeAdCaption].MaxLength)
	}

	safety := cfg.Safety()
	if !safety.EnforceWordsToAvoid || len(safety.ProhibitedPhrases) != 1 {
		t.Errorf("unexpected safety rules %+v", safety)
	}

	formatting := cfg.Formatting()
	if formatting.MaxWordsPerHeadline != 7 || formatting.HookMaxWords != 10 {
		t.Errorf("unexpected formatting rules %+v", formatting)
	}

	originality := cfg.Originality()
	if originality.MaxConsecutiveWords != 5 || originality.MaxRegenerationAttempts != 2 {
		t.Errorf("unexpected originality rules %+v", originality)
	}

	if cfg.Tone().FallbackTone != "friendly and encouraging" {
		t.Errorf("unexpected tone rules %+v", cfg.Tone())
	}
}

func TestRulesConfig_EmptyJSONYieldsZeroValues(t *testing.T) {
	cfg := &RulesConfig{}

	if len(cfg.ContentRules()) != 0 {
		t.Error("empty content rules should parse to an empty map")
	}
	if cfg.Formatting().MaxWordsPerHeadline != 0 {
		t.Error("empty formatting rules should be zero-valued")
	}
}

func TestRulesConfig_MalformedJSONIsTolerated(t *testing.T) {
	cfg := &RulesConfig{OriginalityRulesJSON: "{not json"}

	got := cfg.Originality()
	if got.MaxConsecutiveWords != 0 {
		t.Errorf("malformed JSON should yield zero values, got %+v", got)
	}
}

func TestValidContentType(t *testing.T) {
	valid := []string{
		ContentTypeAdCaption,
		ContentTypeHeadlineOptions,
		ContentTypeCampaignName,
		ContentTypeIGStoryAd,
		ContentTypeCreativePrompt,
	}
	for _, ct := range valid {
		if !ValidContentType(ct) {
			t.Errorf("%q should be valid", ct)
		}
	}

	for _, ct := range []string{"", "caption", "AD_CAPTION", "tweet"} {
		if ValidContentType(ct) {
			t.Errorf("%q should be invalid", ct)
		}
	}
}
