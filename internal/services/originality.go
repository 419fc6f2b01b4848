package services

import (
	"strings"

	"github.com/fitforge/fitforge/internal/models"
	"github.com/fitforge/fitforge/pkg/logger"
)

// OriginalityResult reports overlap between generated copy and the
// historical ad corpus. Violations hold the offending phrases, one per
// distinct overlapping window.
type OriginalityResult struct {
	IsOriginal bool     `json:"is_original"`
	Violations []string `json:"violations"`
}

// CheckOverlap slides a window of windowSize words over the candidate text
// and reports every window that also appears, lowercase word for word, in
// any corpus text. Matches are de-duplicated. A windowSize below 2 or an
// empty corpus yields no violations.
func CheckOverlap(candidate string, corpus []string, windowSize int) *OriginalityResult {
	result := &OriginalityResult{IsOriginal: true}
	if windowSize < 2 || len(corpus) == 0 {
		return result
	}

	corpusWindows := make(map[string]bool)
	for _, text := range corpus {
		words := tokenizeWords(text)
		for i := 0; i+windowSize <= len(words); i++ {
			corpusWindows[strings.Join(words[i:i+windowSize], " ")] = true
		}
	}
	if len(corpusWindows) == 0 {
		return result
	}

	words := tokenizeWords(candidate)
	seen := make(map[string]bool)
	for i := 0; i+windowSize <= len(words); i++ {
		window := strings.Join(words[i:i+windowSize], " ")
		if corpusWindows[window] && !seen[window] {
			seen[window] = true
			result.Violations = append(result.Violations, window)
		}
	}

	result.IsOriginal = len(result.Violations) == 0
	return result
}

// tokenizeWords lowercases and splits on whitespace, trimming punctuation
// from word edges so "results!" and "results" compare equal.
func tokenizeWords(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.Trim(f, ".,!?;:\"'()[]{}*#-—…")
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

// OriginalityService checks generated copy against stored historical ads.
type OriginalityService struct {
	ads   *HistoricalAdService
	rules *RulesConfigService
}

func NewOriginalityService(ads *HistoricalAdService, rules *RulesConfigService) *OriginalityService {
	return &OriginalityService{ads: ads, rules: rules}
}

// Check compares the generated text against the corpus for the given
// campaign. The corpus is scoped to the exact campaign, falling back to a
// bounded sample from campaigns of the same type. A config with
// check_historical_ads off skips the comparison entirely. An empty corpus
// passes, as does a corpus lookup failure: originality is best effort and
// never blocks generation on a storage error.
func (s *OriginalityService) Check(generated, campaignSlug string, rules *models.OriginalityRules) *OriginalityResult {
	if rules != nil && !rules.CheckHistoricalAds {
		return &OriginalityResult{IsOriginal: true}
	}

	windowSize := DefaultMaxConsecutiveWords
	if rules != nil && rules.MaxConsecutiveWords > 0 {
		windowSize = rules.MaxConsecutiveWords
	}

	ads, err := s.ads.CorpusForCampaign(campaignSlug)
	if err != nil {
		logger.Error().Err(err).Str("campaign", campaignSlug).Msg("originality corpus lookup failed")
		return &OriginalityResult{IsOriginal: true}
	}
	if len(ads) == 0 {
		return &OriginalityResult{IsOriginal: true}
	}

	corpus := make([]string, 0, len(ads))
	for _, ad := range ads {
		text := ad.PrimaryText
		if ad.Headline != "" {
			text += "\n" + ad.Headline
		}
		corpus = append(corpus, text)
	}

	result := CheckOverlap(generated, corpus, windowSize)
	if !result.IsOriginal {
		logger.Warn().
			Str("campaign", campaignSlug).
			Int("violations", len(result.Violations)).
			Msg("generated copy overlaps historical ads")
	}
	return result
}
