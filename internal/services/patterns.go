package services

import (
	"regexp"
	"strings"
)

// StructuralCategory is one of the eight rhetorical building blocks that
// high-performing fitness ads are templated from.
type StructuralCategory string

const (
	CategoryLocalCallout    StructuralCategory = "local_callout"
	CategoryProblemAgitate  StructuralCategory = "problem_agitation"
	CategorySolutionOffer   StructuralCategory = "solution_offer"
	CategoryBenefits        StructuralCategory = "benefits"
	CategoryEligibility     StructuralCategory = "eligibility_checklist"
	CategoryCommunityProof  StructuralCategory = "community_proof"
	CategoryRiskReversal    StructuralCategory = "risk_reversal"
	CategoryScarcityCTA     StructuralCategory = "scarcity_cta"
)

// AllCategories lists the categories in the order the structural checklist
// renders them.
var AllCategories = []StructuralCategory{
	CategoryLocalCallout,
	CategoryProblemAgitate,
	CategorySolutionOffer,
	CategoryBenefits,
	CategoryEligibility,
	CategoryCommunityProof,
	CategoryRiskReversal,
	CategoryScarcityCTA,
}

const maxPatternsPerCategory = 5

// categoryRule is one named predicate over ad text. patterns contribute the
// matched substring as a candidate phrase; corequisites must ALL also match
// somewhere in the same ad for any pattern to count (used by scarcity+CTA,
// where a scarcity term without an action verb is not a real close).
type categoryRule struct {
	category     StructuralCategory
	patterns     []*regexp.Regexp
	corequisites []*regexp.Regexp
}

// PatternSet maps each structural category to up to five unique example
// phrases, in first-seen order.
type PatternSet map[StructuralCategory][]string

// AdCoverage reports which structural elements one ad contains.
type AdCoverage struct {
	AdIndex int                         `json:"ad_index"`
	Present map[StructuralCategory]bool `json:"present"`
}

// ExtractionResult is the pattern extractor output for one corpus.
type ExtractionResult struct {
	Patterns PatternSet   `json:"patterns"`
	Coverage []AdCoverage `json:"coverage"`
}

// PatternExtractor detects structural elements in historical ad text via a
// fixed rule table of case-insensitive regular expressions.
type PatternExtractor struct {
	rules []categoryRule
}

func NewPatternExtractor() *PatternExtractor {
	return &PatternExtractor{rules: defaultCategoryRules()}
}

func defaultCategoryRules() []categoryRule {
	return []categoryRule{
		{
			category: CategoryLocalCallout,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\b(?:attention|calling all)\s+[^.!?\n]{2,50}`),
				regexp.MustCompile(`(?i)\b(?:ladies|women|men|mums|moms|locals)\s+(?:of|in|near)\s+[^.!?\n]{2,40}`),
				regexp.MustCompile(`(?i)\blive\s+(?:in|near|around)\s+[^.!?\n]{2,40}`),
			},
		},
		{
			category: CategoryProblemAgitate,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\b(?:tired of|sick of|fed up with|frustrated with|struggling with|struggling to)\s+[^.!?\n]{2,60}`),
				regexp.MustCompile(`(?i)\b(?:tried everything|nothing(?:'s| has)? worked|yo-yo diet\w*)[^.!?\n]{0,40}`),
			},
		},
		{
			category: CategorySolutionOffer,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\b(?:introducing|that's why we|we'?ve created|we'?ve designed|here'?s how)\s+[^.!?\n]{2,60}`),
				regexp.MustCompile(`(?i)\bour\s+\d+[- ](?:week|day)\s+[^.!?\n]{2,50}`),
			},
		},
		{
			category: CategoryBenefits,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\byou(?:'ll| will)\s+(?:get|feel|see|lose|gain|build|learn)\s+[^.!?\n]{2,60}`),
				regexp.MustCompile(`(?m)^\s*(?:✅|✔️|•|-|\*)\s*[^\n]{3,80}`),
			},
		},
		{
			category: CategoryEligibility,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\bthis is (?:perfect )?for you if\b[^\n]{0,80}`),
				regexp.MustCompile(`(?i)\bif you'?(?:re| are)\s+[^.!?\n]{2,60}`),
			},
		},
		{
			category: CategoryCommunityProof,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\b(?:join|joined by|over)\s+\d+\+?\s*(?:women|men|mums|moms|members|locals|people)[^.!?\n]{0,50}`),
				regexp.MustCompile(`(?i)\bour (?:community|members|clients)\s+(?:have|love|are)\s+[^.!?\n]{2,60}`),
			},
		},
		{
			category: CategoryRiskReversal,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\b(?:money[- ]back guarantee|risk[- ]free|no risk|nothing to lose|cancel anytime|no lock[- ]in)[^.!?\n]{0,40}`),
			},
		},
		{
			category: CategoryScarcityCTA,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\b(?:only \d+ (?:spots?|spaces|places)|spots? (?:are )?(?:strictly )?limited|limited (?:spots?|spaces|time)|doors close[^.!?\n]{0,30}|last chance[^.!?\n]{0,30})`),
			},
			corequisites: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\b(?:click|tap|comment|message|dm|apply|register|sign up|book|claim|send)\b`),
			},
		},
	}
}

// Extract scans the corpus and returns up to five unique phrases per
// category plus a per-ad coverage report. An empty corpus yields empty
// category lists; that is not an error, the prompt builder falls back to
// generic phrasing.
func (e *PatternExtractor) Extract(texts []string) *ExtractionResult {
	result := &ExtractionResult{
		Patterns: make(PatternSet, len(AllCategories)),
		Coverage: make([]AdCoverage, 0, len(texts)),
	}
	for _, cat := range AllCategories {
		result.Patterns[cat] = []string{}
	}

	seen := make(map[StructuralCategory]map[string]bool)
	for _, cat := range AllCategories {
		seen[cat] = make(map[string]bool)
	}

	for i, text := range texts {
		coverage := AdCoverage{AdIndex: i, Present: make(map[StructuralCategory]bool)}

		for _, rule := range e.rules {
			if !corequisitesMet(rule, text) {
				coverage.Present[rule.category] = false
				continue
			}

			matched := false
			for _, re := range rule.patterns {
				for _, m := range re.FindAllString(text, -1) {
					matched = true
					phrase := strings.TrimSpace(m)
					if phrase == "" {
						continue
					}
					key := strings.ToLower(phrase)
					if seen[rule.category][key] {
						continue
					}
					if len(result.Patterns[rule.category]) >= maxPatternsPerCategory {
						continue
					}
					seen[rule.category][key] = true
					result.Patterns[rule.category] = append(result.Patterns[rule.category], phrase)
				}
			}
			coverage.Present[rule.category] = matched
		}

		result.Coverage = append(result.Coverage, coverage)
	}

	return result
}

func corequisitesMet(rule categoryRule, text string) bool {
	for _, re := range rule.corequisites {
		if !re.MatchString(text) {
			return false
		}
	}
	return true
}
