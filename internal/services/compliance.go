package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fitforge/fitforge/internal/models"
	"github.com/fitforge/fitforge/pkg/logger"
	"gorm.io/gorm"
)

// compliancePolicyRubric is the fixed policy the evaluation model judges
// against. Meta ad policy plus the claims rules that get fitness ads
// rejected or accounts flagged.
const compliancePolicyRubric = `You are an ad-policy reviewer for fitness marketing content.

Evaluate the content below against every rule:
1. NO exaggerated or guaranteed outcome claims ("lose 20 lbs in 2 weeks", "guaranteed results").
2. NO targeting by insecurity or implying the reader has a flaw ("hate your body?", "embarrassed by your arms?").
3. NO before/after claims that cannot be verified, and no implied typical results from a single testimonial.
4. NO discriminatory targeting or exclusion by age, gender, race, religion, or disability.
5. NO unrealistic timelines or effort-free promises ("no diets, no workouts, instant results").
6. NO medical claims (curing, treating, or diagnosing any condition).
7. NO engagement bait ("comment YES", "tag a friend who needs this", "share if you agree").
{{words_to_avoid_rule}}{{brand_tone_rule}}

Respond with ONLY a JSON object, no markdown, no commentary:
{
  "compliant": true/false,
  "violations": [{"rule": "RULE_NAME", "reason": "why it violates", "snippet": "offending text"}],
  "fixed_text": "a compliant rewrite preserving the message, or empty string if no safe rewrite exists"
}

Content type: {{content_type}}

Content to evaluate:
{{content}}`

// ComplianceViolation is one rule breach in a verdict.
type ComplianceViolation struct {
	Rule    string `json:"rule"`
	Reason  string `json:"reason"`
	Snippet string `json:"snippet,omitempty"`
}

// ComplianceResult is the structured outcome of one check. It is always
// returned, even when the evaluation model fails or answers garbage.
type ComplianceResult struct {
	Status     string                `json:"status"` // passed, fixed, failed
	Compliant  bool                  `json:"compliant"`
	Score      float64               `json:"score"` // passed 1.0, fixed 0.5, failed 0
	FixedText  string                `json:"fixed_text"`
	Violations []ComplianceViolation `json:"violations"`
}

// complianceVerdict mirrors the JSON shape the evaluation model is asked
// to return.
type complianceVerdict struct {
	Compliant  bool                  `json:"compliant"`
	Violations []ComplianceViolation `json:"violations"`
	FixedText  string                `json:"fixed_text"`
}

type ComplianceService struct {
	db    *gorm.DB
	ai    *AIService
	rules *RulesConfigService
}

func NewComplianceService(db *gorm.DB, ai *AIService) *ComplianceService {
	return &ComplianceService{db: db, ai: ai, rules: NewRulesConfigService(db)}
}

// CheckRequest carries one compliance evaluation. ContentID links the
// audit row to a pipeline-generated row when the check runs inside the
// generation flow; it is nil for standalone checks.
type CheckRequest struct {
	UserID       uint
	ContentID    *uint
	Content      string
	ContentType  string
	BrandTone    string
	WordsToAvoid []string
}

// Check evaluates content against the policy rubric. It never returns an
// error: upstream and parse failures become synthetic violations with
// status failed, and every invocation is recorded in the audit log.
func (s *ComplianceService) Check(ctx context.Context, req *CheckRequest) *ComplianceResult {
	prompt := s.buildPrompt(req)

	var result *ComplianceResult
	var llmName string

	gen, err := s.ai.Generate(ctx, prompt, 0)
	if err != nil {
		logger.Error().Err(err).Msg("compliance evaluation call failed")
		result = &ComplianceResult{
			Status:    models.ComplianceStatusFailed,
			Compliant: false,
			Violations: []ComplianceViolation{{
				Rule:   "SYSTEM_ERROR",
				Reason: fmt.Sprintf("compliance evaluation unavailable: %v", err),
			}},
		}
	} else {
		llmName = gen.LLMName
		result = s.parseVerdict(gen.Content)
	}

	// Words-to-avoid is enforced locally as well: the model can miss it.
	// The active config's safety switch can turn this pass off.
	if s.wordsToAvoidEnforced() {
		applyWordsToAvoid(result, req.Content, req.WordsToAvoid)
	}

	result.Score = complianceScore(result.Status)

	s.recordCheck(req, result, llmName)
	return result
}

// wordsToAvoidEnforced reads the enforcement switch from the active rules
// config, fresh per check. A lookup failure keeps enforcement on.
func (s *ComplianceService) wordsToAvoidEnforced() bool {
	if s.rules == nil {
		return true
	}
	resolved, err := s.rules.GetActive()
	if err != nil {
		logger.Warn().Err(err).Msg("rules lookup failed, keeping words-to-avoid enforcement on")
		return true
	}
	return SafetyOrDefaults(resolved).EnforceWordsToAvoid
}

// applyWordsToAvoid scans the text the caller would publish and folds any
// hits into the verdict, downgrading a passed status to failed.
func applyWordsToAvoid(result *ComplianceResult, content string, wordsToAvoid []string) {
	if len(wordsToAvoid) == 0 {
		return
	}
	for _, v := range CheckWordsToAvoid(effectiveText(content, result), wordsToAvoid) {
		result.Violations = append(result.Violations, v)
		result.Compliant = false
		if result.Status == models.ComplianceStatusPassed {
			result.Status = models.ComplianceStatusFailed
		}
	}
}

// complianceScore collapses the verdict status into a numeric score.
func complianceScore(status string) float64 {
	switch status {
	case models.ComplianceStatusPassed:
		return 1.0
	case models.ComplianceStatusFixed:
		return 0.5
	default:
		return 0
	}
}

// effectiveText is the text the caller would end up publishing: the fix if
// one was produced, otherwise the original content.
func effectiveText(content string, result *ComplianceResult) string {
	if result.Status == models.ComplianceStatusFixed && result.FixedText != "" {
		return result.FixedText
	}
	return content
}

// CheckWordsToAvoid scans text for brand-prohibited entries, matching whole
// words case-insensitively. Multi-word entries match as a consecutive run
// of tokens, so "crash diet" is caught even though no single token equals it.
func CheckWordsToAvoid(text string, wordsToAvoid []string) []ComplianceViolation {
	var violations []ComplianceViolation
	textWords := tokenizeWords(text)
	present := make(map[string]bool, len(textWords))
	for _, w := range textWords {
		present[w] = true
	}

	for _, avoid := range wordsToAvoid {
		avoidWords := tokenizeWords(avoid)
		if len(avoidWords) == 0 {
			continue
		}
		phrase := strings.Join(avoidWords, " ")

		found := false
		if len(avoidWords) == 1 {
			found = present[phrase]
		} else {
			for i := 0; i+len(avoidWords) <= len(textWords); i++ {
				if strings.Join(textWords[i:i+len(avoidWords)], " ") == phrase {
					found = true
					break
				}
			}
		}

		if found {
			violations = append(violations, ComplianceViolation{
				Rule:    "WORDS_TO_AVOID",
				Reason:  fmt.Sprintf("contains brand-prohibited phrase %q", phrase),
				Snippet: phrase,
			})
		}
	}
	return violations
}

func (s *ComplianceService) buildPrompt(req *CheckRequest) string {
	prompt := compliancePolicyRubric

	wordsRule := ""
	if len(req.WordsToAvoid) > 0 {
		wordsRule = fmt.Sprintf("8. NO use of these brand-prohibited words in any form: %s.\n",
			strings.Join(req.WordsToAvoid, ", "))
	}
	toneRule := ""
	if req.BrandTone != "" {
		toneRule = fmt.Sprintf("9. The content must match this brand voice: %s.\n", req.BrandTone)
	}

	prompt = strings.ReplaceAll(prompt, "{{words_to_avoid_rule}}", wordsRule)
	prompt = strings.ReplaceAll(prompt, "{{brand_tone_rule}}", toneRule)
	prompt = strings.ReplaceAll(prompt, "{{content_type}}", req.ContentType)
	prompt = strings.ReplaceAll(prompt, "{{content}}", req.Content)
	return prompt
}

// parseVerdict decodes the model's JSON verdict. Models wrap JSON in code
// fences or prepend prose often enough that both are stripped before
// decoding. An unparseable verdict becomes a PARSE_ERROR failure.
func (s *ComplianceService) parseVerdict(raw string) *ComplianceResult {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if start := strings.Index(cleaned, "{"); start > 0 {
		cleaned = cleaned[start:]
	}
	if end := strings.LastIndex(cleaned, "}"); end >= 0 && end < len(cleaned)-1 {
		cleaned = cleaned[:end+1]
	}

	var verdict complianceVerdict
	if err := json.Unmarshal([]byte(cleaned), &verdict); err != nil {
		logger.Error().Err(err).Str("raw", truncateForLog(raw, 200)).Msg("unparseable compliance verdict")
		return &ComplianceResult{
			Status:    models.ComplianceStatusFailed,
			Compliant: false,
			Violations: []ComplianceViolation{{
				Rule:   "PARSE_ERROR",
				Reason: "evaluation model returned an unparseable verdict",
			}},
		}
	}

	result := &ComplianceResult{
		Compliant:  verdict.Compliant,
		FixedText:  verdict.FixedText,
		Violations: verdict.Violations,
	}
	switch {
	case verdict.Compliant:
		result.Status = models.ComplianceStatusPassed
	case verdict.FixedText != "":
		result.Status = models.ComplianceStatusFixed
	default:
		result.Status = models.ComplianceStatusFailed
	}
	return result
}

// recordCheck appends the audit row. Insert failures are logged and
// swallowed: an audit problem must never mask a computed verdict.
func (s *ComplianceService) recordCheck(req *CheckRequest, result *ComplianceResult, llmName string) {
	violationsJSON := "[]"
	if len(result.Violations) > 0 {
		if b, err := json.Marshal(result.Violations); err == nil {
			violationsJSON = string(b)
		}
	}

	record := models.ComplianceCheck{
		UserID:         req.UserID,
		ContentID:      req.ContentID,
		ContentType:    req.ContentType,
		InputText:      req.Content,
		Status:         result.Status,
		ViolationsJSON: violationsJSON,
		FixedText:      result.FixedText,
		LLMName:        llmName,
	}
	if err := s.db.Create(&record).Error; err != nil {
		logger.Error().Err(err).Msg("failed to persist compliance audit record")
	}
}

// ListChecks returns the audit trail for one user, newest first.
func (s *ComplianceService) ListChecks(userID uint, limit int) ([]models.ComplianceCheck, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var checks []models.ComplianceCheck
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&checks).Error
	return checks, err
}

func truncateForLog(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
