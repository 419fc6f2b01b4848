package services

import (
	"fmt"
	"strings"

	"github.com/fitforge/fitforge/internal/models"
)

// PromptInput carries everything the prompt builder may use. Only
// ContentType and TaskInstructions are required; every other field degrades
// gracefully when absent.
type PromptInput struct {
	ContentType         string
	TaskInstructions    string
	Profile             *models.BrandProfile
	Rules               *ResolvedRules
	Patterns            PatternSet
	CampaignType        CampaignType
	CampaignName        string
	CampaignDescription string
	AvoidPhrases        []string // extra phrases to steer away from, set on regeneration
}

// Generic fallback phrasing per structural category, used when the corpus
// produced no patterns for a category. Placeholders in brackets are filled
// by the model.
var fallbackChecklistPhrases = map[StructuralCategory]string{
	CategoryLocalCallout:   `"Attention [LOCATION] [TARGET AUDIENCE]!"`,
	CategoryProblemAgitate: `"Tired of [SPECIFIC FRUSTRATION]?"`,
	CategorySolutionOffer:  `"That's why we created [OFFER NAME]."`,
	CategoryBenefits:       `"You'll get [CONCRETE BENEFIT]" (3-4 bullet points)`,
	CategoryEligibility:    `"This is for you if [QUALIFIER]."`,
	CategoryCommunityProof: `"Join [NUMBER]+ [AUDIENCE] who already [RESULT]."`,
	CategoryRiskReversal:   `"[GUARANTEE OR NO-RISK STATEMENT]."`,
	CategoryScarcityCTA:    `"Only [N] spots left — [ACTION VERB] now."`,
}

var checklistLabels = map[StructuralCategory]string{
	CategoryLocalCallout:   "Local callout",
	CategoryProblemAgitate: "Problem agitation",
	CategorySolutionOffer:  "Solution offer",
	CategoryBenefits:       "Benefits",
	CategoryEligibility:    "Eligibility checklist",
	CategoryCommunityProof: "Community proof",
	CategoryRiskReversal:   "Risk reversal",
	CategoryScarcityCTA:    "Scarcity and call to action",
}

// campaignContextBlock returns type-specific framing. Each branch states
// what the ad is and what it must not sound like, so patterns filtered in
// from one type cannot pull the copy off theme.
func campaignContextBlock(campaignType CampaignType, name, description string) string {
	var b strings.Builder
	b.WriteString("## Campaign context\n")
	if name != "" {
		b.WriteString("Campaign: " + name + "\n")
	}
	if description != "" {
		b.WriteString("Audience: " + description + "\n")
	}

	switch campaignType {
	case CampaignTypeRecruitment:
		b.WriteString("This is a RECRUITMENT campaign: we are inviting specific people to join the community. " +
			"Frame it as an open invitation for a kind of person, not a program with a duration. " +
			"Do NOT mention week counts, challenges, transformations, or program timelines.\n")
	case CampaignTypeService:
		b.WriteString("This is a SERVICE campaign promoting ongoing coaching. " +
			"Emphasize expertise, personal attention, and long-term support. " +
			"Do NOT frame it as a short-term challenge or a recruitment drive.\n")
	case CampaignTypeChallenge:
		b.WriteString("This is a CHALLENGE campaign with a defined duration and start date. " +
			"Lean into the deadline, the structure, and the finish-line feeling. " +
			"Do NOT use recruiting language like 'wanted' or 'seeking'.\n")
	case CampaignTypeTransformation:
		b.WriteString("This is a TRANSFORMATION campaign about visible long-term change. " +
			"Focus on the journey and the outcome, grounded in real client experiences. " +
			"Do NOT use recruiting language or unverifiable before/after claims.\n")
	default:
		b.WriteString("General brand campaign: focus on the brand's core offer and audience.\n")
	}

	return b.String()
}

// BuildGenerationPrompt composes the full instruction document for the
// generation model. Brand fields are injected verbatim, never paraphrased.
// It never fails: with a nil profile and nil rules it still produces a
// usable prompt from the task instructions and built-in defaults.
func BuildGenerationPrompt(in *PromptInput) string {
	var b strings.Builder

	b.WriteString("You are an expert Meta-ads copywriter for fitness businesses. ")
	b.WriteString("Write " + contentTypeLabel(in.ContentType) + " following every rule below.\n\n")

	b.WriteString(campaignContextBlock(in.CampaignType, in.CampaignName, in.CampaignDescription))
	b.WriteString("\n")

	writeBrandBlock(&b, in.Profile, in.Rules)
	writeConstraintsBlock(&b, in)
	writeChecklistBlock(&b, in.Patterns)

	if len(in.AvoidPhrases) > 0 {
		b.WriteString("## Do not reuse\n")
		b.WriteString("Previous drafts overlapped with existing ads. Do not reuse any of these phrases:\n")
		for _, p := range in.AvoidPhrases {
			b.WriteString("- \"" + p + "\"\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("## Task\n")
	b.WriteString(in.TaskInstructions)
	b.WriteString("\n")

	return b.String()
}

func contentTypeLabel(contentType string) string {
	switch contentType {
	case models.ContentTypeAdCaption:
		return "one Meta ad caption"
	case models.ContentTypeHeadlineOptions:
		return "a set of ad headline options"
	case models.ContentTypeCampaignName:
		return "a campaign name"
	case models.ContentTypeIGStoryAd:
		return "an Instagram Story ad script"
	case models.ContentTypeCreativePrompt:
		return "a creative brief for the ad's visual"
	default:
		return "ad copy"
	}
}

func writeBrandBlock(b *strings.Builder, profile *models.BrandProfile, rules *ResolvedRules) {
	fallbackTone := DefaultFallbackTone
	if rules != nil && rules.Tone.FallbackTone != "" {
		fallbackTone = rules.Tone.FallbackTone
	}

	b.WriteString("## Brand\n")
	if profile == nil {
		b.WriteString("Voice and tone: " + fallbackTone + "\n\n")
		return
	}

	if profile.BusinessName != "" {
		b.WriteString("Business: " + profile.BusinessName + "\n")
	}
	if profile.TargetMarket != "" {
		b.WriteString("Target market: " + profile.TargetMarket + "\n")
	}
	if profile.VoiceToneStyle != "" {
		b.WriteString("Voice and tone: " + profile.VoiceToneStyle + "\n")
	} else {
		b.WriteString("Voice and tone: " + fallbackTone + "\n")
	}
	if profile.SignatureWords != "" {
		b.WriteString("Brand signature words to weave in naturally: " + profile.SignatureWords + "\n")
	}
	if profile.MainProblem != "" {
		b.WriteString("The main problem our customers have, in our words (use this framing exactly): \"" +
			profile.MainProblem + "\"\n")
	}
	if profile.FailedSolutions != "" {
		b.WriteString("What they already tried that failed: \"" + profile.FailedSolutions + "\"\n")
	}
	if profile.ClientLanguage != "" {
		b.WriteString("Exact phrases our clients use (mirror this language): \"" +
			profile.ClientLanguage + "\"\n")
	}
	if profile.AspirationalResult != "" {
		b.WriteString("The outcome they want: \"" + profile.AspirationalResult + "\"\n")
	}
	if profile.WordsToAvoid != "" {
		b.WriteString("NEVER use these words, in any form: " + profile.WordsToAvoid + "\n")
	}
	b.WriteString("\n")
}

func writeConstraintsBlock(b *strings.Builder, in *PromptInput) {
	maxHeadlineWords := DefaultMaxWordsPerHeadline
	hookMin, hookMax := DefaultHookMinWords, DefaultHookMaxWords
	maxEmojis := DefaultMaxEmojis
	maxConsecutive := DefaultMaxConsecutiveWords
	prohibited := DefaultEngagementBaitPhrases
	bulletStyle := ""

	if in.Rules != nil {
		f := in.Rules.Formatting
		if f.MaxWordsPerHeadline > 0 {
			maxHeadlineWords = f.MaxWordsPerHeadline
		}
		if f.HookMinWords > 0 {
			hookMin = f.HookMinWords
		}
		if f.HookMaxWords > 0 {
			hookMax = f.HookMaxWords
		}
		if f.MaxEmojis > 0 {
			maxEmojis = f.MaxEmojis
		}
		bulletStyle = f.BulletStyle
		if in.Rules.Originality.MaxConsecutiveWords > 0 {
			maxConsecutive = in.Rules.Originality.MaxConsecutiveWords
		}
		if len(in.Rules.Safety.ProhibitedPhrases) > 0 {
			prohibited = in.Rules.Safety.ProhibitedPhrases
		}
	}

	b.WriteString("## Formatting rules\n")
	fmt.Fprintf(b, "- Headlines: at most %d words each\n", maxHeadlineWords)
	fmt.Fprintf(b, "- Opening hook: %d to %d words\n", hookMin, hookMax)
	fmt.Fprintf(b, "- Emojis: at most %d total\n", maxEmojis)
	if bulletStyle != "" {
		fmt.Fprintf(b, "- Bullet style: %s\n", bulletStyle)
	}
	fmt.Fprintf(b, "- Never copy more than %d consecutive words from any existing ad\n", maxConsecutive)

	if in.Rules != nil {
		if rule, ok := in.Rules.ContentRules[in.ContentType]; ok {
			if rule.MaxLength > 0 {
				fmt.Fprintf(b, "- Maximum length: %d characters\n", rule.MaxLength)
			}
			if rule.MaxWords > 0 {
				fmt.Fprintf(b, "- Maximum words: %d\n", rule.MaxWords)
			}
			if rule.Structure != "" {
				fmt.Fprintf(b, "- Required structure: %s\n", rule.Structure)
			}
		}
	}

	b.WriteString("- Prohibited phrases: ")
	b.WriteString(strings.Join(prohibited, "; "))
	b.WriteString("\n\n")
}

func writeChecklistBlock(b *strings.Builder, patterns PatternSet) {
	b.WriteString("## Structure\n")
	b.WriteString("Follow this checklist in order. Where example phrases from our own top ads are given, " +
		"match their style without copying them:\n")

	for i, cat := range AllCategories {
		fmt.Fprintf(b, "%d. %s", i+1, checklistLabels[cat])
		examples := patterns[cat]
		if len(examples) > 0 {
			b.WriteString(" — style reference: ")
			quoted := make([]string, len(examples))
			for j, e := range examples {
				quoted[j] = "\"" + e + "\""
			}
			b.WriteString(strings.Join(quoted, ", "))
		} else {
			b.WriteString(" — e.g. " + fallbackChecklistPhrases[cat])
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}
