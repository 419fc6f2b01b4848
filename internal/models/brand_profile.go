package models

import (
	"time"

	"gorm.io/gorm"
)

// BrandProfile holds everything the prompt builder knows about a business.
// One per user, written by the onboarding wizard, read-mostly afterwards.
//
// WordsToAvoid and MainProblem must reach the generation prompt verbatim,
// never paraphrased.
type BrandProfile struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	UserID             uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	BusinessName       string         `gorm:"size:200" json:"business_name"`
	WebsiteURL         string         `gorm:"size:500" json:"website_url"`
	BrandColors        string         `gorm:"size:200" json:"brand_colors"` // comma-separated hex values
	TargetMarket       string         `gorm:"size:500" json:"target_market"`
	VoiceToneStyle     string         `gorm:"size:200" json:"voice_tone_style"`
	OfferType          string         `gorm:"size:200" json:"offer_type"`
	CampaignTypePrefs  string         `gorm:"size:500" json:"campaign_type_prefs"` // comma-separated slugs
	SocialHandles      string         `gorm:"size:500" json:"social_handles"`
	CompetitorRefs     string         `gorm:"type:text" json:"competitor_refs"`
	SignatureWords     string         `gorm:"size:500" json:"signature_words"`
	WordsToAvoid       string         `gorm:"size:500" json:"words_to_avoid"` // comma-separated
	MainProblem        string         `gorm:"type:text" json:"main_problem"`
	FailedSolutions    string         `gorm:"type:text" json:"failed_solutions"`
	ClientLanguage     string         `gorm:"type:text" json:"client_language"`
	AspirationalResult string         `gorm:"type:text" json:"aspirational_result"`
	WebsiteToneSummary string         `gorm:"type:text" json:"website_tone_summary"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (BrandProfile) TableName() string { return "brand_profiles" }
