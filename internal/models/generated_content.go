package models

import (
	"time"

	"gorm.io/gorm"
)

// Content types accepted by the generation pipeline. The enumeration is
// fixed and shared across the API, the rules config, and stored rows.
const (
	ContentTypeAdCaption       = "ad_caption"
	ContentTypeHeadlineOptions = "headline_options"
	ContentTypeCampaignName    = "campaign_name"
	ContentTypeIGStoryAd       = "ig_story_ad"
	ContentTypeCreativePrompt  = "creative_prompt"
)

// ValidContentType reports whether t is one of the fixed content types.
func ValidContentType(t string) bool {
	switch t {
	case ContentTypeAdCaption, ContentTypeHeadlineOptions, ContentTypeCampaignName,
		ContentTypeIGStoryAd, ContentTypeCreativePrompt:
		return true
	}
	return false
}

// Generation statuses for async jobs.
const (
	GenerationStatusPending   = "pending"
	GenerationStatusCompleted = "completed"
	GenerationStatusFailed    = "failed"
)

// GeneratedContent is one generation result. Rows are created per generation
// call and mutated only by user edit or regeneration; they are never
// auto-deleted.
type GeneratedContent struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	UserID             uint           `gorm:"index;not null" json:"user_id"`
	RequestID          string         `gorm:"index;size:36" json:"request_id"` // uuid per generation call
	ContentType        string         `gorm:"index;size:50;not null" json:"content_type"`
	Text               string         `gorm:"type:text" json:"text"`
	CampaignSlug       string         `gorm:"index;size:200" json:"campaign_slug"`
	Status             string         `gorm:"size:20;default:pending" json:"status"` // pending, completed, failed
	ErrorMessage       string         `gorm:"type:text" json:"error_message,omitempty"`
	ComplianceStatus   string         `gorm:"size:20" json:"compliance_status"` // passed, fixed, failed
	OriginalityWarning bool           `gorm:"default:false" json:"originality_warning"`
	LLMName            string         `gorm:"size:100" json:"llm_name"` // which configured model produced it
	EditedByUser       bool           `gorm:"default:false" json:"edited_by_user"`
	GeneratedAt        *time.Time     `json:"generated_at"`
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (GeneratedContent) TableName() string { return "generated_contents" }
