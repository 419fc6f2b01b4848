package models

import "time"

// CampaignTemplate is a catalog entry describing a reusable campaign concept.
// Not user-owned; consumed as immutable reference data by the classifier.
type CampaignTemplate struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:200;not null" json:"name"`
	CanonicalSlug  string    `gorm:"uniqueIndex;size:200;not null" json:"canonical_slug"`
	Category       string    `gorm:"size:100" json:"category"`
	CampaignType   string    `gorm:"size:50" json:"campaign_type"` // recruitment, service, challenge, transformation, generic; empty means infer from slug
	TargetAudience string    `gorm:"size:500" json:"target_audience"`
	Season         string    `gorm:"size:50" json:"season"` // new_year, spring, summer, autumn, winter, holiday_season
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (CampaignTemplate) TableName() string { return "campaign_templates" }
