package models

import "time"

// PatternSnapshot caches the extracted structural patterns for one campaign's
// ad corpus. Refreshed nightly by the scheduler; the generation pipeline still
// extracts fresh per request, snapshots only feed the dashboard.
type PatternSnapshot struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CampaignSlug string    `gorm:"uniqueIndex;size:200;not null" json:"campaign_slug"`
	PatternsJSON string    `gorm:"type:text" json:"patterns"` // JSON: category -> []phrase
	AdCount      int       `json:"ad_count"`
	RefreshedAt  time.Time `json:"refreshed_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (PatternSnapshot) TableName() string { return "pattern_snapshots" }
