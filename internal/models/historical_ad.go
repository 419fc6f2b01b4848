package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"gorm.io/gorm"
)

// HistoricalAd is a previously run, performance-labeled ad. The pattern
// extractor and originality checker read these as a corpus.
type HistoricalAd struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"index" json:"user_id"`
	PrimaryText   string         `gorm:"type:text;not null" json:"primary_text"`
	Headline      string         `gorm:"size:500" json:"headline"`
	Tone          string         `gorm:"size:100" json:"tone"`
	HookType      string         `gorm:"size:100" json:"hook_type"`
	Platforms     string         `gorm:"size:200" json:"platforms"` // comma-separated: facebook,instagram
	CampaignSlug  string         `gorm:"index;size:200" json:"campaign_slug"` // FK to CampaignTemplate.CanonicalSlug
	OutcomeMetric float64        `json:"outcome_metric"` // leads or conversions attributed
	CostMetric    float64        `json:"cost_metric"`    // spend in account currency
	ContentHash   string         `gorm:"uniqueIndex;size:64;not null" json:"content_hash"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (HistoricalAd) TableName() string { return "historical_ads" }

// AdContentHash derives the deduplication key from the ad text pair.
// Deterministic so re-imports of the same ad are idempotent.
func AdContentHash(primaryText, headline string) string {
	sum := sha256.Sum256([]byte(primaryText + "\n" + headline))
	return hex.EncodeToString(sum[:])
}

// BeforeCreate fills the content hash when the importer did not.
func (a *HistoricalAd) BeforeCreate(tx *gorm.DB) error {
	if a.ContentHash == "" {
		a.ContentHash = AdContentHash(a.PrimaryText, a.Headline)
	}
	return nil
}
