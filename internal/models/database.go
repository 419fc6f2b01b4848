package models

import (
	"fmt"

	"github.com/fitforge/fitforge/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(cfg *config.DatabaseConfig) error {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	DB = db
	return nil
}

func AutoMigrate() error {
	return DB.AutoMigrate(
		&User{},
		&BrandProfile{},
		&CampaignTemplate{},
		&HistoricalAd{},
		&RulesConfig{},
		&GeneratedContent{},
		&ComplianceCheck{},
		&PatternSnapshot{},
		&LLMConfig{},
		&SystemConfig{},
		&SystemLog{},
	)
}

func GetDB() *gorm.DB {
	return DB
}

// SeedDefaultData creates reference data if not present: the campaign
// template catalog, the initial active rules config, and system config keys.
func SeedDefaultData() error {
	if err := seedCampaignCatalog(); err != nil {
		return err
	}
	if err := seedRulesConfig(); err != nil {
		return err
	}
	return seedSystemConfigs()
}

func seedCampaignCatalog() error {
	var count int64
	DB.Model(&CampaignTemplate{}).Count(&count)
	if count > 0 {
		return nil
	}

	catalog := []CampaignTemplate{
		{
			Name:           "Ladies Wanted",
			CanonicalSlug:  "ladies-wanted",
			Category:       "lead_generation",
			CampaignType:   "recruitment",
			TargetAudience: "Local women who want a supportive training environment",
		},
		{
			Name:           "6 Week Challenge",
			CanonicalSlug:  "6-week-challenge",
			Category:       "challenge",
			CampaignType:   "challenge",
			TargetAudience: "Beginners looking for a structured short program with a deadline",
		},
		{
			Name:           "Personal Training",
			CanonicalSlug:  "personal-training",
			Category:       "service",
			CampaignType:   "service",
			TargetAudience: "Clients who want 1:1 coaching and accountability",
		},
		{
			Name:           "12 Week Transformation",
			CanonicalSlug:  "12-week-transformation",
			Category:       "transformation",
			CampaignType:   "transformation",
			TargetAudience: "People committed to a visible body transformation",
		},
		{
			Name:           "Summer Shred",
			CanonicalSlug:  "summer-shred",
			Category:       "challenge",
			CampaignType:   "challenge",
			TargetAudience: "Members who want to lean out before summer",
			Season:         "summer",
		},
		{
			Name:           "New Year Kickstart",
			CanonicalSlug:  "new-year-kickstart",
			Category:       "challenge",
			CampaignType:   "challenge",
			TargetAudience: "Resolution makers starting fresh in January",
			Season:         "new_year",
		},
	}

	for i := range catalog {
		if err := DB.Create(&catalog[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedRulesConfig() error {
	var count int64
	DB.Model(&RulesConfig{}).Where("is_active = ?", true).Count(&count)
	if count > 0 {
		return nil
	}

	cfg := RulesConfig{
		Name:     "default",
		Version:  1,
		IsActive: true,
		ContentRulesJSON: `{
  "ad_caption":      {"max_length": 2200, "max_words": 300, "structure": "hook, body, cta"},
  "headline_options": {"max_length": 255, "max_words": 40, "structure": "5 headline variants, one per line"},
  "campaign_name":   {"max_length": 100, "max_words": 12, "structure": "single line"},
  "ig_story_ad":     {"max_length": 1000, "max_words": 150, "structure": "3 story frames"},
  "creative_prompt": {"max_length": 1500, "max_words": 250, "structure": "scene description"}
}`,
		SafetyRulesJSON: `{
  "prohibited_phrases": ["lose weight fast", "guaranteed results", "melt fat", "no effort required"],
  "enforce_words_to_avoid": true
}`,
		FormattingRulesJSON: `{
  "max_words_per_headline": 7,
  "hook_min_words": 5,
  "hook_max_words": 10,
  "bullet_style": "checkmark",
  "max_emojis": 3
}`,
		OriginalityRulesJSON: `{
  "max_consecutive_words": 5,
  "check_historical_ads": true,
  "max_regeneration_attempts": 2
}`,
		ToneRulesJSON: `{
  "fallback_tone": "friendly and encouraging",
  "require_consistency": true
}`,
	}

	return DB.Create(&cfg).Error
}

func seedSystemConfigs() error {
	defaults := []SystemConfig{
		{Key: "log_retention_days", Value: "30", Type: "int", Group: "system", Label: "System Log Retention Days"},
		{Key: "pattern_snapshot_cron", Value: "0 3 * * *", Type: "string", Group: "patterns", Label: "Pattern Snapshot Refresh Schedule"},
		{Key: "compliance_brand_tone_required", Value: "false", Type: "bool", Group: "compliance", Label: "Require Brand Tone For Compliance Checks"},
		{Key: "seasonal_country", Value: "US", Type: "string", Group: "campaigns", Label: "Holiday Calendar Country"},
	}

	for _, cfg := range defaults {
		var count int64
		DB.Model(&SystemConfig{}).Where("`key` = ?", cfg.Key).Count(&count)
		if count == 0 {
			if err := DB.Create(&cfg).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
