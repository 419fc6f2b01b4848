package services

import (
	"errors"

	"github.com/fitforge/fitforge/internal/models"
	"github.com/fitforge/fitforge/pkg/logger"
	"gorm.io/gorm"
)

// Fallback constants used when no rules config row is active. Documented
// here so the prompt builder and originality checker degrade predictably.
const (
	DefaultMaxWordsPerHeadline     = 7
	DefaultHookMinWords            = 5
	DefaultHookMaxWords            = 10
	DefaultMaxEmojis               = 3
	DefaultMaxConsecutiveWords     = 5
	DefaultMaxRegenerationAttempts = 2
	DefaultFallbackTone            = "friendly and encouraging"
)

// DefaultEngagementBaitPhrases are always prohibited, even without an
// active rules config. Meta penalizes engagement bait hard.
var DefaultEngagementBaitPhrases = []string{
	"tag a friend",
	"comment below to win",
	"like and share",
	"share this post",
}

// ResolvedRules is the parsed view of the active RulesConfig the pipeline
// consumes. Nil means no active config; every reader has a fallback.
type ResolvedRules struct {
	ConfigID     uint
	Version      int
	ContentRules map[string]models.ContentTypeRule
	Safety       models.SafetyRules
	Formatting   models.FormattingRules
	Originality  models.OriginalityRules
	Tone         models.ToneRules
}

// RulesConfigService reads and versions the global rules document.
type RulesConfigService struct {
	db *gorm.DB
}

func NewRulesConfigService(db *gorm.DB) *RulesConfigService {
	return &RulesConfigService{db: db}
}

// GetActive fetches and parses the single active rules config. It is called
// once per generation request, never cached across requests, so a rules
// update applies to the next request. Returns (nil, nil) when no config is
// active; callers must treat that as "use defaults", not as a failure.
func (s *RulesConfigService) GetActive() (*ResolvedRules, error) {
	var cfg models.RulesConfig
	err := s.db.Where("is_active = ?", true).Order("version DESC").First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Warn().Msg("no active rules config, generation will use built-in defaults")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &ResolvedRules{
		ConfigID:     cfg.ID,
		Version:      cfg.Version,
		ContentRules: cfg.ContentRules(),
		Safety:       cfg.Safety(),
		Formatting:   cfg.Formatting(),
		Originality:  cfg.Originality(),
		Tone:         cfg.Tone(),
	}, nil
}

// GetActiveRaw returns the active row unparsed, for the admin API.
func (s *RulesConfigService) GetActiveRaw() (*models.RulesConfig, error) {
	var cfg models.RulesConfig
	if err := s.db.Where("is_active = ?", true).Order("version DESC").First(&cfg).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *RulesConfigService) List() ([]models.RulesConfig, error) {
	var configs []models.RulesConfig
	if err := s.db.Order("version DESC").Find(&configs).Error; err != nil {
		return nil, err
	}
	return configs, nil
}

// Publish activates a new rules config version. The previous active config
// is deactivated in the same transaction, preserving the one-active
// invariant.
func (s *RulesConfigService) Publish(cfg *models.RulesConfig) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var maxVersion int
		row := tx.Model(&models.RulesConfig{}).Select("COALESCE(MAX(version), 0)").Row()
		if err := row.Scan(&maxVersion); err != nil {
			return err
		}

		if err := tx.Model(&models.RulesConfig{}).Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}

		cfg.Version = maxVersion + 1
		cfg.IsActive = true
		return tx.Create(cfg).Error
	})
}

// OriginalityOrDefaults resolves originality settings with fallbacks applied.
func OriginalityOrDefaults(rules *ResolvedRules) models.OriginalityRules {
	out := models.OriginalityRules{
		MaxConsecutiveWords:     DefaultMaxConsecutiveWords,
		CheckHistoricalAds:      true,
		MaxRegenerationAttempts: DefaultMaxRegenerationAttempts,
	}
	if rules == nil {
		return out
	}
	if rules.Originality.MaxConsecutiveWords > 0 {
		out.MaxConsecutiveWords = rules.Originality.MaxConsecutiveWords
	}
	out.CheckHistoricalAds = rules.Originality.CheckHistoricalAds
	if rules.Originality.MaxRegenerationAttempts > 0 {
		out.MaxRegenerationAttempts = rules.Originality.MaxRegenerationAttempts
	}
	return out
}

// SafetyOrDefaults resolves safety settings. Without an active config the
// words-to-avoid enforcement stays on; an active config decides for itself.
func SafetyOrDefaults(rules *ResolvedRules) models.SafetyRules {
	if rules == nil {
		return models.SafetyRules{EnforceWordsToAvoid: true}
	}
	return rules.Safety
}
