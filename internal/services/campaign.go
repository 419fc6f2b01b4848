package services

import (
	"strings"

	"github.com/fitforge/fitforge/internal/models"
	"gorm.io/gorm"
)

// CampaignType is the coarse classification driving pattern filtering and
// the campaign-context block of the prompt.
type CampaignType string

const (
	CampaignTypeRecruitment    CampaignType = "recruitment"
	CampaignTypeService        CampaignType = "service"
	CampaignTypeChallenge      CampaignType = "challenge"
	CampaignTypeTransformation CampaignType = "transformation"
	CampaignTypeGeneric        CampaignType = "generic"
)

var (
	peopleTokens = []string{"ladies", "women", "men", "mums", "moms", "people", "members", "partners"}
	wantedTokens = []string{"wanted", "seeking", "needed", "recruiting"}
)

// ClassifyCampaignSlug infers the campaign type from a canonical slug.
// Kept as the fallback path; a stored CampaignTemplate.CampaignType wins
// when present (see ResolveType).
func ClassifyCampaignSlug(slug string) CampaignType {
	if slug == "" {
		return CampaignTypeGeneric
	}
	s := strings.ToLower(slug)

	if containsAny(s, peopleTokens) && containsAny(s, wantedTokens) {
		return CampaignTypeRecruitment
	}
	if strings.Contains(s, "personal-training") {
		return CampaignTypeService
	}
	if strings.Contains(s, "challenge") || strings.Contains(s, "week") || strings.Contains(s, "day") {
		return CampaignTypeChallenge
	}
	if strings.Contains(s, "transformation") {
		return CampaignTypeTransformation
	}
	return CampaignTypeGeneric
}

func containsAny(s string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}

// incompatibleTerms lists phrase fragments that must not leak into prompts
// for a given campaign type. Patterns harvested from one campaign type
// would otherwise contaminate another (a recruitment ad mentioning a
// "6 week challenge", a challenge ad "recruiting" members).
var incompatibleTerms = map[CampaignType][]string{
	CampaignTypeRecruitment:    {"week", "challenge", "transformation", "program", "day"},
	CampaignTypeService:        {"wanted", "seeking", "recruiting", "challenge"},
	CampaignTypeChallenge:      {"wanted", "seeking", "recruiting"},
	CampaignTypeTransformation: {"wanted", "seeking", "recruiting"},
	CampaignTypeGeneric:        nil,
}

// FilterPatterns removes candidate phrases containing any term incompatible
// with the resolved campaign type, case-insensitively. The input set is not
// mutated.
func FilterPatterns(patterns PatternSet, campaignType CampaignType) PatternSet {
	banned := incompatibleTerms[campaignType]
	filtered := make(PatternSet, len(patterns))

	for cat, phrases := range patterns {
		kept := make([]string, 0, len(phrases))
		for _, phrase := range phrases {
			if !containsAny(strings.ToLower(phrase), banned) {
				kept = append(kept, phrase)
			}
		}
		filtered[cat] = kept
	}

	return filtered
}

// CampaignService serves the campaign template catalog and resolves
// campaign types.
type CampaignService struct {
	db *gorm.DB
}

func NewCampaignService(db *gorm.DB) *CampaignService {
	return &CampaignService{db: db}
}

func (s *CampaignService) List() ([]models.CampaignTemplate, error) {
	var templates []models.CampaignTemplate
	if err := s.db.Order("name ASC").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (s *CampaignService) GetBySlug(slug string) (*models.CampaignTemplate, error) {
	var tpl models.CampaignTemplate
	if err := s.db.Where("canonical_slug = ?", slug).First(&tpl).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (s *CampaignService) Create(tpl *models.CampaignTemplate) error {
	return s.db.Create(tpl).Error
}

// ResolveType returns the campaign type for a slug. The catalog's explicit
// campaign_type column takes precedence; slugs without a catalog entry (or
// with an empty column) fall back to slug inference.
func (s *CampaignService) ResolveType(slug string) CampaignType {
	if slug == "" {
		return CampaignTypeGeneric
	}

	var tpl models.CampaignTemplate
	if err := s.db.Where("canonical_slug = ?", slug).First(&tpl).Error; err == nil {
		if tpl.CampaignType != "" {
			return CampaignType(tpl.CampaignType)
		}
	}

	return ClassifyCampaignSlug(slug)
}

// SlugsOfType returns the canonical slugs of all catalog campaigns that
// resolve to the given type. Used by the originality checker's same-type
// fallback query.
func (s *CampaignService) SlugsOfType(campaignType CampaignType) ([]string, error) {
	var templates []models.CampaignTemplate
	if err := s.db.Find(&templates).Error; err != nil {
		return nil, err
	}

	var slugs []string
	for _, tpl := range templates {
		resolved := CampaignType(tpl.CampaignType)
		if resolved == "" {
			resolved = ClassifyCampaignSlug(tpl.CanonicalSlug)
		}
		if resolved == campaignType {
			slugs = append(slugs, tpl.CanonicalSlug)
		}
	}
	return slugs, nil
}
