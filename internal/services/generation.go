package services

import (
	"context"
	"fmt"
	"time"

	"github.com/fitforge/fitforge/internal/models"
	"github.com/fitforge/fitforge/pkg/logger"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// violationRegenerateThreshold is the minimum number of distinct overlap
// violations that triggers regeneration. Fewer overlapping windows are
// tolerated; short fitness-ad phrases collide naturally.
const violationRegenerateThreshold = 3

// GenerationService runs the full content pipeline: corpus fetch, pattern
// extraction, campaign filtering, prompt assembly, generation with bounded
// regeneration on originality violations, and a final compliance check.
type GenerationService struct {
	db          *gorm.DB
	ai          *AIService
	rules       *RulesConfigService
	campaigns   *CampaignService
	ads         *HistoricalAdService
	profiles    *BrandProfileService
	originality *OriginalityService
	compliance  *ComplianceService
	extractor   *PatternExtractor
}

func NewGenerationService(
	db *gorm.DB,
	ai *AIService,
	rules *RulesConfigService,
	campaigns *CampaignService,
	ads *HistoricalAdService,
	profiles *BrandProfileService,
	originality *OriginalityService,
	compliance *ComplianceService,
) *GenerationService {
	return &GenerationService{
		db:          db,
		ai:          ai,
		rules:       rules,
		campaigns:   campaigns,
		ads:         ads,
		profiles:    profiles,
		originality: originality,
		compliance:  compliance,
		extractor:   NewPatternExtractor(),
	}
}

// GenerateRequest is the pipeline entrypoint payload.
type GenerateRequest struct {
	ContentType      string `json:"content_type" binding:"required"`
	TaskInstructions string `json:"task_instructions" binding:"required"`
	CampaignSlug     string `json:"campaign_slug"`
	LLMConfigID      uint   `json:"llm_config_id"`
}

// GenerateResponse is what the caller receives after the pipeline finishes.
type GenerateResponse struct {
	ContentID          uint                  `json:"content_id"`
	RequestID          string                `json:"request_id"`
	ContentType        string                `json:"content_type"`
	GeneratedContent   string                `json:"generated_content"`
	CampaignSlug       string                `json:"campaign_slug,omitempty"`
	CampaignType       string                `json:"campaign_type,omitempty"`
	OriginalityWarning bool                  `json:"originality_warning"`
	Compliance         *ComplianceResult     `json:"compliance"`
	Patterns           PatternSet            `json:"patterns,omitempty"`
	LLMName            string                `json:"llm_name,omitempty"`
	Violations         []ComplianceViolation `json:"violations,omitempty"`
}

// Generate runs one pipeline invocation. Rules, profile, and corpus are
// fetched fresh per request; none of them are required, and each absence
// has a fallback rather than being fatal.
func (s *GenerationService) Generate(ctx context.Context, userID uint, req *GenerateRequest) (*GenerateResponse, error) {
	return s.generateWithRequestID(ctx, userID, uuid.NewString(), req)
}

func (s *GenerationService) generateWithRequestID(ctx context.Context, userID uint, requestID string, req *GenerateRequest) (*GenerateResponse, error) {
	if !models.ValidContentType(req.ContentType) {
		return nil, fmt.Errorf("invalid content type: %s", req.ContentType)
	}

	log := logger.Get().With().Str("request_id", requestID).Str("content_type", req.ContentType).Logger()

	rules, err := s.rules.GetActive()
	if err != nil {
		log.Warn().Err(err).Msg("rules config lookup failed, using defaults")
		rules = nil
	}

	profile, err := s.profiles.GetByUser(userID)
	if err != nil {
		log.Warn().Err(err).Msg("brand profile lookup failed, proceeding without")
		profile = nil
	}

	campaignType, campaignName, campaignDesc := s.resolveCampaign(req.CampaignSlug)
	patterns := s.extractPatterns(req.CampaignSlug, campaignType, &log)

	in := &PromptInput{
		ContentType:         req.ContentType,
		TaskInstructions:    req.TaskInstructions,
		Profile:             profile,
		Rules:               rules,
		Patterns:            patterns,
		CampaignType:        campaignType,
		CampaignName:        campaignName,
		CampaignDescription: campaignDesc,
	}

	originalityRules := OriginalityOrDefaults(rules)
	maxRegens := originalityRules.MaxRegenerationAttempts
	if maxRegens <= 0 {
		maxRegens = DefaultMaxRegenerationAttempts
	}

	text, llmName, warning, genErr := s.generateWithOriginality(ctx, in, req, &originalityRules, maxRegens, &log)
	if genErr != nil {
		s.persistFailure(userID, requestID, req, genErr)
		return nil, genErr
	}

	contentRow := s.persistContent(userID, requestID, req, text, llmName, warning)

	complianceResult := s.compliance.Check(ctx, &CheckRequest{
		UserID:       userID,
		ContentID:    contentRowID(contentRow),
		Content:      text,
		ContentType:  req.ContentType,
		BrandTone:    brandTone(profile),
		WordsToAvoid: WordsToAvoidList(profile),
	})

	if contentRow != nil {
		contentRow.ComplianceStatus = complianceResult.Status
		if err := s.db.Save(contentRow).Error; err != nil {
			log.Error().Err(err).Msg("failed to update compliance status on content row")
		}
	}

	resp := &GenerateResponse{
		RequestID:          requestID,
		ContentType:        req.ContentType,
		GeneratedContent:   text,
		CampaignSlug:       req.CampaignSlug,
		CampaignType:       string(campaignType),
		OriginalityWarning: warning,
		Compliance:         complianceResult,
		Patterns:           patterns,
		LLMName:            llmName,
		Violations:         complianceResult.Violations,
	}
	if contentRow != nil {
		resp.ContentID = contentRow.ID
	}
	return resp, nil
}

// generateWithOriginality calls the generation model and re-prompts while
// the originality checker finds too many overlapping windows. The loop is
// bounded; at the cap the last draft is accepted with a warning instead of
// failing the request.
func (s *GenerationService) generateWithOriginality(
	ctx context.Context,
	in *PromptInput,
	req *GenerateRequest,
	originalityRules *models.OriginalityRules,
	maxRegens int,
	log *zerolog.Logger,
) (text, llmName string, warning bool, err error) {
	var lastResult *OriginalityResult

	for attempt := 0; ; attempt++ {
		prompt := BuildGenerationPrompt(in)

		gen, genErr := s.ai.Generate(ctx, prompt, req.LLMConfigID)
		if genErr != nil {
			return "", "", false, genErr
		}
		text, llmName = gen.Content, gen.LLMName

		lastResult = s.originality.Check(text, req.CampaignSlug, originalityRules)
		if len(lastResult.Violations) < violationRegenerateThreshold {
			return text, llmName, false, nil
		}

		if attempt >= maxRegens {
			log.Warn().
				Int("violations", len(lastResult.Violations)).
				Int("attempts", attempt+1).
				Msg("regeneration attempts exhausted, accepting with originality warning")
			return text, llmName, true, nil
		}

		log.Info().
			Int("violations", len(lastResult.Violations)).
			Int("attempt", attempt+1).
			Msg("overlap with historical ads, regenerating")
		in.AvoidPhrases = lastResult.Violations
	}
}

func (s *GenerationService) resolveCampaign(slug string) (CampaignType, string, string) {
	if slug == "" {
		return CampaignTypeGeneric, "", ""
	}
	campaignType := s.campaigns.ResolveType(slug)
	tpl, err := s.campaigns.GetBySlug(slug)
	if err != nil || tpl == nil {
		return campaignType, slug, ""
	}
	return campaignType, tpl.Name, tpl.TargetAudience
}

// extractPatterns builds the campaign-filtered pattern set from the
// request-scoped corpus. An empty corpus yields an empty set; the prompt
// builder falls back to generic placeholders.
func (s *GenerationService) extractPatterns(slug string, campaignType CampaignType, log *zerolog.Logger) PatternSet {
	ads, err := s.ads.CorpusForCampaign(slug)
	if err != nil {
		log.Warn().Err(err).Msg("corpus fetch failed, generating without patterns")
		return PatternSet{}
	}
	if len(ads) == 0 {
		return PatternSet{}
	}

	texts := make([]string, 0, len(ads))
	for _, ad := range ads {
		texts = append(texts, ad.PrimaryText)
	}

	extraction := s.extractor.Extract(texts)
	return FilterPatterns(extraction.Patterns, campaignType)
}

// persistContent stores the accepted draft. Async jobs pre-create a
// pending row keyed by request id; that row is updated in place so the
// caller's poll handle stays valid.
func (s *GenerationService) persistContent(userID uint, requestID string, req *GenerateRequest, text, llmName string, warning bool) *models.GeneratedContent {
	now := time.Now()
	row := s.findPending(userID, requestID)
	if row == nil {
		row = &models.GeneratedContent{
			UserID:       userID,
			RequestID:    requestID,
			ContentType:  req.ContentType,
			CampaignSlug: req.CampaignSlug,
		}
	}
	row.Text = text
	row.Status = models.GenerationStatusCompleted
	row.OriginalityWarning = warning
	row.LLMName = llmName
	row.ErrorMessage = ""
	row.GeneratedAt = &now

	if err := s.db.Save(row).Error; err != nil {
		logger.Error().Err(err).Str("request_id", requestID).Msg("failed to persist generated content")
		return nil
	}
	return row
}

func (s *GenerationService) persistFailure(userID uint, requestID string, req *GenerateRequest, genErr error) {
	row := s.findPending(userID, requestID)
	if row == nil {
		row = &models.GeneratedContent{
			UserID:       userID,
			RequestID:    requestID,
			ContentType:  req.ContentType,
			CampaignSlug: req.CampaignSlug,
		}
	}
	row.Status = models.GenerationStatusFailed
	row.ErrorMessage = genErr.Error()

	if err := s.db.Save(row).Error; err != nil {
		logger.Error().Err(err).Str("request_id", requestID).Msg("failed to persist generation failure")
	}
}

func (s *GenerationService) findPending(userID uint, requestID string) *models.GeneratedContent {
	var row models.GeneratedContent
	err := s.db.Where("user_id = ? AND request_id = ? AND status = ?",
		userID, requestID, models.GenerationStatusPending).First(&row).Error
	if err != nil {
		return nil
	}
	return &row
}

// Enqueue creates a pending content row and hands the job to the task
// queue. The returned request id is the caller's poll handle.
func (s *GenerationService) Enqueue(userID uint, req *GenerateRequest) (string, error) {
	if !models.ValidContentType(req.ContentType) {
		return "", fmt.Errorf("invalid content type: %s", req.ContentType)
	}

	queue := GetTaskQueue()
	if queue == nil {
		return "", fmt.Errorf("task queue not initialized")
	}

	requestID := uuid.NewString()
	row := &models.GeneratedContent{
		UserID:       userID,
		RequestID:    requestID,
		ContentType:  req.ContentType,
		CampaignSlug: req.CampaignSlug,
		Status:       models.GenerationStatusPending,
	}
	if err := s.db.Create(row).Error; err != nil {
		return "", err
	}

	task := &GenerationTask{
		UserID:           userID,
		RequestID:        requestID,
		ContentType:      req.ContentType,
		TaskInstructions: req.TaskInstructions,
		CampaignSlug:     req.CampaignSlug,
		LLMConfigID:      req.LLMConfigID,
	}
	if err := queue.Enqueue(task); err != nil {
		s.db.Model(row).Updates(map[string]interface{}{
			"status":        models.GenerationStatusFailed,
			"error_message": "enqueue failed: " + err.Error(),
		})
		return "", err
	}
	return requestID, nil
}

// ProcessTask runs a queued generation job. Used as the task queue and
// worker processor.
func (s *GenerationService) ProcessTask(ctx context.Context, task *GenerationTask) error {
	req := &GenerateRequest{
		ContentType:      task.ContentType,
		TaskInstructions: task.TaskInstructions,
		CampaignSlug:     task.CampaignSlug,
		LLMConfigID:      task.LLMConfigID,
	}
	_, err := s.generateWithRequestID(ctx, task.UserID, task.RequestID, req)
	return err
}

func contentRowID(row *models.GeneratedContent) *uint {
	if row == nil {
		return nil
	}
	return &row.ID
}

func brandTone(profile *models.BrandProfile) string {
	if profile == nil {
		return ""
	}
	return profile.VoiceToneStyle
}

// AcceptDraft decides whether a draft's originality result allows
// acceptance without regeneration.
func AcceptDraft(violations int) bool {
	return violations < violationRegenerateThreshold
}
