package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fitforge/fitforge/pkg/logger"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/fitforge/fitforge/internal/config"
	"github.com/fitforge/fitforge/internal/models"
	"github.com/ollama/ollama/api"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
	"gorm.io/gorm"
)

// generationAttemptCap bounds retries on rate limiting. Kept small so a
// throttled upstream never holds a generation request for long.
const generationAttemptCap = 2

// ErrRateLimited marks a 429 from the upstream provider. It is the only
// error class the generation retry policy considers transient.
var ErrRateLimited = errors.New("upstream rate limited")

type AIService struct {
	db     *gorm.DB
	config *config.OpenAIConfig
	retry  RetryPolicy
}

func NewAIService(db *gorm.DB, cfg *config.OpenAIConfig) *AIService {
	return &AIService{
		db:     db,
		config: cfg,
		retry: RetryPolicy{
			MaxAttempts: generationAttemptCap,
			Backoff:     ExponentialBackoff(time.Second),
			Retryable: func(err error) bool {
				return errors.Is(err, ErrRateLimited)
			},
		},
	}
}

// GenerationResult is the raw model output plus which LLM produced it.
type GenerationResult struct {
	Content string
	LLMName string
	Model   string
}

// Generate sends the prompt to the first LLM in the configured chain that
// answers. Rate-limited calls are retried with exponential backoff up to
// the attempt cap; any other upstream error moves on to the next config.
func (s *AIService) Generate(ctx context.Context, prompt string, llmConfigID uint) (*GenerationResult, error) {
	llmConfigs := s.getOrderedLLMConfigs(llmConfigID)
	if len(llmConfigs) == 0 {
		return nil, fmt.Errorf("no LLM configuration available")
	}

	var lastErr error
	for i, llmConfig := range llmConfigs {
		logger.Infof("[AI] Attempting LLM %d/%d: %s (model: %s)", i+1, len(llmConfigs), llmConfig.Name, llmConfig.Model)

		var content string
		err := s.retry.Do(ctx, func() error {
			var callErr error
			content, callErr = s.callLLM(ctx, &llmConfig, prompt)
			return callErr
		})
		if err == nil {
			logger.Infof("[AI] Success with LLM: %s", llmConfig.Name)
			return &GenerationResult{
				Content: content,
				LLMName: llmConfig.Name,
				Model:   llmConfig.Model,
			}, nil
		}

		lastErr = err
		logger.Infof("[AI] LLM %s failed: %v, trying next...", llmConfig.Name, err)
	}

	if errors.Is(lastErr, ErrRateLimited) {
		return nil, fmt.Errorf("generation service busy, try again later: %w", lastErr)
	}
	return nil, fmt.Errorf("all LLMs failed, last error: %w", lastErr)
}

// getOrderedLLMConfigs builds the fallback chain: the explicitly requested
// config first, then the default, then remaining active configs by id. The
// static OpenAI config from the config file is the final fallback when the
// database holds no configs at all.
func (s *AIService) getOrderedLLMConfigs(requestedID uint) []models.LLMConfig {
	var configs []models.LLMConfig

	if requestedID > 0 {
		var requested models.LLMConfig
		if err := s.db.Where("id = ? AND is_active = ?", requestedID, true).First(&requested).Error; err == nil {
			configs = append(configs, requested)
		}
	}

	var defaultConfig models.LLMConfig
	if err := s.db.Where("is_default = ? AND is_active = ?", true, true).First(&defaultConfig).Error; err == nil {
		if len(configs) == 0 || configs[0].ID != defaultConfig.ID {
			configs = append(configs, defaultConfig)
		}
	}

	var backupConfigs []models.LLMConfig
	existingIDs := make(map[uint]bool)
	for _, c := range configs {
		existingIDs[c.ID] = true
	}
	s.db.Where("is_active = ?", true).Order("id ASC").Find(&backupConfigs)
	for _, c := range backupConfigs {
		if !existingIDs[c.ID] {
			configs = append(configs, c)
		}
	}

	if len(configs) == 0 && s.config != nil && s.config.APIKey != "" {
		configs = append(configs, models.LLMConfig{
			Name:    "fallback",
			BaseURL: s.config.BaseURL,
			APIKey:  s.config.APIKey,
			Model:   s.config.Model,
		})
	}

	return configs
}

func (s *AIService) callLLM(ctx context.Context, llmConfig *models.LLMConfig, prompt string) (string, error) {
	logger.Infof("[AI] Using provider: %s, model: %s, baseURL: %s", llmConfig.Provider, llmConfig.Model, llmConfig.BaseURL)

	switch llmConfig.Provider {
	case "anthropic":
		return s.callAnthropic(ctx, llmConfig, prompt)
	case "ollama":
		return s.callOllama(ctx, llmConfig, prompt)
	case "gemini":
		return s.callGemini(ctx, llmConfig, prompt)
	case "azure":
		return s.callAzure(ctx, llmConfig, prompt)
	default:
		// openai and other OpenAI-compatible services
		return s.callOpenAI(ctx, llmConfig, prompt)
	}
}

// classifyUpstreamError folds provider errors into the retry taxonomy:
// a 429 becomes ErrRateLimited, everything else passes through untouched
// and aborts the attempt chain for that config.
func classifyUpstreamError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "429") || strings.Contains(msg, "rate limit") {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}

	return err
}

func (s *AIService) callOpenAI(ctx context.Context, llmConfig *models.LLMConfig, prompt string) (string, error) {
	clientConfig := openai.DefaultConfig(llmConfig.APIKey)
	if llmConfig.BaseURL != "" {
		clientConfig.BaseURL = llmConfig.BaseURL
	}
	client := openai.NewClientWithConfig(clientConfig)

	temperature := float32(0.8)
	if llmConfig.Temperature > 0 {
		temperature = float32(llmConfig.Temperature)
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: llmConfig.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: temperature,
	})

	if err != nil {
		logger.Infof("[AI] OpenAI API error: %v", err)
		return "", classifyUpstreamError(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content
	logger.Infof("[AI] OpenAI response length: %d chars", len(content))

	return content, nil
}

func (s *AIService) callAnthropic(ctx context.Context, llmConfig *models.LLMConfig, prompt string) (string, error) {
	client := anthropic.NewClient(
		option.WithAPIKey(llmConfig.APIKey),
	)

	maxTokens := int64(llmConfig.MaxTokens)
	if maxTokens == 0 {
		maxTokens = 4096
	}

	model := llmConfig.Model
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}

	resp, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		logger.Infof("[AI] Anthropic API error: %v", err)
		return "", classifyUpstreamError(err)
	}

	var content string
	for _, block := range resp.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}

	logger.Infof("[AI] Anthropic response length: %d chars", len(content))

	return content, nil
}

func (s *AIService) callOllama(ctx context.Context, llmConfig *models.LLMConfig, prompt string) (string, error) {
	baseURL := llmConfig.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid Ollama base URL: %w", err)
	}
	client := api.NewClient(u, http.DefaultClient)

	model := llmConfig.Model
	if model == "" {
		model = "llama3"
	}

	var content strings.Builder
	err = client.Chat(ctx, &api.ChatRequest{
		Model: model,
		Messages: []api.Message{
			{Role: "user", Content: prompt},
		},
		Options: map[string]interface{}{
			"temperature": llmConfig.Temperature,
		},
	}, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		return nil
	})

	if err != nil {
		logger.Infof("[AI] Ollama API error: %v", err)
		return "", classifyUpstreamError(err)
	}

	result := content.String()
	logger.Infof("[AI] Ollama response length: %d chars", len(result))

	return result, nil
}

func (s *AIService) callGemini(ctx context.Context, llmConfig *models.LLMConfig, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: llmConfig.APIKey,
	})
	if err != nil {
		return "", fmt.Errorf("Gemini client error: %w", err)
	}

	model := llmConfig.Model
	if model == "" {
		model = "gemini-3.0-flash"
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		logger.Infof("[AI] Gemini API error: %v", err)
		return "", classifyUpstreamError(err)
	}

	content := resp.Text()
	logger.Infof("[AI] Gemini response length: %d chars", len(content))

	return content, nil
}

// callAzure uses the Azure OpenAI endpoint. BaseURL must be the resource
// endpoint and Model carries the deployment name.
func (s *AIService) callAzure(ctx context.Context, llmConfig *models.LLMConfig, prompt string) (string, error) {
	cfg := openai.DefaultAzureConfig(llmConfig.APIKey, llmConfig.BaseURL)
	client := openai.NewClientWithConfig(cfg)

	temperature := float32(0.8)
	if llmConfig.Temperature > 0 {
		temperature = float32(llmConfig.Temperature)
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: llmConfig.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
	})

	if err != nil {
		logger.Infof("[AI] Azure OpenAI API error: %v", err)
		return "", classifyUpstreamError(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from Azure OpenAI")
	}

	content := resp.Choices[0].Message.Content
	logger.Infof("[AI] Azure OpenAI response length: %d chars", len(content))

	return content, nil
}
