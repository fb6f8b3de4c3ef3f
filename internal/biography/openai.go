package biography

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/JeremyMcCormick/genaialogy/internal/config"
	"github.com/JeremyMcCormick/genaialogy/pkg/familytree"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// APIKeyEnv holds the OpenAI API key.
const APIKeyEnv = "OPENAI_API_KEY"

// ErrMissingAPIKey is returned when no API key is available.
var ErrMissingAPIKey = errors.New(APIKeyEnv + " is not set in the environment")

// OpenAI writes biographies with a chat completion model.
type OpenAI struct {
	client       *openai.Client
	model        string
	temperature  float32
	systemPrompt string
	logger       *zap.Logger
}

// NewOpenAI creates a biographer from the biography config section. A
// non-empty cfg.BaseURL points the client at any OpenAI-compatible server.
func NewOpenAI(cfg *config.BiographyConfig, apiKey string, logger *zap.Logger) (*OpenAI, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	temperature := config.DefaultTemperature
	if cfg.Temperature != nil {
		temperature = *cfg.Temperature
	}

	return &OpenAI{
		client:       openai.NewClientWithConfig(clientConfig),
		model:        cfg.Model,
		temperature:  temperature,
		systemPrompt: cfg.SystemPrompt,
		logger:       logger,
	}, nil
}

// APIKeyFromEnv reads the API key from the environment.
func APIKeyFromEnv() string {
	return strings.TrimSpace(os.Getenv(APIKeyEnv))
}

// Biography asks the model for a one-paragraph biography of info.
func (o *OpenAI) Biography(ctx context.Context, info *familytree.Info) (string, error) {
	name, _ := info.Get(familytree.KeyName)
	o.logger.Debug("Requesting biography", zap.String("name", name), zap.String("model", o.model))

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: o.systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: Prompt(info)},
		},
		Temperature: o.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI returned no choices")
	}

	o.logger.Debug("Received biography",
		zap.String("name", name),
		zap.String("finish_reason", string(resp.Choices[0].FinishReason)),
		zap.Int("total_tokens", resp.Usage.TotalTokens))
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
