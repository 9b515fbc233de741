// Package llm builds the completion-service chat model for the configured
// provider and binds the HR tool catalog to it.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	logx "github.com/hrms-agent/server/pkg/logger"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// ChatModel is the slice of the eino model surface the orchestration loop
// uses.
type ChatModel interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error)
}

// Config holds provider selection plus the generation settings shared by
// both providers.
type Config struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float32
	MaxTokens   int
}

// NewChatModel creates the chat model for config.Provider with the tool
// catalog bound. It returns the model together with its name for pricing
// lookups.
func NewChatModel(ctx context.Context, config Config, toolInfos []*schema.ToolInfo) (ChatModel, string, error) {
	switch strings.ToLower(strings.TrimSpace(config.Provider)) {
	case ProviderOpenAI:
		return newOpenAIModel(ctx, config, toolInfos)
	case ProviderGemini:
		return newGeminiModel(ctx, config, toolInfos)
	default:
		return nil, "", fmt.Errorf("unknown chat model provider: %s", config.Provider)
	}
}

func newOpenAIModel(ctx context.Context, config Config, toolInfos []*schema.ToolInfo) (ChatModel, string, error) {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      config.APIKey,
		BaseURL:     config.BaseURL,
		Model:       config.Model,
		Temperature: &config.Temperature,
		MaxTokens:   maxTokens(config),
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating OpenAI model")
		return nil, "", fmt.Errorf("error creating OpenAI model: %w", err)
	}

	if len(toolInfos) > 0 {
		if err := chatModel.BindTools(toolInfos); err != nil {
			logx.Error().Err(err).Msg("Failed to bind tools")
			return nil, "", fmt.Errorf("failed to bind tools: %w", err)
		}
	}
	return chatModel, config.Model, nil
}

func newGeminiModel(ctx context.Context, config Config, toolInfos []*schema.ToolInfo) (ChatModel, string, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, "", fmt.Errorf("error creating Gemini client: %w", err)
	}

	chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.Model,
		Temperature: &config.Temperature,
		MaxTokens:   maxTokens(config),
		ThinkingConfig: &genai.ThinkingConfig{
			IncludeThoughts: true,
			ThinkingBudget:  genai.Ptr(int32(2000)),
		},
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini model")
		return nil, "", fmt.Errorf("error creating Gemini model: %w", err)
	}

	if len(toolInfos) > 0 {
		if err := chatModel.BindTools(toolInfos); err != nil {
			logx.Error().Err(err).Msg("Failed to bind tools")
			return nil, "", fmt.Errorf("failed to bind tools: %w", err)
		}
	}
	return chatModel, config.Model, nil
}

func maxTokens(config Config) *int {
	if config.MaxTokens <= 0 {
		return nil
	}
	return &config.MaxTokens
}
