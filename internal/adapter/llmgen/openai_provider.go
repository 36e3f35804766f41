// Package llmgen adapts an OpenAI-compatible chat endpoint (LocalAI, Ollama's
// OpenAI shim, OpenAI itself) to the port.GenerationProvider capability.
package llmgen

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"sqldojo/internal/config"
	"sqldojo/internal/domain"
	"sqldojo/internal/logger"
	"sqldojo/internal/port"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

type openAIProvider struct {
	llm     *openai.LLM
	timeout time.Duration
}

// NewOpenAIProvider creates a GenerationProvider backed by langchaingo's
// OpenAI client pointed at cfg.BaseURL.
func NewOpenAIProvider(cfg config.LLM) (port.GenerationProvider, error) {
	httpClient := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     10 * time.Second,
		},
	}

	opts := []openai.Option{
		openai.WithModel(cfg.Model),
		openai.WithHTTPClient(httpClient),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIKey != "" {
		opts = append(opts, openai.WithToken(cfg.APIKey))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation provider client: %w", err)
	}
	return &openAIProvider{llm: llm, timeout: cfg.Timeout}, nil
}

// Complete implements port.GenerationProvider
func (p *openAIProvider) Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, userPrompt),
	}

	resp, err := p.llm.GenerateContent(ctx, messages,
		llms.WithTemperature(temperature),
		llms.WithMaxTokens(maxTokens),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			logger.Get().Error("Generation provider request timed out",
				zap.Duration("timeout", p.timeout))
			return "", domain.NewError(domain.ErrProviderTimeout, "Generation provider timed out", err)
		}
		logger.Get().Error("Generation provider request failed", zap.Error(err))
		return "", domain.NewError(domain.ErrProviderConnection, "Failed to reach generation provider", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Content == "" {
		return "", domain.NewProviderResponseError("provider returned no choices", nil)
	}
	return resp.Choices[0].Content, nil
}
