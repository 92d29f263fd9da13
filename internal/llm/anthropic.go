package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"
)

// DefaultAnthropicModel is used when no model is configured.
const DefaultAnthropicModel = "claude-sonnet-4-20250514"

// AnthropicGenerator generates text with the Anthropic Messages API.
type AnthropicGenerator struct {
	client    anthropic.Client
	model     string
	maxTokens int
	timeout   time.Duration
	logger    zerolog.Logger
}

// NewAnthropic creates a Claude-backed Generator. SDK retries are disabled.
func NewAnthropic(opts Options, logger zerolog.Logger) (*AnthropicGenerator, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("anthropic: %w", ErrNotConfigured)
	}

	model := opts.Model
	if model == "" {
		model = DefaultAnthropicModel
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}

	g := &AnthropicGenerator{
		client:    anthropic.NewClient(reqOpts...),
		model:     model,
		maxTokens: opts.MaxTokens,
		timeout:   opts.Timeout,
		logger:    logger.With().Str("component", "llm").Str("provider", ProviderAnthropic).Logger(),
	}

	g.logger.Debug().
		Str("model", model).
		Int("max_tokens", opts.MaxTokens).
		Dur("timeout", opts.Timeout).
		Msg("Anthropic generator initialized")

	return g, nil
}

// Name returns the provider name
func (g *AnthropicGenerator) Name() string {
	return ProviderAnthropic
}

// Generate sends prompt as a single user message and returns the concatenated text blocks.
func (g *AnthropicGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: int64(g.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic messages call failed: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	g.logger.Debug().
		Int("prompt_length", len(prompt)).
		Int("response_length", text.Len()).
		Dur("duration", time.Since(start)).
		Msg("Anthropic generation completed")

	if text.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return text.String(), nil
}
