// Package llm wraps the external text-generation services behind one interface.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Provider names
const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderNone      = "none"
)

// DefaultMaxTokens is the response-length ceiling for briefing generation.
const DefaultMaxTokens = 1500

var (
	// ErrNotConfigured is returned when no provider or credential is available.
	ErrNotConfigured = errors.New("no text generation provider configured")
	// ErrEmptyResponse is returned when the provider produced no text.
	ErrEmptyResponse = errors.New("empty response from text generation service")
)

// Generator turns a prompt into generated text. Each call sends exactly one
// user-role message.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// Options configures a Generator.
type Options struct {
	Provider  string
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
	Timeout   time.Duration
}

// New builds the Generator for opts.Provider. ProviderNone returns a nil Generator.
func New(ctx context.Context, opts Options, logger zerolog.Logger) (Generator, error) {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultMaxTokens
	}

	switch opts.Provider {
	case ProviderAnthropic:
		g, err := NewAnthropic(opts, logger)
		if err != nil {
			return nil, err
		}
		return g, nil
	case ProviderGemini:
		g, err := NewGemini(ctx, opts, logger)
		if err != nil {
			return nil, err
		}
		return g, nil
	case ProviderNone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", opts.Provider)
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
