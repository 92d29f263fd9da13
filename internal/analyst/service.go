// Package analyst runs the ticker lookup pipeline: fetch raw filings and quote,
// build metrics, compose the briefing prompt, and request the generated analysis.
package analyst

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/trogers1052/stock-analyst/internal/fmp"
	"github.com/trogers1052/stock-analyst/internal/llm"
	"github.com/trogers1052/stock-analyst/internal/metrics"
	"github.com/trogers1052/stock-analyst/internal/models"
	"github.com/trogers1052/stock-analyst/internal/prompt"
)

// DefaultTicker is used when a request carries no ticker
const DefaultTicker = "AAPL"

// DefaultQuarters is the statement window requested from the data source
const DefaultQuarters = 4

// DataSource defines the read operations needed from the financial-data provider
type DataSource interface {
	IncomeStatements(ctx context.Context, symbol, period string, limit int) ([]models.RawStatement, error)
	Quote(ctx context.Context, symbol string) (*models.RawQuote, error)
}

// Publisher receives an event after every pipeline run
type Publisher interface {
	PublishAnalysis(ctx context.Context, event models.AnalysisEvent) error
}

// Briefing is everything computed before the generation call.
type Briefing struct {
	Ticker       string
	Company      string
	Metrics      *models.Metrics
	Prompt       string
	QuoteMissing bool
}

// Service runs the analysis pipeline for one ticker at a time.
type Service struct {
	source    DataSource
	generator llm.Generator
	publisher Publisher
	quarters  int
	logger    zerolog.Logger
}

// Option configures a Service
type Option func(*Service)

// WithPublisher emits an event after each Analyze call.
func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithQuarters overrides the statement window.
func WithQuarters(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.quarters = n
		}
	}
}

// NewService creates a new Service. generator may be nil, in which case every
// analysis is degraded to a placeholder.
func NewService(source DataSource, generator llm.Generator, logger zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		source:    source,
		generator: generator,
		quarters:  DefaultQuarters,
		logger:    logger.With().Str("component", "analyst").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NormalizeTicker trims and uppercases raw, falling back to DefaultTicker.
func NormalizeTicker(raw string) string {
	ticker := strings.ToUpper(strings.TrimSpace(raw))
	if ticker == "" {
		return DefaultTicker
	}
	return ticker
}

// Prepare fetches raw data, builds metrics and composes the prompt.
// Any error here is fatal to the lookup.
func (s *Service) Prepare(ctx context.Context, ticker string) (*Briefing, error) {
	statements, err := s.source.IncomeStatements(ctx, ticker, fmp.PeriodQuarter, s.quarters)
	if err != nil {
		return nil, err
	}

	quote, err := s.source.Quote(ctx, ticker)
	if err != nil {
		return nil, err
	}

	m, err := metrics.Build(ticker, statements, quote)
	if err != nil {
		return nil, err
	}

	company := m.Valuation.CompanyName
	return &Briefing{
		Ticker:       ticker,
		Company:      company,
		Metrics:      m,
		Prompt:       prompt.Compose(ticker, company, m.Valuation, m.Series),
		QuoteMissing: quote == nil,
	}, nil
}

// Analyze runs the full pipeline. It never returns an error; failures are
// classified in the returned Outcome.
func (s *Service) Analyze(ctx context.Context, rawTicker string) Outcome {
	return s.AnalyzeRequest(ctx, uuid.NewString(), rawTicker)
}

// AnalyzeRequest is Analyze with a caller-supplied request id.
func (s *Service) AnalyzeRequest(ctx context.Context, requestID, rawTicker string) Outcome {
	start := time.Now()
	ticker := NormalizeTicker(rawTicker)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	log := s.logger.With().Str("request_id", requestID).Str("ticker", ticker).Logger()

	outcome := s.run(ctx, ticker, log)
	outcome.RequestID = requestID
	outcome.Duration = time.Since(start)

	event := log.Info()
	if outcome.Status == StatusFatal {
		event = log.Error().Err(outcome.Err)
	} else if outcome.Status == StatusDegraded {
		event = log.Warn().Str("warning", outcome.Warning)
	}
	event.Str("status", outcome.Status.String()).Dur("duration", outcome.Duration).Msg("Analysis finished")

	if s.publisher != nil {
		if err := s.publisher.PublishAnalysis(ctx, outcome.Event()); err != nil {
			log.Warn().Err(err).Msg("Failed to publish analysis event")
		}
	}

	return outcome
}

func (s *Service) run(ctx context.Context, ticker string, log zerolog.Logger) Outcome {
	briefing, err := s.Prepare(ctx, ticker)
	if err != nil {
		return Fatal(ticker, err)
	}

	if briefing.QuoteMissing {
		log.Warn().Msg("Quote unavailable, valuation uses defaults")
	}
	log.Debug().
		Int("quarters", len(briefing.Metrics.Series)).
		Int("prompt_length", len(briefing.Prompt)).
		Msg("Metrics built")

	resp := &models.AnalysisResponse{
		Ticker:    ticker,
		Company:   briefing.Company,
		ChartData: briefing.Metrics.Series,
		Valuation: briefing.Metrics.Valuation,
	}

	if s.generator == nil {
		return degrade(resp, llm.ErrNotConfigured)
	}

	text, err := s.generator.Generate(ctx, briefing.Prompt)
	if err != nil {
		return degrade(resp, err)
	}

	resp.Analysis = &text
	return Ok(resp)
}

func degrade(resp *models.AnalysisResponse, err error) Outcome {
	placeholder := Placeholder(err)
	resp.Analysis = &placeholder
	return Degraded(resp, err.Error())
}

// Placeholder is the analysis text used when generation fails.
func Placeholder(err error) string {
	return fmt.Sprintf("[AI analysis unavailable: %v]", err)
}
