package main

import (
	"context"
	"errors"

	"github.com/trogers1052/stock-analyst/internal/analyst"
	"github.com/trogers1052/stock-analyst/internal/fmp"
	"github.com/trogers1052/stock-analyst/internal/kafka"
	"github.com/trogers1052/stock-analyst/internal/llm"
)

// app bundles the collaborators shared by the subcommands.
type app struct {
	service  *analyst.Service
	producer *kafka.Producer
}

// newApp wires the data source, generator and optional publisher into the
// analysis service. A missing generation credential degrades every analysis
// instead of failing startup.
func newApp(ctx context.Context, publish bool) (*app, error) {
	if err := cfg.RequireFMP(); err != nil {
		return nil, err
	}

	source := fmp.NewClient(fmp.Options{
		BaseURL:           cfg.FMP.BaseURL,
		APIKey:            cfg.FMP.APIKey,
		Timeout:           cfg.FMP.Timeout,
		RequestsPerSecond: cfg.FMP.RequestsPerSecond,
	}, logger)

	generator, err := llm.New(ctx, llm.Options{
		Provider:  cfg.LLM.Provider,
		APIKey:    cfg.LLM.LLMKey(),
		Model:     cfg.LLM.Model,
		BaseURL:   cfg.LLM.BaseURL,
		MaxTokens: cfg.LLM.MaxTokens,
		Timeout:   cfg.LLM.Timeout,
	}, logger)
	if err != nil {
		if !errors.Is(err, llm.ErrNotConfigured) {
			return nil, err
		}
		logger.Warn().Err(err).Str("provider", cfg.LLM.Provider).Msg("Generation disabled, analyses will be degraded")
		generator = nil
	}

	a := &app{}
	opts := []analyst.Option{analyst.WithQuarters(cfg.FMP.Quarters)}
	if publish && cfg.Kafka.KafkaEnabled() {
		a.producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.ResultsTopic)
		opts = append(opts, analyst.WithPublisher(a.producer))
		logger.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.ResultsTopic).Msg("Publishing analysis events")
	}

	a.service = analyst.NewService(source, generator, logger, opts...)
	return a, nil
}

func (a *app) Close() {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close Kafka producer")
		}
	}
}
