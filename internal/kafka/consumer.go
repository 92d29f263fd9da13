package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/trogers1052/stock-analyst/internal/analyst"
	"github.com/trogers1052/stock-analyst/internal/models"
)

// ErrInvalidRequest is returned for messages that cannot be turned into a lookup
var ErrInvalidRequest = errors.New("invalid analysis request")

// Analyzer runs one lookup for a request read off the topic
type Analyzer interface {
	AnalyzeRequest(ctx context.Context, requestID, ticker string) analyst.Outcome
}

// MessageReader is the subset of kafka.Reader the consumer uses
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Consumer reads analysis requests and runs them one at a time
type Consumer struct {
	reader   MessageReader
	analyzer Analyzer
	topic    string
	logger   zerolog.Logger
}

// NewConsumer creates a new Kafka consumer for analysis requests
func NewConsumer(brokers []string, topic, groupID string, analyzer Analyzer, logger zerolog.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6, // 10MB
		MaxWait:        1 * time.Second,
		StartOffset:    kafka.LastOffset,
		CommitInterval: time.Second,
	})

	return newConsumer(reader, topic, analyzer, logger)
}

func newConsumer(reader MessageReader, topic string, analyzer Analyzer, logger zerolog.Logger) *Consumer {
	return &Consumer{
		reader:   reader,
		analyzer: analyzer,
		topic:    topic,
		logger:   logger.With().Str("component", "kafka-consumer").Str("topic", topic).Logger(),
	}
}

// Start begins consuming messages from Kafka. It returns when ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().Msg("Starting Kafka consumer")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("Kafka consumer shutting down")
			return c.reader.Close()
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return c.reader.Close()
				}
				c.logger.Error().Err(err).Msg("Error reading message")
				continue
			}

			if _, err := c.processMessage(ctx, msg); err != nil {
				c.logger.Warn().Err(err).Int64("offset", msg.Offset).Msg("Skipping message")
			}
		}
	}
}

// processMessage handles a single Kafka message
func (c *Consumer) processMessage(ctx context.Context, msg kafka.Message) (analyst.Outcome, error) {
	c.logger.Debug().
		Int("partition", msg.Partition).
		Int64("offset", msg.Offset).
		Str("key", string(msg.Key)).
		Msg("Received message")

	req, err := decodeRequest(msg)
	if err != nil {
		return analyst.Outcome{}, err
	}

	return c.analyzer.AnalyzeRequest(ctx, req.RequestID, req.Ticker), nil
}

// decodeRequest accepts a JSON AnalysisRequest, falling back to the message key
// for the ticker when the body omits it.
func decodeRequest(msg kafka.Message) (models.AnalysisRequest, error) {
	var req models.AnalysisRequest
	if len(msg.Value) > 0 {
		if err := json.Unmarshal(msg.Value, &req); err != nil {
			return req, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
	}
	if strings.TrimSpace(req.Ticker) == "" {
		req.Ticker = string(msg.Key)
	}
	if strings.TrimSpace(req.Ticker) == "" {
		return req, fmt.Errorf("%w: no ticker", ErrInvalidRequest)
	}
	return req, nil
}

// Close closes the Kafka consumer
func (c *Consumer) Close() error {
	return c.reader.Close()
}
