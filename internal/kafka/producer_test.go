package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trogers1052/stock-analyst/internal/models"
)

// MockWriter captures written messages
type MockWriter struct {
	messages []kafka.Message
	err      error
}

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msgs...)
	return nil
}

func (m *MockWriter) Close() error { return nil }

func TestPublishAnalysis(t *testing.T) {
	writer := &MockWriter{}
	p := &Producer{writer: writer, topic: "stock-analyses"}

	analysis := "memo"
	err := p.PublishAnalysis(context.Background(), models.AnalysisEvent{
		EventType: models.EventAnalysisCompleted,
		RequestID: "req-1",
		Ticker:    "AAPL",
		Response:  &models.AnalysisResponse{Ticker: "AAPL", Company: "Apple Inc.", Analysis: &analysis},
	})
	require.NoError(t, err)
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, "AAPL", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, models.EventAnalysisCompleted, string(msg.Headers[0].Value))

	var decoded models.AnalysisEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "req-1", decoded.RequestID)
	assert.False(t, decoded.Timestamp.IsZero())
	require.NotNil(t, decoded.Response)
	assert.Equal(t, "memo", *decoded.Response.Analysis)
}

func TestPublishAnalysis_WriteError(t *testing.T) {
	writer := &MockWriter{err: errors.New("leader not available")}
	p := &Producer{writer: writer, topic: "stock-analyses"}

	err := p.PublishAnalysis(context.Background(), models.AnalysisEvent{Ticker: "AAPL"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leader not available")
}

func TestNewProducer(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, "stock-analyses")
	assert.Equal(t, "stock-analyses", p.Topic())
	assert.NoError(t, p.Close())
}
