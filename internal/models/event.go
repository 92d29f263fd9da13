package models

import "time"

// Analysis event type constants
const (
	EventAnalysisCompleted = "ANALYSIS_COMPLETED"
	EventAnalysisDegraded  = "ANALYSIS_DEGRADED"
	EventAnalysisFailed    = "ANALYSIS_FAILED"
)

// AnalysisEvent represents a Kafka event emitted after each pipeline run
type AnalysisEvent struct {
	EventType  string            `json:"event_type"`
	RequestID  string            `json:"request_id"`
	Ticker     string            `json:"ticker"`
	Status     string            `json:"status"`
	Warning    string            `json:"warning,omitempty"`
	Error      *ErrorResponse    `json:"error,omitempty"`
	Response   *AnalysisResponse `json:"response,omitempty"`
	DurationMS int64             `json:"duration_ms"`
	Timestamp  time.Time         `json:"timestamp"`
}

// AnalysisRequest is consumed by worker mode
type AnalysisRequest struct {
	Ticker    string `json:"ticker"`
	RequestID string `json:"request_id,omitempty"`
}
