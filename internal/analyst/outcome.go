package analyst

import (
	"fmt"
	"time"

	"github.com/trogers1052/stock-analyst/internal/models"
)

// Status classifies a pipeline run.
type Status int

const (
	// StatusOK means metrics and generated analysis are both present.
	StatusOK Status = iota
	// StatusDegraded means metrics are present but the analysis is a placeholder.
	StatusDegraded
	// StatusFatal means no metrics could be produced; only an error is returned.
	StatusFatal
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusDegraded:
		return "degraded"
	case StatusFatal:
		return "fatal"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Outcome is the result of one ticker lookup.
type Outcome struct {
	RequestID string
	Ticker    string
	Status    Status
	Response  *models.AnalysisResponse
	Warning   string
	Err       error
	Duration  time.Duration
}

// Ok wraps a complete response.
func Ok(resp *models.AnalysisResponse) Outcome {
	return Outcome{Ticker: resp.Ticker, Status: StatusOK, Response: resp}
}

// Degraded wraps a response whose analysis was replaced by a placeholder.
func Degraded(resp *models.AnalysisResponse, warning string) Outcome {
	return Outcome{Ticker: resp.Ticker, Status: StatusDegraded, Response: resp, Warning: warning}
}

// Fatal wraps a failure that aborted the lookup.
func Fatal(ticker string, err error) Outcome {
	return Outcome{Ticker: ticker, Status: StatusFatal, Err: err}
}

// ErrorResponse returns the client-visible error body for a fatal outcome, or nil.
func (o Outcome) ErrorResponse() *models.ErrorResponse {
	if o.Status != StatusFatal {
		return nil
	}
	return &models.ErrorResponse{
		Error:   models.ErrorCodeDataFetchFailed,
		Message: fmt.Sprintf("Could not retrieve data for %s: %v", o.Ticker, o.Err),
	}
}

// Event converts the outcome to its published form.
func (o Outcome) Event() models.AnalysisEvent {
	event := models.AnalysisEvent{
		RequestID:  o.RequestID,
		Ticker:     o.Ticker,
		Status:     o.Status.String(),
		Warning:    o.Warning,
		Response:   o.Response,
		Error:      o.ErrorResponse(),
		DurationMS: o.Duration.Milliseconds(),
		Timestamp:  time.Now().UTC(),
	}

	switch o.Status {
	case StatusOK:
		event.EventType = models.EventAnalysisCompleted
	case StatusDegraded:
		event.EventType = models.EventAnalysisDegraded
	default:
		event.EventType = models.EventAnalysisFailed
	}
	return event
}
