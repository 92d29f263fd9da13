// Package fmp is a client for the Financial Modeling Prep stable API.
package fmp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/trogers1052/stock-analyst/internal/models"
	"golang.org/x/time/rate"
)

// PeriodQuarter requests quarterly statements
const PeriodQuarter = "quarter"

// ErrUpstream marks failures reported by the provider itself.
var ErrUpstream = errors.New("fmp upstream error")

// APIError carries the provider's status code and message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode >= 400 {
		return fmt.Sprintf("FMP error (HTTP %d): %s", e.StatusCode, e.Message)
	}
	return "FMP error: " + e.Message
}

func (e *APIError) Unwrap() error {
	return ErrUpstream
}

// Options configures a Client.
type Options struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	RequestsPerSecond float64
}

// Client handles Financial Modeling Prep API operations
type Client struct {
	http    *resty.Client
	apiKey  string
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewClient creates a new FMP client
func NewClient(opts Options, logger zerolog.Logger) *Client {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(opts.BaseURL, "/"))
	client.SetTimeout(opts.Timeout)
	client.SetHeader("Accept", "application/json")

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &Client{
		http:    client,
		apiKey:  opts.APIKey,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger.With().Str("component", "fmp").Logger(),
	}
}

// IncomeStatements returns the most recent income statements, newest first.
// A response that is not a JSON array yields no statements.
func (c *Client) IncomeStatements(ctx context.Context, symbol, period string, limit int) ([]models.RawStatement, error) {
	body, err := c.get(ctx, "income-statement", map[string]string{
		"symbol": symbol,
		"period": period,
		"limit":  strconv.Itoa(limit),
	})
	if err != nil {
		return nil, err
	}

	if !isArray(body) {
		return nil, nil
	}

	var statements []models.RawStatement
	if err := json.Unmarshal(body, &statements); err != nil {
		return nil, fmt.Errorf("failed to parse income statements for %s: %w", symbol, err)
	}
	return statements, nil
}

// Quote returns the live quote, or nil when the provider has none.
func (c *Client) Quote(ctx context.Context, symbol string) (*models.RawQuote, error) {
	body, err := c.get(ctx, "quote", map[string]string{"symbol": symbol})
	if err != nil {
		return nil, err
	}

	if !isArray(body) {
		return nil, nil
	}

	var quotes []models.RawQuote
	if err := json.Unmarshal(body, &quotes); err != nil {
		return nil, fmt.Errorf("failed to parse quote for %s: %w", symbol, err)
	}
	if len(quotes) == 0 {
		return nil, nil
	}
	return &quotes[0], nil
}

func (c *Client) get(ctx context.Context, endpoint string, params map[string]string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("fmp %s: %w", endpoint, err)
	}

	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetQueryParam("apikey", c.apiKey).
		Get("/" + endpoint)
	if err != nil {
		return nil, fmt.Errorf("fmp %s: %w", endpoint, err)
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("symbol", params["symbol"]).
		Int("status", resp.StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("FMP request completed")

	if resp.IsError() {
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: strings.TrimSpace(resp.String())}
	}

	body := resp.Body()
	if msg, ok := errorMessage(body); ok {
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: msg}
	}
	return body, nil
}

// errorMessage extracts the provider's embedded {"Error Message": "..."} payload.
func errorMessage(body []byte) (string, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return "", false
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return "", false
	}
	raw, ok := payload["Error Message"]
	if !ok {
		return "", false
	}

	var msg string
	if err := json.Unmarshal(raw, &msg); err != nil {
		msg = string(raw)
	}
	return msg, true
}

func isArray(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && trimmed[0] == '['
}
