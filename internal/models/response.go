package models

// Error codes surfaced to clients
const (
	ErrorCodeDataFetchFailed = "DATA_FETCH_FAILED"
)

// AnalysisResponse is the JSON body returned for a ticker lookup.
// Analysis is nil only when no generation was attempted.
type AnalysisResponse struct {
	Ticker    string            `json:"ticker"`
	Company   string            `json:"company"`
	ChartData []QuarterRow      `json:"chartData"`
	Valuation ValuationSnapshot `json:"valuation"`
	Analysis  *string           `json:"analysis"`
}

// ErrorResponse is the JSON body returned when a lookup aborts.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
