package models

import "github.com/guregu/null/v6"

// QuarterRow is one chart-ready quarter, oldest first. Monetary values are in billions.
type QuarterRow struct {
	Date                string  `json:"date"`
	RevenueB            float64 `json:"revenue_b"`
	ProfitB             float64 `json:"profit_b"`
	EPS                 float64 `json:"eps"`
	GrossProfitRatioPct float64 `json:"gross_profit_ratio_pct"`
	OperatingIncomeB    float64 `json:"operating_income_b"`
	NetIncomeMarginPct  float64 `json:"net_income_margin_pct"`
	*Growth
}

// Growth holds quarter-over-quarter changes against the preceding quarter.
// It is nil on the first chronological row, which omits the keys entirely;
// an invalid value inside it serializes as JSON null.
type Growth struct {
	RevenueQoQPct null.Float `json:"revenue_qoq_pct"`
	ProfitQoQPct  null.Float `json:"profit_qoq_pct"`
	EPSQoQPct     null.Float `json:"eps_qoq_pct"`
}

// ValuationSnapshot is derived from the live quote and the quarter window.
type ValuationSnapshot struct {
	CompanyName  string    `json:"company_name"`
	StockPrice   float64   `json:"stock_price"`
	PERatio      float64   `json:"pe_ratio"`
	MarketCapB   float64   `json:"market_cap_b"`
	DayChangePct float64   `json:"day_change_pct"`
	Quote        QuoteEcho `json:"quote"`
}

// QuoteEcho echoes raw quote values that are shown but not derived.
type QuoteEcho struct {
	PriceRange string  `json:"price_range"`
	AvgVolume  float64 `json:"avg_volume"`
}

// Metrics is the MetricsBuilder output.
type Metrics struct {
	Series    []QuarterRow      `json:"chartData"`
	Valuation ValuationSnapshot `json:"valuation"`
}
