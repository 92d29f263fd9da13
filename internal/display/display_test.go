package display

import (
	"testing"

	"github.com/guregu/null/v6"
	"github.com/stretchr/testify/assert"
	"github.com/trogers1052/stock-analyst/internal/models"
)

func sampleResponse() *models.AnalysisResponse {
	text := "### AAPL Scorecard\n\nSolid quarter."
	return &models.AnalysisResponse{
		Ticker:  "AAPL",
		Company: "Apple Inc.",
		ChartData: []models.QuarterRow{
			{Date: "2025-Q1", RevenueB: 95.36, ProfitB: 24.78, EPS: 1.65},
			{
				Date: "2025-Q2", RevenueB: 94.04, ProfitB: 23.43, EPS: 1.57,
				Growth: &models.Growth{
					RevenueQoQPct: null.FloatFrom(-1.38),
					ProfitQoQPct:  null.FloatFrom(-5.45),
				},
			},
		},
		Valuation: models.ValuationSnapshot{
			CompanyName: "Apple Inc.",
			StockPrice:  230.5,
			PERatio:     35.1,
			MarketCapB:  3449.59,
			Quote:       models.QuoteEcho{PriceRange: "$164.08 - $260.1"},
		},
		Analysis: &text,
	}
}

func TestAnalysis(t *testing.T) {
	out := Analysis(sampleResponse(), "")

	assert.Contains(t, out, "Apple Inc. (AAPL)")
	assert.Contains(t, out, "$230.5")
	assert.Contains(t, out, "35.1")
	assert.Contains(t, out, "$3449.59B")
	assert.Contains(t, out, "$164.08 - $260.1")
	assert.Contains(t, out, "2025-Q1")
	assert.Contains(t, out, "-1.38%")
	assert.Contains(t, out, "Solid quarter.")
	assert.NotContains(t, out, "Analysis degraded")
}

func TestAnalysis_Degraded(t *testing.T) {
	out := Analysis(sampleResponse(), "throttled")
	assert.Contains(t, out, "Analysis degraded: throttled")
}

func TestSeries_MissingGrowthShowsDash(t *testing.T) {
	out := Series([]models.QuarterRow{{Date: "2025-Q1", RevenueB: 1}})
	assert.Contains(t, out, "Rev QoQ")
	assert.Contains(t, out, "-")
}

func TestError(t *testing.T) {
	out := Error(&models.ErrorResponse{Error: "DATA_FETCH_FAILED", Message: "Could not retrieve data for ZZZZ: boom"})
	assert.Contains(t, out, "DATA_FETCH_FAILED")
	assert.Contains(t, out, "Could not retrieve data for ZZZZ: boom")
}
