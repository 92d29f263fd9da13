package prompt

import (
	"strings"
	"testing"

	"github.com/guregu/null/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trogers1052/stock-analyst/internal/models"
)

func sampleValuation() models.ValuationSnapshot {
	return models.ValuationSnapshot{
		CompanyName:  "Apple Inc.",
		StockPrice:   232.14,
		PERatio:      28.6,
		MarketCapB:   3449.59,
		DayChangePct: 1.23,
		Quote:        models.QuoteEcho{PriceRange: "$164.08 - $260.1", AvgVolume: 45113080},
	}
}

func sampleSeries() []models.QuarterRow {
	return []models.QuarterRow{
		{
			Date:                "2025-Q1",
			RevenueB:            95.36,
			ProfitB:             24.78,
			EPS:                 1.65,
			GrossProfitRatioPct: 47.1,
			OperatingIncomeB:    29.59,
			NetIncomeMarginPct:  26,
		},
		{
			Date:                "2025-Q2",
			RevenueB:            94.04,
			ProfitB:             23.43,
			EPS:                 1.57,
			GrossProfitRatioPct: 46.7,
			OperatingIncomeB:    28.2,
			NetIncomeMarginPct:  24.9,
			Growth: &models.Growth{
				RevenueQoQPct: null.FloatFrom(-1.39),
				ProfitQoQPct:  null.FloatFrom(-5.43),
				EPSQoQPct:     null.Float{},
			},
		},
	}
}

func TestCompose_SnapshotHeader(t *testing.T) {
	series := sampleSeries()[:1]
	got := Compose("AAPL", "Apple Inc.", sampleValuation(), series)

	want := "You are a senior equity analyst writing a morning briefing memo for a portfolio\n" +
		"manager who has 30 seconds to read this. Be direct and opinionated. State what matters,\n" +
		"skip what doesn't.\n" +
		"\n" +
		"Company: **Apple Inc. (AAPL)**\n" +
		"Price: $232.14 | P/E: 28.6 | Market Cap: $3449.59B\n" +
		"\n" +
		"Last 4 quarters:\n" +
		"```json\n" +
		"[\n" +
		"  {\n" +
		"    \"date\": \"2025-Q1\",\n" +
		"    \"revenue_b\": 95.36,\n" +
		"    \"profit_b\": 24.78,\n" +
		"    \"eps\": 1.65,\n" +
		"    \"gross_profit_ratio_pct\": 47.1,\n" +
		"    \"operating_income_b\": 29.59,\n" +
		"    \"net_income_margin_pct\": 26\n" +
		"  }\n" +
		"]\n" +
		"```\n" +
		"\n" +
		"---\n"

	assert.True(t, strings.HasPrefix(got, want), "unexpected prompt header:\n%s", got)
}

func TestCompose_OutputDirectives(t *testing.T) {
	got := Compose("MSFT", "Microsoft Corporation", sampleValuation(), sampleSeries())

	for _, fragment := range []string{
		"### MSFT Scorecard",
		"| Metric | Grade | Signal |",
		"|--------|-------|--------|",
		"| Operational Excellence | (A+ to F) |",
		"| Growth Efficiency | (A+ to F) |",
		"| Valuation | STRETCHED / FAIR / COMPRESSED |",
		"### Bull Case",
		"### Bear Case",
		"### Verdict",
		"**STRONG BUY** / **BUY** / **HOLD** / **UNDERPERFORM** / **SELL**",
		"under 500 words",
		`"It's worth noting", "It should be mentioned", "Overall",`,
		`"In summary", "In conclusion", "It is important to", "Looking at the data".`,
	} {
		assert.Contains(t, got, fragment)
	}
	assert.True(t, strings.HasSuffix(got, "calculated in the data — do not recalculate them."))
}

func TestCompose_EmbedsSeriesVerbatim(t *testing.T) {
	series := sampleSeries()
	got := Compose("AAPL", "Apple Inc.", sampleValuation(), series)

	block := SerializeSeries(series)
	assert.Contains(t, got, "```json\n"+block+"\n```")
	assert.Contains(t, got, `"revenue_qoq_pct": -1.39`)
	assert.Contains(t, got, `"eps_qoq_pct": null`)
	assert.Equal(t, 1, strings.Count(got, `"date": "2025-Q1"`))
}

func TestCompose_ValuesRoundTrip(t *testing.T) {
	v := sampleValuation()
	got := Compose("AAPL", v.CompanyName, v, sampleSeries())

	assert.Contains(t, got, "AAPL")
	assert.Contains(t, got, "$"+FormatNumber(v.StockPrice))
	assert.Contains(t, got, "P/E: "+FormatNumber(v.PERatio))
	assert.Contains(t, got, "$"+FormatNumber(v.MarketCapB)+"B")
}

func TestCompose_Deterministic(t *testing.T) {
	a := Compose("AAPL", "Apple Inc.", sampleValuation(), sampleSeries())
	b := Compose("AAPL", "Apple Inc.", sampleValuation(), sampleSeries())
	assert.Equal(t, a, b)
}

func TestCompose_EmptyInputsDescribedLiterally(t *testing.T) {
	got := Compose("", "", models.ValuationSnapshot{}, nil)

	assert.Contains(t, got, "Company: ** ()**")
	assert.Contains(t, got, "Price: $0 | P/E: 0 | Market Cap: $0B")
	assert.Contains(t, got, "```json\n[]\n```")
}

func TestSerializeSeries_FieldOrder(t *testing.T) {
	block := SerializeSeries(sampleSeries()[1:])

	keys := []string{
		`"date"`, `"revenue_b"`, `"profit_b"`, `"eps"`, `"gross_profit_ratio_pct"`,
		`"operating_income_b"`, `"net_income_margin_pct"`,
		`"revenue_qoq_pct"`, `"profit_qoq_pct"`, `"eps_qoq_pct"`,
	}
	last := -1
	for _, k := range keys {
		idx := strings.Index(block, k)
		require.NotEqual(t, -1, idx, k)
		assert.Greater(t, idx, last, k)
		last = idx
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "189.84", FormatNumber(189.84))
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "-3.5", FormatNumber(-3.5))
	assert.Equal(t, "2950", FormatNumber(2950))
}
