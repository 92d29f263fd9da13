// Package metrics turns raw quarterly statements and a live quote into a
// chronological, unit-scaled quarter series and a valuation snapshot.
package metrics

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/trogers1052/stock-analyst/internal/models"
)

// ErrInsufficientData is returned when there are no statements to build from.
var ErrInsufficientData = errors.New("insufficient data")

// Build computes the quarter series and valuation for ticker.
// statements arrive newest first; the series is returned oldest first.
// quote may be nil.
func Build(ticker string, statements []models.RawStatement, quote *models.RawQuote) (*models.Metrics, error) {
	if len(statements) == 0 {
		return nil, fmt.Errorf("no income-statement data returned for %s: %w", ticker, ErrInsufficientData)
	}

	quarters := chronological(statements)
	series := make([]models.QuarterRow, 0, len(quarters))
	ttmEPS := decimal.Zero

	for i, stmt := range quarters {
		revenue := stmt.Revenue.ValueOrZero()
		profit := stmt.NetIncome.ValueOrZero()
		eps := stmt.EarningsPerShare()
		ttmEPS = ttmEPS.Add(dec(eps))

		row := models.QuarterRow{
			Date:                fmt.Sprintf("%s-%s", stmt.FiscalYear, stmt.Period),
			RevenueB:            billions(revenue),
			ProfitB:             billions(profit),
			EPS:                 roundTo(eps, 2),
			GrossProfitRatioPct: ratioPct(stmt.GrossProfit.ValueOrZero(), revenue, 1),
			OperatingIncomeB:    billions(stmt.OperatingIncome.ValueOrZero()),
			NetIncomeMarginPct:  ratioPct(profit, revenue, 1),
		}

		if i > 0 {
			prev := quarters[i-1]
			row.Growth = &models.Growth{
				RevenueQoQPct: pctChange(revenue, prev.Revenue.ValueOrZero()),
				ProfitQoQPct:  pctChange(profit, prev.NetIncome.ValueOrZero()),
				EPSQoQPct:     pctChange(eps, prev.EarningsPerShare()),
			}
		}

		series = append(series, row)
	}

	return &models.Metrics{
		Series:    series,
		Valuation: valuation(ticker, quote, ttmEPS),
	}, nil
}

func chronological(statements []models.RawStatement) []models.RawStatement {
	out := make([]models.RawStatement, len(statements))
	for i, s := range statements {
		out[len(statements)-1-i] = s
	}
	return out
}

func valuation(ticker string, quote *models.RawQuote, ttmEPS decimal.Decimal) models.ValuationSnapshot {
	if quote == nil {
		quote = &models.RawQuote{}
	}

	price := quote.Price.ValueOrZero()
	pe := 0.0
	if !ttmEPS.IsZero() {
		pe = dec(price).Div(ttmEPS).Round(1).InexactFloat64()
	}

	name := quote.Name.ValueOrZero()
	if name == "" {
		name = ticker + " Inc."
	}

	return models.ValuationSnapshot{
		CompanyName:  name,
		StockPrice:   price,
		PERatio:      pe,
		MarketCapB:   billions(quote.MarketCap.ValueOrZero()),
		DayChangePct: roundTo(quote.ChangePercentage.ValueOrZero(), 2),
		Quote: models.QuoteEcho{
			PriceRange: fmt.Sprintf("$%s - $%s", rangeBound(quote.YearLow.Ptr()), rangeBound(quote.YearHigh.Ptr())),
			AvgVolume:  quote.Volume.ValueOrZero(),
		},
	}
}

func rangeBound(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
