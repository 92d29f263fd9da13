// Package prompt renders a metrics series into the format-constrained briefing
// prompt sent to the text-generation service.
package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/trogers1052/stock-analyst/internal/models"
)

var briefing = template.Must(template.New(BriefingTemplateVersion).Parse(briefingTemplate))

type briefingData struct {
	Company    string
	Ticker     string
	StockPrice string
	PERatio    string
	MarketCapB string
	Quarters   string
}

// Compose renders the briefing prompt. It never fails: whatever it is given is
// described literally.
func Compose(ticker, company string, valuation models.ValuationSnapshot, series []models.QuarterRow) string {
	data := briefingData{
		Company:    company,
		Ticker:     ticker,
		StockPrice: FormatNumber(valuation.StockPrice),
		PERatio:    FormatNumber(valuation.PERatio),
		MarketCapB: FormatNumber(valuation.MarketCapB),
		Quarters:   SerializeSeries(series),
	}

	var buf strings.Builder
	if err := briefing.Execute(&buf, data); err != nil {
		// briefingData only carries strings, so execution cannot fail on input
		return fmt.Sprintf("%s\n\n[prompt rendering failed: %v]", buf.String(), err)
	}
	return buf.String()
}

// SerializeSeries renders the quarter series as indented JSON, in the same field
// order and number formatting as the chartData response body.
func SerializeSeries(series []models.QuarterRow) string {
	if series == nil {
		series = []models.QuarterRow{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(series); err != nil {
		return fmt.Sprintf("%+v", series)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// FormatNumber prints a float the way encoding/json does for ordinary magnitudes,
// so snapshot values read identically in the prompt and in the response body.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
