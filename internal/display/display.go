// Package display renders analysis results for the terminal.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/guregu/null/v6"
	"github.com/trogers1052/stock-analyst/internal/models"
	"github.com/trogers1052/stock-analyst/internal/prompt"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	analysisStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#10B981")).
			Padding(0, 1)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)
)

var seriesHeaders = []string{"Quarter", "Revenue $B", "Profit $B", "EPS", "Gross %", "Op Inc $B", "Net %", "Rev QoQ", "Profit QoQ", "EPS QoQ"}

// Analysis renders a full response: header, valuation, quarter table and memo.
func Analysis(resp *models.AnalysisResponse, warning string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%s)", resp.Company, resp.Ticker)))
	b.WriteString("\n\n")
	b.WriteString(Valuation(resp.Valuation))
	b.WriteString("\n\n")
	b.WriteString(Series(resp.ChartData))
	b.WriteString("\n")

	if warning != "" {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render("Analysis degraded: " + warning))
		b.WriteString("\n")
	}

	if resp.Analysis != nil {
		b.WriteString("\n")
		b.WriteString(analysisStyle.Render(strings.TrimSpace(*resp.Analysis)))
		b.WriteString("\n")
	}

	return b.String()
}

// Valuation renders the snapshot as label/value pairs.
func Valuation(v models.ValuationSnapshot) string {
	pairs := [][2]string{
		{"Price", "$" + prompt.FormatNumber(v.StockPrice)},
		{"P/E", prompt.FormatNumber(v.PERatio)},
		{"Market Cap", "$" + prompt.FormatNumber(v.MarketCapB) + "B"},
		{"Day Change", prompt.FormatNumber(v.DayChangePct) + "%"},
		{"52w Range", v.Quote.PriceRange},
	}

	lines := make([]string, 0, len(pairs))
	for _, p := range pairs {
		lines = append(lines, labelStyle.Render(fmt.Sprintf("%-11s", p[0]))+" "+valueStyle.Render(p[1]))
	}
	return strings.Join(lines, "\n")
}

// Series renders the quarter rows oldest first.
func Series(rows []models.QuarterRow) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(seriesHeaders...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, r := range rows {
		g := r.Growth
		if g == nil {
			g = &models.Growth{}
		}
		t.Row(
			r.Date,
			prompt.FormatNumber(r.RevenueB),
			prompt.FormatNumber(r.ProfitB),
			prompt.FormatNumber(r.EPS),
			prompt.FormatNumber(r.GrossProfitRatioPct),
			prompt.FormatNumber(r.OperatingIncomeB),
			prompt.FormatNumber(r.NetIncomeMarginPct),
			pct(g.RevenueQoQPct),
			pct(g.ProfitQoQPct),
			pct(g.EPSQoQPct),
		)
	}

	return t.String()
}

// Error renders a fatal lookup failure.
func Error(e *models.ErrorResponse) string {
	return errorStyle.Render(e.Error) + " " + e.Message
}

func pct(f null.Float) string {
	if !f.Valid {
		return "-"
	}
	return prompt.FormatNumber(f.Float64) + "%"
}
