package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/guregu/null/v6"
)

// RawStatement is one quarterly income statement as returned by the data source.
// Every monetary field is optional; absent and JSON null both decode to an invalid value.
type RawStatement struct {
	Revenue         null.Float `json:"revenue"`
	NetIncome       null.Float `json:"netIncome"`
	GrossProfit     null.Float `json:"grossProfit"`
	OperatingIncome null.Float `json:"operatingIncome"`
	EPSDiluted      null.Float `json:"epsDiluted"`
	EPS             null.Float `json:"eps"`
	Period          Label      `json:"period"`
	FiscalYear      Label      `json:"fiscalYear"`
}

// EarningsPerShare resolves diluted EPS, falling back to basic EPS, then zero.
func (s RawStatement) EarningsPerShare() float64 {
	if s.EPSDiluted.Valid {
		return s.EPSDiluted.Float64
	}
	return s.EPS.ValueOrZero()
}

// RawQuote is the live quote record. A nil *RawQuote is treated as an empty quote.
type RawQuote struct {
	Symbol           string      `json:"symbol"`
	Name             null.String `json:"name"`
	Price            null.Float  `json:"price"`
	YearLow          null.Float  `json:"yearLow"`
	YearHigh         null.Float  `json:"yearHigh"`
	MarketCap        null.Float  `json:"marketCap"`
	ChangePercentage null.Float  `json:"changePercentage"`
	Volume           null.Float  `json:"volume"`
}

// Label is a free-form period label. Providers emit fiscal years both as strings
// and as bare numbers, so both decode into the same text form.
type Label string

// UnmarshalJSON accepts a JSON string, number or null.
func (l *Label) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*l = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = Label(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("label must be a string or number: %w", err)
	}
	*l = Label(n.String())
	return nil
}

func (l Label) String() string {
	return string(l)
}
