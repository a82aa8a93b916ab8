package http

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"tally/internal/core"
	"tally/internal/services"
)

// sanitizeInput trims whitespace and drops control characters other than
// tab, newline and carriage return.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

type chartView struct {
	Labels []string      `json:"labels"`
	Values []json.Number `json:"values"`
	Max    json.Number   `json:"max"`
}

func newChartView(series core.MonthlySeries) chartView {
	v := chartView{
		Labels: core.MonthLabels[:],
		Values: make([]json.Number, len(series)),
		Max:    number(series.Max()),
	}
	for i, d := range series {
		v.Values[i] = number(d)
	}
	return v
}

type overviewView struct {
	Category             string         `json:"category"`
	Month                string         `json:"month"`
	Expenses             []core.Expense `json:"expenses"`
	Chart                chartView      `json:"chart"`
	Total                json.Number    `json:"total"`
	TotalDisplay         string         `json:"total_display"`
	FilteredTotal        json.Number    `json:"filtered_total"`
	FilteredTotalDisplay string         `json:"filtered_total_display"`
	Months               []string       `json:"months"`
	Recent               []core.Expense `json:"recent"`
}

func newOverviewView(ov services.Overview) overviewView {
	return overviewView{
		Category:             ov.Selection.Category,
		Month:                ov.Selection.YearMonth,
		Expenses:             ov.Records,
		Chart:                newChartView(ov.Monthly),
		Total:                number(ov.Total),
		TotalDisplay:         core.FormatAmount(ov.Total),
		FilteredTotal:        number(ov.FilteredTotal),
		FilteredTotalDisplay: core.FormatAmount(ov.FilteredTotal),
		Months:               ov.YearMonths,
		Recent:               ov.Recent,
	}
}

type expensesView struct {
	Category string         `json:"category"`
	Month    string         `json:"month"`
	Expenses []core.Expense `json:"expenses"`
	Total    json.Number    `json:"total"`
}
