// Package report derives display values from a snapshot of expense records.
//
// Every function is a pure function of its input: the records slice is never
// modified and every returned slice is freshly allocated.
package report

import (
	"github.com/shopspring/decimal"

	"tally/internal/core"
)

// RecentLimit is how many records the home view lists.
const RecentLimit = 5

// MonthlyTotals buckets amounts by calendar month, 0=January. The year is
// ignored, so callers that want a single year must filter first. Records
// whose date does not parse are skipped.
func MonthlyTotals(records []core.Expense) core.MonthlySeries {
	var months core.MonthlySeries
	for i := range months {
		months[i] = decimal.Zero
	}
	for _, e := range records {
		d, err := e.ParsedDate()
		if err != nil {
			continue
		}
		idx := d.Month() - 1
		months[idx] = months[idx].Add(e.Amount)
	}
	return months
}

// Filter returns the records matching both selectors, in input order.
// core.All disables a selector. Category comparison is exact.
func Filter(records []core.Expense, category, yearMonth string) []core.Expense {
	out := make([]core.Expense, 0, len(records))
	for _, e := range records {
		if category != core.All && string(e.Category) != category {
			continue
		}
		if yearMonth != core.All {
			d, err := e.ParsedDate()
			if err != nil || d.YearMonth() != yearMonth {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

// UniqueYearMonths lists each distinct year-month key once, in first-seen order.
func UniqueYearMonths(records []core.Expense) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, e := range records {
		d, err := e.ParsedDate()
		if err != nil {
			continue
		}
		key := d.YearMonth()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}

// Total sums every amount exactly. An empty input totals zero.
func Total(records []core.Expense) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range records {
		sum = sum.Add(e.Amount)
	}
	return sum
}

// Recent returns the last n records, newest first.
func Recent(records []core.Expense, n int) []core.Expense {
	if n < 0 {
		n = 0
	}
	if n > len(records) {
		n = len(records)
	}
	out := make([]core.Expense, 0, n)
	for i := len(records) - 1; i >= len(records)-n; i-- {
		out = append(out, records[i])
	}
	return out
}
