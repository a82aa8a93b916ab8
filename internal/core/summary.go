package core

import "github.com/shopspring/decimal"

// MonthLabels are the chart labels for MonthlySeries slots.
var MonthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthlySeries holds one total per calendar month, 0=January.
type MonthlySeries [12]decimal.Decimal

// Max returns the largest slot, or zero when every slot is zero or negative.
func (s MonthlySeries) Max() decimal.Decimal {
	best := decimal.Zero
	for _, v := range s {
		if v.GreaterThan(best) {
			best = v
		}
	}
	return best
}
