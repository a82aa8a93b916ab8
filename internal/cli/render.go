package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"tally/internal/core"
)

// chartWidth is the length of the longest bar in RenderChart.
const chartWidth = 40

// RenderExpenses writes expenses as an aligned table.
func RenderExpenses(w io.Writer, expenses []core.Expense) error {
	if len(expenses) == 0 {
		_, err := fmt.Fprintln(w, SubtleStyle.Render("No expenses recorded."))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		HeaderStyle.Render("ID"),
		HeaderStyle.Render("Date"),
		HeaderStyle.Render("Category"),
		HeaderStyle.Render("Amount"),
		HeaderStyle.Render("Title"))
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 13),
		strings.Repeat("-", 10),
		strings.Repeat("-", 13),
		strings.Repeat("-", 10),
		strings.Repeat("-", 20))
	for _, e := range expenses {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Date, e.Category, core.FormatAmount(e.Amount), e.Title)
	}
	return tw.Flush()
}

// RenderChart draws one horizontal bar per month, scaled to the largest
// month. Negative months draw no bar.
func RenderChart(w io.Writer, series core.MonthlySeries) error {
	peak := series.Max()
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	for i, v := range series {
		bar := ""
		if peak.IsPositive() && v.IsPositive() {
			n := v.Mul(decimal.NewFromInt(chartWidth)).Div(peak).Ceil().IntPart()
			bar = BarStyle.Render(strings.Repeat("█", int(n)))
		}
		fmt.Fprintf(tw, "%s\t%s\t %s\n", core.MonthLabels[i], core.FormatAmount(v), bar)
	}
	return tw.Flush()
}

// RenderTotal writes the running total in a box.
func RenderTotal(w io.Writer, label string, total decimal.Decimal) error {
	_, err := fmt.Fprintln(w, TotalStyle.Render(label+": "+core.FormatAmount(total)))
	return err
}

// Confirm asks a yes/no question on out and reads the answer from in.
// Anything but y or yes is a no.
func Confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s (y/N): ", prompt)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
