// Package metrics implements the command that prints the derived budget
// metrics: spending trend, label allocation, top categories, emergency fund
// sizing, and recommendations.
package metrics

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"fjacquet/budget-board/cmd/common"
	"fjacquet/budget-board/cmd/root"
	"fjacquet/budget-board/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Cmd represents the metrics command
var Cmd = &cobra.Command{
	Use:   "metrics",
	Short: "Print spending trend, label ratios, and recommendations",
	Long: `Load the monthly workbooks and print the derived metrics: the month
over month spending trend, how income splits across the labels, the top
expense categories, the emergency fund target, and any recommendations the
thresholds trigger.`,
	Run: metricsFunc,
}

func metricsFunc(cmd *cobra.Command, args []string) {
	sess := root.NewSession()
	common.LoadPortfolio(sess, root.Log)

	renderMetrics(os.Stdout, sess.Metrics())
}

func renderMetrics(w io.Writer, result models.MetricsResult) {
	if len(result.Trend) == 0 {
		fmt.Fprintln(w, "No monthly workbooks loaded.")
		return
	}

	fmt.Fprintf(w, "Emergency fund target: %s (%d months of average Needs spending %s)\n\n",
		common.FormatAmount(result.EmergencyFundTarget),
		result.EmergencyFundMonths,
		common.FormatAmount(result.AvgMonthlyNeeds))

	renderTrend(w, result.Trend)
	fmt.Fprintln(w)
	renderRatios(w, result.Ratios)
	fmt.Fprintln(w)
	renderTopCategories(w, result.TopCategories)

	if len(result.Recommendations) > 0 {
		fmt.Fprintln(w, "\nRecommendations:")
		for _, rec := range result.Recommendations {
			fmt.Fprintf(w, "  - %s\n", rec)
		}
	}
}

func renderTrend(w io.Writer, trend []models.TrendPoint) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Month", "Total Spend", "Vs Previous"})
	for i, point := range trend {
		delta := common.FormatAmount(point.Delta)
		if i == 0 {
			delta = "-"
		} else if point.Delta.IsPositive() {
			delta = "+" + delta
		}
		t.AppendRow(table.Row{point.Month, common.FormatAmount(point.TotalSpend), delta})
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	t.Render()
}

func renderRatios(w io.Writer, ratios []models.LabelRatio) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Label", "Amount", "% of Income", "% of Spend"})
	for _, ratio := range ratios {
		if ratio.Amount.IsZero() {
			continue
		}
		t.AppendRow(table.Row{
			ratio.Label,
			common.FormatAmount(ratio.Amount),
			formatShare(ratio.ShareOfIncome),
			formatShare(ratio.ShareOfSpend),
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()
}

func renderTopCategories(w io.Writer, categories []models.CategoryTotal) {
	if len(categories) == 0 {
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Top Category", "Amount"})
	for _, category := range categories {
		t.AppendRow(table.Row{category.Category, common.FormatAmount(category.Amount)})
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	t.Render()
}

func formatShare(share decimal.Decimal) string {
	return share.Mul(hundred).StringFixed(1) + "%"
}
