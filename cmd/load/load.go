// Package load implements the command that loads the monthly workbooks and
// prints the dashboard summary table.
package load

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"fjacquet/budget-board/cmd/common"
	"fjacquet/budget-board/cmd/root"
	"fjacquet/budget-board/internal/models"
)

// Cmd represents the load command
var Cmd = &cobra.Command{
	Use:   "load",
	Short: "Load the monthly workbooks and print the budget summary",
	Long: `Load every monthly workbook from the data directory, label the
transactions, and print one summary row per month plus the year to date
totals. Files and rows that could not be processed are listed afterwards.`,
	Run: loadFunc,
}

func loadFunc(cmd *cobra.Command, args []string) {
	sess := root.NewSession()
	common.LoadPortfolio(sess, root.Log)

	renderSummary(os.Stdout, sess.Portfolio())
	common.PrintReport(os.Stdout, sess.Report())
}

func renderSummary(w io.Writer, p *models.Portfolio) {
	if p.Empty() {
		fmt.Fprintln(w, "No monthly workbooks loaded.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Month", "Income", "Expenses", "Invested", "Surplus", "Top Category"})

	estimated := false
	for _, m := range p.Months {
		income := common.FormatAmount(m.Income)
		if !m.IncomeExplicit {
			income += " *"
			estimated = true
		}
		t.AppendRow(table.Row{
			m.Month,
			income,
			common.FormatAmount(m.TotalExpenses),
			common.FormatAmount(m.TotalInvested),
			common.FormatAmount(m.Surplus),
			m.TopCategory,
		})
	}

	t.AppendSeparator()
	ytd := p.YearToDate()
	t.AppendFooter(table.Row{
		"Year to date",
		common.FormatAmount(ytd.Income),
		common.FormatAmount(ytd.Expenses),
		common.FormatAmount(ytd.Invested),
		common.FormatAmount(ytd.Surplus),
		"",
	})

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	t.Render()

	if estimated {
		fmt.Fprintln(w, "* income estimated as 1.5x expenses (no income cell in the workbook)")
	}
}
