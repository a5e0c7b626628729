// Package export implements the command that writes the labeled
// transactions of every loaded month to a CSV file.
package export

import (
	"github.com/spf13/cobra"

	"fjacquet/budget-board/cmd/common"
	"fjacquet/budget-board/cmd/root"
	"fjacquet/budget-board/internal/export"
)

var outputFile string

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the labeled transactions to CSV",
	Long: `Load the monthly workbooks and write every labeled transaction to a
single CSV file, one row per transaction with its month, label, and the
normalized columns.`,
	Run: exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "transactions.csv", "Output CSV file")
}

func exportFunc(cmd *cobra.Command, args []string) {
	sess := root.NewSession()
	common.LoadPortfolio(sess, root.Log)

	if err := export.WriteTransactions(outputFile, sess.Portfolio()); err != nil {
		root.Log.Fatalf("Error exporting transactions: %v", err)
	}
	root.Log.Info("Export completed successfully!")
}
