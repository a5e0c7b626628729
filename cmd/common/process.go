// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"fjacquet/budget-board/internal/logging"
	"fjacquet/budget-board/internal/models"
	"fjacquet/budget-board/internal/session"
)

// LoadPortfolio runs the pipeline once. An unusable data directory is the
// only fatal condition; row and file problems end up in the load report.
func LoadPortfolio(sess *session.Session, log logging.Logger) {
	if _, _, err := sess.LoadOrRefresh(context.Background()); err != nil {
		log.Fatalf("Error loading monthly workbooks: %v", err)
	}
}

// FormatAmount renders a decimal amount for a table cell.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// PrintReport writes the skipped files and row warnings collected during a
// load. Quiet when the load was clean.
func PrintReport(w io.Writer, report *models.LoadReport) {
	if report == nil || !report.HasIssues() {
		return
	}

	if len(report.SkippedFiles) > 0 {
		fmt.Fprintf(w, "\nSkipped files (%d):\n", len(report.SkippedFiles))
		for _, skipped := range report.SkippedFiles {
			fmt.Fprintf(w, "  %s: %s\n", skipped.File, skipped.Reason)
		}
	}

	if len(report.Warnings) > 0 {
		fmt.Fprintf(w, "\nRow warnings (%d):\n", len(report.Warnings))
		for _, warning := range report.Warnings {
			fmt.Fprintf(w, "  %s\n", warning)
		}
	}
}
