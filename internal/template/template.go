// Package template generates the starter workbooks users copy into month
// files: a Summary sheet documenting every column and a Transactions sheet,
// prefilled with sample rows unless the blank variant is asked for.
package template

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"fjacquet/budget-board/internal/logging"
)

const (
	summarySheet      = "Summary"
	transactionsSheet = "Transactions"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger for this package
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// transactionHeader is the column order of the Transactions sheet.
var transactionHeader = []string{"Date", "Amount", "Description", "Category", "Who", "Whom", "Label"}

// columnDoc is one row of the Summary sheet's documentation block.
type columnDoc struct {
	Column      string
	Description string
	Example     string
	Required    string
}

var columnDocs = []columnDoc{
	{"Date", "Date of the transaction (YYYY-MM-DD format)", "2025-01-15", "No"},
	{"Amount", "Amount spent/invested in your currency", "1500.00", "Yes"},
	{"Description", "Brief description of the transaction", "Weekly Groceries", "No"},
	{"Category", "Category of expense or investment", "Groceries", "Yes"},
	{"Who", "Person who made the transaction", "Self", "No"},
	{"Whom", "Vendor or recipient of the payment", "Local Grocery Store", "No"},
	{"Label", "Label: N (Needs), W (Wants), L (Luxury), S (Savings), I (Investment)", "N", "No"},
}

// sampleRow is one prefilled transaction. Rows are fixed so two template
// files are always identical.
type sampleRow struct {
	Date        string
	Amount      float64
	Description string
	Category    string
	Who         string
	Whom        string
	Label       string
}

// sampleRows covers every default category and every label at least once.
var sampleRows = []sampleRow{
	{"2025-01-01", 1500.00, "Rent Payment", "Housing", "Self", "Bank", "N"},
	{"2025-01-02", 120.00, "Electricity Bill", "Utilities", "Self", "Electric Company", "N"},
	{"2025-01-03", 250.50, "Weekly Groceries", "Groceries", "Self", "Local Grocery Store", "N"},
	{"2025-01-04", 85.00, "Dinner", "Dining Out", "Spouse", "Restaurant", "W"},
	{"2025-01-05", 60.00, "Fuel", "Transportation", "Self", "Gas Station", "N"},
	{"2025-01-06", 200.00, "Doctor Visit", "Health", "Family", "Pharmacy", "N"},
	{"2025-01-07", 45.00, "Movie Tickets", "Entertainment", "Family", "Cinema", "W"},
	{"2025-01-08", 320.00, "Clothes", "Shopping", "Spouse", "Department Store", "L"},
	{"2025-01-09", 150.00, "Course Fee", "Education", "Self", "Online Shop", "N"},
	{"2025-01-10", 80.00, "Haircut", "Personal Care", "Self", "Salon", "N"},
	{"2025-01-11", 400.00, "Life Insurance", "Insurance", "Self", "Insurance Company", "N"},
	{"2025-01-12", 600.00, "Credit Card Payment", "Debt Payments", "Self", "Bank", "N"},
	{"2025-01-13", 15.90, "Streaming Service", "Subscriptions", "Self", "Online Shop", "W"},
	{"2025-01-14", 100.00, "Charity Donation", "Gifts & Donations", "Family", "Charity", "W"},
	{"2025-01-15", 1000.00, "Monthly Savings Transfer", "Savings", "Self", "Bank", "S"},
	{"2025-01-16", 5000.00, "Stocks Contribution", "Investment: Stocks", "Self", "Investment Platform", "I"},
	{"2025-01-17", 2500.00, "Retirement Contribution", "Investment: Retirement", "Spouse", "Investment Platform", "I"},
}

// Write creates a template workbook at path. The blank variant carries only
// the header row on the Transactions sheet.
func Write(path string, blank bool) error {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.WithError(closeErr).Warn("Failed to close template workbook")
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return fmt.Errorf("error building template: %w", err)
	}
	if err := writeSummary(f); err != nil {
		return fmt.Errorf("error building template: %w", err)
	}

	if _, err := f.NewSheet(transactionsSheet); err != nil {
		return fmt.Errorf("error building template: %w", err)
	}
	if err := writeTransactions(f, blank); err != nil {
		return fmt.Errorf("error building template: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("error saving template: %w", err)
	}

	log.WithFields(
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: "blank", Value: blank},
	).Info("Wrote template workbook")

	return nil
}

func writeSummary(f *excelize.File) error {
	header := []string{"Column", "Description", "Example", "Required"}
	for col, value := range header {
		if err := setCell(f, summarySheet, col+1, 1, value); err != nil {
			return err
		}
	}
	for i, doc := range columnDocs {
		values := []string{doc.Column, doc.Description, doc.Example, doc.Required}
		for col, value := range values {
			if err := setCell(f, summarySheet, col+1, i+2, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeTransactions(f *excelize.File, blank bool) error {
	for col, value := range transactionHeader {
		if err := setCell(f, transactionsSheet, col+1, 1, value); err != nil {
			return err
		}
	}
	if blank {
		return nil
	}

	for i, row := range sampleRows {
		values := []interface{}{row.Date, row.Amount, row.Description, row.Category, row.Who, row.Whom, row.Label}
		for col, value := range values {
			if err := setCell(f, transactionsSheet, col+1, i+2, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}
