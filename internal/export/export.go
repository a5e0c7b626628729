// Package export flattens the loaded portfolio into files other tools can
// consume.
package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"fjacquet/budget-board/internal/dateutils"
	"fjacquet/budget-board/internal/logging"
	"fjacquet/budget-board/internal/models"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger for this package
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// TransactionRow is one line of the labeled-transactions CSV. Amounts are
// written with two decimal places, dates as ISO dates.
type TransactionRow struct {
	Month       string `csv:"Month"`
	Date        string `csv:"Date"`
	Category    string `csv:"Category"`
	Amount      string `csv:"Amount"`
	Label       string `csv:"Label"`
	Description string `csv:"Description"`
	Who         string `csv:"Who"`
	Whom        string `csv:"Whom"`
}

// WriteTransactions writes every transaction of every loaded month to a CSV
// file, months in calendar order, rows in sheet order. An empty portfolio
// still produces the header line.
func WriteTransactions(path string, p *models.Portfolio) error {
	rows := transactionRows(p)

	file, err := os.Create(path)
	if err != nil {
		log.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.WithError(closeErr).Warn("Failed to close CSV file")
		}
	}()

	csvWriter := csv.NewWriter(file)
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		log.WithError(err).Error("Failed to marshal transactions to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	log.WithFields(
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(rows)},
	).Info("Wrote labeled transactions")

	return nil
}

func transactionRows(p *models.Portfolio) []TransactionRow {
	rows := make([]TransactionRow, 0)
	if p == nil {
		return rows
	}

	for _, month := range p.Months {
		for i := range month.Transactions {
			txn := &month.Transactions[i]

			date := ""
			if !txn.Date.IsZero() {
				date = dateutils.ToISODate(txn.Date)
			}

			rows = append(rows, TransactionRow{
				Month:       month.Month,
				Date:        date,
				Category:    txn.Category,
				Amount:      txn.Amount.StringFixed(2),
				Label:       txn.Label.String(),
				Description: txn.Description,
				Who:         txn.Who,
				Whom:        txn.Whom,
			})
		}
	}
	return rows
}
