// Package normalize maps raw workbook rows onto the canonical transaction
// schema (Category, Amount, Label, Date, Description, Who, Whom).
package normalize

import (
	"fmt"
	"strings"

	"fjacquet/budget-board/internal/dateutils"
	"fjacquet/budget-board/internal/logging"
	"fjacquet/budget-board/internal/models"
	"fjacquet/budget-board/internal/workbook"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger for this package
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// Header synonyms accepted for each canonical column. Matching is
// case-insensitive on trimmed header text; synonyms are tried in order, so
// the canonical name wins when a sheet carries more than one candidate.
var (
	categoryHeaders    = []string{"category", "cat", "expense category"}
	amountHeaders      = []string{"amount", "amt", "value", "cost"}
	labelHeaders       = []string{"label", "tag", "type"}
	dateHeaders        = []string{"date", "transaction date", "txn date"}
	descriptionHeaders = []string{"description", "desc", "details", "notes"}
	whoHeaders         = []string{"who", "person", "spent by", "paid by"}
	whomHeaders        = []string{"whom", "vendor", "payee", "to whom", "merchant"}
)

// columns holds the workbook header name resolved for each canonical column.
// An empty string means the sheet has no matching column.
type columns struct {
	category    string
	amount      string
	label       string
	date        string
	description string
	who         string
	whom        string
}

func resolveColumns(headers []string) columns {
	return columns{
		category:    findHeader(headers, categoryHeaders),
		amount:      findHeader(headers, amountHeaders),
		label:       findHeader(headers, labelHeaders),
		date:        findHeader(headers, dateHeaders),
		description: findHeader(headers, descriptionHeaders),
		who:         findHeader(headers, whoHeaders),
		whom:        findHeader(headers, whomHeaders),
	}
}

func findHeader(headers []string, synonyms []string) string {
	for _, syn := range synonyms {
		for _, header := range headers {
			if strings.EqualFold(strings.TrimSpace(header), syn) {
				return header
			}
		}
	}
	return ""
}

// Normalize converts the workbook's raw rows into canonical transactions.
// Rows that cannot be normalized are skipped and reported as warnings;
// the returned transactions keep the sheet order.
func Normalize(wb *workbook.Workbook) ([]models.Transaction, []models.RowWarning) {
	if wb == nil {
		return nil, nil
	}

	cols := resolveColumns(wb.Headers)
	if cols.category == "" || cols.amount == "" {
		reason := fmt.Sprintf("no Category/Amount columns recognized among headers %v", wb.Headers)
		log.WithFields(
			logging.Field{Key: logging.FieldFile, Value: wb.SourceName},
			logging.Field{Key: logging.FieldReason, Value: reason},
		).Warn("Cannot normalize workbook rows")
		return nil, []models.RowWarning{{File: wb.SourceName, Reason: reason}}
	}

	transactions := make([]models.Transaction, 0, len(wb.Rows))
	var warnings []models.RowWarning

	for _, row := range wb.Rows {
		txn, rowWarnings := normalizeRow(wb.SourceName, cols, row)
		warnings = append(warnings, rowWarnings...)
		if txn != nil {
			transactions = append(transactions, *txn)
		}
	}

	log.WithFields(
		logging.Field{Key: logging.FieldFile, Value: wb.SourceName},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
	).Debug("Normalized workbook rows")

	return transactions, warnings
}

// normalizeRow builds a transaction from one sheet row. A nil transaction
// means the row was skipped; warnings may accompany a kept row (bad date).
func normalizeRow(file string, cols columns, row workbook.Row) (*models.Transaction, []models.RowWarning) {
	category := strings.TrimSpace(row.Cells[cols.category])
	if category == "" {
		return nil, []models.RowWarning{skipRow(file, row.Number, "missing category")}
	}

	rawAmount := strings.TrimSpace(row.Cells[cols.amount])
	if rawAmount == "" {
		return nil, []models.RowWarning{skipRow(file, row.Number, "missing amount")}
	}
	amount, err := models.ParseAmount(rawAmount)
	if err != nil {
		return nil, []models.RowWarning{skipRow(file, row.Number, fmt.Sprintf("unparseable amount '%s'", rawAmount))}
	}

	txn := models.Transaction{
		Category: category,
		Amount:   amount,
		Label:    models.LabelUnlabeled,
		Who:      models.DefaultWho,
		Whom:     models.DefaultWhom,
	}

	if cols.label != "" {
		if label, ok := models.ParseLabelCode(row.Cells[cols.label]); ok {
			txn.Label = label
		}
	}

	var warnings []models.RowWarning
	if cols.date != "" {
		if raw := strings.TrimSpace(row.Cells[cols.date]); raw != "" {
			date, err := dateutils.ParseDate(raw)
			if err != nil {
				reason := fmt.Sprintf("unparseable date '%s'", raw)
				log.WithFields(
					logging.Field{Key: logging.FieldFile, Value: file},
					logging.Field{Key: logging.FieldRow, Value: row.Number},
					logging.Field{Key: logging.FieldReason, Value: reason},
				).Warn("Keeping transaction row without a date")
				warnings = append(warnings, models.RowWarning{File: file, Row: row.Number, Reason: reason})
			} else {
				txn.Date = date
			}
		}
	}

	if cols.description != "" {
		if desc := strings.TrimSpace(row.Cells[cols.description]); desc != "" {
			txn.Description = desc
		}
	}
	if txn.Description == "" {
		txn.Description = fmt.Sprintf("%s expense", category)
	}

	if cols.who != "" {
		if who := strings.TrimSpace(row.Cells[cols.who]); who != "" {
			txn.Who = who
		}
	}
	if cols.whom != "" {
		if whom := strings.TrimSpace(row.Cells[cols.whom]); whom != "" {
			txn.Whom = whom
		}
	}

	return &txn, warnings
}

func skipRow(file string, rowNum int, reason string) models.RowWarning {
	log.WithFields(
		logging.Field{Key: logging.FieldFile, Value: file},
		logging.Field{Key: logging.FieldRow, Value: rowNum},
		logging.Field{Key: logging.FieldReason, Value: reason},
	).Warn("Skipping malformed transaction row")
	return models.RowWarning{File: file, Row: rowNum, Reason: reason}
}
