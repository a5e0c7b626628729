// Package aggregate groups one workbook's classified transactions into a
// monthly record with every derived total the dashboard needs.
package aggregate

import (
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/budget-board/internal/budgeterror"
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

// IncomeFallbackFactor scales a month's total expenses into an income
// estimate when the workbook carries no usable income cell.
var IncomeFallbackFactor = decimal.RequireFromString("1.5")

// monthIndexes maps recognized month spellings to their calendar position.
// Keys are lowercase; the abbreviations mirror file names seen in the wild.
var monthIndexes = map[string]int{
	"january": 1, "jan": 1,
	"february": 2, "feb": 2,
	"march": 3, "mar": 3,
	"april": 4, "apr": 4,
	"may":  5,
	"june": 6, "jun": 6,
	"july": 7, "jul": 7,
	"august": 8, "aug": 8,
	"september": 9, "sep": 9, "sept": 9,
	"october": 10, "oct": 10,
	"november": 11, "nov": 11,
	"december": 12, "dec": 12,
}

// monthNames holds the canonical display names, indexed 1 through 12.
var monthNames = [13]string{
	"",
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthFromFilename derives the canonical month name and calendar index from
// a workbook file name: "Jan.xlsx" and "january.xlsx" both map to
// ("January", 1). The match is exact on the base name without extension,
// case-insensitive. Unrecognized names yield an UnknownMonthError.
func MonthFromFilename(name string) (string, int, error) {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	index, ok := monthIndexes[strings.ToLower(strings.TrimSpace(base))]
	if !ok {
		return "", 0, &budgeterror.UnknownMonthError{FileName: name}
	}
	return monthNames[index], index, nil
}

// Build aggregates one file's classified transactions into a MonthlyRecord.
// incomeCell is the raw value read from the workbook's income cell, nil when
// the cell was missing or non-numeric. Only a positive cell value is
// trusted as income; anything else falls back to IncomeFallbackFactor times
// the month's total expenses.
func Build(sourceFile string, txns []models.Transaction, incomeCell *decimal.Decimal) (*models.MonthlyRecord, error) {
	month, index, err := MonthFromFilename(sourceFile)
	if err != nil {
		return nil, err
	}

	record := &models.MonthlyRecord{
		Month:        month,
		MonthIndex:   index,
		SourceFile:   filepath.Base(sourceFile),
		Transactions: txns,
	}

	// First pass computes TotalExpenses, which the income fallback needs;
	// the second pass refreshes Surplus once Income is settled.
	record.Recompute()
	if incomeCell != nil && incomeCell.IsPositive() {
		record.Income = *incomeCell
		record.IncomeExplicit = true
	} else {
		record.Income = record.TotalExpenses.Mul(IncomeFallbackFactor)
	}
	record.Recompute()

	log.WithFields(
		logging.Field{Key: logging.FieldFile, Value: record.SourceFile},
		logging.Field{Key: logging.FieldMonth, Value: record.Month},
		logging.Field{Key: logging.FieldCount, Value: len(record.Transactions)},
	).Debug("Built monthly record")

	return record, nil
}
