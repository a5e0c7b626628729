// Package models provides the data structures used throughout the application.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one normalized row from a monthly budget workbook.
// Instances are treated as immutable once normalization and classification
// are done; aggregation works on copies inside MonthlyRecord.
type Transaction struct {
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Label       Label           `json:"label"`
	Date        time.Time       `json:"date,omitempty"` // zero value means the row carried no usable date
	Description string          `json:"description"`
	Who         string          `json:"who"`
	Whom        string          `json:"whom"`
}

// ParseAmount parses a string amount to decimal.Decimal, tolerating the
// formatting found in real workbooks: currency symbols, spaces, thousand
// separators, and comma decimal separators.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	amount := strings.TrimSpace(amountStr)
	if amount == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	// Currency markers and spacing first
	amount = strings.ReplaceAll(amount, " ", "")
	amount = strings.ReplaceAll(amount, "CHF", "")
	amount = strings.ReplaceAll(amount, "EUR", "")
	amount = strings.ReplaceAll(amount, "USD", "")
	amount = strings.ReplaceAll(amount, "$", "")
	amount = strings.ReplaceAll(amount, "€", "")
	// Thousand separators (Swiss apostrophe style)
	amount = strings.ReplaceAll(amount, "'", "")
	// "1,234.56" keeps the dot; "1234,56" means a comma decimal separator
	if strings.Contains(amount, ",") {
		if strings.Contains(amount, ".") {
			amount = strings.ReplaceAll(amount, ",", "")
		} else {
			amount = strings.ReplaceAll(amount, ",", ".")
		}
	}

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", amountStr, err)
	}
	return dec, nil
}

// IsInvestmentCategory reports whether the category names an investment
// bucket ("Investment", "Investment - Stocks", ...). Such rows are counted
// as money set aside even when the Label column is blank.
func (t *Transaction) IsInvestmentCategory() bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(t.Category)), "investment")
}

// IsExpense reports whether the transaction counts as spending: a negative
// amount always does, and so does any row whose label is not Savings or
// Investment. Classification must run before this is meaningful.
func (t *Transaction) IsExpense() bool {
	if t.Amount.IsNegative() {
		return true
	}
	return t.Label.IsSpending()
}

// IsSetAside reports whether the transaction is money put aside rather than
// spent (Savings or Investment label).
func (t *Transaction) IsSetAside() bool {
	return !t.Label.IsSpending()
}

// AbsAmount returns the magnitude of the amount. Aggregation is
// sign-agnostic: workbooks record expenses both as positive and as negative
// numbers depending on who filled them in.
func (t *Transaction) AbsAmount() decimal.Decimal {
	return t.Amount.Abs()
}
