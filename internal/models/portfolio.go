package models

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Portfolio is the loaded year: monthly records ordered chronologically,
// one per month. Portfolios are immutable; ReplaceMonth returns a new one
// so readers holding a snapshot never observe partial updates.
type Portfolio struct {
	Months []*MonthlyRecord `json:"months"`
}

// NewPortfolio builds a Portfolio from monthly records, ordering them by
// calendar position.
func NewPortfolio(months []*MonthlyRecord) *Portfolio {
	ordered := make([]*MonthlyRecord, len(months))
	copy(ordered, months)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].MonthIndex < ordered[j].MonthIndex
	})
	return &Portfolio{Months: ordered}
}

// Empty reports whether the portfolio holds no months.
func (p *Portfolio) Empty() bool {
	return p == nil || len(p.Months) == 0
}

// Month returns the record for the given month name (case-insensitive),
// or nil when the month is not loaded.
func (p *Portfolio) Month(name string) *MonthlyRecord {
	if p == nil {
		return nil
	}
	for _, m := range p.Months {
		if strings.EqualFold(m.Month, name) {
			return m
		}
	}
	return nil
}

// MonthNames returns the loaded month names in chronological order.
func (p *Portfolio) MonthNames() []string {
	if p == nil {
		return nil
	}
	names := make([]string, len(p.Months))
	for i, m := range p.Months {
		names[i] = m.Month
	}
	return names
}

// ReplaceMonth returns a new Portfolio with rec replacing the record that
// has the same calendar position, or inserted in order when the month was
// not loaded before. The receiver is left untouched.
func (p *Portfolio) ReplaceMonth(rec *MonthlyRecord) *Portfolio {
	if p == nil {
		return NewPortfolio([]*MonthlyRecord{rec})
	}
	months := make([]*MonthlyRecord, 0, len(p.Months)+1)
	replaced := false
	for _, m := range p.Months {
		if m.MonthIndex == rec.MonthIndex {
			months = append(months, rec)
			replaced = true
			continue
		}
		months = append(months, m)
	}
	if !replaced {
		months = append(months, rec)
	}
	return NewPortfolio(months)
}

// Totals bundles the four headline numbers shown on the dashboard cards.
type Totals struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Invested decimal.Decimal `json:"invested"`
	Surplus  decimal.Decimal `json:"surplus"`
}

// YearToDate sums income, expenses, invested, and surplus across all
// loaded months.
func (p *Portfolio) YearToDate() Totals {
	var totals Totals
	if p == nil {
		return totals
	}
	for _, m := range p.Months {
		totals.Income = totals.Income.Add(m.Income)
		totals.Expenses = totals.Expenses.Add(m.TotalExpenses)
		totals.Invested = totals.Invested.Add(m.TotalInvested)
		totals.Surplus = totals.Surplus.Add(m.Surplus)
	}
	return totals
}

// MonthlyAverages divides the year-to-date totals by the number of loaded
// months. An empty portfolio yields all zeroes.
func (p *Portfolio) MonthlyAverages() Totals {
	if p.Empty() {
		return Totals{}
	}
	ytd := p.YearToDate()
	n := decimal.NewFromInt(int64(len(p.Months)))
	return Totals{
		Income:   ytd.Income.Div(n),
		Expenses: ytd.Expenses.Div(n),
		Invested: ytd.Invested.Div(n),
		Surplus:  ytd.Surplus.Div(n),
	}
}
