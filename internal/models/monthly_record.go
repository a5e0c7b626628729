package models

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// MonthlyRecord is the aggregated view of one month's workbook: the
// normalized transactions plus every total the dashboard shows. Derived
// fields are rebuilt by Recompute and must never be edited directly.
type MonthlyRecord struct {
	Month          string          `json:"month"`
	MonthIndex     int             `json:"month_index"`
	SourceFile     string          `json:"source_file"`
	Income         decimal.Decimal `json:"income"`
	IncomeExplicit bool            `json:"income_explicit"`
	Transactions   []Transaction   `json:"transactions"`

	TotalsByCategory  map[string]decimal.Decimal `json:"totals_by_category"`
	TotalsByLabel     map[Label]decimal.Decimal  `json:"totals_by_label"`
	TotalsByPerson    map[string]decimal.Decimal `json:"totals_by_person"`
	TotalsByRecipient map[string]decimal.Decimal `json:"totals_by_recipient"`

	TotalExpenses     decimal.Decimal `json:"total_expenses"`
	TotalInvested     decimal.Decimal `json:"total_invested"`
	Surplus           decimal.Decimal `json:"surplus"`
	TopCategory       string          `json:"top_category"`
	TopCategoryAmount decimal.Decimal `json:"top_category_amount"`
}

// Recompute rebuilds every derived field from Transactions and Income.
// Amounts are summed by magnitude; workbooks record expenses both as
// positive and negative numbers depending on who filled them in.
func (m *MonthlyRecord) Recompute() {
	m.TotalsByCategory = make(map[string]decimal.Decimal)
	m.TotalsByLabel = make(map[Label]decimal.Decimal)
	m.TotalsByPerson = make(map[string]decimal.Decimal)
	m.TotalsByRecipient = make(map[string]decimal.Decimal)
	m.TotalExpenses = decimal.Zero
	m.TotalInvested = decimal.Zero

	for i := range m.Transactions {
		t := &m.Transactions[i]
		amount := t.AbsAmount()

		m.TotalsByCategory[t.Category] = m.TotalsByCategory[t.Category].Add(amount)
		m.TotalsByLabel[t.Label] = m.TotalsByLabel[t.Label].Add(amount)
		if t.Who != "" {
			m.TotalsByPerson[t.Who] = m.TotalsByPerson[t.Who].Add(amount)
		}
		if t.Whom != "" {
			m.TotalsByRecipient[t.Whom] = m.TotalsByRecipient[t.Whom].Add(amount)
		}

		if t.IsExpense() {
			m.TotalExpenses = m.TotalExpenses.Add(amount)
		}
		if t.IsSetAside() {
			m.TotalInvested = m.TotalInvested.Add(amount)
		}
	}

	m.Surplus = m.Income.Sub(m.TotalExpenses)
	m.TopCategory, m.TopCategoryAmount = m.topExpenseCategory()
}

// topExpenseCategory returns the expense category with the highest total.
// Ties resolve to the lexicographically smaller name so output stays stable
// across runs.
func (m *MonthlyRecord) topExpenseCategory() (string, decimal.Decimal) {
	totals := make(map[string]decimal.Decimal)
	for i := range m.Transactions {
		t := &m.Transactions[i]
		if !t.IsExpense() {
			continue
		}
		totals[t.Category] = totals[t.Category].Add(t.AbsAmount())
	}

	top := ""
	topAmount := decimal.Zero
	for category, amount := range totals {
		switch amount.Cmp(topAmount) {
		case 1:
			top, topAmount = category, amount
		case 0:
			if top == "" || strings.Compare(category, top) < 0 {
				top, topAmount = category, amount
			}
		}
	}
	return top, topAmount
}

// CategoryTotal pairs a category with its summed amount.
type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// CategoryTotalsSorted returns the per-category totals sorted by amount
// descending, ties broken by category name.
func (m *MonthlyRecord) CategoryTotalsSorted() []CategoryTotal {
	totals := make([]CategoryTotal, 0, len(m.TotalsByCategory))
	for category, amount := range m.TotalsByCategory {
		totals = append(totals, CategoryTotal{Category: category, Amount: amount})
	}
	sort.Slice(totals, func(i, j int) bool {
		if !totals[i].Amount.Equal(totals[j].Amount) {
			return totals[i].Amount.GreaterThan(totals[j].Amount)
		}
		return totals[i].Category < totals[j].Category
	})
	return totals
}

// LabelTotal returns the total recorded against a label, zero when absent.
func (m *MonthlyRecord) LabelTotal(label Label) decimal.Decimal {
	return m.TotalsByLabel[label]
}
