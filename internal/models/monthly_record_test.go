package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecord() *MonthlyRecord {
	return &MonthlyRecord{
		Month:      "April",
		MonthIndex: 4,
		SourceFile: "April.xlsx",
		Income:     decimal.NewFromInt(5000),
		Transactions: []Transaction{
			{Category: "Groceries", Amount: decimal.NewFromInt(400), Label: LabelNeeds, Who: "Ana", Whom: "Coop"},
			{Category: "Groceries", Amount: decimal.NewFromInt(200), Label: LabelNeeds, Who: "Ben", Whom: "Migros"},
			{Category: "Dining Out", Amount: decimal.NewFromInt(300), Label: LabelWants, Who: "Ana", Whom: "Vendor"},
			{Category: "Investment - Stocks", Amount: decimal.NewFromInt(800), Label: LabelSavings, Who: "Ben", Whom: "Broker"},
			{Category: "Rent", Amount: decimal.NewFromInt(-1500), Label: LabelNeeds, Who: "Ana", Whom: "Landlord"},
		},
	}
}

func TestMonthlyRecordRecompute(t *testing.T) {
	rec := newTestRecord()
	rec.Recompute()

	assert.True(t, rec.TotalsByCategory["Groceries"].Equal(decimal.NewFromInt(600)))
	assert.True(t, rec.TotalsByCategory["Rent"].Equal(decimal.NewFromInt(1500)), "totals use magnitudes")
	assert.True(t, rec.TotalsByLabel[LabelNeeds].Equal(decimal.NewFromInt(2100)))
	assert.True(t, rec.TotalsByLabel[LabelSavings].Equal(decimal.NewFromInt(800)))
	assert.True(t, rec.TotalsByPerson["Ana"].Equal(decimal.NewFromInt(2200)))
	assert.True(t, rec.TotalsByRecipient["Broker"].Equal(decimal.NewFromInt(800)))

	// 400+200+300+1500 spend; the investment row stays out of expenses.
	assert.True(t, rec.TotalExpenses.Equal(decimal.NewFromInt(2400)))
	assert.True(t, rec.TotalInvested.Equal(decimal.NewFromInt(800)))
	assert.True(t, rec.Surplus.Equal(decimal.NewFromInt(2600)))

	assert.Equal(t, "Rent", rec.TopCategory)
	assert.True(t, rec.TopCategoryAmount.Equal(decimal.NewFromInt(1500)))
}

func TestMonthlyRecordRecompute_Idempotent(t *testing.T) {
	rec := newTestRecord()
	rec.Recompute()
	firstExpenses := rec.TotalExpenses
	firstSurplus := rec.Surplus

	rec.Recompute()
	assert.True(t, rec.TotalExpenses.Equal(firstExpenses))
	assert.True(t, rec.Surplus.Equal(firstSurplus))
	assert.Len(t, rec.Transactions, 5, "recompute must not touch the transactions")
}

func TestMonthlyRecordTopCategory_TieBreaksByName(t *testing.T) {
	rec := &MonthlyRecord{
		Month:      "May",
		MonthIndex: 5,
		Transactions: []Transaction{
			{Category: "Zoo", Amount: decimal.NewFromInt(50), Label: LabelWants},
			{Category: "Aquarium", Amount: decimal.NewFromInt(50), Label: LabelWants},
		},
	}
	rec.Recompute()
	assert.Equal(t, "Aquarium", rec.TopCategory)
}

func TestMonthlyRecordTopCategory_EmptyMonth(t *testing.T) {
	rec := &MonthlyRecord{Month: "June", MonthIndex: 6}
	rec.Recompute()
	assert.Equal(t, "", rec.TopCategory)
	assert.True(t, rec.TopCategoryAmount.IsZero())
	assert.True(t, rec.Surplus.Equal(rec.Income))
}

func TestCategoryTotalsSorted(t *testing.T) {
	rec := newTestRecord()
	rec.Recompute()

	totals := rec.CategoryTotalsSorted()
	require.Len(t, totals, 4)
	assert.Equal(t, "Rent", totals[0].Category)
	assert.Equal(t, "Investment - Stocks", totals[1].Category)
	assert.Equal(t, "Groceries", totals[2].Category)
	assert.Equal(t, "Dining Out", totals[3].Category)
}
