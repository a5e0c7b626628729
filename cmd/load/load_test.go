package load

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"fjacquet/budget-board/internal/models"
)

func month(t *testing.T, name string, index int, income string, explicit bool, txns []models.Transaction) *models.MonthlyRecord {
	t.Helper()
	rec := &models.MonthlyRecord{
		Month:          name,
		MonthIndex:     index,
		SourceFile:     name + ".xlsx",
		Income:         decimal.RequireFromString(income),
		IncomeExplicit: explicit,
		Transactions:   txns,
	}
	rec.Recompute()
	return rec
}

func txn(category, amount string, label models.Label) models.Transaction {
	return models.Transaction{
		Category: category,
		Amount:   decimal.RequireFromString(amount),
		Label:    label,
	}
}

func TestRenderSummary(t *testing.T) {
	p := models.NewPortfolio([]*models.MonthlyRecord{
		month(t, "January", 1, "5000", true, []models.Transaction{
			txn("Rent", "-1500", models.LabelNeeds),
			txn("Groceries", "600", models.LabelNeeds),
		}),
		month(t, "February", 2, "3000", false, []models.Transaction{
			txn("Rent", "-1500", models.LabelNeeds),
			txn("Shopping", "500", models.LabelWants),
		}),
	})

	var buf bytes.Buffer
	renderSummary(&buf, p)

	out := buf.String()
	assert.Contains(t, out, "Month")
	assert.Contains(t, out, "Top Category")
	assert.Contains(t, out, "January")
	assert.Contains(t, out, "5000.00")
	assert.Contains(t, out, "3000.00 *", "estimated income is marked")
	assert.Contains(t, out, "Year to date")
	assert.Contains(t, out, "8000.00", "year to date income")
	assert.Contains(t, out, "4100.00", "year to date expenses")
	assert.Contains(t, out, "* income estimated as 1.5x expenses")
}

func TestRenderSummaryExplicitOnly(t *testing.T) {
	p := models.NewPortfolio([]*models.MonthlyRecord{
		month(t, "March", 3, "4000", true, []models.Transaction{
			txn("Groceries", "700", models.LabelNeeds),
		}),
	})

	var buf bytes.Buffer
	renderSummary(&buf, p)

	assert.NotContains(t, buf.String(), "income estimated")
}

func TestRenderSummaryEmptyPortfolio(t *testing.T) {
	var buf bytes.Buffer
	renderSummary(&buf, models.NewPortfolio(nil))

	assert.Contains(t, buf.String(), "No monthly workbooks loaded.")
}

func TestCommandMetadata(t *testing.T) {
	assert.Equal(t, "load", Cmd.Use)
	assert.Contains(t, Cmd.Short, "Load the monthly workbooks")
	assert.NotNil(t, Cmd.Run)
}
