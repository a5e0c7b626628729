// Package metrics derives dashboard figures from a portfolio snapshot:
// emergency fund sizing, month-over-month spend trend, label allocation
// ratios, and threshold-based recommendations.
package metrics

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"fjacquet/budget-board/internal/models"
)

// DefaultEmergencyFundMonths is the number of months of Needs spending the
// emergency fund should cover when no override is configured.
const DefaultEmergencyFundMonths = 6

// topCategoryCount caps how many categories the overview surfaces.
const topCategoryCount = 5

var (
	hundred = decimal.NewFromInt(100)

	// Default allocation guidelines, expressed as shares of income.
	DefaultWantsIncomeRatio   = decimal.RequireFromString("0.30")
	DefaultNeedsIncomeRatio   = decimal.RequireFromString("0.50")
	DefaultSavingsIncomeRatio = decimal.RequireFromString("0.20")
)

// Engine computes metrics with a fixed set of thresholds. Build one with
// NewEngine and reuse it; Compute is pure and safe for concurrent use.
type Engine struct {
	emergencyFundMonths int
	wantsIncomeRatio    decimal.Decimal
	needsIncomeRatio    decimal.Decimal
	savingsIncomeRatio  decimal.Decimal
}

// NewEngine builds an engine from configured thresholds. Non-positive
// values fall back to the defaults.
func NewEngine(emergencyFundMonths int, wantsIncomeRatio, needsIncomeRatio, savingsIncomeRatio float64) *Engine {
	e := &Engine{
		emergencyFundMonths: emergencyFundMonths,
		wantsIncomeRatio:    decimal.NewFromFloat(wantsIncomeRatio),
		needsIncomeRatio:    decimal.NewFromFloat(needsIncomeRatio),
		savingsIncomeRatio:  decimal.NewFromFloat(savingsIncomeRatio),
	}
	if e.emergencyFundMonths <= 0 {
		e.emergencyFundMonths = DefaultEmergencyFundMonths
	}
	if !e.wantsIncomeRatio.IsPositive() {
		e.wantsIncomeRatio = DefaultWantsIncomeRatio
	}
	if !e.needsIncomeRatio.IsPositive() {
		e.needsIncomeRatio = DefaultNeedsIncomeRatio
	}
	if !e.savingsIncomeRatio.IsPositive() {
		e.savingsIncomeRatio = DefaultSavingsIncomeRatio
	}
	return e
}

// Compute derives all metrics from the portfolio. An empty portfolio
// produces an empty result, never an error.
func (e *Engine) Compute(p *models.Portfolio) models.MetricsResult {
	result := models.MetricsResult{EmergencyFundMonths: e.emergencyFundMonths}
	if p == nil || p.Empty() {
		return result
	}

	monthCount := decimal.NewFromInt(int64(len(p.Months)))
	totals := p.YearToDate()

	totalNeeds := decimal.Zero
	labelTotals := make(map[models.Label]decimal.Decimal)
	for _, month := range p.Months {
		totalNeeds = totalNeeds.Add(month.LabelTotal(models.LabelNeeds))
		for _, label := range models.AllLabels {
			labelTotals[label] = labelTotals[label].Add(month.LabelTotal(label))
		}
	}

	result.AvgMonthlyNeeds = totalNeeds.Div(monthCount)
	result.EmergencyFundTarget = result.AvgMonthlyNeeds.Mul(decimal.NewFromInt(int64(e.emergencyFundMonths)))
	result.Trend = trend(p.Months)
	result.Ratios = ratios(labelTotals, totals.Income, totals.Expenses)
	result.TopCategories = topCategories(p.Months)
	result.Recommendations = e.recommendations(p, result.Ratios)

	return result
}

// trend lists each month's total spend and its delta against the previous
// month. Months arrive chronologically sorted from the portfolio.
func trend(months []*models.MonthlyRecord) []models.TrendPoint {
	points := make([]models.TrendPoint, 0, len(months))
	previous := decimal.Zero
	for i, month := range months {
		delta := decimal.Zero
		if i > 0 {
			delta = month.TotalExpenses.Sub(previous)
		}
		points = append(points, models.TrendPoint{
			Month:      month.Month,
			TotalSpend: month.TotalExpenses,
			Delta:      delta,
		})
		previous = month.TotalExpenses
	}
	return points
}

// ratios computes each label's share of total income and of total spend.
// Shares stay zero when the denominator is zero.
func ratios(labelTotals map[models.Label]decimal.Decimal, income, spend decimal.Decimal) []models.LabelRatio {
	out := make([]models.LabelRatio, 0, len(models.AllLabels))
	for _, label := range models.AllLabels {
		ratio := models.LabelRatio{Label: label, Amount: labelTotals[label]}
		if income.IsPositive() {
			ratio.ShareOfIncome = ratio.Amount.Div(income)
		}
		if spend.IsPositive() {
			ratio.ShareOfSpend = ratio.Amount.Div(spend)
		}
		out = append(out, ratio)
	}
	return out
}

// topCategories sums expense amounts per category across all months and
// returns the largest ones.
func topCategories(months []*models.MonthlyRecord) []models.CategoryTotal {
	sums := make(map[string]decimal.Decimal)
	for _, month := range months {
		for i := range month.Transactions {
			txn := &month.Transactions[i]
			if !txn.IsExpense() {
				continue
			}
			sums[txn.Category] = sums[txn.Category].Add(txn.AbsAmount())
		}
	}

	totals := make([]models.CategoryTotal, 0, len(sums))
	for category, amount := range sums {
		totals = append(totals, models.CategoryTotal{Category: category, Amount: amount})
	}
	sort.Slice(totals, func(i, j int) bool {
		if !totals[i].Amount.Equal(totals[j].Amount) {
			return totals[i].Amount.GreaterThan(totals[j].Amount)
		}
		return totals[i].Category < totals[j].Category
	})

	if len(totals) > topCategoryCount {
		totals = totals[:topCategoryCount]
	}
	return totals
}

// recommendations applies the allocation guidelines and flags months that
// overspent their income.
func (e *Engine) recommendations(p *models.Portfolio, ratios []models.LabelRatio) []string {
	shares := make(map[models.Label]decimal.Decimal, len(ratios))
	for _, ratio := range ratios {
		shares[ratio.Label] = ratio.ShareOfIncome
	}

	var recs []string
	if shares[models.LabelWants].GreaterThan(e.wantsIncomeRatio) {
		recs = append(recs, fmt.Sprintf(
			"Wants spending is %s of income, above the %s guideline; consider trimming discretionary purchases",
			percent(shares[models.LabelWants]), percent(e.wantsIncomeRatio)))
	}
	if shares[models.LabelNeeds].GreaterThan(e.needsIncomeRatio) {
		recs = append(recs, fmt.Sprintf(
			"Needs spending is %s of income, above the %s guideline; review fixed costs",
			percent(shares[models.LabelNeeds]), percent(e.needsIncomeRatio)))
	}

	setAside := shares[models.LabelSavings].Add(shares[models.LabelInvestment])
	if setAside.LessThan(e.savingsIncomeRatio) {
		recs = append(recs, fmt.Sprintf(
			"Savings and investments are %s of income, below the %s guideline; consider automating transfers",
			percent(setAside), percent(e.savingsIncomeRatio)))
	}

	for _, month := range p.Months {
		if month.Surplus.IsNegative() {
			recs = append(recs, fmt.Sprintf(
				"%s spent %s more than its income", month.Month, month.Surplus.Abs()))
		}
	}

	return recs
}

func percent(share decimal.Decimal) string {
	return share.Mul(hundred).StringFixed(1) + "%"
}
