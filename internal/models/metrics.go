package models

import "github.com/shopspring/decimal"

// TrendPoint is one month's total spend and its change against the
// previous month. The first loaded month has a zero delta.
type TrendPoint struct {
	Month      string          `json:"month"`
	TotalSpend decimal.Decimal `json:"total_spend"`
	Delta      decimal.Decimal `json:"delta"`
}

// LabelRatio describes how much of income and of total spend one label
// consumed across the loaded months.
type LabelRatio struct {
	Label         Label           `json:"label"`
	Amount        decimal.Decimal `json:"amount"`
	ShareOfIncome decimal.Decimal `json:"share_of_income"`
	ShareOfSpend  decimal.Decimal `json:"share_of_spend"`
}

// MetricsResult carries every derived metric the dashboard and the metrics
// command present. Computed from a Portfolio snapshot; an empty portfolio
// produces the zero value.
type MetricsResult struct {
	EmergencyFundTarget decimal.Decimal `json:"emergency_fund_target"`
	EmergencyFundMonths int             `json:"emergency_fund_months"`
	AvgMonthlyNeeds     decimal.Decimal `json:"avg_monthly_needs"`
	Trend               []TrendPoint    `json:"trend"`
	Ratios              []LabelRatio    `json:"ratios"`
	Recommendations     []string        `json:"recommendations"`
	TopCategories       []CategoryTotal `json:"top_categories"`
}
