// Package budget computes month-to-date spend against configured
// category limits.
package budget

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsight-dev/finsight/internal/model"
)

// Status is the derived month-to-date position of one category budget.
type Status struct {
	Category  string
	Limit     decimal.Decimal
	Spent     decimal.Decimal // outflow magnitude this month
	Remaining decimal.Decimal // limit - spent, may be negative
	Pct       decimal.Decimal // spent/limit, 0 when limit is 0
	Over      bool            // remaining < 0
}

// Evaluate computes a Status for each budget against the given ledger
// snapshot, restricted to now's calendar month. Budgets are returned in
// input order.
func Evaluate(txns []model.Transaction, budgets []model.CategoryBudget, now time.Time) []Status {
	spent := monthToDateSpend(txns, now)

	statuses := make([]Status, 0, len(budgets))
	for _, b := range budgets {
		s := Status{
			Category: b.Category,
			Limit:    b.Limit,
			Spent:    spent[b.Category],
		}
		s.Remaining = s.Limit.Sub(s.Spent)
		s.Over = s.Remaining.IsNegative()
		if s.Limit.IsPositive() {
			s.Pct = s.Spent.DivRound(s.Limit, 4)
		}
		statuses = append(statuses, s)
	}
	return statuses
}

// PaceAlert flags a category whose month-to-date burn, extrapolated
// linearly over the full month, exceeds its budget limit.
type PaceAlert struct {
	Category  string
	Spent     decimal.Decimal
	Projected decimal.Decimal
	Limit     decimal.Decimal
}

// Pace projects each budget's month-to-date spend to a full-month value
// and returns alerts for budgets the projection overruns. Zero-limit
// budgets never alert.
func Pace(txns []model.Transaction, budgets []model.CategoryBudget, now time.Time) []PaceAlert {
	spent := monthToDateSpend(txns, now)

	dayElapsed := decimal.NewFromInt(int64(now.Day()))
	daysInMonth := decimal.NewFromInt(int64(daysIn(now)))

	var alerts []PaceAlert
	for _, b := range budgets {
		if !b.Limit.IsPositive() {
			continue
		}
		mtd := spent[b.Category]
		projected := mtd.Mul(daysInMonth).DivRound(dayElapsed, 2)
		if projected.GreaterThan(b.Limit) {
			alerts = append(alerts, PaceAlert{
				Category:  b.Category,
				Spent:     mtd,
				Projected: projected,
				Limit:     b.Limit,
			})
		}
	}
	return alerts
}

// monthToDateSpend sums outflow magnitude per category for now's
// calendar month.
func monthToDateSpend(txns []model.Transaction, now time.Time) map[string]decimal.Decimal {
	month := now.Format("2006-01")
	spent := make(map[string]decimal.Decimal)
	for _, t := range txns {
		if !t.IsOutflow() || t.Month() != month {
			continue
		}
		spent[t.Category] = spent[t.Category].Add(t.Amount.Abs())
	}
	return spent
}

func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
