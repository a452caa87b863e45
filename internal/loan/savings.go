package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsPlan is the monthly contribution needed to reach a goal.
type SavingsPlan struct {
	MonthlyRequired decimal.Decimal
	MonthsLeft      int
}

// RequiredSavings computes the monthly amount needed to grow a starting
// balance to goal by goalDate. Past or current-month goal dates count as
// one month remaining.
func RequiredSavings(goal, starting decimal.Decimal, goalDate, now time.Time) SavingsPlan {
	monthsLeft := (goalDate.Year()-now.Year())*12 + int(goalDate.Month()) - int(now.Month())
	if monthsLeft < 1 {
		monthsLeft = 1
	}

	gap := goal.Sub(starting)
	if gap.IsNegative() {
		gap = decimal.Zero
	}

	return SavingsPlan{
		MonthlyRequired: gap.DivRound(decimal.NewFromInt(int64(monthsLeft)), 2),
		MonthsLeft:      monthsLeft,
	}
}
