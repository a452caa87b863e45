package forecast

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finsight-dev/finsight/internal/model"
)

// netRateWindow is how many trailing active days feed the daily rate.
const netRateWindow = 90

// CashProjection is a projected ending balance for one horizon.
type CashProjection struct {
	HorizonDays   int
	Projected     decimal.Decimal
	AvgDailyNet   decimal.Decimal
	SampleDays    int
	FixedExpenses decimal.Decimal // monthly recurring total
}

// ProjectCash projects the ending cash balance horizonDays out. Base is
// the cumulative net of all transactions; the daily rate is the mean
// net over the trailing 90 active days (all data when shorter); the
// recurring fixed-expense total is prorated to the horizon.
func ProjectCash(txns []model.Transaction, fixed []model.FixedExpense, horizonDays int) CashProjection {
	fixedTotal := decimal.Zero
	for _, f := range fixed {
		fixedTotal = fixedTotal.Add(f.Amount)
	}

	base := decimal.Zero
	daily := make(map[string]decimal.Decimal)
	for _, t := range txns {
		base = base.Add(t.Amount)
		day := t.Date.Format("2006-01-02")
		daily[day] = daily[day].Add(t.Amount)
	}

	days := make([]string, 0, len(daily))
	for d := range daily {
		days = append(days, d)
	}
	sort.Strings(days)
	if len(days) > netRateWindow {
		days = days[len(days)-netRateWindow:]
	}

	rate := decimal.Zero
	if len(days) > 0 {
		for _, d := range days {
			rate = rate.Add(daily[d])
		}
		rate = rate.DivRound(decimal.NewFromInt(int64(len(days))), 4)
	}

	horizon := decimal.NewFromInt(int64(horizonDays))
	prorated := fixedTotal.Mul(horizon).DivRound(decimal.NewFromInt(30), 2)
	projected := base.Add(rate.Mul(horizon)).Sub(prorated).Round(2)

	return CashProjection{
		HorizonDays:   horizonDays,
		Projected:     projected,
		AvgDailyNet:   rate,
		SampleDays:    len(days),
		FixedExpenses: fixedTotal,
	}
}

// ProjectHorizons runs ProjectCash for the standard 30/60/90-day set.
func ProjectHorizons(txns []model.Transaction, fixed []model.FixedExpense) []CashProjection {
	horizons := []int{30, 60, 90}
	out := make([]CashProjection, len(horizons))
	for i, h := range horizons {
		out[i] = ProjectCash(txns, fixed, h)
	}
	return out
}
