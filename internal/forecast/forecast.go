// Package forecast projects next-period spending and multi-horizon cash
// balances from the ledger's history.
package forecast

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsight-dev/finsight/internal/model"
)

// Blend weights for the rolling-average and trend-adjusted terms.
var (
	rollingWeight = decimal.NewFromFloat(0.6)
	trendWeight   = decimal.NewFromFloat(0.4)
)

// maxLookback caps how many recent months feed the rolling window.
const maxLookback = 3

// MonthlySpend is one point of the historical outflow series.
type MonthlySpend struct {
	Month  string // "2006-01"
	Amount decimal.Decimal
}

// Result is a next-month spend forecast. Insufficient is set when fewer
// than two monthly data points exist; no numeric forecast is attempted.
type Result struct {
	Monthly       []MonthlySpend
	ForecastMonth string
	ForecastValue decimal.Decimal
	Summary       string
	Insufficient  bool
	ComputedAt    time.Time
}

// NextMonth blends a rolling average with a month-over-month trend into
// a forecast for the month after the last observed one.
func NextMonth(txns []model.Transaction) Result {
	monthly := monthlyOutflow(txns)
	result := Result{Monthly: monthly, ComputedAt: time.Now().UTC()}

	if len(monthly) < 2 {
		result.Insufficient = true
		result.Summary = "Add a second month of expenses to unlock forecasting."
		return result
	}

	lookback := maxLookback
	if len(monthly) < lookback {
		lookback = len(monthly)
	}

	window := monthly[len(monthly)-lookback:]
	rolling := decimal.Zero
	for _, m := range window {
		rolling = rolling.Add(m.Amount)
	}
	rolling = rolling.DivRound(decimal.NewFromInt(int64(lookback)), 4)

	trend := recentTrend(monthly, lookback)

	last := monthly[len(monthly)-1].Amount
	trendAdjusted := last.Add(trend)
	if trendAdjusted.IsNegative() {
		trendAdjusted = decimal.Zero
	}

	value := rollingWeight.Mul(rolling).Add(trendWeight.Mul(trendAdjusted)).Round(2)

	result.ForecastValue = value
	result.ForecastMonth = nextMonthLabel(monthly[len(monthly)-1].Month)
	result.Summary = fmt.Sprintf(
		"Using a %d-month rolling average with recent trend signals, next month is projected around $%s.",
		lookback, value.StringFixed(0),
	)
	return result
}

// recentTrend is the mean month-over-month delta across the last
// lookback deltas (fewer when the series is short).
func recentTrend(monthly []MonthlySpend, lookback int) decimal.Decimal {
	deltas := len(monthly) - 1
	if deltas > lookback {
		deltas = lookback
	}

	sum := decimal.Zero
	for i := len(monthly) - deltas; i < len(monthly); i++ {
		sum = sum.Add(monthly[i].Amount.Sub(monthly[i-1].Amount))
	}
	return sum.DivRound(decimal.NewFromInt(int64(deltas)), 4)
}

// monthlyOutflow aggregates outflow magnitude per calendar month,
// sorted chronologically.
func monthlyOutflow(txns []model.Transaction) []MonthlySpend {
	byMonth := make(map[string]decimal.Decimal)
	for _, t := range txns {
		if !t.IsOutflow() {
			continue
		}
		byMonth[t.Month()] = byMonth[t.Month()].Add(t.Amount.Abs())
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	series := make([]MonthlySpend, len(months))
	for i, m := range months {
		series[i] = MonthlySpend{Month: m, Amount: byMonth[m]}
	}
	return series
}

func nextMonthLabel(month string) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return "Next Month"
	}
	return t.AddDate(0, 1, 0).Format("2006-01")
}
