// Package insight turns the analytics outputs into ranked,
// human-readable recommendations. It formats and prioritizes; every
// number in an observation comes from its inputs.
package insight

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsight-dev/finsight/internal/anomaly"
	"github.com/finsight-dev/finsight/internal/budget"
	"github.com/finsight-dev/finsight/internal/forecast"
	"github.com/finsight-dev/finsight/internal/loan"
	"github.com/finsight-dev/finsight/internal/model"
)

// Observation priorities, lower is more urgent.
const (
	priorityAlert    = 1 // over budget
	priorityWarning  = 2 // pacing, spikes, fixed-bill risk
	priorityWatch    = 3 // at-risk budgets, duplicates
	priorityOutlook  = 4 // forecast, savings rate
	prioritySummary  = 5 // month highlights
	priorityFollowup = 6 // query-routed supplements
)

// atRiskPct flags budgets at or beyond this share of their limit.
var atRiskPct = decimal.NewFromFloat(0.8)

// pacingFactor is the month-over-month growth that triggers a pacing
// alert.
var pacingFactor = decimal.NewFromFloat(1.2)

// savingsTarget is the income share a household should bank.
var savingsTarget = decimal.NewFromFloat(0.2)

// Observation is one ranked recommendation.
type Observation struct {
	Priority int
	Text     string
}

// Inputs carries the analytics outputs the composer draws from.
type Inputs struct {
	Transactions []model.Transaction
	Budgets      []budget.Status
	Pace         []budget.PaceAlert
	Anomalies    anomaly.Finding
	Forecast     forecast.Result
	Fixed        []model.FixedExpense
	Loans        []model.Loan
	Query        string
}

// Compose produces ranked observations from the inputs, most urgent
// first. With nothing to report it returns a single all-clear note.
func Compose(in Inputs) []Observation {
	var obs []Observation

	highlights, hasData := Summarize(in.Transactions)
	if hasData {
		obs = append(obs, Observation{prioritySummary, fmt.Sprintf(
			"For %s, income is $%s and spending is $%s, leaving a net of $%s.",
			highlights.Month, highlights.Income.StringFixed(0), highlights.Spend.StringFixed(0), highlights.Net.StringFixed(0),
		)})
		if highlights.TopCategory != "" {
			obs = append(obs, Observation{prioritySummary, fmt.Sprintf(
				"Top category: $%s spent on %s this month.",
				highlights.TopCategorySpend.StringFixed(0), highlights.TopCategory,
			)})
		}
		obs = append(obs, pacingObservation(in.Transactions, highlights)...)
		obs = append(obs, savingsObservation(highlights)...)
		obs = append(obs, fixedCoverageObservation(highlights, in.Fixed)...)
	}

	obs = append(obs, budgetObservations(in.Budgets)...)
	obs = append(obs, paceObservations(in.Pace)...)
	obs = append(obs, anomalyObservations(in.Anomalies)...)
	obs = append(obs, forecastObservation(in.Forecast)...)
	obs = append(obs, queryObservations(in)...)

	if len(obs) == 0 {
		return []Observation{{prioritySummary, "No major risks right now. Keep following your plan."}}
	}

	sort.SliceStable(obs, func(i, j int) bool { return obs[i].Priority < obs[j].Priority })
	return obs
}

// pacingObservation compares this month's spend to the prior month.
func pacingObservation(txns []model.Transaction, h Highlights) []Observation {
	prior, err := priorMonth(h.Month)
	if err != nil {
		return nil
	}
	priorSpend := monthSpend(txns, prior)
	if !priorSpend.IsPositive() {
		return nil
	}
	if h.Spend.GreaterThan(priorSpend.Mul(pacingFactor)) {
		return []Observation{{priorityWarning, fmt.Sprintf(
			"Spending alert: $%s this month is pacing more than 20%% above last month's $%s. Consider pausing discretionary spend.",
			h.Spend.StringFixed(0), priorSpend.StringFixed(0),
		)}}
	}
	return nil
}

func savingsObservation(h Highlights) []Observation {
	if !h.Income.IsPositive() {
		return nil
	}
	rate := h.Income.Sub(h.Spend).DivRound(h.Income, 4)
	if rate.GreaterThanOrEqual(savingsTarget) {
		return nil
	}
	gap := savingsTarget.Sub(rate).Mul(decimal.NewFromInt(100))
	return []Observation{{priorityOutlook, fmt.Sprintf(
		"Savings rate is %s%% of income, %s points below the 20%% target.",
		rate.Mul(decimal.NewFromInt(100)).StringFixed(0), gap.StringFixed(0),
	)}}
}

func fixedCoverageObservation(h Highlights, fixed []model.FixedExpense) []Observation {
	total := decimal.Zero
	for _, f := range fixed {
		total = total.Add(f.Amount)
	}
	if !total.IsPositive() || h.Net.GreaterThanOrEqual(total) {
		return nil
	}
	return []Observation{{priorityWarning, fmt.Sprintf(
		"Fixed bills total $%s but this month's net is $%s; upcoming bills are at risk.",
		total.StringFixed(0), h.Net.StringFixed(0),
	)}}
}

func budgetObservations(statuses []budget.Status) []Observation {
	var obs []Observation
	for _, s := range statuses {
		// Zero-limit budgets would read as always-over.
		if !s.Limit.IsPositive() {
			continue
		}
		if s.Over {
			obs = append(obs, Observation{priorityAlert, fmt.Sprintf(
				"%s is over budget by $%s (spent $%s of $%s).",
				s.Category, s.Remaining.Abs().StringFixed(0), s.Spent.StringFixed(0), s.Limit.StringFixed(0),
			)})
		} else if s.Pct.GreaterThanOrEqual(atRiskPct) {
			obs = append(obs, Observation{priorityWatch, fmt.Sprintf(
				"%s is at %s%% of its $%s limit. Slow down to avoid overruns.",
				s.Category, s.Pct.Mul(decimal.NewFromInt(100)).StringFixed(0), s.Limit.StringFixed(0),
			)})
		}
	}
	return obs
}

func paceObservations(alerts []budget.PaceAlert) []Observation {
	var obs []Observation
	for _, a := range alerts {
		obs = append(obs, Observation{priorityWarning, fmt.Sprintf(
			"%s is on pace for $%s against a $%s limit this month ($%s so far).",
			a.Category, a.Projected.StringFixed(0), a.Limit.StringFixed(0), a.Spent.StringFixed(0),
		)})
	}
	return obs
}

func anomalyObservations(finding anomaly.Finding) []Observation {
	var obs []Observation
	for _, s := range finding.Spikes {
		obs = append(obs, Observation{priorityWarning, fmt.Sprintf(
			"Unusual charge on %s: %s for $%s in %s.",
			s.Transaction.Date.Format("2006-01-02"), s.Transaction.Description,
			s.Transaction.Amount.Abs().StringFixed(0), s.Transaction.Category,
		)})
	}
	for _, d := range finding.Duplicates {
		obs = append(obs, Observation{priorityWatch, fmt.Sprintf(
			"Possible duplicate: %d charges of $%s for %s within a week.",
			len(d.Transactions), d.Amount.StringFixed(2), d.Description,
		)})
	}
	return obs
}

func forecastObservation(f forecast.Result) []Observation {
	if f.Insufficient || f.ForecastMonth == "" {
		return nil
	}
	return []Observation{{priorityOutlook, fmt.Sprintf(
		"Next month (%s) is projected around $%s based on recent trends.",
		f.ForecastMonth, f.ForecastValue.StringFixed(0),
	)}}
}

// queryObservations routes free-text query keywords to targeted
// supplements.
func queryObservations(in Inputs) []Observation {
	query := strings.ToLower(in.Query)
	if query == "" {
		return nil
	}

	var obs []Observation
	if strings.Contains(query, "subscription") {
		for _, m := range recurringMerchants(in.Transactions) {
			obs = append(obs, Observation{priorityFollowup, fmt.Sprintf(
				"Recurring charge: %s billed in %d months, $%s total. Review whether you still use it.",
				m.Merchant, m.Months, m.Total.StringFixed(0),
			)})
		}
	}
	if strings.Contains(query, "savings") {
		if h, ok := Summarize(in.Transactions); ok && h.Income.IsPositive() {
			surplus := h.Income.Sub(h.Spend)
			obs = append(obs, Observation{priorityFollowup, fmt.Sprintf(
				"This month's surplus is $%s. Moving it to savings keeps you on the 20%% target.",
				surplus.StringFixed(0),
			)})
		}
	}
	if strings.Contains(query, "debt") || strings.Contains(query, "loan") {
		ordered := loan.Avalanche(in.Loans)
		if len(ordered) > 0 {
			top := ordered[0]
			obs = append(obs, Observation{priorityFollowup, fmt.Sprintf(
				"Highest-rate debt is %s at %s%% APR with $%s outstanding; direct extra payments there first.",
				top.Lender, top.RateAPR.StringFixed(2), top.Balance.StringFixed(0),
			)})
		}
	}
	return obs
}

func priorMonth(month string) (string, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, -1, 0).Format("2006-01"), nil
}
