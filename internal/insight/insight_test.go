package insight

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight-dev/finsight/internal/budget"
	"github.com/finsight-dev/finsight/internal/model"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func txn(date, desc, amount, category string) model.Transaction {
	return model.Transaction{
		ID: desc + date, Date: day(date), Description: desc,
		Amount: amt(amount), Category: category,
	}
}

func TestSummarize(t *testing.T) {
	txns := []model.Transaction{
		txn("2025-04-01", "PAYROLL", "4000.00", "Income"),
		txn("2025-04-05", "WHOLE FOODS", "-300.00", "Groceries"),
		txn("2025-04-12", "BISTRO", "-100.00", "Dining"),
		txn("2025-03-20", "OLD CHARGE", "-999.00", "Misc"), // prior month ignored
	}

	h, ok := Summarize(txns)
	require.True(t, ok)
	assert.Equal(t, "2025-04", h.Month)
	assert.True(t, amt("4000").Equal(h.Income))
	assert.True(t, amt("400").Equal(h.Spend))
	assert.True(t, amt("3600").Equal(h.Net))
	assert.Equal(t, "Groceries", h.TopCategory)
	assert.True(t, amt("300").Equal(h.TopCategorySpend))
	assert.True(t, amt("200").Equal(h.AvgTicket))
}

func TestSummarize_EmptyLedger(t *testing.T) {
	_, ok := Summarize(nil)
	assert.False(t, ok)
}

func TestCompose_OverBudgetIsMostUrgent(t *testing.T) {
	statuses := []budget.Status{
		{Category: "Dining", Limit: amt("250"), Spent: amt("310"), Remaining: amt("-60"), Over: true},
	}

	obs := Compose(Inputs{Budgets: statuses})
	require.NotEmpty(t, obs)
	assert.Equal(t, priorityAlert, obs[0].Priority)
	assert.Contains(t, obs[0].Text, "Dining is over budget by $60")
	assert.Contains(t, obs[0].Text, "spent $310 of $250")
}

func TestCompose_AtRiskBudget(t *testing.T) {
	statuses := []budget.Status{
		{Category: "Groceries", Limit: amt("400"), Spent: amt("340"), Remaining: amt("60"), Pct: amt("0.85")},
	}

	obs := Compose(Inputs{Budgets: statuses})
	require.NotEmpty(t, obs)
	assert.Contains(t, obs[0].Text, "Groceries is at 85% of its $400 limit")
}

func TestCompose_AllClear(t *testing.T) {
	obs := Compose(Inputs{})
	require.Len(t, obs, 1)
	assert.Contains(t, obs[0].Text, "No major risks")
}

func TestCompose_SortedByPriority(t *testing.T) {
	in := Inputs{
		Transactions: []model.Transaction{
			txn("2025-04-01", "PAYROLL", "4000.00", "Income"),
			txn("2025-04-05", "WHOLE FOODS", "-300.00", "Groceries"),
		},
		Budgets: []budget.Status{
			{Category: "Dining", Limit: amt("250"), Spent: amt("310"), Remaining: amt("-60"), Over: true},
		},
		Pace: []budget.PaceAlert{
			{Category: "Groceries", Spent: amt("300"), Projected: amt("900"), Limit: amt("600")},
		},
	}

	obs := Compose(in)
	require.GreaterOrEqual(t, len(obs), 3)
	for i := 1; i < len(obs); i++ {
		assert.LessOrEqual(t, obs[i-1].Priority, obs[i].Priority)
	}
	assert.Equal(t, priorityAlert, obs[0].Priority)
}

func TestCompose_PacingWarning(t *testing.T) {
	// April spend $1300 vs March $1000 is beyond the 20% threshold.
	in := Inputs{Transactions: []model.Transaction{
		txn("2025-03-10", "MARCH SPEND", "-1000.00", "Misc"),
		txn("2025-04-10", "APRIL SPEND", "-1300.00", "Misc"),
	}}

	obs := Compose(in)
	found := false
	for _, o := range obs {
		if o.Priority == priorityWarning {
			assert.Contains(t, o.Text, "$1300")
			assert.Contains(t, o.Text, "$1000")
			found = true
		}
	}
	assert.True(t, found, "expected a pacing warning")
}

func TestCompose_SavingsRateBelowTarget(t *testing.T) {
	in := Inputs{Transactions: []model.Transaction{
		txn("2025-04-01", "PAYROLL", "4000.00", "Income"),
		txn("2025-04-05", "SPEND", "-3800.00", "Misc"),
	}}

	obs := Compose(in)
	found := false
	for _, o := range obs {
		if o.Priority == priorityOutlook {
			assert.Contains(t, o.Text, "Savings rate is 5%")
			found = true
		}
	}
	assert.True(t, found, "expected a savings observation")
}

func TestCompose_QueryRoutesSubscriptions(t *testing.T) {
	in := Inputs{
		Transactions: []model.Transaction{
			txn("2025-02-05", "NETFLIX.COM", "-15.49", "Subscriptions"),
			txn("2025-03-05", "NETFLIX.COM", "-15.49", "Subscriptions"),
			txn("2025-04-05", "NETFLIX.COM", "-15.49", "Subscriptions"),
		},
		Query: "what subscriptions should I cancel",
	}

	obs := Compose(in)
	found := false
	for _, o := range obs {
		if o.Priority == priorityFollowup {
			assert.Contains(t, o.Text, "NETFLIX.COM")
			assert.Contains(t, o.Text, "3 months")
			found = true
		}
	}
	assert.True(t, found, "expected a recurring-charge followup")
}

func TestCompose_QueryRoutesDebt(t *testing.T) {
	in := Inputs{
		Loans: []model.Loan{
			{Lender: "Auto", Balance: amt("9000"), RateAPR: amt("6.5")},
			{Lender: "Card", Balance: amt("2500"), RateAPR: amt("24.99")},
		},
		Query: "how do I pay down debt",
	}

	obs := Compose(in)
	require.NotEmpty(t, obs)
	assert.Contains(t, obs[len(obs)-1].Text, "Card")
	assert.Contains(t, obs[len(obs)-1].Text, "24.99")
}

func TestRecurringMerchants(t *testing.T) {
	txns := []model.Transaction{
		txn("2025-02-05", "SPOTIFY", "-9.99", "Subscriptions"),
		txn("2025-03-05", "SPOTIFY", "-9.99", "Subscriptions"),
		txn("2025-04-05", "SPOTIFY", "-9.99", "Subscriptions"),
		txn("2025-04-07", "ONE OFF", "-50.00", "Misc"),
	}

	out := recurringMerchants(txns)
	require.Len(t, out, 1)
	assert.Equal(t, "SPOTIFY", out[0].Merchant)
	assert.Equal(t, 3, out[0].Months)
}
