package budget

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func TestEvaluate(t *testing.T) {
	txns := []model.Transaction{
		txn("2025-04-02", "WHOLE FOODS", "-120.00", "Groceries"),
		txn("2025-04-09", "TRADER JOES", "-80.00", "Groceries"),
		txn("2025-04-05", "BISTRO", "-260.00", "Dining"),
		txn("2025-04-10", "PAYROLL", "2000.00", "Income"),  // inflow is not spend
		txn("2025-03-20", "WHOLE FOODS", "-50.00", "Groceries"), // prior month
	}
	budgets := []model.CategoryBudget{
		{Category: "Groceries", Limit: amt("400")},
		{Category: "Dining", Limit: amt("250")},
		{Category: "Misc"},
	}

	statuses := Evaluate(txns, budgets, day("2025-04-15"))
	require.Len(t, statuses, 3)

	groceries := statuses[0]
	assert.True(t, amt("200").Equal(groceries.Spent))
	assert.True(t, amt("200").Equal(groceries.Remaining))
	assert.Equal(t, "0.5", groceries.Pct.String())
	assert.False(t, groceries.Over)

	dining := statuses[1]
	assert.True(t, amt("-10").Equal(dining.Remaining))
	assert.True(t, dining.Over)

	misc := statuses[2]
	assert.True(t, misc.Pct.IsZero())
	assert.False(t, misc.Over)
}

func TestEvaluate_NoSpendInCategory(t *testing.T) {
	budgets := []model.CategoryBudget{{Category: "Travel", Limit: amt("500")}}
	statuses := Evaluate(nil, budgets, day("2025-04-15"))
	require.Len(t, statuses, 1)
	assert.True(t, statuses[0].Spent.IsZero())
	assert.True(t, amt("500").Equal(statuses[0].Remaining))
}

func TestPace_AlertsWhenProjectionOverruns(t *testing.T) {
	// $300 spent by the 10th of a 30-day month projects to $900.
	txns := []model.Transaction{
		txn("2025-04-03", "BISTRO", "-300.00", "Dining"),
	}
	budgets := []model.CategoryBudget{
		{Category: "Dining", Limit: amt("600")},
	}

	alerts := Pace(txns, budgets, day("2025-04-10"))
	require.Len(t, alerts, 1)
	assert.Equal(t, "Dining", alerts[0].Category)
	assert.True(t, amt("900").Equal(alerts[0].Projected), "got %s", alerts[0].Projected)
}

func TestPace_NoAlertWhenOnTrack(t *testing.T) {
	txns := []model.Transaction{
		txn("2025-04-03", "BISTRO", "-100.00", "Dining"),
	}
	budgets := []model.CategoryBudget{
		{Category: "Dining", Limit: amt("600")},
	}

	alerts := Pace(txns, budgets, day("2025-04-15"))
	assert.Empty(t, alerts)
}

func TestPace_ZeroLimitNeverAlerts(t *testing.T) {
	txns := []model.Transaction{
		txn("2025-04-03", "BISTRO", "-999.00", "Dining"),
	}
	budgets := []model.CategoryBudget{{Category: "Dining"}}

	assert.Empty(t, Pace(txns, budgets, day("2025-04-10")))
}
