package forecast

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

func txn(date, amount string) model.Transaction {
	return model.Transaction{
		ID: date + amount, Date: day(date), Description: "X",
		Amount: amt(amount),
	}
}

func TestNextMonth_InsufficientWithOneMonth(t *testing.T) {
	result := NextMonth([]model.Transaction{txn("2025-01-10", "-100.00")})
	assert.True(t, result.Insufficient)
	assert.True(t, result.ForecastValue.IsZero())
	assert.Contains(t, result.Summary, "second month")
}

func TestNextMonth_TwoMonths(t *testing.T) {
	txns := []model.Transaction{
		txn("2025-01-10", "-100.00"),
		txn("2025-02-10", "-200.00"),
	}

	result := NextMonth(txns)
	require.False(t, result.Insufficient)
	assert.Equal(t, "2025-03", result.ForecastMonth)

	// rolling = (100+200)/2 = 150; trend = +100; adjusted = 300;
	// forecast = 0.6*150 + 0.4*300 = 210.
	assert.True(t, amt("210").Equal(result.ForecastValue), "got %s", result.ForecastValue)
	assert.Contains(t, result.Summary, "$210")
}

func TestNextMonth_ThreeMonthWindow(t *testing.T) {
	txns := []model.Transaction{
		txn("2024-11-05", "-900.00"), // outside the 3-month rolling window
		txn("2024-12-05", "-100.00"),
		txn("2025-01-05", "-100.00"),
		txn("2025-02-05", "-100.00"),
	}

	result := NextMonth(txns)
	require.False(t, result.Insufficient)

	// rolling = 100; trend over last 3 deltas = (-800+0+0)/3 = -266.67;
	// adjusted = max(100-266.67, 0) = 0; forecast = 0.6*100 = 60.
	assert.True(t, amt("60").Equal(result.ForecastValue), "got %s", result.ForecastValue)
	assert.Equal(t, "2025-03", result.ForecastMonth)
}

func TestNextMonth_InflowsExcluded(t *testing.T) {
	txns := []model.Transaction{
		txn("2025-01-10", "-100.00"),
		txn("2025-01-15", "5000.00"),
		txn("2025-02-10", "-100.00"),
	}

	result := NextMonth(txns)
	require.Len(t, result.Monthly, 2)
	assert.True(t, amt("100").Equal(result.Monthly[0].Amount))
}

func TestNextMonth_NeverNegative(t *testing.T) {
	// A steep decline would extrapolate negative; the trend term clamps
	// at zero so the blend stays non-negative.
	txns := []model.Transaction{
		txn("2025-01-10", "-1000.00"),
		txn("2025-02-10", "-10.00"),
	}
	result := NextMonth(txns)
	assert.False(t, result.ForecastValue.IsNegative())
}

func TestProjectCash(t *testing.T) {
	// Two active days netting -50/day, base -100.
	txns := []model.Transaction{
		txn("2025-03-01", "-50.00"),
		txn("2025-03-02", "-50.00"),
	}
	fixed := []model.FixedExpense{
		{Name: "Rent", Amount: amt("1500")},
	}

	p := ProjectCash(txns, fixed, 30)
	assert.Equal(t, 30, p.HorizonDays)
	assert.Equal(t, 2, p.SampleDays)
	assert.True(t, amt("-50").Equal(p.AvgDailyNet))

	// -100 + (-50*30) - 1500*30/30 = -3100.
	assert.True(t, amt("-3100").Equal(p.Projected), "got %s", p.Projected)
}

func TestProjectCash_NoTransactions(t *testing.T) {
	p := ProjectCash(nil, nil, 30)
	assert.True(t, p.Projected.IsZero())
	assert.Equal(t, 0, p.SampleDays)
}

func TestProjectHorizons(t *testing.T) {
	txns := []model.Transaction{txn("2025-03-01", "10.00")}
	out := ProjectHorizons(txns, nil)
	require.Len(t, out, 3)
	assert.Equal(t, 30, out[0].HorizonDays)
	assert.Equal(t, 60, out[1].HorizonDays)
	assert.Equal(t, 90, out[2].HorizonDays)
	// Projection scales with the horizon when only the daily rate acts.
	assert.True(t, out[1].Projected.GreaterThan(out[0].Projected))
}
