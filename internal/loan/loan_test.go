package loan

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight-dev/finsight/internal/model"
)

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSimulate_FirstMonthSplit(t *testing.T) {
	// $10,000 at 12% APR with a $300 payment: month one is $100
	// interest, $200 principal, $9,800 remaining.
	schedule := Simulate(amt("10000"), amt("12"), amt("300"), decimal.Zero)
	require.NotEmpty(t, schedule)

	first := schedule[0]
	assert.Equal(t, 1, first.Month)
	assert.True(t, amt("100.00").Equal(first.Interest), "interest %s", first.Interest)
	assert.True(t, amt("200.00").Equal(first.Principal), "principal %s", first.Principal)
	assert.True(t, amt("9800.00").Equal(first.Balance), "balance %s", first.Balance)
	assert.True(t, amt("300.00").Equal(first.Payment))
}

func TestSimulate_TerminatesAtZero(t *testing.T) {
	schedule := Simulate(amt("10000"), amt("12"), amt("300"), decimal.Zero)
	require.NotEmpty(t, schedule)
	assert.LessOrEqual(t, len(schedule), maxMonths)

	last := schedule[len(schedule)-1]
	assert.True(t, last.Balance.IsZero(), "final balance %s", last.Balance)
	// Final payment covers only what remains.
	assert.True(t, last.Payment.LessThanOrEqual(amt("300.00")))

	for i := 1; i < len(schedule); i++ {
		assert.True(t, schedule[i].Balance.LessThan(schedule[i-1].Balance),
			"balance not strictly decreasing at month %d", schedule[i].Month)
	}
}

func TestSimulate_PaymentBelowInterest(t *testing.T) {
	// $100 monthly interest on this balance; a $100 payment never
	// touches principal.
	schedule := Simulate(amt("10000"), amt("12"), amt("100"), decimal.Zero)
	assert.Empty(t, schedule)

	schedule = Simulate(amt("10000"), amt("12"), amt("50"), decimal.Zero)
	assert.Empty(t, schedule)
}

func TestSimulate_ExtraAcceleratesPayoff(t *testing.T) {
	base := Simulate(amt("10000"), amt("12"), amt("300"), decimal.Zero)
	faster := Simulate(amt("10000"), amt("12"), amt("300"), amt("200"))
	require.NotEmpty(t, base)
	require.NotEmpty(t, faster)
	assert.Less(t, len(faster), len(base))
	assert.True(t, TotalInterest(faster).LessThan(TotalInterest(base)))
}

func TestSimulate_Deterministic(t *testing.T) {
	a := Simulate(amt("8500.55"), amt("17.9"), amt("275"), amt("25"))
	b := Simulate(amt("8500.55"), amt("17.9"), amt("275"), amt("25"))
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i], b[i])
	}
}

func TestSimulate_ZeroRate(t *testing.T) {
	schedule := Simulate(amt("1000"), decimal.Zero, amt("250"), decimal.Zero)
	require.Len(t, schedule, 4)
	assert.True(t, TotalInterest(schedule).IsZero())
}

func TestSimulate_InvalidInputs(t *testing.T) {
	assert.Empty(t, Simulate(decimal.Zero, amt("12"), amt("300"), decimal.Zero))
	assert.Empty(t, Simulate(amt("1000"), amt("12"), decimal.Zero, decimal.Zero))
}

func TestEstimateMonths(t *testing.T) {
	months, ok := EstimateMonths(amt("10000"), amt("12"), amt("300"))
	require.True(t, ok)
	// The closed form should agree with the simulated schedule length.
	schedule := Simulate(amt("10000"), amt("12"), amt("300"), decimal.Zero)
	assert.InDelta(t, float64(len(schedule)), months, 1.0)

	_, ok = EstimateMonths(amt("10000"), amt("12"), amt("100"))
	assert.False(t, ok)

	months, ok = EstimateMonths(amt("1000"), decimal.Zero, amt("100"))
	require.True(t, ok)
	assert.InDelta(t, 10.0, months, 0.001)
}

func TestAvalanche(t *testing.T) {
	loans := []model.Loan{
		{Lender: "Auto", RateAPR: amt("6.5")},
		{Lender: "Card", RateAPR: amt("24.99")},
		{Lender: "Student", RateAPR: amt("4.2")},
	}

	ordered := Avalanche(loans)
	require.Len(t, ordered, 3)
	assert.Equal(t, "Card", ordered[0].Lender)
	assert.Equal(t, "Auto", ordered[1].Lender)
	assert.Equal(t, "Student", ordered[2].Lender)

	// Input order is untouched.
	assert.Equal(t, "Auto", loans[0].Lender)
}

func TestAvalanche_StableOnTies(t *testing.T) {
	loans := []model.Loan{
		{Lender: "A", RateAPR: amt("10")},
		{Lender: "B", RateAPR: amt("10")},
	}
	ordered := Avalanche(loans)
	assert.Equal(t, "A", ordered[0].Lender)
	assert.Equal(t, "B", ordered[1].Lender)
}

func TestRequiredSavings(t *testing.T) {
	now := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
	goalDate := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

	plan := RequiredSavings(amt("6000"), amt("1200"), goalDate, now)
	assert.Equal(t, 6, plan.MonthsLeft)
	assert.True(t, amt("800.00").Equal(plan.MonthlyRequired), "got %s", plan.MonthlyRequired)
}

func TestRequiredSavings_GoalAlreadyMet(t *testing.T) {
	now := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
	goalDate := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

	plan := RequiredSavings(amt("1000"), amt("5000"), goalDate, now)
	assert.True(t, plan.MonthlyRequired.IsZero())
}

func TestRequiredSavings_PastDateClampsToOneMonth(t *testing.T) {
	now := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
	goalDate := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	plan := RequiredSavings(amt("500"), decimal.Zero, goalDate, now)
	assert.Equal(t, 1, plan.MonthsLeft)
	assert.True(t, amt("500").Equal(plan.MonthlyRequired))
}
