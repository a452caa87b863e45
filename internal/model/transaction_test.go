package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionKey(t *testing.T) {
	txn := Transaction{
		Date:        time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC),
		Description: "UBER TRIP",
		Amount:      decimal.RequireFromString("-23.4"),
	}
	assert.Equal(t, "2025-01-03|UBER TRIP|-23.40", txn.Key())

	// Equal values with different decimal representations share a key.
	other := txn
	other.Amount = decimal.RequireFromString("-23.40")
	assert.Equal(t, txn.Key(), other.Key())
}

func TestIsOutflow(t *testing.T) {
	assert.True(t, Transaction{Amount: decimal.RequireFromString("-1")}.IsOutflow())
	assert.False(t, Transaction{Amount: decimal.RequireFromString("1")}.IsOutflow())
	assert.False(t, Transaction{}.IsOutflow())
}

func TestMonth(t *testing.T) {
	txn := Transaction{Date: time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "2025-11", txn.Month())
}

func TestLoanValidate(t *testing.T) {
	ok := Loan{Lender: "Card", Principal: decimal.RequireFromString("5000"), Balance: decimal.RequireFromString("2500")}
	assert.NoError(t, ok.Validate())

	overdrawn := Loan{Lender: "Card", Principal: decimal.RequireFromString("1000"), Balance: decimal.RequireFromString("2000")}
	assert.ErrorContains(t, overdrawn.Validate(), "exceeds principal")

	negative := Loan{Lender: "Card", RateAPR: decimal.RequireFromString("-1")}
	assert.ErrorContains(t, negative.Validate(), "negative interest rate")
}

func TestParsePriority(t *testing.T) {
	assert.Equal(t, PriorityCritical, ParsePriority("critical"))
	assert.Equal(t, PriorityHigh, ParsePriority(" HIGH "))
	assert.Equal(t, PriorityLow, ParsePriority("low"))
	assert.Equal(t, PriorityMedium, ParsePriority("medium"))
	assert.Equal(t, PriorityMedium, ParsePriority("whatever"))
}

func TestNetWorth(t *testing.T) {
	snap := NetWorthSnapshot{
		Assets:      decimal.RequireFromString("10000"),
		Liabilities: decimal.RequireFromString("3500"),
	}
	assert.Equal(t, "6500", snap.NetWorth().String())
}
