package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Loan describes an outstanding debt.
type Loan struct {
	Lender     string
	Principal  decimal.Decimal
	Balance    decimal.Decimal // outstanding, <= Principal
	RateAPR    decimal.Decimal // annual percentage rate, >= 0
	MinPayment decimal.Decimal // required monthly payment
	Shared     bool
}

// Validate checks the loan invariants.
func (l Loan) Validate() error {
	if l.Balance.GreaterThan(l.Principal) {
		return fmt.Errorf("loan %s: balance %s exceeds principal %s", l.Lender, l.Balance, l.Principal)
	}
	if l.RateAPR.IsNegative() {
		return fmt.Errorf("loan %s: negative interest rate %s", l.Lender, l.RateAPR)
	}
	return nil
}

// NetWorthSnapshot is a point-in-time capture of assets and liabilities.
// At most one snapshot exists per calendar date; re-capturing overwrites.
type NetWorthSnapshot struct {
	Date        time.Time
	Assets      decimal.Decimal
	Liabilities decimal.Decimal
}

// NetWorth returns assets minus liabilities.
func (s NetWorthSnapshot) NetWorth() decimal.Decimal {
	return s.Assets.Sub(s.Liabilities)
}
