// Package loan simulates month-by-month loan amortization and related
// payoff planning.
package loan

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finsight-dev/finsight/internal/model"
)

// maxMonths caps a simulation at 100 years.
const maxMonths = 1200

// AmortizationRow is one month of a payoff schedule.
type AmortizationRow struct {
	Month     int
	Balance   decimal.Decimal // post-payment, floored at zero
	Interest  decimal.Decimal
	Principal decimal.Decimal
	Payment   decimal.Decimal // actual total paid this month
}

// Simulate produces a deterministic amortization schedule. An empty
// schedule means the loan never amortizes under these terms (payment
// does not cover interest); that is a user-facing condition, not an
// error.
func Simulate(balance, rateAPR, payment, extra decimal.Decimal) []AmortizationRow {
	if !balance.IsPositive() || !payment.IsPositive() {
		return nil
	}

	monthlyRate := rateAPR.Div(decimal.NewFromInt(1200))
	total := payment.Add(extra)
	if total.LessThanOrEqual(balance.Mul(monthlyRate)) {
		return nil
	}

	var schedule []AmortizationRow
	for month := 1; balance.IsPositive() && month <= maxMonths; month++ {
		interest := balance.Mul(monthlyRate)
		principal := total.Sub(interest)
		monthPayment := total

		// Final month: never pay down more than remains.
		if principal.GreaterThan(balance) {
			principal = balance
			monthPayment = interest.Add(principal)
		}

		balance = balance.Sub(principal)
		if balance.IsNegative() {
			balance = decimal.Zero
		}

		schedule = append(schedule, AmortizationRow{
			Month:     month,
			Balance:   balance.Round(2),
			Interest:  interest.Round(2),
			Principal: principal.Round(2),
			Payment:   monthPayment.Round(2),
		})
	}
	return schedule
}

// TotalInterest sums the interest column of a schedule.
func TotalInterest(schedule []AmortizationRow) decimal.Decimal {
	total := decimal.Zero
	for _, row := range schedule {
		total = total.Add(row.Interest)
	}
	return total
}

// EstimateMonths returns the closed-form months remaining on a loan, or
// false when the payment can never amortize the balance.
func EstimateMonths(balance, rateAPR, payment decimal.Decimal) (float64, bool) {
	if !balance.IsPositive() || !payment.IsPositive() {
		return 0, false
	}

	bal := balance.InexactFloat64()
	pmt := payment.InexactFloat64()
	r := rateAPR.InexactFloat64() / 100 / 12

	if r == 0 {
		return bal / pmt, true
	}
	if pmt <= r*bal {
		return 0, false
	}
	return -math.Log(1-r*bal/pmt) / math.Log(1+r), true
}

// Avalanche orders loans highest interest rate first, the order that
// minimizes total interest when directing extra payments.
func Avalanche(loans []model.Loan) []model.Loan {
	ordered := make([]model.Loan, len(loans))
	copy(ordered, loans)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].RateAPR.GreaterThan(ordered[j].RateAPR)
	})
	return ordered
}
