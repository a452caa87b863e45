package insight

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finsight-dev/finsight/internal/model"
)

// Highlights summarizes the latest month of ledger data.
type Highlights struct {
	Month            string
	Income           decimal.Decimal
	Spend            decimal.Decimal // outflow magnitude
	Net              decimal.Decimal
	TopCategory      string
	TopCategorySpend decimal.Decimal
	AvgTicket        decimal.Decimal // mean outflow magnitude
}

// Summarize computes Highlights for the newest month present in the
// ledger. ok is false for an empty ledger.
func Summarize(txns []model.Transaction) (Highlights, bool) {
	if len(txns) == 0 {
		return Highlights{}, false
	}

	latest := ""
	for _, t := range txns {
		if t.Month() > latest {
			latest = t.Month()
		}
	}

	h := Highlights{Month: latest}
	byCategory := make(map[string]decimal.Decimal)
	outflows := 0
	for _, t := range txns {
		if t.Month() != latest {
			continue
		}
		if t.IsOutflow() {
			h.Spend = h.Spend.Add(t.Amount.Abs())
			byCategory[t.Category] = byCategory[t.Category].Add(t.Amount.Abs())
			outflows++
		} else {
			h.Income = h.Income.Add(t.Amount)
		}
	}
	h.Net = h.Income.Sub(h.Spend)

	for cat, spend := range byCategory {
		if spend.GreaterThan(h.TopCategorySpend) || (spend.Equal(h.TopCategorySpend) && cat < h.TopCategory) {
			h.TopCategory = cat
			h.TopCategorySpend = spend
		}
	}
	if outflows > 0 {
		h.AvgTicket = h.Spend.DivRound(decimal.NewFromInt(int64(outflows)), 2)
	}
	return h, true
}

// monthSpend returns outflow magnitude for one calendar month.
func monthSpend(txns []model.Transaction, month string) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		if t.IsOutflow() && t.Month() == month {
			total = total.Add(t.Amount.Abs())
		}
	}
	return total
}

// merchantSpend is a merchant's total outflow and months of activity.
type merchantSpend struct {
	Merchant string
	Total    decimal.Decimal
	Months   int
}

// recurringMonths is the activity threshold for calling a merchant
// recurring.
const recurringMonths = 3

// recurringMerchants returns merchants charged in at least three
// distinct months, largest spend first.
func recurringMerchants(txns []model.Transaction) []merchantSpend {
	months := make(map[string]map[string]struct{})
	totals := make(map[string]decimal.Decimal)
	for _, t := range txns {
		if !t.IsOutflow() {
			continue
		}
		if months[t.Description] == nil {
			months[t.Description] = make(map[string]struct{})
		}
		months[t.Description][t.Month()] = struct{}{}
		totals[t.Description] = totals[t.Description].Add(t.Amount.Abs())
	}

	var out []merchantSpend
	for merchant, ms := range months {
		if len(ms) >= recurringMonths {
			out = append(out, merchantSpend{Merchant: merchant, Total: totals[merchant], Months: len(ms)})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Merchant < out[j].Merchant
	})
	return out
}
