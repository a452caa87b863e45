// Package anomaly surfaces statistically extreme spends and candidate
// duplicate charges over a recent window of the ledger.
package anomaly

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsight-dev/finsight/internal/model"
)

// DefaultLookbackMonths is the detection window.
const DefaultLookbackMonths = 6

// spikeThreshold flags transactions whose z-score falls below it.
const spikeThreshold = -2.0

// duplicateSpan is the maximum date spread for a duplicate group.
const duplicateSpan = 7 * 24 * time.Hour

// Spike is a single unusually large spend.
type Spike struct {
	Transaction model.Transaction
	ZScore      float64
}

// DuplicateGroup holds outflows sharing a description and magnitude
// within a few days of each other.
type DuplicateGroup struct {
	Description  string
	Amount       decimal.Decimal // magnitude
	Transactions []model.Transaction
}

// Finding is the combined detector output.
type Finding struct {
	Spikes     []Spike
	Duplicates []DuplicateGroup
}

// Detect runs spike and duplicate detection over the outflows of the
// last lookbackMonths months, anchored at the newest transaction.
// Zero variance (or fewer than two distinct values) means no spikes are
// reported; that is an empty result, not an error.
func Detect(txns []model.Transaction, lookbackMonths int) Finding {
	if lookbackMonths <= 0 {
		lookbackMonths = DefaultLookbackMonths
	}

	outflows := recentOutflows(txns, lookbackMonths)
	return Finding{
		Spikes:     detectSpikes(outflows),
		Duplicates: detectDuplicates(outflows),
	}
}

func recentOutflows(txns []model.Transaction, lookbackMonths int) []model.Transaction {
	var newest time.Time
	for _, t := range txns {
		if t.Date.After(newest) {
			newest = t.Date
		}
	}
	cutoff := newest.AddDate(0, -lookbackMonths, 0)

	var out []model.Transaction
	for _, t := range txns {
		if t.IsOutflow() && !t.Date.Before(cutoff) {
			out = append(out, t)
		}
	}
	return out
}

// detectSpikes flags outflows whose signed amount sits more than two
// population standard deviations below the window mean.
func detectSpikes(outflows []model.Transaction) []Spike {
	if len(outflows) < 2 {
		return nil
	}

	amounts := make([]float64, len(outflows))
	var mean float64
	for i, t := range outflows {
		amounts[i] = t.Amount.InexactFloat64()
		mean += amounts[i]
	}
	mean /= float64(len(amounts))

	var variance float64
	for _, a := range amounts {
		variance += (a - mean) * (a - mean)
	}
	variance /= float64(len(amounts))

	stddev := math.Sqrt(variance)
	if stddev == 0 {
		return nil
	}

	var spikes []Spike
	for i, t := range outflows {
		z := (amounts[i] - mean) / stddev
		if z < spikeThreshold {
			spikes = append(spikes, Spike{Transaction: t, ZScore: z})
		}
	}
	sort.Slice(spikes, func(i, j int) bool { return spikes[i].ZScore < spikes[j].ZScore })
	return spikes
}

// detectDuplicates groups outflows by (description, magnitude) and
// keeps groups of two or more whose dates fall within a week.
func detectDuplicates(outflows []model.Transaction) []DuplicateGroup {
	groups := make(map[string][]model.Transaction)
	var order []string
	for _, t := range outflows {
		key := fmt.Sprintf("%s|%s", t.Description, t.Amount.Abs().StringFixed(2))
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], t)
	}

	var dups []DuplicateGroup
	for _, key := range order {
		members := groups[key]
		if len(members) < 2 {
			continue
		}
		earliest, latest := members[0].Date, members[0].Date
		for _, t := range members[1:] {
			if t.Date.Before(earliest) {
				earliest = t.Date
			}
			if t.Date.After(latest) {
				latest = t.Date
			}
		}
		if latest.Sub(earliest) > duplicateSpan {
			continue
		}
		dups = append(dups, DuplicateGroup{
			Description:  members[0].Description,
			Amount:       members[0].Amount.Abs(),
			Transactions: members,
		})
	}
	return dups
}
