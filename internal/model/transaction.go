package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Provenance records how a transaction entered the ledger.
type Provenance string

const (
	ProvenanceManual   Provenance = "manual"
	ProvenanceImported Provenance = "imported-file"
	ProvenanceSync     Provenance = "external-sync"
)

// DefaultCategory is assigned when no classifier produces a label.
const DefaultCategory = "Uncategorized"

// Transaction is a single reconciled ledger row.
// Amounts are signed: negative = outflow, positive = inflow. Every
// ingestion path normalizes to this convention before insertion.
type Transaction struct {
	ID          string
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Category    string
	Confidence  decimal.Decimal
	Shared      bool
	Provenance  Provenance
	ExternalID  string // natural dedup key for synced rows, empty otherwise
}

// Key returns the (date, description, amount) dedup key.
func (t Transaction) Key() string {
	return fmt.Sprintf("%s|%s|%s", t.Date.Format("2006-01-02"), t.Description, t.Amount.StringFixed(2))
}

// IsOutflow reports whether the transaction is an expense.
func (t Transaction) IsOutflow() bool {
	return t.Amount.IsNegative()
}

// Month returns the transaction's calendar month label, e.g. "2025-01".
func (t Transaction) Month() string {
	return t.Date.Format("2006-01")
}
