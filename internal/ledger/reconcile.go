package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/finsight-dev/finsight/internal/classify"
	"github.com/finsight-dev/finsight/internal/model"
	"github.com/finsight-dev/finsight/internal/statement"
)

// Reconciler merges normalized statement batches into the ledger:
// in-batch dedup, per-row classification, then insert-or-skip under the
// store's dedup invariant. Reconciling the same batch twice inserts
// zero rows the second time.
type Reconciler struct {
	store      Store
	classifier classify.Classifier
	log        zerolog.Logger
}

// NewReconciler creates a Reconciler.
func NewReconciler(store Store, classifier classify.Classifier, log zerolog.Logger) *Reconciler {
	return &Reconciler{store: store, classifier: classifier, log: log}
}

// Reconcile classifies and inserts a normalized batch, returning the
// count of newly inserted rows. Duplicates are skipped silently.
func (r *Reconciler) Reconcile(rows []statement.Row, provenance model.Provenance) (int, error) {
	unique := dedupe(rows)

	txns := make([]model.Transaction, 0, len(unique))
	for _, row := range unique {
		pred := r.classifier.Predict(row.Description)
		txns = append(txns, model.Transaction{
			ID:          uuid.NewString(),
			Date:        row.Date,
			Description: row.Description,
			Amount:      row.Amount,
			Category:    pred.Category,
			Confidence:  pred.Confidence,
			Provenance:  provenance,
		})
	}

	inserted, skipped, err := insertBatch(r.store, txns)
	if err != nil {
		return 0, err
	}
	if err := r.store.Commit(); err != nil {
		return 0, fmt.Errorf("committing ledger: %w", err)
	}

	r.log.Info().Int("inserted", inserted).Int("skipped", skipped).Msg("reconciled batch")
	return inserted, nil
}

// dedupe drops exact (date, description, amount) duplicates within the
// incoming batch, keeping first occurrence order.
func dedupe(rows []statement.Row) []statement.Row {
	seen := make(map[string]struct{}, len(rows))
	var out []statement.Row
	for _, row := range rows {
		key := fmt.Sprintf("%s|%s|%s", row.Date.Format("2006-01-02"), row.Description, row.Amount.StringFixed(2))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, row)
	}
	return out
}

// insertBatch inserts transactions, counting duplicates as skips rather
// than errors.
func insertBatch(store Store, txns []model.Transaction) (inserted, skipped int, err error) {
	for _, txn := range txns {
		switch err := store.InsertTransaction(txn); {
		case err == nil:
			inserted++
		case errors.Is(err, ErrDuplicate):
			skipped++
		default:
			return 0, 0, fmt.Errorf("inserting transaction: %w", err)
		}
	}
	return inserted, skipped, nil
}

// SharedOnly filters a ledger snapshot down to transactions marked
// shared, for viewers without full visibility.
func SharedOnly(txns []model.Transaction) []model.Transaction {
	var out []model.Transaction
	for _, t := range txns {
		if t.Shared {
			out = append(out, t)
		}
	}
	return out
}

// CaptureNetWorth records a snapshot for the given date, overwriting
// any earlier capture on the same calendar date.
func CaptureNetWorth(store Store, snap model.NetWorthSnapshot) error {
	snap.Date = snap.Date.Truncate(24 * time.Hour)
	if err := store.UpsertSnapshot(snap); err != nil {
		return fmt.Errorf("storing snapshot: %w", err)
	}
	if err := store.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}
