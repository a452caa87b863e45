// Package extsync pulls transactions from a bank-aggregation feed into
// the ledger. Pages are fetched and committed strictly in sequence; the
// persisted cursor is the sole resumption checkpoint and never advances
// past transactions that were not durably stored.
package extsync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/finsight-dev/finsight/internal/ledger"
	"github.com/finsight-dev/finsight/internal/model"
)

// RawTransaction is one transaction as delivered by the aggregation
// collaborator. Its sign convention is the opposite of the engine's:
// outflow is positive.
type RawTransaction struct {
	ExternalID       string
	Date             time.Time
	Name             string
	Amount           decimal.Decimal
	Category         []string // coarse hierarchy, broadest first
	DetailedCategory string   // richer personal-finance category, preferred when present
}

// Page is one cursor-paginated fetch result.
type Page struct {
	Added      []RawTransaction
	HasMore    bool
	NextCursor string
}

// Fetcher is the aggregation collaborator capability. FetchRange is the
// bounded fallback used to seed data when the very first sync page is
// empty.
type Fetcher interface {
	FetchPage(ctx context.Context, accessToken, cursor string) (Page, error)
	FetchRange(ctx context.Context, accessToken string, start, end time.Time) ([]RawTransaction, error)
}

// seedWindow is the date range fetched when the first sync page is empty.
const seedWindow = 30 * 24 * time.Hour

// Sync folds over the feed's pages, inserting new transactions and
// committing each page together with its cursor advance before the next
// page is requested. Returns the total count of newly inserted rows.
func Sync(ctx context.Context, fetcher Fetcher, accessToken string, store ledger.Store, log zerolog.Logger) (int, error) {
	cursor, err := store.Cursor()
	if err != nil {
		return 0, fmt.Errorf("reading sync cursor: %w", err)
	}

	total := 0
	firstCall := cursor == ""
	for {
		page, err := fetcher.FetchPage(ctx, accessToken, cursor)
		if err != nil {
			return total, fmt.Errorf("fetching sync page: %w", err)
		}

		// An empty very first page is transient emptiness, not
		// completion: seed from a bounded date range instead.
		if firstCall && len(page.Added) == 0 {
			added, err := fetcher.FetchRange(ctx, accessToken, time.Now().Add(-seedWindow), time.Now())
			if err != nil {
				return total, fmt.Errorf("seeding from date range: %w", err)
			}
			page.Added = added
			page.HasMore = false
		}
		firstCall = false

		inserted, err := commitPage(store, page)
		if err != nil {
			return total, err
		}
		total += inserted
		cursor = page.NextCursor

		log.Info().Int("inserted", inserted).Bool("more", page.HasMore).Msg("synced page")
		if !page.HasMore {
			return total, nil
		}
	}
}

// commitPage inserts a page's transactions and persists the cursor
// advance in the same commit.
func commitPage(store ledger.Store, page Page) (int, error) {
	inserted := 0
	for _, raw := range page.Added {
		err := store.InsertTransaction(convert(raw))
		if errors.Is(err, ledger.ErrDuplicate) {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("inserting synced transaction: %w", err)
		}
		inserted++
	}
	if page.NextCursor != "" {
		if err := store.SetCursor(page.NextCursor); err != nil {
			return 0, fmt.Errorf("advancing cursor: %w", err)
		}
	}
	if err := store.Commit(); err != nil {
		return 0, fmt.Errorf("committing page: %w", err)
	}
	return inserted, nil
}

// convert maps a raw feed transaction to the engine's conventions:
// amount sign flipped so outflow is negative, category hierarchy
// collapsed to a single label.
func convert(raw RawTransaction) model.Transaction {
	return model.Transaction{
		ID:          uuid.NewString(),
		Date:        raw.Date,
		Description: raw.Name,
		Amount:      raw.Amount.Neg(),
		Category:    mapCategory(raw),
		Provenance:  model.ProvenanceSync,
		ExternalID:  raw.ExternalID,
	}
}

// mapCategory prefers the detailed personal-finance category, then the
// broadest hierarchy entry, then the default label.
func mapCategory(raw RawTransaction) string {
	if raw.DetailedCategory != "" {
		return titleCase(raw.DetailedCategory)
	}
	if len(raw.Category) > 0 && raw.Category[0] != "" {
		return raw.Category[0]
	}
	return model.DefaultCategory
}

// titleCase turns a feed constant like "FOOD_AND_DRINK" into
// "Food And Drink".
func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(strings.ToLower(s), "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
