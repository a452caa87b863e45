package extsync

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

// FileFetcher replays a recorded feed from a JSON file, page by page.
// It stands in for a live aggregator client during development and
// tests; production wiring supplies its own Fetcher.
type FileFetcher struct {
	pages    []Page
	byCursor map[string]int
}

type feedFile struct {
	Pages []struct {
		Added []struct {
			ExternalID       string   `json:"external_id"`
			Date             string   `json:"date"`
			Name             string   `json:"name"`
			Amount           string   `json:"amount"`
			Category         []string `json:"category"`
			DetailedCategory string   `json:"detailed_category"`
		} `json:"added"`
		HasMore    bool   `json:"has_more"`
		NextCursor string `json:"next_cursor"`
	} `json:"pages"`
}

// OpenFileFetcher loads a recorded feed file.
func OpenFileFetcher(path string) (*FileFetcher, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading feed file: %w", err)
	}
	var ff feedFile
	if err := json.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("parsing feed file: %w", err)
	}

	f := &FileFetcher{byCursor: make(map[string]int)}
	for i, p := range ff.Pages {
		page := Page{HasMore: p.HasMore, NextCursor: p.NextCursor}
		for _, a := range p.Added {
			date, err := time.Parse("2006-01-02", a.Date)
			if err != nil {
				return nil, fmt.Errorf("feed page %d: parsing date %q: %w", i+1, a.Date, err)
			}
			amount, err := decimal.NewFromString(a.Amount)
			if err != nil {
				return nil, fmt.Errorf("feed page %d: parsing amount %q: %w", i+1, a.Amount, err)
			}
			page.Added = append(page.Added, RawTransaction{
				ExternalID:       a.ExternalID,
				Date:             date,
				Name:             a.Name,
				Amount:           amount,
				Category:         a.Category,
				DetailedCategory: a.DetailedCategory,
			})
		}
		f.pages = append(f.pages, page)
		if p.NextCursor != "" {
			f.byCursor[p.NextCursor] = i + 1
		}
	}
	return f, nil
}

// FetchPage returns the page at the cursor, or the first page when the
// cursor is empty. A cursor past the end yields an empty final page.
func (f *FileFetcher) FetchPage(_ context.Context, _ string, cursor string) (Page, error) {
	idx := 0
	if cursor != "" {
		next, ok := f.byCursor[cursor]
		if !ok {
			return Page{}, fmt.Errorf("unknown cursor %q", cursor)
		}
		idx = next
	}
	if idx >= len(f.pages) {
		return Page{NextCursor: cursor}, nil
	}
	return f.pages[idx], nil
}

// FetchRange returns every recorded transaction dated within the range.
func (f *FileFetcher) FetchRange(_ context.Context, _ string, start, end time.Time) ([]RawTransaction, error) {
	var out []RawTransaction
	for _, page := range f.pages {
		for _, raw := range page.Added {
			if !raw.Date.Before(start) && !raw.Date.After(end) {
				out = append(out, raw)
			}
		}
	}
	return out, nil
}
