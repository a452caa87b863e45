package extsync

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight-dev/finsight/internal/ledger"
	"github.com/finsight-dev/finsight/internal/logger"
)

func TestFileFetcher_ReplaysRecordedFeed(t *testing.T) {
	fetcher, err := OpenFileFetcher("../../testdata/feed.json")
	require.NoError(t, err)

	store := ledger.NewMemoryStore()
	n, err := Sync(context.Background(), fetcher, "tok", store, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	txns, err := store.Transactions()
	require.NoError(t, err)
	require.Len(t, txns, 3)

	assert.Equal(t, "BLUE BOTTLE COFFEE", txns[0].Description)
	assert.True(t, amt("-6.25").Equal(txns[0].Amount))
	assert.Equal(t, "Food And Drink Coffee", txns[0].Category)

	assert.Equal(t, "Travel", txns[1].Category)

	assert.True(t, amt("2500.00").Equal(txns[2].Amount))

	cursor, _ := store.Cursor()
	assert.Equal(t, "page-3", cursor)
}

func TestFileFetcher_SecondRunInsertsNothing(t *testing.T) {
	fetcher, err := OpenFileFetcher("../../testdata/feed.json")
	require.NoError(t, err)

	store := ledger.NewMemoryStore()
	_, err = Sync(context.Background(), fetcher, "tok", store, logger.Nop())
	require.NoError(t, err)

	// The stored cursor points past the last page; replay yields an
	// empty terminal page and no new rows.
	n, err := Sync(context.Background(), fetcher, "tok", store, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestFileFetcher_UnknownCursor(t *testing.T) {
	fetcher, err := OpenFileFetcher("../../testdata/feed.json")
	require.NoError(t, err)

	_, err = fetcher.FetchPage(context.Background(), "tok", "bogus")
	assert.ErrorContains(t, err, "unknown cursor")
}

func TestOpenFileFetcher_BadFile(t *testing.T) {
	_, err := OpenFileFetcher("../../testdata/no_schema.csv")
	assert.ErrorContains(t, err, "parsing feed file")
}
