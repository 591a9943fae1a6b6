package google

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRows(t *testing.T) {
	values := [][]interface{}{
		{"ID", "Title", "Price", "Description", "Category", "Image", "Sold", "dateOfSale"},
		{1.0, "Fjallraven Backpack", 329.85, "Your perfect pack", "men's clothing", "https://example.com/1.jpg", false, "2021-11-27T20:29:54+05:30"},
		{"2", "WD 2TB Drive", "64", "USB 3.0", "electronics", "", "yes", "2022-03-05"},
		{},
		{"", "", ""},
		{"x", "Bad id", 10.0, "", "", "", true, "2022-03-05"},
		{3.0, "Bad price", "n/a", "", "", "", true, "2022-03-05"},
		{4.0, "Short row", 12.5},
	}

	txs, skipped, err := parseRows(values)
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	require.Len(t, txs, 3)

	assert.Equal(t, int64(1), txs[0].ID)
	assert.Equal(t, 329.85, txs[0].Price)
	assert.False(t, txs[0].Sold)
	assert.Equal(t, "2021-11-27T20:29:54+05:30", txs[0].DateOfSale)

	assert.Equal(t, int64(2), txs[1].ID)
	assert.Equal(t, 64.0, txs[1].Price)
	assert.True(t, txs[1].Sold)
	assert.Equal(t, "electronics", txs[1].Category)

	assert.Equal(t, int64(4), txs[2].ID)
	assert.Equal(t, "", txs[2].DateOfSale)
}

func TestParseRowsColumnOrder(t *testing.T) {
	values := [][]interface{}{
		{"dateOfSale", "price", "title", "id"},
		{"2022-07-01", 1500.0, "Monitor", 1000000.0},
	}
	txs, skipped, err := parseRows(values)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, txs, 1)
	assert.Equal(t, int64(1000000), txs[0].ID)
	assert.Equal(t, "Monitor", txs[0].Title)
	assert.Equal(t, "2022-07-01", txs[0].DateOfSale)
}

func TestParseRowsMissingHeader(t *testing.T) {
	_, _, err := parseRows([][]interface{}{{"id", "title", "amount"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing price,dateofsale")
}

func TestParseRowsEmpty(t *testing.T) {
	txs, skipped, err := parseRows(nil)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Empty(t, txs)
}

func TestParseSold(t *testing.T) {
	for _, s := range []string{"true", "TRUE", "yes", "Y", "1"} {
		assert.True(t, parseSold(s), s)
	}
	for _, s := range []string{"false", "no", "0", "", "maybe"} {
		assert.False(t, parseSold(s), s)
	}
}

func TestQuoteSheetName(t *testing.T) {
	assert.Equal(t, "'Transactions'", quoteSheetName("Transactions"))
	assert.Equal(t, "'Q1 Sales'", quoteSheetName("Q1 Sales"))
	assert.Equal(t, "'Bob''s'", quoteSheetName("Bob's"))
}
