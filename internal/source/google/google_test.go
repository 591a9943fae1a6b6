package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"txdash/internal/source"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := gsheet.NewService(context.Background(),
		goption.WithEndpoint(srv.URL+"/"),
		goption.WithoutAuthentication())
	require.NoError(t, err)
	return newWithService(svc, "sheet-123", "Transactions")
}

func TestClientFetch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/v4/spreadsheets/sheet-123/values/"), r.URL.Path)
		assert.Equal(t, "UNFORMATTED_VALUE", r.URL.Query().Get("valueRenderOption"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"range": "Transactions!A1:H3",
			"majorDimension": "ROWS",
			"values": [
				["id", "title", "price", "description", "category", "image", "sold", "dateOfSale"],
				[1, "Ring", 9.99, "Silver", "jewelery", "", true, "2022-03-01"],
				[2, "Drive", 64, "USB", "electronics", "", false, "2022-04-01"]
			]
		}`))
	})

	txs, err := c.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "Ring", txs[0].Title)
	assert.True(t, txs[0].Sold)
	assert.Equal(t, 64.0, txs[1].Price)
}

func TestClientFetchErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":403,"message":"forbidden"}}`, http.StatusForbidden)
	})
	_, err := c.Fetch(context.Background())
	assert.ErrorIs(t, err, source.ErrUnavailable)

	c = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"values": [["name", "amount"]]}`))
	})
	_, err = c.Fetch(context.Background())
	assert.ErrorIs(t, err, source.ErrMalformed)

	_, err = (&Client{}).Fetch(context.Background())
	assert.ErrorIs(t, err, source.ErrUnavailable)
}

func TestNewRequiresSpreadsheetAndCredentials(t *testing.T) {
	_, err := New(context.Background(), Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing spreadsheet id")

	_, err = New(context.Background(), Config{SpreadsheetID: "sheet-123"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing service account credentials")

	_, err = New(context.Background(), Config{SpreadsheetID: "sheet-123", ServiceAccountFile: "/non/existent/sa.json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read service account file")
}
