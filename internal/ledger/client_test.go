package ledger_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/budhip/go-autosave/internal/common"
	"github.com/budhip/go-autosave/internal/config"
	"github.com/budhip/go-autosave/internal/ledger"
	"github.com/budhip/go-autosave/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) ledger.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return ledger.New(config.LedgerConfig{
		BaseURL: srv.URL,
		Token:   "test-token",
		Timeout: 5 * time.Second,
	}, nil)
}

func TestClient_FetchTransactions(t *testing.T) {
	t.Parallel()

	pages := map[string]string{
		"1": `{
			"data": [{
				"id": "50",
				"attributes": {
					"group_title": "",
					"transactions": [{
						"transaction_journal_id": 123,
						"description": "Coffee shop",
						"amount": "19.30",
						"date": "2024-03-05T10:15:00+00:00",
						"tags": ["morning"],
						"source_balance_after": "480.70"
					}]
				}
			}],
			"meta": {"pagination": {"current_page": 1, "total_pages": 2}}
		}`,
		"2": `{
			"data": [{
				"id": "51",
				"attributes": {
					"group_title": "Split purchase",
					"transactions": [{
						"transaction_journal_id": 124,
						"description": "Lunch",
						"amount": "11.25",
						"date": "2024-03-06",
						"tags": []
					}]
				}
			}],
			"meta": {"pagination": {"current_page": 2, "total_pages": 2}}
		}`,
	}

	var gotPaths []string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.URL.Path)

		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "withdrawal", r.URL.Query().Get("type"))
		assert.Equal(t, "2024-03-01", r.URL.Query().Get("start"))
		assert.Equal(t, "2024-03-31", r.URL.Query().Get("end"))

		fmt.Fprint(w, pages[r.URL.Query().Get("page")])
	}))

	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)

	groups, err := client.FetchTransactions(context.TODO(), 1, start, end, "withdrawal")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, []string{"/api/v1/accounts/1/transactions", "/api/v1/accounts/1/transactions"}, gotPaths)

	first := groups[0].Transactions[0]
	assert.Equal(t, int64(123), first.JournalID)
	assert.Equal(t, "Coffee shop", first.Description)
	assert.True(t, decimal.RequireFromString("19.30").Equal(first.Amount))
	require.NotNil(t, first.BalanceAfter)
	assert.True(t, decimal.RequireFromString("480.70").Equal(*first.BalanceAfter))

	// date-only values are promoted to midnight UTC, unknown balance stays nil
	second := groups[1].Transactions[0]
	assert.Equal(t, time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC), second.Date)
	assert.Nil(t, second.BalanceAfter)
}

func TestClient_FetchTransactionsReadFailure(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.FetchTransactions(context.TODO(), 1, time.Now(), time.Now(), "withdrawal")

	var fetchErr *common.FetchError
	assert.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "transactions", fetchErr.Op)
}

func TestClient_FetchLinks(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/transaction_links", r.URL.Path)
		fmt.Fprint(w, `{
			"data": [
				{"id": "7", "attributes": {"link_type_id": 1, "inward_id": 123, "outward_id": 999}},
				{"id": "8", "attributes": {"link_type_id": 4, "inward_id": 124, "outward_id": 998}}
			],
			"meta": {"pagination": {"current_page": 1, "total_pages": 1}}
		}`)
	}))

	links, err := client.FetchLinks(context.TODO())
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, models.Link{ID: 7, LinkTypeID: 1, InwardID: 123, OutwardID: 999}, links[0])
}

func TestClient_CreateTransfer(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/transactions", r.URL.Path)

		var body struct {
			Transactions []map[string]any `json:"transactions"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Transactions, 1)

		split := body.Transactions[0]
		assert.Equal(t, "transfer", split["type"])
		assert.Equal(t, "0.70", split["amount"])
		assert.Equal(t, "1", split["source_id"])
		assert.Equal(t, "2", split["destination_id"])
		assert.Equal(t, "Autosave for journal #123", split["description"])

		fmt.Fprint(w, `{
			"data": {
				"id": "600",
				"attributes": {"transactions": [{"transaction_journal_id": 999, "amount": "0.70", "date": "2024-03-05"}]}
			}
		}`)
	}))

	req := models.TransferRequest{
		Type:          models.TransferTypeName,
		Date:          time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
		Amount:        decimal.RequireFromString("0.70"),
		Description:   "Autosave for journal #123",
		Notes:         "Round-up of journal #123 (Coffee shop)",
		SourceID:      1,
		DestinationID: 2,
		Tags:          []string{"autosave", models.AutosaveMarkerTag},
	}

	newID, err := client.CreateTransfer(context.TODO(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(999), newID)
}

func TestClient_CreateTransferWriteFailure(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"message": "validation error"}`)
	}))

	req := models.TransferRequest{
		Type:          models.TransferTypeName,
		Date:          time.Now(),
		Amount:        decimal.RequireFromString("0.70"),
		SourceID:      1,
		DestinationID: 2,
	}

	_, err := client.CreateTransfer(context.TODO(), req)

	var writeErr *common.WriteError
	assert.ErrorAs(t, err, &writeErr)
	assert.Equal(t, "create-transfer", writeErr.Op)
}

func TestClient_CreateTransferRejectsEmptyPayload(t *testing.T) {
	t.Parallel()

	var called bool
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := client.CreateTransfer(context.TODO(), models.TransferRequest{})

	var writeErr *common.WriteError
	assert.ErrorAs(t, err, &writeErr)
	assert.ErrorIs(t, err, common.ErrInvalidTransferPayload)
	assert.False(t, called, "an invalid payload must never reach the wire")
}

func TestClient_CreateLink(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/transaction_links", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "1", body["link_type_id"])
		assert.Equal(t, "123", body["inward_id"])
		assert.Equal(t, "999", body["outward_id"])

		fmt.Fprint(w, `{"data": {"id": "7"}}`)
	}))

	err := client.CreateLink(context.TODO(), 123, 999, 1)
	assert.NoError(t, err)
}

func TestClient_CreateLinkWriteFailure(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	err := client.CreateLink(context.TODO(), 123, 999, 1)

	var writeErr *common.WriteError
	assert.ErrorAs(t, err, &writeErr)
	assert.Equal(t, "create-link", writeErr.Op)
	assert.Equal(t, int64(123), writeErr.JournalID)
}
