// Package ledger is the gateway to the remote financial ledger. It owns
// transport concerns only: auth, pagination, JSON decoding and timeout live
// here, decisions never do. Reads may be retried on transient statuses,
// writes are issued exactly once.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/budhip/go-autosave/internal/common"
	"github.com/budhip/go-autosave/internal/common/httpclient"
	"github.com/budhip/go-autosave/internal/common/metrics"
	"github.com/budhip/go-autosave/internal/config"
	"github.com/budhip/go-autosave/internal/models"

	"github.com/go-resty/resty/v2"
)

var logMessage = "[LEDGER-CLIENT]"

const serviceName = "ledger"

type Client interface {
	// FetchTransactions returns every transaction group for the account in
	// the window, following pagination to the last page.
	FetchTransactions(ctx context.Context, accountID int64, start, end time.Time, typeFilter string) ([]models.TransactionGroup, error)
	// FetchLinks returns all links visible to the credential in use.
	FetchLinks(ctx context.Context) ([]models.Link, error)
	// CreateTransfer submits the transfer and returns the new journal id.
	CreateTransfer(ctx context.Context, req models.TransferRequest) (int64, error)
	CreateLink(ctx context.Context, inwardID, outwardID, linkTypeID int64) error
}

type client struct {
	baseURL string
	wrapper *httpclient.RequestWrapper
}

func New(configuration config.LedgerConfig, mtc metrics.Metrics) Client {
	retryWaitTime := time.Duration(configuration.RetryWaitTime) * time.Millisecond

	restyClient := resty.New()
	restyClient = restyClient.AddRetryCondition(func(r *resty.Response, err error) bool {
		if r == nil || r.Request == nil {
			return false
		}
		// writes are never retried, a repeated POST would double-move money
		if r.Request.Method != http.MethodGet {
			return false
		}

		_, shouldRetry := models.RetryableHTTPCodes[r.StatusCode()]
		return shouldRetry
	})

	restyClient = restyClient.
		SetRetryCount(configuration.RetryCount).
		SetRetryWaitTime(retryWaitTime).
		SetTimeout(configuration.Timeout).
		SetAuthToken(configuration.Token)

	return client{
		baseURL: configuration.BaseURL,
		wrapper: httpclient.NewRequestWrapper(restyClient, mtc, serviceName, logMessage),
	}
}

func (c client) FetchTransactions(ctx context.Context, accountID int64, start, end time.Time, typeFilter string) ([]models.TransactionGroup, error) {
	url := fmt.Sprintf("%s/api/v1/accounts/%d/transactions", c.baseURL, accountID)

	var groups []models.TransactionGroup
	for page := 1; ; page++ {
		httpRes, err := c.wrapper.DoRequest(ctx, http.MethodGet, url, func(req *resty.Request) *resty.Request {
			return req.SetQueryParams(map[string]string{
				"type":  typeFilter,
				"start": start.Format(common.DateFormatYYYYMMDD),
				"end":   end.Format(common.DateFormatYYYYMMDD),
				"page":  strconv.Itoa(page),
			})
		})
		if err != nil {
			return nil, &common.FetchError{Op: "transactions", Err: err}
		}
		if httpRes.StatusCode() != http.StatusOK {
			return nil, &common.FetchError{Op: "transactions", Err: statusError(httpRes)}
		}

		var res listTransactionsResponse
		if err := json.Unmarshal(httpRes.Body(), &res); err != nil {
			return nil, &common.FetchError{Op: "transactions", Err: fmt.Errorf("error unmarshal response: %w", err)}
		}

		for _, data := range res.Data {
			group, err := data.toModel()
			if err != nil {
				return nil, &common.FetchError{Op: "transactions", Err: fmt.Errorf("group %s: %w", data.ID, err)}
			}
			groups = append(groups, group)
		}

		if res.Meta.Pagination.CurrentPage >= res.Meta.Pagination.TotalPages {
			break
		}
	}

	return groups, nil
}

func (c client) FetchLinks(ctx context.Context) ([]models.Link, error) {
	url := fmt.Sprintf("%s/api/v1/transaction_links", c.baseURL)

	var links []models.Link
	for page := 1; ; page++ {
		httpRes, err := c.wrapper.DoRequest(ctx, http.MethodGet, url, func(req *resty.Request) *resty.Request {
			return req.SetQueryParam("page", strconv.Itoa(page))
		})
		if err != nil {
			return nil, &common.FetchError{Op: "links", Err: err}
		}
		if httpRes.StatusCode() != http.StatusOK {
			return nil, &common.FetchError{Op: "links", Err: statusError(httpRes)}
		}

		var res listLinksResponse
		if err := json.Unmarshal(httpRes.Body(), &res); err != nil {
			return nil, &common.FetchError{Op: "links", Err: fmt.Errorf("error unmarshal response: %w", err)}
		}

		for _, data := range res.Data {
			links = append(links, data.toModel())
		}

		if res.Meta.Pagination.CurrentPage >= res.Meta.Pagination.TotalPages {
			break
		}
	}

	return links, nil
}

func (c client) CreateTransfer(ctx context.Context, req models.TransferRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, &common.WriteError{Op: "create-transfer", Err: err}
	}

	url := fmt.Sprintf("%s/api/v1/transactions", c.baseURL)
	body := storeTransactionRequest{
		Transactions: []storeTransactionSplit{
			{
				Type:          req.Type,
				Date:          common.FormatDatetimeToString(req.Date.UTC(), common.DateFormatYYYYMMDDWithTimeAndOffset),
				Amount:        req.Amount.StringFixed(2),
				Description:   req.Description,
				SourceID:      strconv.FormatInt(req.SourceID, 10),
				DestinationID: strconv.FormatInt(req.DestinationID, 10),
				Notes:         req.Notes,
				Tags:          req.Tags,
			},
		},
	}

	httpRes, err := c.wrapper.DoRequest(ctx, http.MethodPost, url, func(r *resty.Request) *resty.Request {
		return r.SetBody(body)
	})
	if err != nil {
		return 0, &common.WriteError{Op: "create-transfer", Err: err}
	}
	if httpRes.StatusCode() != http.StatusOK && httpRes.StatusCode() != http.StatusCreated {
		return 0, &common.WriteError{Op: "create-transfer", Err: statusError(httpRes)}
	}

	var res storeTransactionResponse
	if err := json.Unmarshal(httpRes.Body(), &res); err != nil {
		return 0, &common.WriteError{Op: "create-transfer", Err: fmt.Errorf("error unmarshal response: %w", err)}
	}
	if len(res.Data.Attributes.Transactions) == 0 || res.Data.Attributes.Transactions[0].TransactionJournalID == 0 {
		return 0, &common.WriteError{Op: "create-transfer", Err: common.ErrUnexpectedResponse}
	}

	return res.Data.Attributes.Transactions[0].TransactionJournalID, nil
}

func (c client) CreateLink(ctx context.Context, inwardID, outwardID, linkTypeID int64) error {
	url := fmt.Sprintf("%s/api/v1/transaction_links", c.baseURL)
	body := storeLinkRequest{
		LinkTypeID: strconv.FormatInt(linkTypeID, 10),
		InwardID:   strconv.FormatInt(inwardID, 10),
		OutwardID:  strconv.FormatInt(outwardID, 10),
	}

	httpRes, err := c.wrapper.DoRequest(ctx, http.MethodPost, url, func(r *resty.Request) *resty.Request {
		return r.SetBody(body)
	})
	if err != nil {
		return &common.WriteError{Op: "create-link", JournalID: inwardID, Err: err}
	}
	if httpRes.StatusCode() != http.StatusOK && httpRes.StatusCode() != http.StatusCreated {
		return &common.WriteError{Op: "create-link", JournalID: inwardID, Err: statusError(httpRes)}
	}

	return nil
}

func statusError(res *resty.Response) error {
	return fmt.Errorf("invalid response http code: got %d", res.StatusCode())
}
