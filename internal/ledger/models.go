package ledger

import (
	"strconv"

	"github.com/budhip/go-autosave/internal/common"
	"github.com/budhip/go-autosave/internal/models"

	"github.com/shopspring/decimal"
)

// Wire shapes of the ledger's JSON:API-style endpoints. Top-level ids arrive
// as strings, money as string-encoded decimals.

type pageMeta struct {
	Pagination struct {
		CurrentPage int `json:"current_page"`
		TotalPages  int `json:"total_pages"`
	} `json:"pagination"`
}

type transactionSplit struct {
	TransactionJournalID int64    `json:"transaction_journal_id"`
	Description          string   `json:"description"`
	Amount               string   `json:"amount"`
	Date                 string   `json:"date"`
	Tags                 []string `json:"tags"`
	SourceBalanceAfter   *string  `json:"source_balance_after"`
}

type transactionGroupData struct {
	ID         string `json:"id"`
	Attributes struct {
		GroupTitle   string             `json:"group_title"`
		Transactions []transactionSplit `json:"transactions"`
	} `json:"attributes"`
}

type listTransactionsResponse struct {
	Data []transactionGroupData `json:"data"`
	Meta pageMeta               `json:"meta"`
}

type linkData struct {
	ID         string `json:"id"`
	Attributes struct {
		LinkTypeID int64 `json:"link_type_id"`
		InwardID   int64 `json:"inward_id"`
		OutwardID  int64 `json:"outward_id"`
	} `json:"attributes"`
}

type listLinksResponse struct {
	Data []linkData `json:"data"`
	Meta pageMeta   `json:"meta"`
}

type storeTransactionSplit struct {
	Type          string   `json:"type"`
	Date          string   `json:"date"`
	Amount        string   `json:"amount"`
	Description   string   `json:"description"`
	SourceID      string   `json:"source_id"`
	DestinationID string   `json:"destination_id"`
	Notes         string   `json:"notes,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

type storeTransactionRequest struct {
	ApplyRules   bool                    `json:"apply_rules"`
	Transactions []storeTransactionSplit `json:"transactions"`
}

type storeTransactionResponse struct {
	Data struct {
		ID         string `json:"id"`
		Attributes struct {
			Transactions []transactionSplit `json:"transactions"`
		} `json:"attributes"`
	} `json:"data"`
}

type storeLinkRequest struct {
	LinkTypeID string `json:"link_type_id"`
	InwardID   string `json:"inward_id"`
	OutwardID  string `json:"outward_id"`
}

func (d transactionGroupData) toModel() (models.TransactionGroup, error) {
	group := models.TransactionGroup{
		Title:        d.Attributes.GroupTitle,
		Transactions: make([]models.Transaction, 0, len(d.Attributes.Transactions)),
	}
	if id, err := strconv.ParseInt(d.ID, 10, 64); err == nil {
		group.ID = id
	}

	for _, split := range d.Attributes.Transactions {
		trx, err := split.toModel()
		if err != nil {
			return models.TransactionGroup{}, err
		}
		group.Transactions = append(group.Transactions, trx)
	}

	return group, nil
}

func (s transactionSplit) toModel() (models.Transaction, error) {
	amount, err := decimal.NewFromString(s.Amount)
	if err != nil {
		return models.Transaction{}, err
	}

	date, err := common.ParseLedgerTime(s.Date)
	if err != nil {
		return models.Transaction{}, err
	}

	trx := models.Transaction{
		JournalID:   s.TransactionJournalID,
		Description: s.Description,
		Amount:      amount,
		Date:        date,
		Tags:        s.Tags,
	}

	if s.SourceBalanceAfter != nil && *s.SourceBalanceAfter != "" {
		balance, err := decimal.NewFromString(*s.SourceBalanceAfter)
		if err != nil {
			return models.Transaction{}, err
		}
		trx.BalanceAfter = &balance
	}

	return trx, nil
}

func (d linkData) toModel() models.Link {
	link := models.Link{
		LinkTypeID: d.Attributes.LinkTypeID,
		InwardID:   d.Attributes.InwardID,
		OutwardID:  d.Attributes.OutwardID,
	}
	if id, err := strconv.ParseInt(d.ID, 10, 64); err == nil {
		link.ID = id
	}
	return link
}
