package models

import (
	"fmt"
	"time"

	"github.com/budhip/go-autosave/internal/common"

	"github.com/shopspring/decimal"
)

const (
	TransferTypeName = "transfer"

	// AutosaveMarkerTag is attached to every created transfer in addition to
	// the user-configured tag, so engine output stays recognizable even when
	// the public tag changes.
	AutosaveMarkerTag = "autosave-engine"
)

// TransferRequest is the transfer-shaped transaction the engine submits to
// the ledger for one qualifying source transaction.
type TransferRequest struct {
	Type          string
	Date          time.Time
	Amount        decimal.Decimal
	Description   string
	Notes         string
	SourceID      int64
	DestinationID int64
	Tags          []string
}

// NewAutosaveTransfer builds the transfer payload for a source transaction.
// Date-only timestamps were already promoted to midnight UTC when the
// transaction was fetched; the date carries over unchanged.
func NewAutosaveTransfer(src Transaction, delta decimal.Decimal, sourceID, destinationID int64, tag string) TransferRequest {
	return TransferRequest{
		Type:          TransferTypeName,
		Date:          src.Date,
		Amount:        delta.Round(2),
		Description:   fmt.Sprintf("Autosave for journal #%d", src.JournalID),
		Notes:         fmt.Sprintf("Round-up of journal #%d (%s)", src.JournalID, src.Description),
		SourceID:      sourceID,
		DestinationID: destinationID,
		Tags:          []string{tag, AutosaveMarkerTag},
	}
}

// Validate catches an empty payload before it reaches the wire.
func (r TransferRequest) Validate() error {
	if r.Amount.IsZero() || r.SourceID == 0 || r.DestinationID == 0 {
		return common.ErrInvalidTransferPayload
	}
	return nil
}

// RunSummary counts the decision outcomes of one engine run.
type RunSummary struct {
	Created           int `json:"created"`
	DryRunCandidates  int `json:"dryRunCandidates"`
	SkippedExcluded   int `json:"skippedExcluded"`
	SkippedZeroDelta  int `json:"skippedZeroDelta"`
	SkippedBelowFloor int `json:"skippedBelowFloor"`
	SkippedLinked     int `json:"skippedLinked"`
}

func (s RunSummary) Total() int {
	return s.Created + s.DryRunCandidates + s.SkippedExcluded +
		s.SkippedZeroDelta + s.SkippedBelowFloor + s.SkippedLinked
}
