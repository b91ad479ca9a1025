package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one leg of a ledger transaction group. The engine holds a
// read-only copy for the duration of a single run.
type Transaction struct {
	// JournalID is the ledger-assigned identifier of this leg; zero means the
	// ledger sent malformed data and the leg is never processed.
	JournalID   int64
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	Tags        []string

	// BalanceAfter is the source-account balance after this leg posted. Nil
	// means unknown, which never blocks the floor check.
	BalanceAfter *decimal.Decimal
}

// TransactionGroup covers split transactions: every leg is processed
// independently, the group itself is not a unit of decision.
type TransactionGroup struct {
	ID           int64
	Title        string
	Transactions []Transaction
}
