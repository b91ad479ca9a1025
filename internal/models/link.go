package models

// Link is a directed relation between two journal identifiers recorded by the
// ledger; the engine reads all of them back each run to rebuild its
// idempotency set and writes one per created autosave transfer.
type Link struct {
	ID         int64
	LinkTypeID int64
	InwardID   int64
	OutwardID  int64
}
