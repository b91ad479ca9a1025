package common

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedResponse     = errors.New("unexpected response from ledger")
	ErrInvalidTransferPayload = errors.New("transfer payload is missing amount or account")
)

// ConfigError is raised before any ledger call when a required parameter is
// missing or malformed. It maps to its own process exit status.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %v", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// FetchError marks a ledger read failure. Reads are all-or-nothing: there is
// no partial-window fallback, the whole run aborts.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("ledger fetch %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// WriteError marks a ledger write failure on create-transfer or create-link.
// OrphanJournalID is set when a transfer was already committed but its link
// could not be created; that partial state is surfaced, never rolled back.
type WriteError struct {
	Op              string
	JournalID       int64
	OrphanJournalID int64
	Err             error
}

func (e *WriteError) Error() string {
	if e.OrphanJournalID != 0 {
		return fmt.Sprintf("ledger write %s for journal %d: transfer %d committed without link: %v",
			e.Op, e.JournalID, e.OrphanJournalID, e.Err)
	}
	return fmt.Sprintf("ledger write %s for journal %d: %v", e.Op, e.JournalID, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
