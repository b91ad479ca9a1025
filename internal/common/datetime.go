package common

import "time"

// DateLayout
const (
	DateFormatYYYYMMDD                  = "2006-01-02"
	DateFormatYYYYMMDDWithTimeAndOffset = "2006-01-02T15:04:05-07:00" // same as RFC3339/ISO8601
)

// ParseLedgerTime parses a timestamp as sent by the ledger. Full RFC3339
// timestamps are taken as-is; date-only values are promoted to midnight UTC.
func ParseLedgerTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse(DateFormatYYYYMMDD, value)
}

func FormatDatetimeToString(t time.Time, layout string) string {
	return t.Format(layout)
}
