package models

import (
	"net/http"
)

// RetryableHTTPCodes lists the transient statuses the transport may retry.
// Only reads are ever retried; write retry is forbidden by design.
var RetryableHTTPCodes = map[int]struct{}{
	http.StatusBadGateway:         {},
	http.StatusServiceUnavailable: {},
	http.StatusGatewayTimeout:     {},
	http.StatusTooManyRequests:    {},
}
