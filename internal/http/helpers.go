package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	applog "txdash/internal/log"
	"txdash/internal/source"
)

// classifySourceError maps a fetch failure to a status code, a client-facing
// message and a log error type.
func classifySourceError(err error) (status int, message, errorType string) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "transaction source timed out", applog.ErrorTypeTimeout
	case errors.Is(err, source.ErrUnavailable), errors.Is(err, source.ErrMalformed):
		return http.StatusBadGateway, "transaction source unavailable", applog.ErrorTypeUpstream
	default:
		return http.StatusInternalServerError, "internal error", applog.ErrorTypeInternal
	}
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-z0-9_-]+`)

// exportFilename names the CSV download after the requested month.
func exportFilename(month string) string {
	m := unsafeFilenameChars.ReplaceAllString(strings.ToLower(month), "")
	if m == "" {
		return "transactions.csv"
	}
	return fmt.Sprintf("transactions-%s.csv", m)
}
