// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing query parameters into engine
// queries. Invalid values never fail a request; they fall back to defaults.

package http

import (
	"net/url"
	"strconv"
	"strings"

	"txdash/internal/core"
)

// ParseQuery extracts month, search, page and perPage from query parameters.
func ParseQuery(values url.Values) core.Query {
	return core.Query{
		Month:   ParseMonthParam(values),
		Search:  values.Get("search"),
		Page:    parsePositive(values.Get("page"), core.DefaultPage),
		PerPage: parsePositive(values.Get("perPage"), core.DefaultPerPage),
	}
}

// ParseMonthParam returns the trimmed month parameter; it may be empty.
func ParseMonthParam(values url.Values) string {
	return strings.TrimSpace(values.Get("month"))
}

// parsePositive returns def unless s is an integer >= 1.
func parsePositive(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	return n
}
