package core

import (
	"strconv"
	"strings"
	"time"
)

// monthNames maps lowercase English month names to their number.
// A fixed table keeps matching independent of the host locale.
var monthNames = map[string]time.Month{
	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"may":       time.May,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
}

// ParseMonth resolves a month name ("March", "march") or number ("3") to a time.Month.
func ParseMonth(name string) (time.Month, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return 0, false
	}
	if m, ok := monthNames[name]; ok {
		return m, true
	}
	if n, err := strconv.Atoi(name); err == nil && n >= 1 && n <= 12 {
		return time.Month(n), true
	}
	return 0, false
}

// SaleMonth extracts the month written in a "YYYY-MM-..." date string.
// The value is read as written: no time zone conversion is applied, so
// "2021-11-30T23:30:00-05:00" is November.
func SaleMonth(dateOfSale string) (time.Month, bool) {
	parts := strings.SplitN(strings.TrimSpace(dateOfSale), "-", 3)
	if len(parts) < 2 {
		return 0, false
	}
	if _, err := strconv.Atoi(parts[0]); err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return 0, false
	}
	return time.Month(m), true
}
