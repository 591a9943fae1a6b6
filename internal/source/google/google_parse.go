package google

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"txdash/internal/core"
)

// Column headers recognised in the first row, matched case-insensitively.
const (
	colID          = "id"
	colTitle       = "title"
	colPrice       = "price"
	colDescription = "description"
	colCategory    = "category"
	colImage       = "image"
	colSold        = "sold"
	colDateOfSale  = "dateofsale"
)

var requiredColumns = []string{colID, colTitle, colPrice, colDateOfSale}

// parseRows converts a values matrix (as returned by Sheets API) into
// transactions. Blank rows are ignored; rows whose id or price cannot be
// parsed are dropped and reported through skipped.
func parseRows(values [][]interface{}) (txs []core.Transaction, skipped int, err error) {
	txs = make([]core.Transaction, 0)
	if len(values) == 0 {
		return txs, 0, nil
	}

	cols := map[string]int{}
	for i, h := range values[0] {
		name := strings.ToLower(cellString(h))
		if _, dup := cols[name]; !dup && name != "" {
			cols[name] = i
		}
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, 0, fmt.Errorf("unexpected header: missing %s", strings.Join(missing, ","))
	}

	get := func(row []interface{}, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return cellString(row[idx])
	}

	for _, row := range values[1:] {
		if isBlank(row) {
			continue
		}
		id, err := strconv.ParseInt(get(row, colID), 10, 64)
		if err != nil {
			skipped++
			continue
		}
		price, ok := parsePrice(get(row, colPrice))
		if !ok {
			skipped++
			continue
		}
		txs = append(txs, core.Transaction{
			ID:          id,
			Title:       get(row, colTitle),
			Price:       price,
			Description: get(row, colDescription),
			Category:    get(row, colCategory),
			Image:       get(row, colImage),
			Sold:        parseSold(get(row, colSold)),
			DateOfSale:  get(row, colDateOfSale),
		})
	}
	return txs, skipped, nil
}

// cellString renders an unformatted cell value without exponent notation.
func cellString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}

func isBlank(row []interface{}) bool {
	for _, v := range row {
		if cellString(v) != "" {
			return false
		}
	}
	return true
}

func parsePrice(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseSold(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1":
		return true
	}
	return false
}
