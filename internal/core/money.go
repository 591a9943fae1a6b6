package core

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// FormatPrice renders a price the way search matches it: the shortest
// decimal that round-trips the float, without exponent, trailing zeros or
// grouping separators (150 -> "150", 329.85 -> "329.85").
func FormatPrice(price float64) string {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return strconv.FormatFloat(price, 'f', -1, 64)
	}
	return decimal.NewFromFloat(price).String()
}

// SumPrices adds prices exactly and converts the result back to float64.
// Non-finite prices cannot be represented and contribute zero.
func SumPrices(txs []Transaction) float64 {
	total := decimal.Zero
	for _, t := range txs {
		if math.IsNaN(t.Price) || math.IsInf(t.Price, 0) {
			continue
		}
		total = total.Add(decimal.NewFromFloat(t.Price))
	}
	return total.InexactFloat64()
}
