package core

import (
	"fmt"
	"math"
	"strings"
)

// FilterByMonth keeps the records sold in the named month of any year.
// Records with an unparseable DateOfSale never match, and an unknown
// month name yields an empty result.
func FilterByMonth(txs []Transaction, month string) []Transaction {
	out := make([]Transaction, 0)
	target, ok := ParseMonth(month)
	if !ok {
		return out
	}
	for _, t := range txs {
		if m, ok := SaleMonth(t.DateOfSale); ok && m == target {
			out = append(out, t)
		}
	}
	return out
}

// Search keeps records whose title, description or formatted price contains
// term, ignoring case. An empty term matches everything.
func Search(txs []Transaction, term string) []Transaction {
	if term == "" {
		return txs
	}
	needle := strings.ToLower(term)
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if strings.Contains(strings.ToLower(t.Title), needle) ||
			strings.Contains(strings.ToLower(t.Description), needle) ||
			strings.Contains(FormatPrice(t.Price), needle) {
			out = append(out, t)
		}
	}
	return out
}

// Paginate returns the 1-based page of size perPage and the total page count.
// Pages past the end are empty rather than an error.
func Paginate(txs []Transaction, page, perPage int) Page {
	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	n := len(txs)
	total := n / perPage
	if n%perPage != 0 {
		total++
	}
	if page > total {
		return Page{Transactions: []Transaction{}, TotalPages: total}
	}
	start := (page - 1) * perPage
	end := min(start+perPage, n)
	return Page{Transactions: txs[start:end], TotalPages: total}
}

// List runs the month filter, the search filter and pagination in sequence.
func List(txs []Transaction, q Query) Page {
	q = q.Normalized()
	matched := Search(FilterByMonth(txs, q.Month), q.Search)
	return Paginate(matched, q.Page, q.PerPage)
}

// ComputeStatistics totals sales and counts sold/unsold records.
func ComputeStatistics(txs []Transaction) Statistics {
	stats := Statistics{TotalSales: SumPrices(txs)}
	for _, t := range txs {
		if t.Sold {
			stats.SoldItems++
		} else {
			stats.NotSoldItems++
		}
	}
	return stats
}

const (
	priceBucketWidth = 100
	priceBucketCount = 10
)

// priceRangeLabels holds the bucket labels in ascending order.
var priceRangeLabels = func() []string {
	labels := make([]string, priceBucketCount)
	for i := 0; i < priceBucketCount-1; i++ {
		lo := i*priceBucketWidth + 1
		if i == 0 {
			lo = 0
		}
		labels[i] = fmt.Sprintf("%d - %d", lo, (i+1)*priceBucketWidth)
	}
	last := (priceBucketCount - 1) * priceBucketWidth
	labels[priceBucketCount-1] = fmt.Sprintf("%d - above %d", last+1, last)
	return labels
}()

// priceBucket maps a price to its bucket index. Bucket i (i < 9) holds
// prices in (100*i, 100*(i+1)], bucket 0 also holds zero and negatives,
// and bucket 9 holds everything above 900.
func priceBucket(price float64) int {
	if math.IsNaN(price) || price <= priceBucketWidth {
		return 0
	}
	if price > (priceBucketCount-1)*priceBucketWidth {
		return priceBucketCount - 1
	}
	return int(math.Ceil(price/priceBucketWidth)) - 1
}

// PriceRanges counts records per fixed price bucket. All ten buckets are
// returned in ascending order, including empty ones.
func PriceRanges(txs []Transaction) []PriceRangeCount {
	counts := make([]int, priceBucketCount)
	for _, t := range txs {
		counts[priceBucket(t.Price)]++
	}
	out := make([]PriceRangeCount, priceBucketCount)
	for i, label := range priceRangeLabels {
		out[i] = PriceRangeCount{Range: label, Count: counts[i]}
	}
	return out
}

// Categories counts records per exact category, ordered by first appearance.
func Categories(txs []Transaction) []CategoryCount {
	out := make([]CategoryCount, 0)
	index := map[string]int{}
	for _, t := range txs {
		i, seen := index[t.Category]
		if !seen {
			i = len(out)
			index[t.Category] = i
			out = append(out, CategoryCount{Category: t.Category})
		}
		out[i].Count++
	}
	return out
}
