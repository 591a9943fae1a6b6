package core

const (
	DefaultPage    = 1
	DefaultPerPage = 10
)

type (
	// Transaction is one sale record as published by the upstream dataset.
	// DateOfSale is kept verbatim; only its month component is interpreted.
	Transaction struct {
		ID          int64   `json:"id"`
		Title       string  `json:"title"`
		Price       float64 `json:"price"`
		Description string  `json:"description"`
		Category    string  `json:"category"`
		Image       string  `json:"image"`
		Sold        bool    `json:"sold"`
		DateOfSale  string  `json:"dateOfSale"`
	}

	// Query selects and windows the transactions of one calendar month.
	Query struct {
		Month   string
		Search  string
		Page    int // 1-based
		PerPage int
	}

	Page struct {
		Transactions []Transaction `json:"transactions"`
		TotalPages   int           `json:"totalPages"`
	}

	Statistics struct {
		TotalSales   float64 `json:"totalSales"`
		SoldItems    int     `json:"soldItems"`
		NotSoldItems int     `json:"notSoldItems"`
	}

	PriceRangeCount struct {
		Range string `json:"range"`
		Count int    `json:"count"`
	}

	CategoryCount struct {
		Category string `json:"category"`
		Count    int    `json:"count"`
	}

	// Dashboard bundles every month-level aggregate the UI renders at once.
	Dashboard struct {
		Statistics  Statistics        `json:"statistics"`
		PriceRanges []PriceRangeCount `json:"priceRanges"`
		Categories  []CategoryCount   `json:"categories"`
	}
)

// Normalized returns a copy of q with out-of-range pagination replaced by the defaults.
func (q Query) Normalized() Query {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	}
	return q
}
