// Package export serialises transactions for download.
package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"txdash/internal/core"
)

// csvRow fixes the column set and order of exported files.
type csvRow struct {
	ID          int64  `csv:"id"`
	Title       string `csv:"title"`
	Description string `csv:"description"`
	Price       string `csv:"price"`
	Category    string `csv:"category"`
	Sold        bool   `csv:"sold"`
	DateOfSale  string `csv:"dateOfSale"`
	Image       string `csv:"image"`
}

// WriteCSV writes txs with a header row. Prices use the same canonical
// rendering that search matches against.
func WriteCSV(w io.Writer, txs []core.Transaction) error {
	rows := make([]csvRow, 0, len(txs))
	for _, t := range txs {
		rows = append(rows, csvRow{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Price:       core.FormatPrice(t.Price),
			Category:    t.Category,
			Sold:        t.Sold,
			DateOfSale:  t.DateOfSale,
			Image:       t.Image,
		})
	}
	if len(rows) == 0 {
		// gocsv cannot derive headers from an empty slice
		if _, err := io.WriteString(w, "id,title,description,price,category,sold,dateOfSale,image\n"); err != nil {
			return fmt.Errorf("write csv header: %w", err)
		}
		return nil
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("marshal csv: %w", err)
	}
	return nil
}
