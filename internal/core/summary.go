package core

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Summarize computes statistics, price ranges and categories for one month.
// The three aggregates read the same filtered slice and run concurrently.
func Summarize(ctx context.Context, txs []Transaction, month string) (Dashboard, error) {
	matched := FilterByMonth(txs, month)

	var d Dashboard
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		d.Statistics = ComputeStatistics(matched)
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		d.PriceRanges = PriceRanges(matched)
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		d.Categories = Categories(matched)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}
