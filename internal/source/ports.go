package source

import (
	"context"
	"errors"
	"time"

	"txdash/internal/core"
)

var (
	// ErrUnavailable reports that the upstream collection could not be retrieved.
	ErrUnavailable = errors.New("transaction source unavailable")
	// ErrMalformed reports that the upstream answered with data that is not a transaction collection.
	ErrMalformed = errors.New("malformed transaction data")
)

// Source is the upstream collaborator of the query engine.
type Source interface {
	// Fetch returns the full transaction collection or an error; never a partial result.
	Fetch(ctx context.Context) ([]core.Transaction, error)
}

// Func adapts a plain function to Source.
type Func func(ctx context.Context) ([]core.Transaction, error)

func (f Func) Fetch(ctx context.Context) ([]core.Transaction, error) { return f(ctx) }

// WithTimeout bounds every Fetch of src by d. A non-positive d returns src unchanged.
func WithTimeout(src Source, d time.Duration) Source {
	if d <= 0 {
		return src
	}
	return Func(func(ctx context.Context) ([]core.Transaction, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return src.Fetch(ctx)
	})
}
