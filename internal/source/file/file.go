// Package file serves the transaction collection from a local JSON file.
// The file is re-read on every fetch.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"txdash/internal/core"
	"txdash/internal/source"
)

type Store struct {
	path string
}

var _ source.Source = (*Store)(nil)

func New(path string) *Store {
	return &Store{path: path}
}

// Fetch reads and decodes the file.
func (s *Store) Fetch(ctx context.Context) ([]core.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", source.ErrUnavailable, err)
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist", source.ErrUnavailable, s.path)
		}
		return nil, fmt.Errorf("%w: read %s: %w", source.ErrUnavailable, s.path, err)
	}
	var txs []core.Transaction
	if err := json.Unmarshal(data, &txs); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", source.ErrMalformed, s.path, err)
	}
	return txs, nil
}
