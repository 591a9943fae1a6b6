package cli

import (
	"context"
	"fmt"

	"txdash/internal/config"
	"txdash/internal/source"
	"txdash/internal/source/file"
	"txdash/internal/source/google"
	"txdash/internal/source/remote"
)

// NewSource builds the transaction source selected by cfg.DataSource.
func NewSource(ctx context.Context, cfg *config.Config) (source.Source, error) {
	switch cfg.DataSource {
	case "", "http":
		return remote.New(cfg.SourceURL, cfg.FetchTimeout), nil
	case "file":
		return file.New(cfg.SourceFile), nil
	case "sheets":
		client, err := google.New(ctx, google.Config{
			SpreadsheetID:      cfg.GoogleSpreadsheetID,
			SheetName:          cfg.GoogleSheetName,
			ServiceAccountJSON: cfg.GoogleServiceAccountJSON,
			ServiceAccountFile: cfg.GoogleServiceAccountFile,
		})
		if err != nil {
			return nil, fmt.Errorf("init google sheets source: %w", err)
		}
		return source.WithTimeout(client, cfg.FetchTimeout), nil
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.DataSource)
	}
}
