package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"txdash/internal/config"
	"txdash/internal/source/file"
	"txdash/internal/source/remote"
)

func TestNewSource(t *testing.T) {
	ctx := context.Background()

	src, err := NewSource(ctx, &config.Config{DataSource: "http", SourceURL: config.DefaultSourceURL})
	require.NoError(t, err)
	assert.IsType(t, &remote.Client{}, src)

	src, err = NewSource(ctx, &config.Config{DataSource: "file", SourceFile: "x.json"})
	require.NoError(t, err)
	assert.IsType(t, &file.Store{}, src)

	_, err = NewSource(ctx, &config.Config{DataSource: "sheets", GoogleSheetName: "Transactions"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing spreadsheet id")

	_, err = NewSource(ctx, &config.Config{DataSource: "ftp"})
	require.Error(t, err)
}
