package cli

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAndValidateConfig(t *testing.T) {
	isolateEnv(t)

	cfg, err := LoadAndValidateConfig()
	require.NoError(t, err)
	assert.Equal(t, "http", cfg.DataSource)

	t.Setenv("PORT", "99999")
	t.Setenv("LOG_FORMAT", "xml")
	_, err = LoadAndValidateConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port 99999")
	assert.Contains(t, err.Error(), "invalid log format 'xml'")
}

func TestSetupLogger(t *testing.T) {
	isolateEnv(t)
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_LEVEL", "info")
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	cfg, err := LoadAndValidateConfig()
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := SetupLogger(cfg, &buf)
	logger.Info("hello")
	slog.Debug("filtered")

	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"component":"app"`)
	assert.NotContains(t, buf.String(), "filtered")
}
