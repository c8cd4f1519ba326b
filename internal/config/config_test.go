package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("AUD")
	cfg.LogLevel = "debug"
	cfg.Duplicates.Days = 3
	cfg.AI.Enabled = true

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default("EUR")

	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.InDelta(t, 0.01, cfg.Duplicates.Amount, 0.001)
	assert.Equal(t, 1, cfg.Duplicates.Days)
	assert.InDelta(t, 0.01, cfg.Transfers.Amount, 0.001)
	assert.Equal(t, 7, cfg.Transfers.Days)
	assert.False(t, cfg.AI.Enabled)
	assert.NotEmpty(t, cfg.AI.Model)
	assert.Equal(t, 8192, cfg.AI.MaxTokens)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("currency: [broken"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("AUD")
	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "currency: AUD")
	assert.Contains(t, contents, "log_level: info")
	assert.Contains(t, contents, "max_tokens: 8192")
}

func TestPartialFileKeepsZeroValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("currency: USD\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, 0, cfg.Duplicates.Days)
	assert.False(t, cfg.AI.Enabled)
}
