package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	out, err := runFarthing(t, "init", "--dir", dir)
	require.NoError(t, err, out)

	for _, d := range []string{"logs", "import", filepath.Join("import", "processed")} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}
	for _, f := range []string{"farthing.yaml", "farthing.db"} {
		_, err := os.Stat(filepath.Join(dir, f))
		require.NoError(t, err, "file %s should exist", f)
	}
}

func TestInit_Config(t *testing.T) {
	dir := t.TempDir()
	_, err := runFarthing(t, "init", "--dir", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "farthing.yaml"))
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "currency: AUD")
	assert.Contains(t, contents, "log_level: info")
}

func TestInit_CurrencyFlag(t *testing.T) {
	dir := t.TempDir()
	_, err := runFarthing(t, "init", "--dir", dir, "--currency", "EUR")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "farthing.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "currency: EUR")
}

func TestInit_SeedsDefaultCategories(t *testing.T) {
	dir := initLedger(t)

	out, err := runFarthing(t, "categories", "list", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "Refunds")
}

func TestInit_RefusesExistingLedger(t *testing.T) {
	dir := initLedger(t)

	out, err := runFarthing(t, "init", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, out, "already contains")
}

func TestInit_DataDirFromEnv(t *testing.T) {
	dir := t.TempDir()
	cmd := exec.Command(binaryPath, "init")
	cmd.Env = append(os.Environ(), "FARTHING_DIR="+dir)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))

	_, err = os.Stat(filepath.Join(dir, "farthing.yaml"))
	require.NoError(t, err)
}

func TestUninitializedDirErrors(t *testing.T) {
	dir := t.TempDir()
	out, err := runFarthing(t, "accounts", "list", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, out, "not initialized")
}
