package commands_test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/farthing-dev/farthing/internal/ledger"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "farthing-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "farthing")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/farthing")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

func runFarthing(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// initLedger initializes a fresh data directory and returns its path.
func initLedger(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	out, err := runFarthing(t, "init", "--dir", dir)
	require.NoError(t, err, out)
	return dir
}

// writeStatement drops CSV content into the ledger's import inbox.
func writeStatement(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, "import", name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// writeTempStatement writes CSV content to a file outside the inbox.
func writeTempStatement(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// exportSnapshot round-trips the ledger through the export command so
// tests can assert on persisted state.
func exportSnapshot(t *testing.T, dir string) ledger.Export {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.json")
	out, err := runFarthing(t, "export", path, "--dir", dir)
	require.NoError(t, err, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var exp ledger.Export
	require.NoError(t, json.Unmarshal(data, &exp))
	return exp
}
