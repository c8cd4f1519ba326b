package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_FreshLedger(t *testing.T) {
	dir := initLedger(t)

	out, err := runFarthing(t, "validate", "--dir", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "consistent")
}

func TestValidate_DanglingAccount(t *testing.T) {
	dir := setupImportLedger(t)
	path := writeTempStatement(t, "everyday.csv", everydayStatement)

	_, err := runFarthing(t, "import", path, "--dir", dir, "--account", "Everyday")
	require.NoError(t, err)

	// Removing the account leaves its transactions dangling.
	_, err = runFarthing(t, "accounts", "rm", "Everyday", "--dir", dir)
	require.NoError(t, err)

	out, err := runFarthing(t, "validate", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, out, "unknown account")
	assert.Contains(t, out, "3 validation problems")
}
