package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrphans_ReportsMissingCounterpart(t *testing.T) {
	dir := initLedger(t)
	_, err := runFarthing(t, "accounts", "add", "Everyday", "--dir", dir)
	require.NoError(t, err)

	path := writeTempStatement(t, "everyday.csv", `Date,Description,Amount,Balance
20/01/2025,TRANSFER TO SAVINGS ACCT,-500.00,700.00
`)
	_, err = runFarthing(t, "import", path, "--dir", dir, "--account", "Everyday")
	require.NoError(t, err)

	out, err := runFarthing(t, "orphans", "--dir", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "1 orphan transfers")
	assert.Contains(t, out, "TRANSFER TO SAVINGS ACCT")
	assert.Contains(t, out, "Everyday")
}

func TestOrphans_PairedTransfersClean(t *testing.T) {
	dir := initLedger(t)
	for _, name := range []string{"Everyday", "Savings"} {
		_, err := runFarthing(t, "accounts", "add", name, "--dir", dir)
		require.NoError(t, err)
	}

	outgoing := writeTempStatement(t, "everyday.csv", `Date,Description,Amount,Balance
20/01/2025,TRANSFER TO SAVINGS,-500.00,700.00
`)
	incoming := writeTempStatement(t, "savings.csv", `Date,Description,Amount,Balance
20/01/2025,TRANSFER FROM EVERYDAY,500.00,500.00
`)

	_, err := runFarthing(t, "import", outgoing, "--dir", dir, "--account", "Everyday")
	require.NoError(t, err)
	_, err = runFarthing(t, "import", incoming, "--dir", dir, "--account", "Savings")
	require.NoError(t, err)

	out, err := runFarthing(t, "orphans", "--dir", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "No orphan transfers")
}
