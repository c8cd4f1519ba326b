package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupSuggestLedger imports a statement where rules categorize everything
// except one grocery-looking row.
func setupSuggestLedger(t *testing.T) string {
	t.Helper()
	dir := initLedger(t)

	_, err := runFarthing(t, "accounts", "add", "Everyday", "--dir", dir)
	require.NoError(t, err)
	_, err = runFarthing(t, "rules", "add", "MARKET", "--dir", dir, "--category", "Groceries")
	require.NoError(t, err)
	_, err = runFarthing(t, "rules", "add", "UBER TRIP", "--dir", dir, "--category", "Transport")
	require.NoError(t, err)

	path := writeTempStatement(t, "history.csv", `Date,Description,Amount,Balance
01/02/2025,WOOLWORTHS MARKET TOWN,-50.00,950.00
02/02/2025,WOOLWORTHS MARKET CITY,-60.00,890.00
03/02/2025,UBER TRIP SYDNEY,-20.00,870.00
04/02/2025,UBER TRIP MELBOURNE,-25.00,845.00
05/02/2025,WOOLWORTHS QV,-30.00,815.00
`)
	_, err = runFarthing(t, "import", path, "--dir", dir, "--account", "Everyday")
	require.NoError(t, err)
	return dir
}

func TestSuggest_RanksByHistory(t *testing.T) {
	dir := setupSuggestLedger(t)

	out, err := runFarthing(t, "suggest", "--dir", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "WOOLWORTHS QV")
	assert.Contains(t, out, "1. Groceries")
}

func TestSuggest_Apply(t *testing.T) {
	dir := setupSuggestLedger(t)

	out, err := runFarthing(t, "suggest", "--dir", dir, "--apply", "--min-confidence", "0.5")
	require.NoError(t, err, out)
	assert.Contains(t, out, "applied Groceries")
	assert.Contains(t, out, "Applied 1 of 1 suggestions")

	out, err = runFarthing(t, "suggest", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No uncategorized transactions")
}

func TestSuggest_NoHistory(t *testing.T) {
	dir := initLedger(t)

	out, err := runFarthing(t, "suggest", "--dir", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Not enough categorized history")
}

func TestSuggest_AIRequiresEnabledConfig(t *testing.T) {
	dir := setupSuggestLedger(t)

	out, err := runFarthing(t, "suggest", "--dir", dir, "--ai")
	require.Error(t, err)
	assert.Contains(t, out, "ai review is disabled")
}
