package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategories_AddAndList(t *testing.T) {
	dir := initLedger(t)

	out, err := runFarthing(t, "categories", "add", "Pets", "--dir", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, `Added category "Pets"`)

	out, err = runFarthing(t, "categories", "list", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Pets")
}

func TestCategories_DuplicateNameRejected(t *testing.T) {
	dir := initLedger(t)

	out, err := runFarthing(t, "categories", "add", "groceries", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, out, "already exists")
}

func TestCategories_RemoveReportsDetachedRules(t *testing.T) {
	dir := initLedger(t)

	_, err := runFarthing(t, "rules", "add", "WOOLWORTHS", "--dir", dir, "--category", "Groceries")
	require.NoError(t, err)

	out, err := runFarthing(t, "categories", "rm", "Groceries", "--dir", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "1 rules dropped")

	out, err = runFarthing(t, "rules", "list", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No rules yet")
}

func TestCategories_RemoveUnknown(t *testing.T) {
	dir := initLedger(t)

	out, err := runFarthing(t, "categories", "rm", "Ghost", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, out, "unknown category")
}
