package commands_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRules_AddAndList(t *testing.T) {
	dir := initLedger(t)

	out, err := runFarthing(t, "rules", "add", "WOOLWORTHS", "--dir", dir, "--category", "Groceries")
	require.NoError(t, err, out)

	out, err = runFarthing(t, "rules", "list", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "1. [contains] WOOLWORTHS -> Groceries (ALL)")
}

func TestRules_AddUnknownCategory(t *testing.T) {
	dir := initLedger(t)

	out, err := runFarthing(t, "rules", "add", "UBER", "--dir", dir, "--category", "Ghost")
	require.Error(t, err)
	assert.Contains(t, out, "unknown category")
}

func TestRules_AddBadRegex(t *testing.T) {
	dir := initLedger(t)

	out, err := runFarthing(t, "rules", "add", "(unclosed", "--dir", dir,
		"--category", "Groceries", "--match", "regex")
	require.Error(t, err)
	assert.Contains(t, out, "invalid pattern")
}

func TestRules_AddTargetType(t *testing.T) {
	dir := initLedger(t)

	_, err := runFarthing(t, "rules", "add", "SALARY", "--dir", dir,
		"--category", "Salary", "--type", "income")
	require.NoError(t, err)

	out, err := runFarthing(t, "rules", "list", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "(INCOME)")
}

func TestRules_MoveChangesOrder(t *testing.T) {
	dir := initLedger(t)

	for _, p := range []string{"AAA", "BBB", "CCC"} {
		_, err := runFarthing(t, "rules", "add", p, "--dir", dir, "--category", "Groceries")
		require.NoError(t, err)
	}

	out, err := runFarthing(t, "rules", "mv", "3", "1", "--dir", dir)
	require.NoError(t, err, out)

	out, err = runFarthing(t, "rules", "list", "--dir", dir)
	require.NoError(t, err)
	aaa := strings.Index(out, "AAA")
	ccc := strings.Index(out, "CCC")
	require.NotEqual(t, -1, aaa)
	require.NotEqual(t, -1, ccc)
	assert.Less(t, ccc, aaa, "CCC should be listed before AAA after the move")
}

func TestRules_RemoveByPosition(t *testing.T) {
	dir := initLedger(t)

	for _, p := range []string{"AAA", "BBB"} {
		_, err := runFarthing(t, "rules", "add", p, "--dir", dir, "--category", "Groceries")
		require.NoError(t, err)
	}

	out, err := runFarthing(t, "rules", "rm", "1", "--dir", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "AAA")

	out, err = runFarthing(t, "rules", "list", "--dir", dir)
	require.NoError(t, err)
	assert.NotContains(t, out, "AAA")
	assert.Contains(t, out, "BBB")
}

func TestRules_PositionOutOfRange(t *testing.T) {
	dir := initLedger(t)

	out, err := runFarthing(t, "rules", "rm", "5", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, out, "out of range")
}

func TestRules_InvalidPosition(t *testing.T) {
	dir := initLedger(t)

	out, err := runFarthing(t, "rules", "rm", "first", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, out, "invalid position")
}
