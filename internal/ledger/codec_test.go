package ledger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farthing-dev/farthing/internal/model"
)

func TestExportRoundTrip(t *testing.T) {
	want := fullSnapshot()
	var buf bytes.Buffer

	require.NoError(t, WriteExport(&buf, want, day(2025, time.March, 2)))

	got, err := ReadExport(&buf)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWriteExport_Document(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExport(&buf, fullSnapshot(), day(2025, time.March, 2)))

	out := buf.String()
	assert.Contains(t, out, `"version": 1`)
	assert.Contains(t, out, `"exportedAt": "2025-03-02T00:00:00Z"`)
	// Amounts travel as strings so nothing rounds them on the way through.
	assert.Contains(t, out, `"amount": "-45.6"`)
}

func TestReadExport_CorruptInput(t *testing.T) {
	_, err := ReadExport(strings.NewReader(`{"version": 1, "transactions": [`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing export")
}

func TestReadExport_UnsupportedVersion(t *testing.T) {
	_, err := ReadExport(strings.NewReader(`{"version": 99}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export version 99")
}
