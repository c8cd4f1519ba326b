package review

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/eiannone/keyboard"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farthing-dev/farthing/internal/model"
	"github.com/farthing-dev/farthing/internal/reconcile"
)

func sampleDup() model.PotentialDuplicate {
	day := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)
	return model.PotentialDuplicate{
		Existing: model.Transaction{
			ID:          "t1",
			Date:        day,
			Description: "WOOLWORTHS 123 SYDNEY",
			Amount:      decimal.RequireFromString("-45.60"),
			AccountID:   "a1",
			Type:        model.TypeExpense,
		},
		Incoming: model.ImportedTransaction{
			Date:        day,
			Description: "WOOLWORTHS 123 SYD",
			Amount:      decimal.RequireFromString("-45.60"),
		},
		Index: 11,
	}
}

func promptWithKeys(out *bytes.Buffer, keys ...rune) *Prompt {
	p := NewPrompt(out)
	i := 0
	p.readKey = func() (rune, keyboard.Key, error) {
		if i >= len(keys) {
			return 0, 0, errors.New("out of keys")
		}
		ch := keys[i]
		i++
		return ch, 0, nil
	}
	return p
}

func TestPromptDecide_Keys(t *testing.T) {
	tests := []struct {
		key  rune
		want reconcile.Decision
	}{
		{'m', reconcile.Merge},
		{'M', reconcile.Merge},
		{'k', reconcile.KeepExisting},
		{'a', reconcile.AddAsNew},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		p := promptWithKeys(&out, tt.key)

		got, err := p.Decide(sampleDup())
		require.NoError(t, err, "key %q", tt.key)
		assert.Equal(t, tt.want, got, "key %q", tt.key)
	}
}

func TestPromptDecide_QuitAbandons(t *testing.T) {
	var out bytes.Buffer
	p := promptWithKeys(&out, 'q')

	_, err := p.Decide(sampleDup())
	assert.ErrorIs(t, err, ErrAbandoned)
}

func TestPromptDecide_EscAbandons(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompt(&out)
	p.readKey = func() (rune, keyboard.Key, error) {
		return 0, keyboard.KeyEsc, nil
	}

	_, err := p.Decide(sampleDup())
	assert.ErrorIs(t, err, ErrAbandoned)
}

func TestPromptDecide_IgnoresUnknownKeys(t *testing.T) {
	var out bytes.Buffer
	p := promptWithKeys(&out, 'x', '7', 'k')

	got, err := p.Decide(sampleDup())
	require.NoError(t, err)
	assert.Equal(t, reconcile.KeepExisting, got)
}

func TestPromptDecide_ReadError(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompt(&out)
	p.readKey = func() (rune, keyboard.Key, error) {
		return 0, 0, errors.New("terminal gone")
	}

	_, err := p.Decide(sampleDup())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading key")
}

func TestPromptRender(t *testing.T) {
	var out bytes.Buffer
	p := promptWithKeys(&out, 'k')

	_, err := p.Decide(sampleDup())
	require.NoError(t, err)

	rendered := out.String()
	assert.Contains(t, rendered, "statement row 12")
	assert.Contains(t, rendered, "WOOLWORTHS 123 SYDNEY")
	assert.Contains(t, rendered, "WOOLWORTHS 123 SYD")
	assert.Contains(t, rendered, "[m]erge")
}

func TestFixedDecider(t *testing.T) {
	d := FixedDecider{Decision: reconcile.AddAsNew}

	got, err := d.Decide(sampleDup())
	require.NoError(t, err)
	assert.Equal(t, reconcile.AddAsNew, got)
}
