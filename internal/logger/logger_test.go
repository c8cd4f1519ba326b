package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, zerolog.WarnLevel)

	log.Debug().Msg("hidden")
	log.Warn().Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, zerolog.InfoLevel)

	ctx := WithContext(context.Background(), log)
	got := FromContext(ctx)
	got.Info().Msg("via context")

	assert.Contains(t, buf.String(), "via context")
}

func TestFromContext_Missing(t *testing.T) {
	log := FromContext(context.Background())
	assert.Equal(t, zerolog.Disabled, log.GetLevel())
}
