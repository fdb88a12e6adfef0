package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCtxFallsBackToGlobal(t *testing.T) {
	require.NotNil(t, Ctx(context.Background()))
}

func TestCtxChainsOnStoredLogger(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), zerolog.New(&buf))

	Ctx(ctx).Info().Str(FieldRequestID, "req-1").Msg("handled")

	out := buf.String()
	assert.Contains(t, out, `"request_id":"req-1"`)
	assert.Contains(t, out, "handled")
}
