package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONWithActionID(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: "debug", Output: &buf})
	require.NoError(t, err)

	ctx := ContextWithActionID(context.Background(), "a-1")
	WithActionID(ctx, log).Debug("task added")
	require.NoError(t, log.Sync())

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "task added", entry["msg"])
	assert.Equal(t, "a-1", entry["action_id"])
	assert.Contains(t, entry, "timestamp")
}

func TestLevelFallback(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: "chatty", Encoding: "console", Output: &buf})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestActionIDMissing(t *testing.T) {
	assert.Empty(t, ActionID(context.Background()))
	assert.Nil(t, WithActionID(context.Background(), nil))
}
