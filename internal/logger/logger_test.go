package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureOutput redirects logger output to a buffer for testing.
func captureOutput() (*bytes.Buffer, func()) {
	buf := new(bytes.Buffer)

	mu.Lock()
	originalOutput := output
	originalColor := useColor
	output = buf
	useColor = false
	mu.Unlock()

	reconfigure()

	cleanup := func() {
		mu.Lock()
		output = originalOutput
		useColor = originalColor
		mu.Unlock()
		reconfigure()
	}

	return buf, cleanup
}

func TestLevelFiltering(t *testing.T) {
	buf, cleanup := captureOutput()
	defer cleanup()

	SetLevel("WARN")
	Debug("debug message")
	Info("info message")
	Warn("warn message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
}

func TestJSONFormatContainsStructuredFields(t *testing.T) {
	buf, cleanup := captureOutput()
	defer cleanup()

	SetLevel("DEBUG")
	SetFormat("json")
	defer SetFormat("text")

	Info("order accepted", KeyOrderID, "order-1", KeySequenceID, 0)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "order accepted", decoded["msg"])
	assert.Equal(t, "order-1", decoded[KeyOrderID])
}

func TestContextFieldsArePrependedToLogLine(t *testing.T) {
	buf, cleanup := captureOutput()
	defer cleanup()

	SetLevel("DEBUG")
	SetFormat("json")
	defer SetFormat("text")

	lc := NewLogContext("agv-1").WithOrder("order-7", 2).WithAction("action-3")
	ctx := WithContext(context.Background(), lc)

	InfoCtx(ctx, "action started")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "agv-1", decoded[KeyAGVID])
	assert.Equal(t, "order-7", decoded[KeyOrderID])
	assert.Equal(t, "action-3", decoded[KeyActionID])
}

func TestFromContextHandlesNil(t *testing.T) {
	assert.Nil(t, FromContext(nil))
	assert.Nil(t, FromContext(context.Background()))
}
