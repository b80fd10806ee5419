package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreDivergence_LogsStructuredRecord(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter(&buf, "info", "json")
	t.Cleanup(func() { Initialize("info", "text") })

	StoreDivergence("create", "ref-1", "fine", "ledger", errors.New("boom"), "owner", "12345678A")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "ERROR", rec["level"])
	assert.Equal(t, "ref-1", rec["reference"])
	assert.Equal(t, "fine", rec["written"])
	assert.Equal(t, "ledger", rec["missing"])
	assert.Equal(t, "boom", rec["error"])
	assert.Equal(t, "12345678A", rec["owner"])
	assert.Equal(t, "traffic-fines", rec["app"])
}

func TestInitialize_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter(&buf, "warn", "text")
	t.Cleanup(func() { Initialize("info", "text") })

	Info("hidden")
	Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
