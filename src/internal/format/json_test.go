// FILE: logmerge/src/internal/format/json_test.go
package format

import (
	"encoding/json"
	"testing"

	"logmerge/src/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFormatter(t *testing.T) {
	f, err := NewJSONFormatter(nil, newTestLogger())
	require.NoError(t, err)
	assert.Equal(t, "json", f.Name())

	entry := core.LogEntry{Key: 1680688800000, Display: "2023-04-05 10:00:00,000", Source: "a.log", Message: "start\n"}
	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, byte('\n'), out[len(out)-1])

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "2023-04-05 10:00:00,000", decoded["time"])
	assert.Equal(t, float64(1680688800000), decoded["epoch_ms"])
	assert.Equal(t, "a.log", decoded["source"])
	assert.Equal(t, "start", decoded["message"])
}

func TestJSONFormatterCustomFields(t *testing.T) {
	opts := DefaultJSONOptions()
	opts.MessageField = "msg"
	f, err := NewJSONFormatter(opts, newTestLogger())
	require.NoError(t, err)

	out, err := f.Format(core.LogEntry{Message: "x\n"})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "x", decoded["msg"])
	assert.NotContains(t, decoded, "message")
}
