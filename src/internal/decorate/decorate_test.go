package decorate

import (
	"testing"

	"logmerge/src/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecorator_Defaults(t *testing.T) {
	d, err := New(config.DefaultDecorations())
	require.NoError(t, err)
	assert.Equal(t, 4, d.Len())

	testCases := []struct {
		label    string
		expected string
	}{
		{label: "voltdbroot-host1-log.txt", expected: "   voltdbroot   "},
		{label: "org.voltdb.dr.VoltDBReplicationAgent.log", expected: "%% ReplicationAgent %%"},
		{label: "apprunner.log", expected: "&& apprunner &&"},
		{label: "client1.Benchmark.out", expected: "-- client1 --"},
		{label: "unrelated.txt", expected: "unrelated.txt"},
		// Matching is anchored at the start of the label
		{label: "my-apprunner.log", expected: "my-apprunner.log"},
	}

	for _, tc := range testCases {
		t.Run(tc.label, func(t *testing.T) {
			assert.Equal(t, tc.expected, d.Decorate(tc.label))
		})
	}
}

func TestDecorator_FirstRuleWins(t *testing.T) {
	d, err := New([]config.DecorationConfig{
		{Pattern: `(app)`, Marker: "1"},
		{Pattern: `(apprunner)`, Marker: "2"},
	})
	require.NoError(t, err)
	assert.Equal(t, "1 app 1", d.Decorate("apprunner.log"))
}

func TestDecorator_NoGroupUsesMatch(t *testing.T) {
	d, err := New([]config.DecorationConfig{{Pattern: `server\d+`, Marker: "**"}})
	require.NoError(t, err)
	assert.Equal(t, "** server12 **", d.Decorate("server12.log"))
}

func TestDecorator_Nil(t *testing.T) {
	var d *Decorator
	assert.Equal(t, "a.log", d.Decorate("a.log"))
	assert.Equal(t, 0, d.Len())
}

func TestNew_InvalidPattern(t *testing.T) {
	_, err := New([]config.DecorationConfig{{Pattern: "("}})
	assert.Error(t, err)
}
