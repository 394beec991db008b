package filter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"logmerge/src/internal/config"
	"logmerge/src/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadExcludePatterns(t *testing.T) {
	input := "# heartbeat noise\nHeartbeat received  \n\n#another\nGC pause\r\n"
	patterns, err := ReadExcludePatterns(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"Heartbeat received", "GC pause"}, patterns)
}

func TestExcludeConfig(t *testing.T) {
	logger := newTestLogger()
	dir := t.TempDir()
	file := filepath.Join(dir, "exclude.txt")
	require.NoError(t, os.WriteFile(file, []byte("#c\nnoise\n"), 0o644))

	t.Run("FileAndPatterns", func(t *testing.T) {
		cfg, err := ExcludeConfig(&config.ExcludeConfig{File: file, Patterns: []string{"extra"}}, logger)
		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, config.FilterTypeExclude, cfg.Type)
		assert.Equal(t, []string{"extra", "noise"}, cfg.Patterns)

		chain, err := NewChain([]config.FilterConfig{*cfg}, logger)
		require.NoError(t, err)
		assert.True(t, chain.ShouldDrop(core.LogEntry{Message: "some noise here"}))
		assert.False(t, chain.ShouldDrop(core.LogEntry{Message: "signal"}))
	})

	t.Run("None", func(t *testing.T) {
		cfg, err := ExcludeConfig(&config.ExcludeConfig{File: "None"}, logger)
		require.NoError(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("MissingOptional", func(t *testing.T) {
		cfg, err := ExcludeConfig(&config.ExcludeConfig{File: filepath.Join(dir, "absent.txt")}, logger)
		require.NoError(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("MissingRequired", func(t *testing.T) {
		_, err := ExcludeConfig(&config.ExcludeConfig{File: filepath.Join(dir, "absent.txt"), Required: true}, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot read exclude file")
	})

	t.Run("NilConfig", func(t *testing.T) {
		cfg, err := ExcludeConfig(nil, logger)
		require.NoError(t, err)
		assert.Nil(t, cfg)
	})
}
