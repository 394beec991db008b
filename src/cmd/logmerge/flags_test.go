// FILE: logmerge/src/cmd/logmerge/flags_test.go
package main

import (
	"bytes"
	"flag"
	"testing"

	"logmerge/src/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() *config.Config {
	return &config.Config{
		Output:  &config.OutputConfig{Format: "text", Header: "always"},
		Exclude: &config.ExcludeConfig{File: "exclude.txt"},
		Logging: config.DefaultLogConfig(),
	}
}

func TestParseFlags(t *testing.T) {
	testCases := []struct {
		name        string
		args        []string
		check       func(t *testing.T, fc *FlagConfig)
		expectError bool
	}{
		{
			name: "ShortForms",
			args: []string{"-o", "out.txt", "-t", "-05:00", "-e", "none", "a.log", "b.log"},
			check: func(t *testing.T, fc *FlagConfig) {
				assert.Equal(t, "out.txt", fc.Output)
				assert.Equal(t, "-05:00", fc.Offset)
				assert.Equal(t, "none", fc.Exclude)
				assert.Equal(t, []string{"a.log", "b.log"}, fc.Inputs)
				assert.Equal(t, int64(-1), fc.Prefetch)
			},
		},
		{
			name: "LongForms",
			args: []string{"-output", "out.txt", "-tzoffset", "+01:30", "-exclude", "ex.txt", "-prefetch", "8", "x.log"},
			check: func(t *testing.T, fc *FlagConfig) {
				assert.Equal(t, "out.txt", fc.Output)
				assert.Equal(t, "+01:30", fc.Offset)
				assert.Equal(t, "ex.txt", fc.Exclude)
				assert.Equal(t, int64(8), fc.Prefetch)
			},
		},
		{
			name: "StdinArgument",
			args: []string{"-", "b.log"},
			check: func(t *testing.T, fc *FlagConfig) {
				assert.Equal(t, []string{"-", "b.log"}, fc.Inputs)
			},
		},
		{name: "BadLogLevel", args: []string{"-log-level", "loud"}, expectError: true},
		{name: "BadLogOutput", args: []string{"-log-output", "syslog"}, expectError: true},
		{name: "HeaderConflict", args: []string{"-no-header", "-header", "always"}, expectError: true},
		{name: "UnknownFlag", args: []string{"-z"}, expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var stderr bytes.Buffer
			fc, err := ParseFlags(tc.args, &stderr)
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tc.check(t, fc)
		})
	}
}

func TestParseFlags_Help(t *testing.T) {
	var stderr bytes.Buffer
	_, err := ParseFlags([]string{"-h"}, &stderr)
	assert.ErrorIs(t, err, flag.ErrHelp)
	assert.Contains(t, stderr.String(), "-tzoffset")
}

func TestFlagConfig_Apply(t *testing.T) {
	var stderr bytes.Buffer
	fc, err := ParseFlags([]string{"-o", "out.txt", "-t", "+02:00", "-e", "mine.txt", "-format", "json",
		"-no-header", "-prefetch", "0", "-log-level", "debug", "-quiet", "a.log"}, &stderr)
	require.NoError(t, err)

	cfg := baseConfig()
	cfg.Prefetch = 16
	fc.Apply(cfg)

	assert.Equal(t, []string{"a.log"}, cfg.Inputs)
	assert.Equal(t, "out.txt", cfg.Output.Path)
	assert.Equal(t, "+02:00", cfg.Offset)
	assert.Equal(t, "mine.txt", cfg.Exclude.File)
	assert.True(t, cfg.Exclude.Required)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "never", cfg.Output.Header)
	assert.Equal(t, int64(0), cfg.Prefetch)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Quiet)
}

func TestFlagConfig_ApplyKeepsConfig(t *testing.T) {
	var stderr bytes.Buffer
	fc, err := ParseFlags([]string{"a.log"}, &stderr)
	require.NoError(t, err)

	cfg := baseConfig()
	cfg.Prefetch = 16
	cfg.Offset = "-04:00"
	fc.Apply(cfg)

	assert.Equal(t, int64(16), cfg.Prefetch)
	assert.Equal(t, "-04:00", cfg.Offset)
	assert.Equal(t, "exclude.txt", cfg.Exclude.File)
	assert.False(t, cfg.Exclude.Required)
	assert.Equal(t, "always", cfg.Output.Header)
}

func TestFlagConfig_ExcludeNone(t *testing.T) {
	var stderr bytes.Buffer
	fc, err := ParseFlags([]string{"-e", "NONE", "a.log"}, &stderr)
	require.NoError(t, err)

	cfg := baseConfig()
	fc.Apply(cfg)
	assert.Equal(t, "NONE", cfg.Exclude.File)
	assert.False(t, cfg.Exclude.Required)
}
