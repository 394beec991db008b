// FILE: logmerge/src/internal/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lconfig "github.com/lixenwraith/config"
)

// DefaultExcludeName is looked up next to the executable
const DefaultExcludeName = "exclude.txt"

func defaults() *Config {
	return &Config{
		Offset:   "",
		Prefetch: 0,
		Output: &OutputConfig{
			Format: "text",
			Header: "always",
		},
		Exclude: &ExcludeConfig{
			File: defaultExcludeFile(),
		},
		Filters:     []FilterConfig{},
		Archive:     DefaultArchiveConfig(),
		Decorations: []DecorationConfig{},
		Logging:     DefaultLogConfig(),
		Inputs:      []string{},
	}
}

// Load builds the configuration from defaults, the config file and
// LOGMERGE_* environment variables, in increasing precedence. A missing
// config file is not an error.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = GetConfigPath()
	}

	cfg, err := lconfig.NewBuilder().
		WithDefaults(defaults()).
		WithEnvPrefix("LOGMERGE_").
		WithFile(configPath).
		WithEnvTransform(customEnvTransform).
		WithSources(
			lconfig.SourceEnv,
			lconfig.SourceFile,
			lconfig.SourceDefault,
		).
		Build()

	if err != nil {
		if !strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	finalConfig := &Config{}
	if err := cfg.Scan("", finalConfig); err != nil {
		return nil, fmt.Errorf("failed to scan config: %w", err)
	}
	finalConfig.fillDefaults()

	return finalConfig, nil
}

// fillDefaults restores sections a partial config file left nil
func (c *Config) fillDefaults() {
	d := defaults()
	if c.Output == nil {
		c.Output = d.Output
	}
	if c.Output.Format == "" {
		c.Output.Format = d.Output.Format
	}
	if c.Output.Header == "" {
		c.Output.Header = d.Output.Header
	}
	if c.Exclude == nil {
		c.Exclude = d.Exclude
	}
	if c.Archive == nil {
		c.Archive = d.Archive
	}
	if c.Logging == nil {
		c.Logging = d.Logging
	}
}

func customEnvTransform(path string) string {
	env := strings.ReplaceAll(path, ".", "_")
	env = strings.ToUpper(env)
	env = "LOGMERGE_" + env
	return env
}

// GetConfigPath resolves the config file from LOGMERGE_CONFIG_FILE,
// LOGMERGE_CONFIG_DIR or the user config directory
func GetConfigPath() string {
	if configFile := os.Getenv("LOGMERGE_CONFIG_FILE"); configFile != "" {
		if filepath.IsAbs(configFile) {
			return configFile
		}
		if configDir := os.Getenv("LOGMERGE_CONFIG_DIR"); configDir != "" {
			return filepath.Join(configDir, configFile)
		}
		return configFile
	}

	if configDir := os.Getenv("LOGMERGE_CONFIG_DIR"); configDir != "" {
		return filepath.Join(configDir, "logmerge.toml")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "logmerge.toml")
	}

	return "logmerge.toml"
}

func defaultExcludeFile() string {
	exe, err := os.Executable()
	if err != nil {
		return DefaultExcludeName
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), DefaultExcludeName)
}
