// FILE: logmerge/src/internal/config/validation.go
package config

import (
	"fmt"
	"regexp"
	"strings"

	"logmerge/src/internal/normalize"

	lconfig "github.com/lixenwraith/config"
)

// Validate is the centralized validator for the entire configuration
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}

	if len(c.Inputs) == 0 {
		return fmt.Errorf("you must provide at least one logfile or archive")
	}

	if _, err := normalize.ParseOffset(c.Offset); err != nil {
		return fmt.Errorf("offset: %w", err)
	}

	if c.Prefetch < 0 {
		return fmt.Errorf("prefetch cannot be negative: %d", c.Prefetch)
	}

	if err := validateOutput(c.Output); err != nil {
		return fmt.Errorf("output: %w", err)
	}

	if c.Exclude != nil {
		for i, pattern := range c.Exclude.Patterns {
			if _, err := regexp.Compile(pattern); err != nil {
				return fmt.Errorf("exclude pattern[%d] '%s': invalid regex: %w", i, pattern, err)
			}
		}
	}

	for i := range c.Filters {
		if err := validateFilter(i, &c.Filters[i]); err != nil {
			return err
		}
	}

	if err := validateArchive(c.Archive); err != nil {
		return fmt.Errorf("archive: %w", err)
	}

	for i, d := range c.Decorations {
		if err := lconfig.NonEmpty(d.Pattern); err != nil {
			return fmt.Errorf("decoration[%d]: missing pattern", i)
		}
		if _, err := regexp.Compile(d.Pattern); err != nil {
			return fmt.Errorf("decoration[%d] '%s': invalid regex: %w", i, d.Pattern, err)
		}
	}

	if c.Logging != nil {
		if err := validateLogConfig(c.Logging); err != nil {
			return fmt.Errorf("logging config: %w", err)
		}
	}

	return nil
}

func validateOutput(cfg *OutputConfig) error {
	if cfg == nil {
		return nil
	}

	switch strings.ToLower(cfg.Format) {
	case "", "text", "json", "raw":
	default:
		return fmt.Errorf("invalid format '%s' (must be 'text', 'json' or 'raw')", cfg.Format)
	}

	switch cfg.Header {
	case "", "always", "never", "auto":
	default:
		return fmt.Errorf("invalid header mode '%s' (must be 'always', 'never' or 'auto')", cfg.Header)
	}

	return nil
}

func validateArchive(cfg *ArchiveConfig) error {
	if cfg == nil {
		return nil
	}

	groups := map[string][]string{
		"server_patterns": cfg.ServerPatterns,
		"other_patterns":  cfg.OtherPatterns,
		"skip_patterns":   cfg.SkipPatterns,
	}
	for name, patterns := range groups {
		for i, pattern := range patterns {
			if _, err := regexp.Compile(pattern); err != nil {
				return fmt.Errorf("%s[%d] '%s': invalid regex: %w", name, i, pattern, err)
			}
		}
	}

	if cfg.PrefixPattern != "" {
		if _, err := regexp.Compile(cfg.PrefixPattern); err != nil {
			return fmt.Errorf("prefix_pattern: invalid regex: %w", err)
		}
	}

	if _, err := normalize.ParseOffset(cfg.ServerOffset); err != nil {
		return fmt.Errorf("server_offset: %w", err)
	}

	return nil
}
