// FILE: logmerge/src/internal/config/filter.go
package config

import (
	"fmt"
	"regexp"
)

// Filter types
const (
	FilterTypeInclude = "include"
	FilterTypeExclude = "exclude"
)

// Filter pattern logic
const (
	FilterLogicOr  = "or"
	FilterLogicAnd = "and"
)

// FilterConfig represents a regex filter over entry messages
type FilterConfig struct {
	// "include" keeps matching entries, "exclude" drops them
	Type string `toml:"type"`

	// "or" matches any pattern, "and" requires all of them
	Logic string `toml:"logic"`

	Patterns []string `toml:"patterns"`
}

func validateFilter(filterIndex int, cfg *FilterConfig) error {
	// Validate filter type
	switch cfg.Type {
	case FilterTypeInclude, FilterTypeExclude, "":
		// Valid types
	default:
		return fmt.Errorf("filter[%d]: invalid type '%s' (must be 'include' or 'exclude')",
			filterIndex, cfg.Type)
	}

	// Validate filter logic
	switch cfg.Logic {
	case FilterLogicOr, FilterLogicAnd, "":
		// Valid logic
	default:
		return fmt.Errorf("filter[%d]: invalid logic '%s' (must be 'or' or 'and')",
			filterIndex, cfg.Logic)
	}

	// Empty patterns is valid - passes everything
	for i, pattern := range cfg.Patterns {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("filter[%d] pattern[%d] '%s': invalid regex: %w",
				filterIndex, i, pattern, err)
		}
	}

	return nil
}
