// FILE: logmerge/src/internal/filter/exclude.go
package filter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"logmerge/src/internal/config"

	"github.com/lixenwraith/log"
)

// NoExcludeFile disables the exclude file
const NoExcludeFile = "none"

// ReadExcludePatterns reads one regex per line. Lines starting with '#' are
// comments; blank lines are ignored. Trailing whitespace is stripped.
func ReadExcludePatterns(r io.Reader) ([]string, error) {
	var patterns []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns, scanner.Err()
}

// ExcludeConfig turns the exclude file and extra patterns into one exclude
// filter configuration. A missing file is only an error when required.
func ExcludeConfig(cfg *config.ExcludeConfig, logger *log.Logger) (*config.FilterConfig, error) {
	if cfg == nil {
		return nil, nil
	}

	patterns := append([]string(nil), cfg.Patterns...)

	if cfg.File != "" && !strings.EqualFold(cfg.File, NoExcludeFile) {
		f, err := os.Open(cfg.File)
		switch {
		case err == nil:
			filePatterns, err := ReadExcludePatterns(f)
			f.Close()
			if err != nil {
				return nil, fmt.Errorf("cannot read exclude file %s: %w", cfg.File, err)
			}
			patterns = append(patterns, filePatterns...)
			logger.Debug("msg", "Loaded exclude file",
				"component", "filter",
				"file", cfg.File,
				"pattern_count", len(filePatterns))
		case errors.Is(err, fs.ErrNotExist) && !cfg.Required:
			logger.Debug("msg", "No exclude file",
				"component", "filter",
				"file", cfg.File)
		default:
			return nil, fmt.Errorf("cannot read exclude file %s: %w", cfg.File, err)
		}
	}

	if len(patterns) == 0 {
		return nil, nil
	}
	return &config.FilterConfig{
		Type:     config.FilterTypeExclude,
		Logic:    config.FilterLogicOr,
		Patterns: patterns,
	}, nil
}
