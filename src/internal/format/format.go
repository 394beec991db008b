// FILE: logmerge/src/internal/format/format.go
package format

import (
	"fmt"
	"strings"

	"logmerge/src/internal/core"

	"github.com/lixenwraith/log"
)

// Formatter defines the interface for transforming a merged entry into bytes.
type Formatter interface {
	// Format takes an entry and returns one output record ending in a newline.
	Format(entry core.LogEntry) ([]byte, error)

	// Name returns the formatter type name
	Name() string
}

// HeaderFormatter is implemented by formatters that print the list of merged
// sources before the first entry
type HeaderFormatter interface {
	Header(labels []string) []byte
}

// NewFormatter creates a new Formatter by name.
func NewFormatter(name string, logger *log.Logger) (Formatter, error) {
	// Default to text if no format specified
	if name == "" {
		name = "text"
	}

	var (
		f   Formatter
		err error
	)
	switch strings.ToLower(name) {
	case "text", "txt":
		f, err = NewTextFormatter(nil, logger)
	case "json":
		f, err = NewJSONFormatter(nil, logger)
	case "raw":
		f, err = NewRawFormatter(logger)
	default:
		return nil, fmt.Errorf("unknown formatter type: %s", name)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}
