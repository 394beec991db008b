// FILE: logmerge/src/internal/format/raw.go
package format

import (
	"logmerge/src/internal/core"

	"github.com/lixenwraith/log"
)

// RawFormatter outputs the message as-is with a newline
type RawFormatter struct {
	logger *log.Logger
}

// NewRawFormatter creates a new raw formatter
func NewRawFormatter(logger *log.Logger) (*RawFormatter, error) {
	return &RawFormatter{
		logger: logger,
	}, nil
}

// Format returns the message terminated by exactly one newline
func (f *RawFormatter) Format(entry core.LogEntry) ([]byte, error) {
	return append([]byte(core.TrimTerminator(entry.Message)), '\n'), nil
}

// Name returns the formatter name
func (f *RawFormatter) Name() string {
	return "raw"
}
