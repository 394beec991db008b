// FILE: logmerge/src/internal/format/json.go
package format

import (
	"encoding/json"
	"fmt"

	"logmerge/src/internal/core"

	"github.com/lixenwraith/log"
)

// JSONOptions configures field names of the JSON formatter
type JSONOptions struct {
	TimeField    string
	KeyField     string
	SourceField  string
	MessageField string
	Pretty       bool
}

// DefaultJSONOptions returns the standard field names
func DefaultJSONOptions() *JSONOptions {
	return &JSONOptions{
		TimeField:    "time",
		KeyField:     "epoch_ms",
		SourceField:  "source",
		MessageField: "message",
	}
}

// JSONFormatter produces one JSON object per entry
type JSONFormatter struct {
	options *JSONOptions
	logger  *log.Logger
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(opts *JSONOptions, logger *log.Logger) (*JSONFormatter, error) {
	if opts == nil {
		opts = DefaultJSONOptions()
	}
	return &JSONFormatter{
		options: opts,
		logger:  logger,
	}, nil
}

// Format transforms a single entry into a JSON line
func (f *JSONFormatter) Format(entry core.LogEntry) ([]byte, error) {
	output := map[string]any{
		f.options.TimeField:    entry.Display,
		f.options.KeyField:     int64(entry.Key),
		f.options.SourceField:  entry.Source,
		f.options.MessageField: core.TrimTerminator(entry.Message),
	}

	var result []byte
	var err error
	if f.options.Pretty {
		result, err = json.MarshalIndent(output, "", "  ")
	} else {
		result, err = json.Marshal(output)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return append(result, '\n'), nil
}

// Name returns the formatter's type name
func (f *JSONFormatter) Name() string {
	return "json"
}
