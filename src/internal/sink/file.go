// FILE: logmerge/src/internal/sink/file.go
package sink

import (
	"fmt"
	"os"
	"path/filepath"

	"logmerge/src/internal/format"

	"github.com/lixenwraith/log"
)

// NewFileSink creates (or truncates) the output file at path
func NewFileSink(path string, logger *log.Logger, formatter format.Formatter) (*WriterSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open output file: %w", err)
	}

	logger.Info("msg", "File sink created",
		"component", "file_sink",
		"path", path)
	return NewWriterSink(path, f, f, false, logger, formatter), nil
}
