// FILE: logmerge/src/internal/sink/console.go
package sink

import (
	"os"

	"logmerge/src/internal/format"

	"github.com/lixenwraith/log"
	"golang.org/x/term"
)

// NewStdoutSink creates a sink on standard output. An interactive terminal
// is flushed per entry; pipes and redirects stay block buffered.
func NewStdoutSink(logger *log.Logger, formatter format.Formatter) *WriterSink {
	interactive := IsTerminal(os.Stdout)
	s := NewWriterSink("stdout", os.Stdout, nil, interactive, logger, formatter)
	logger.Debug("msg", "Stdout sink created",
		"component", "stdout_sink",
		"interactive", interactive)
	return s
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
