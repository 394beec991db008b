// FILE: logmerge/src/internal/sink/sink.go
package sink

import (
	"bufio"
	"errors"
	"io"
	"sync/atomic"
	"syscall"
	"time"

	"logmerge/src/internal/core"
	"logmerge/src/internal/format"

	"github.com/lixenwraith/log"
)

// Sink represents the output destination for merged entries
type Sink interface {
	// WriteHeader prints the merged source list if the formatter supports it
	WriteHeader(labels []string) error

	// Write formats and writes one entry
	Write(entry core.LogEntry) error

	// Close flushes buffered output and releases the destination
	Close() error

	// GetStats returns sink statistics
	GetStats() SinkStats
}

// SinkStats contains statistics about a sink
type SinkStats struct {
	Type           string
	TotalProcessed uint64
	BytesWritten   uint64
	StartTime      time.Time
	LastProcessed  time.Time
	Details        map[string]any
}

// IsBrokenPipe reports whether err came from writing to a closed reader,
// e.g. output piped into head.
func IsBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE)
}

// WriterSink writes formatted entries to any io.Writer through a buffer
type WriterSink struct {
	name      string
	out       *bufio.Writer
	closer    io.Closer
	autoFlush bool
	startTime time.Time
	logger    *log.Logger
	formatter format.Formatter

	// Statistics
	totalProcessed atomic.Uint64
	bytesWritten   atomic.Uint64
	lastProcessed  atomic.Value // time.Time
}

// NewWriterSink creates a sink over w. closer may be nil when the caller
// owns the writer. autoFlush flushes after every entry.
func NewWriterSink(name string, w io.Writer, closer io.Closer, autoFlush bool, logger *log.Logger, formatter format.Formatter) *WriterSink {
	s := &WriterSink{
		name:      name,
		out:       bufio.NewWriterSize(w, 64*1024),
		closer:    closer,
		autoFlush: autoFlush,
		startTime: time.Now(),
		logger:    logger,
		formatter: formatter,
	}
	s.lastProcessed.Store(time.Time{})
	return s
}

func (s *WriterSink) WriteHeader(labels []string) error {
	hf, ok := s.formatter.(format.HeaderFormatter)
	if !ok {
		s.logger.Debug("msg", "Formatter has no header, skipping",
			"component", "sink",
			"formatter", s.formatter.Name())
		return nil
	}
	return s.write(hf.Header(labels))
}

func (s *WriterSink) Write(entry core.LogEntry) error {
	formatted, err := s.formatter.Format(entry)
	if err != nil {
		return err
	}
	if err := s.write(formatted); err != nil {
		return err
	}

	s.totalProcessed.Add(1)
	s.lastProcessed.Store(time.Now())
	return nil
}

func (s *WriterSink) write(p []byte) error {
	n, err := s.out.Write(p)
	s.bytesWritten.Add(uint64(n))
	if err == nil && s.autoFlush {
		err = s.out.Flush()
	}
	if err != nil {
		return core.SinkWrite(s.name, err)
	}
	return nil
}

func (s *WriterSink) Close() error {
	err := s.out.Flush()
	if err != nil {
		err = core.SinkWrite(s.name, err)
	}
	if s.closer != nil {
		if cerr := s.closer.Close(); cerr != nil && err == nil {
			err = core.SinkWrite(s.name, cerr)
		}
	}

	s.logger.Debug("msg", "Sink closed",
		"component", "sink",
		"target", s.name,
		"entries", s.totalProcessed.Load(),
		"bytes", s.bytesWritten.Load())
	return err
}

func (s *WriterSink) GetStats() SinkStats {
	lastProc, _ := s.lastProcessed.Load().(time.Time)

	return SinkStats{
		Type:           s.name,
		TotalProcessed: s.totalProcessed.Load(),
		BytesWritten:   s.bytesWritten.Load(),
		StartTime:      s.startTime,
		LastProcessed:  lastProc,
		Details: map[string]any{
			"formatter":  s.formatter.Name(),
			"auto_flush": s.autoFlush,
		},
	}
}
