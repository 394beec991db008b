// FILE: logmerge/src/internal/source/source.go
package source

import (
	"context"
	"io"
	"sync/atomic"
	"time"
)

// Stream is one input of the merge. The offset corrects every timestamp of
// the stream; the label names it in the output.
type Stream struct {
	Reader       io.ReadCloser
	OffsetMillis int64
	Label        string
	// Where the stream came from (file path or archive member name)
	Origin string
}

// Source supplies an ordered set of streams. The order defines tie-break
// precedence in the merge.
type Source interface {
	// Opens every stream. On error nothing is left open.
	Open(ctx context.Context) ([]Stream, error)

	// Returns source statistics
	GetStats() SourceStats
}

// Contains statistics about a source
type SourceStats struct {
	Type      string
	Streams   int
	BytesRead uint64
	StartTime time.Time
	Details   map[string]any
}

// CloseAll closes every stream and returns the first error
func CloseAll(streams []Stream) error {
	var first error
	for _, s := range streams {
		if s.Reader == nil {
			continue
		}
		if err := s.Reader.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// countingReader tracks bytes handed to the splitter
type countingReader struct {
	r       io.Reader
	closer  io.Closer
	counter *atomic.Uint64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.counter.Add(uint64(n))
	return n, err
}

func (c *countingReader) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

// multiCloser closes in order and keeps the first error
type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var first error
	for _, c := range m {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
