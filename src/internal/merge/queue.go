// FILE: logmerge/src/internal/merge/queue.go
package merge

import (
	"context"

	"logmerge/src/internal/core"
)

type result struct {
	entry core.LogEntry
	err   error
}

// Queue is a bounded buffer filled by a worker driving one iterator ahead of
// the merge. Output order and errors are identical to pulling the iterator
// directly.
type Queue struct {
	ch   chan result
	last error
}

// NewQueue creates a queue holding up to size entries
func NewQueue(size int) *Queue {
	if size < 1 {
		size = 1
	}
	return &Queue{ch: make(chan result, size)}
}

// Fill drives it until it fails or ctx is done, then closes the queue. It is
// meant to run in its own goroutine; only one Fill per queue.
func (q *Queue) Fill(ctx context.Context, it Iterator) {
	defer close(q.ch)

	for {
		entry, err := it.Next()
		select {
		case q.ch <- result{entry: entry, err: err}:
		case <-ctx.Done():
			return
		}
		if err != nil {
			return
		}
	}
}

// Next implements Iterator
func (q *Queue) Next() (core.LogEntry, error) {
	if q.last != nil {
		return core.LogEntry{}, q.last
	}

	r, ok := <-q.ch
	if !ok {
		// Filler stopped early on cancellation
		q.last = context.Canceled
		return core.LogEntry{}, q.last
	}
	if r.err != nil {
		q.last = r.err
		return core.LogEntry{}, r.err
	}
	return r.entry, nil
}

var _ Iterator = (*Queue)(nil)
var _ Iterator = (*Pipeline)(nil)
