// FILE: logmerge/src/internal/merge/merger.go
package merge

import (
	"container/heap"
	"errors"
	"io"

	"logmerge/src/internal/core"
)

// Merger performs an incremental k-way merge over individually sorted
// iterators. At most one pending entry per live stream is held in memory.
//
// Entries with equal keys leave in stream order (the order given to New),
// then in the order their own stream produced them. Input sortedness is
// assumed, not checked.
type Merger struct {
	streams []Iterator
	report  Reporter
	pending entryHeap
	seq     []uint64

	started bool
	active  int
}

// New creates a merger. report receives the error of any stream that ends
// abnormally; that stream is dropped and the merge continues.
func New(streams []Iterator, report Reporter) *Merger {
	return &Merger{
		streams: streams,
		report:  report,
		seq:     make([]uint64, len(streams)),
		active:  len(streams),
	}
}

// Next returns the smallest pending entry, or io.EOF once every stream is
// exhausted.
func (m *Merger) Next() (core.LogEntry, error) {
	if !m.started {
		m.started = true
		m.pending = make(entryHeap, 0, len(m.streams))
		for i := range m.streams {
			if it, ok := m.pull(i); ok {
				m.pending = append(m.pending, it)
			}
		}
		heap.Init(&m.pending)
	}

	if len(m.pending) == 0 {
		return core.LogEntry{}, io.EOF
	}

	top := heap.Pop(&m.pending).(item)
	if next, ok := m.pull(top.stream); ok {
		heap.Push(&m.pending, next)
	}
	return top.entry, nil
}

// Active returns the number of streams not yet exhausted
func (m *Merger) Active() int {
	return m.active
}

// pull fetches the next entry of stream i
func (m *Merger) pull(i int) (item, bool) {
	it := m.streams[i]
	if it == nil {
		return item{}, false
	}

	entry, err := it.Next()
	if err != nil {
		m.streams[i] = nil
		m.active--
		if !errors.Is(err, io.EOF) && m.report != nil {
			m.report(err)
		}
		return item{}, false
	}

	m.seq[i]++
	return item{entry: entry, stream: i, seq: m.seq[i]}, true
}

type item struct {
	entry  core.LogEntry
	stream int
	seq    uint64
}

type entryHeap []item

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.entry.Key != b.entry.Key {
		return a.entry.Key < b.entry.Key
	}
	if a.stream != b.stream {
		return a.stream < b.stream
	}
	return a.seq < b.seq
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) { *h = append(*h, x.(item)) }

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
