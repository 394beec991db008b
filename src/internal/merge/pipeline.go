// FILE: logmerge/src/internal/merge/pipeline.go
package merge

import (
	"errors"

	"logmerge/src/internal/core"
	"logmerge/src/internal/normalize"
	"logmerge/src/internal/split"
)

// Iterator yields entries in non-decreasing key order until it returns an
// error; io.EOF marks normal exhaustion.
type Iterator interface {
	Next() (core.LogEntry, error)
}

// Reporter receives recoverable errors (dropped entries, skipped streams)
type Reporter func(err error)

// Pipeline couples the splitter and normalizer of one stream
type Pipeline struct {
	splitter   *split.Splitter
	normalizer *normalize.Normalizer
	offset     int64
	report     Reporter

	emitted int
	dropped int
}

// NewPipeline builds the per-stream iterator. Malformed entries are passed to
// report and skipped.
func NewPipeline(s *split.Splitter, n *normalize.Normalizer, offsetMillis int64, report Reporter) *Pipeline {
	return &Pipeline{
		splitter:   s,
		normalizer: n,
		offset:     offsetMillis,
		report:     report,
	}
}

// Next returns the next normalized entry
func (p *Pipeline) Next() (core.LogEntry, error) {
	for {
		raw, err := p.splitter.Next()
		if err != nil {
			return core.LogEntry{}, err
		}

		entry, err := p.normalizer.Normalize(raw, p.offset)
		if err != nil {
			if !errors.Is(err, core.ErrMalformedTimestamp) {
				return core.LogEntry{}, err
			}
			p.dropped++
			if p.report != nil {
				p.report(err)
			}
			continue
		}

		p.emitted++
		return entry, nil
	}
}

// Stats returns the pipeline counters
func (p *Pipeline) Stats() map[string]any {
	return map[string]any{
		"lines_read":      p.splitter.Lines(),
		"lines_discarded": p.splitter.Discarded(),
		"entries_emitted": p.emitted,
		"entries_dropped": p.dropped,
	}
}
