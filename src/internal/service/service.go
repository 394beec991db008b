// FILE: logmerge/src/internal/service/service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"logmerge/src/internal/config"
	"logmerge/src/internal/core"
	"logmerge/src/internal/decorate"
	"logmerge/src/internal/filter"
	"logmerge/src/internal/merge"
	"logmerge/src/internal/normalize"
	"logmerge/src/internal/sink"
	"logmerge/src/internal/source"
	"logmerge/src/internal/split"

	"github.com/lixenwraith/log"
	"golang.org/x/sync/errgroup"
)

// Service runs one merge: streams from a source, through the merge engine,
// the filter chain and the decorator, into a sink.
type Service struct {
	// Normalizer computes keys; replaceable for a fixed clock or location
	Normalizer *normalize.Normalizer

	// FilterChain drops excluded entries; nil keeps everything
	FilterChain *filter.Chain

	// Decorator relabels sources for display; nil keeps labels
	Decorator *decorate.Decorator

	// Header prints the merged source list before the first entry
	Header bool

	// Prefetch is the per-stream read-ahead queue size; 0 pulls inline
	Prefetch int

	Stats  *Stats
	logger *log.Logger

	pipelines []*merge.Pipeline
	labels    []string
	merger    *merge.Merger
}

// Stats holds the counters of a run
type Stats struct {
	StartTime        time.Time
	StreamsOpened    atomic.Uint64
	StreamsSkipped   atomic.Uint64
	StreamsFailed    atomic.Uint64
	EntriesMalformed atomic.Uint64
	EntriesExcluded  atomic.Uint64
	EntriesWritten   atomic.Uint64
}

// NewService creates a service from the configuration. archive selects the
// built-in archive decorations when none are configured.
func NewService(cfg *config.Config, archive bool, logger *log.Logger) (*Service, error) {
	s := &Service{
		Normalizer: normalize.New(),
		Prefetch:   int(cfg.Prefetch),
		Stats:      &Stats{StartTime: time.Now()},
		logger:     logger,
	}

	chain, err := buildFilterChain(cfg, logger)
	if err != nil {
		return nil, err
	}
	s.FilterChain = chain

	decorations := cfg.Decorations
	if len(decorations) == 0 && archive {
		decorations = config.DefaultDecorations()
	}
	if len(decorations) > 0 {
		d, err := decorate.New(decorations)
		if err != nil {
			return nil, fmt.Errorf("failed to create decorator: %w", err)
		}
		s.Decorator = d
	}

	s.Header = wantHeader(cfg.Output)
	return s, nil
}

// Run opens the source and writes the merged entries to snk. Per-entry and
// per-stream failures are logged and skipped; a sink failure or ctx
// cancellation ends the run. Every opened stream is closed before Run returns.
// The sink is left open for the caller.
func (s *Service) Run(ctx context.Context, src source.Source, snk sink.Sink) error {
	streams, err := src.Open(ctx)
	if err != nil {
		return err
	}
	s.Stats.StreamsOpened.Add(uint64(len(streams)))

	runCtx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(runCtx)
	defer func() {
		cancel()
		if cerr := source.CloseAll(streams); cerr != nil {
			s.logger.Warn("msg", "Failed to close input stream",
				"component", "service",
				"error", cerr)
		}
		g.Wait()
	}()

	iterators := make([]merge.Iterator, len(streams))
	s.pipelines = make([]*merge.Pipeline, len(streams))
	s.labels = make([]string, len(streams))
	display := make(map[string]string, len(streams))

	for i, stream := range streams {
		p := merge.NewPipeline(split.New(stream.Reader, stream.Label), s.Normalizer, stream.OffsetMillis, s.report)
		s.pipelines[i] = p
		s.labels[i] = stream.Label
		display[stream.Label] = s.Decorator.Decorate(stream.Label)

		// A blocked stdin read cannot be interrupted, so stdin is never prefetched
		if s.Prefetch > 0 && stream.Origin != source.StdinPath {
			q := merge.NewQueue(s.Prefetch)
			g.Go(func() error {
				q.Fill(gctx, p)
				return nil
			})
			iterators[i] = q
		} else {
			iterators[i] = p
		}
	}

	filters := 0
	if s.FilterChain != nil {
		filters = s.FilterChain.Len()
	}
	s.logger.Info("msg", "Merge started",
		"component", "service",
		"streams", len(streams),
		"prefetch", s.Prefetch,
		"filters", filters,
		"decorations", s.Decorator.Len())

	if s.Header {
		labels := make([]string, len(s.labels))
		for i, l := range s.labels {
			labels[i] = display[l]
		}
		if err := snk.WriteHeader(labels); err != nil {
			return err
		}
	}

	merger := merge.New(iterators, s.report)
	s.merger = merger
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		entry, err := merger.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		if s.FilterChain != nil && s.FilterChain.ShouldDrop(entry) {
			s.Stats.EntriesExcluded.Add(1)
			continue
		}

		entry.Source = display[entry.Source]
		if err := snk.Write(entry); err != nil {
			return err
		}
		s.Stats.EntriesWritten.Add(1)
	}

	s.logger.Info("msg", "Merge complete",
		"component", "service",
		"written", s.Stats.EntriesWritten.Load(),
		"excluded", s.Stats.EntriesExcluded.Load(),
		"malformed", s.Stats.EntriesMalformed.Load(),
		"streams_active", merger.Active(),
		"duration", time.Since(s.Stats.StartTime))
	return nil
}

// report receives recoverable errors from pipelines and the merger. It may
// be called from prefetch workers.
func (s *Service) report(err error) {
	switch {
	case errors.Is(err, context.Canceled):
		return
	case !core.IsRecoverable(err):
		s.Stats.StreamsFailed.Add(1)
		s.logger.Error("msg", "Stream ended with unexpected error",
			"component", "service",
			"error", err)
	case errors.Is(err, core.ErrMalformedTimestamp):
		s.Stats.EntriesMalformed.Add(1)
		var mt *core.MalformedTimestampError
		if errors.As(err, &mt) {
			s.logger.Warn("msg", "Dropped entry with malformed timestamp",
				"component", "service",
				"source", mt.Source,
				"line", mt.Line,
				"timestamp", mt.Timestamp,
				"reason", mt.Reason)
			return
		}
		s.logger.Warn("msg", "Dropped entry with malformed timestamp",
			"component", "service",
			"error", err)
	case errors.Is(err, core.ErrNoTimestampFound):
		s.Stats.StreamsSkipped.Add(1)
		s.logger.Warn("msg", "No timestamp found, stream skipped",
			"component", "service",
			"error", err)
	default:
		s.Stats.StreamsFailed.Add(1)
		s.logger.Error("msg", "Stream read failed, stream ended early",
			"component", "service",
			"error", err)
	}
}

// Labels returns the labels of the streams of the last run, in merge order
func (s *Service) Labels() []string {
	return s.labels
}

// GetStats returns run statistics. Per-stream counters are only stable once
// Run has returned.
func (s *Service) GetStats() map[string]any {
	streams := make(map[string]any, len(s.pipelines))
	for i, p := range s.pipelines {
		streams[fmt.Sprintf("%d:%s", i, s.labels[i])] = p.Stats()
	}

	stats := map[string]any{
		"uptime_seconds":    int(time.Since(s.Stats.StartTime).Seconds()),
		"streams_opened":    s.Stats.StreamsOpened.Load(),
		"streams_skipped":   s.Stats.StreamsSkipped.Load(),
		"streams_failed":    s.Stats.StreamsFailed.Load(),
		"entries_malformed": s.Stats.EntriesMalformed.Load(),
		"entries_excluded":  s.Stats.EntriesExcluded.Load(),
		"entries_written":   s.Stats.EntriesWritten.Load(),
		"streams":           streams,
	}
	if s.merger != nil {
		// Non-zero after a run that ended before its inputs were exhausted
		stats["streams_active"] = s.merger.Active()
	}
	if s.FilterChain != nil {
		stats["filters"] = s.FilterChain.GetStats()
	}
	return stats
}
