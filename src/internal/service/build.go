// FILE: logmerge/src/internal/service/build.go
package service

import (
	"fmt"
	"os"

	"logmerge/src/internal/config"
	"logmerge/src/internal/filter"
	"logmerge/src/internal/format"
	"logmerge/src/internal/normalize"
	"logmerge/src/internal/sink"
	"logmerge/src/internal/source"

	"github.com/lixenwraith/log"
)

// BuildSource selects the stream provider for the inputs. A tar archive must
// be the only input; anything else is read as plain or gzip log files.
func BuildSource(cfg *config.Config, logger *log.Logger) (source.Source, bool, error) {
	if len(cfg.Inputs) == 0 {
		return nil, false, fmt.Errorf("no input files")
	}

	for _, in := range cfg.Inputs {
		if in == source.StdinPath {
			continue
		}
		archive, err := source.IsArchive(in)
		if err != nil {
			return nil, false, fmt.Errorf("cannot open input file: %w", err)
		}
		if !archive {
			continue
		}
		if len(cfg.Inputs) > 1 {
			return nil, false, fmt.Errorf("archive %s must be the only input", in)
		}

		src, err := source.NewArchiveSource(in, cfg.Archive, logger)
		if err != nil {
			return nil, false, fmt.Errorf("failed to create archive source: %w", err)
		}
		logger.Info("msg", "Archive mode",
			"component", "service",
			"archive", in)
		return src, true, nil
	}

	offset, err := normalize.ParseOffset(cfg.Offset)
	if err != nil {
		return nil, false, err
	}
	src, err := source.NewFileSource(cfg.Inputs, offset, logger)
	if err != nil {
		return nil, false, err
	}
	return src, false, nil
}

// BuildSink creates the formatter and the stdout or file sink
func BuildSink(cfg *config.OutputConfig, logger *log.Logger) (sink.Sink, error) {
	formatter, err := format.NewFormatter(cfg.Format, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create formatter: %w", err)
	}

	if cfg.Path == "" {
		return sink.NewStdoutSink(logger, formatter), nil
	}
	return sink.NewFileSink(cfg.Path, logger, formatter)
}

func buildFilterChain(cfg *config.Config, logger *log.Logger) (*filter.Chain, error) {
	configs := make([]config.FilterConfig, 0, len(cfg.Filters)+1)

	exclude, err := filter.ExcludeConfig(cfg.Exclude, logger)
	if err != nil {
		return nil, err
	}
	if exclude != nil {
		configs = append(configs, *exclude)
	}
	configs = append(configs, cfg.Filters...)

	if len(configs) == 0 {
		return nil, nil
	}

	chain, err := filter.NewChain(configs, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create filter chain: %w", err)
	}
	return chain, nil
}

// wantHeader resolves the header mode; "auto" prints it only when merged
// output goes to a terminal
func wantHeader(cfg *config.OutputConfig) bool {
	if cfg == nil {
		return true
	}
	switch cfg.Header {
	case "never":
		return false
	case "auto":
		return cfg.Path == "" && sink.IsTerminal(os.Stdout)
	default:
		return true
	}
}
