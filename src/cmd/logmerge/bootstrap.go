// FILE: logmerge/src/cmd/logmerge/bootstrap.go
package main

import (
	"fmt"

	"logmerge/src/internal/config"
	"logmerge/src/internal/service"
	"logmerge/src/internal/sink"
	"logmerge/src/internal/source"
	"logmerge/src/internal/version"

	"github.com/lixenwraith/log"
)

// bootstrapService creates the source, the merge service and the sink
func bootstrapService(cfg *config.Config) (source.Source, *service.Service, sink.Sink, error) {
	src, archive, err := service.BuildSource(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	svc, err := service.NewService(cfg, archive, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	snk, err := service.BuildSink(cfg.Output, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	logger.Info("msg", "logmerge started",
		"version", version.Short(),
		"inputs", len(cfg.Inputs),
		"archive", archive,
		"output", outputName(cfg.Output),
		"format", cfg.Output.Format)

	return src, svc, snk, nil
}

func outputName(cfg *config.OutputConfig) string {
	if cfg.Path == "" {
		return "stdout"
	}
	return cfg.Path
}

// initializeLogger sets up the diagnostics logger based on configuration
func initializeLogger(cfg *config.Config) error {
	logger = log.NewLogger()

	var configArgs []string

	if cfg.Quiet {
		// In quiet mode, disable ALL logging output
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=false",
			"level=255")

		return logger.InitWithDefaults(configArgs...)
	}

	levelValue, err := parseLogLevel(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	configArgs = append(configArgs, fmt.Sprintf("level=%d", levelValue))

	// Merged output owns stdout unless it goes to a file
	switch cfg.Logging.Output {
	case "none":
		configArgs = append(configArgs, "disable_file=true", "enable_stdout=false")

	case "stdout":
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=true",
			"stdout_target=stdout")

	case "stderr":
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=true",
			"stdout_target=stderr")

	case "file":
		configArgs = append(configArgs, "enable_stdout=false")
		configureFileLogging(&configArgs, cfg)

	case "both":
		configArgs = append(configArgs, "enable_stdout=true")
		configureFileLogging(&configArgs, cfg)
		configureConsoleTarget(&configArgs, cfg)

	default:
		return fmt.Errorf("invalid log output mode: %s", cfg.Logging.Output)
	}

	if cfg.Logging.Console != nil && cfg.Logging.Console.Format != "" {
		configArgs = append(configArgs, fmt.Sprintf("format=%s", cfg.Logging.Console.Format))
	}

	return logger.InitWithDefaults(configArgs...)
}

// configureFileLogging sets up file-based logging parameters
func configureFileLogging(configArgs *[]string, cfg *config.Config) {
	if cfg.Logging.File != nil {
		*configArgs = append(*configArgs,
			fmt.Sprintf("directory=%s", cfg.Logging.File.Directory),
			fmt.Sprintf("name=%s", cfg.Logging.File.Name),
			fmt.Sprintf("max_size_mb=%d", cfg.Logging.File.MaxSizeMB),
			fmt.Sprintf("max_total_size_mb=%d", cfg.Logging.File.MaxTotalSizeMB))
	}
}

func configureConsoleTarget(configArgs *[]string, cfg *config.Config) {
	target := "stderr"
	if cfg.Logging.Console != nil && cfg.Logging.Console.Target != "" {
		target = cfg.Logging.Console.Target
	}
	*configArgs = append(*configArgs, fmt.Sprintf("stdout_target=%s", target))
}
