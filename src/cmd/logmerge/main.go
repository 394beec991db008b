// FILE: logmerge/src/cmd/logmerge/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"logmerge/src/internal/config"
	"logmerge/src/internal/sink"
	"logmerge/src/internal/version"

	"github.com/lixenwraith/log"
)

// Exit codes
const (
	exitOK          = 0
	exitFailure     = 1
	exitUsage       = 2
	exitInterrupted = 130
)

var logger *log.Logger

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Parse flags first to get quiet mode early
	flagCfg, err := ParseFlags(args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUsage
	}

	InitOutputHandler(flagCfg.Quiet)

	if flagCfg.ShowVersion {
		Print("%s\n", version.String())
		return exitOK
	}

	if flagCfg.ConfigFile != "" {
		if _, err := os.Stat(flagCfg.ConfigFile); err != nil {
			Error("Config file not found: %s\n", flagCfg.ConfigFile)
			return exitUsage
		}
	}

	cfg, err := config.Load(flagCfg.ConfigFile)
	if err != nil {
		Error("Failed to load config: %v\n", err)
		return exitFailure
	}
	flagCfg.Apply(cfg)
	output.SetQuiet(cfg.Quiet)

	if flagCfg.SaveConfig != "" {
		if err := cfg.SaveToFile(flagCfg.SaveConfig); err != nil {
			Error("Failed to save config: %v\n", err)
			return exitFailure
		}
		Print("Config saved to %s\n", flagCfg.SaveConfig)
		return exitOK
	}

	if err := cfg.Validate(); err != nil {
		Error("Error: %v\nRun with -h for usage.\n", err)
		return exitUsage
	}

	if err := initializeLogger(cfg); err != nil {
		Error("Failed to initialize logger: %v\n", err)
		return exitFailure
	}
	defer shutdownLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sh := NewSignalHandler(logger)
	defer sh.Stop()
	go sh.Handle(cancel)

	src, svc, snk, err := bootstrapService(cfg)
	if err != nil {
		logger.Error("msg", "Failed to bootstrap service", "error", err)
		Error("Error: %v\n", err)
		return exitFailure
	}

	runErr := svc.Run(ctx, src, snk)
	if closeErr := snk.Close(); runErr == nil {
		runErr = closeErr
	}

	logger.Debug("msg", "Run statistics",
		"service", svc.GetStats(),
		"source", src.GetStats(),
		"sink", snk.GetStats())

	return exitCode(runErr)
}

// exitCode maps the run result to the process exit status. A reader closing
// the pipe early (e.g. head) is a normal end.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case sink.IsBrokenPipe(err):
		logger.Debug("msg", "Output pipe closed by reader")
		return exitOK
	case errors.Is(err, context.Canceled):
		logger.Warn("msg", "Merge interrupted")
		return exitInterrupted
	default:
		logger.Error("msg", "Merge failed", "error", err)
		Error("Error: %v\n", err)
		return exitFailure
	}
}

func shutdownLogger() {
	if logger != nil {
		if err := logger.Shutdown(2 * time.Second); err != nil {
			// Best effort - can't log the shutdown error
			Error("Logger shutdown error: %v\n", err)
		}
	}
}
