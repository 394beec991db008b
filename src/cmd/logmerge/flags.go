// FILE: logmerge/src/cmd/logmerge/flags.go
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"logmerge/src/internal/config"

	"github.com/lixenwraith/log"
)

// FlagConfig holds the parsed command line. Empty strings and negative
// numbers mean "not given, keep the configured value".
type FlagConfig struct {
	ConfigFile  string
	SaveConfig  string
	ShowVersion bool
	Quiet       bool

	Output   string
	Offset   string
	Exclude  string
	Format   string
	Header   string
	NoHeader bool
	Prefetch int64

	LogOutput string
	LogLevel  string

	Inputs []string
}

// ParseFlags parses args (without the program name)
func ParseFlags(args []string, stderr io.Writer) (*FlagConfig, error) {
	fc := &FlagConfig{}
	fs := flag.NewFlagSet("logmerge", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { customUsage(stderr) }

	// General flags
	fs.StringVar(&fc.ConfigFile, "config", "", "Config file path")
	fs.StringVar(&fc.SaveConfig, "save-config", "", "Write the effective config to this path and exit")
	fs.BoolVar(&fc.ShowVersion, "version", false, "Show version information")
	fs.BoolVar(&fc.Quiet, "quiet", false, "Suppress all diagnostics")

	// Merge flags, short and long forms
	fs.StringVar(&fc.Output, "o", "", "Output file (default stdout)")
	fs.StringVar(&fc.Output, "output", "", "Output file (default stdout)")
	fs.StringVar(&fc.Offset, "t", "", "Timezone offset [+-]hh:mm for all files")
	fs.StringVar(&fc.Offset, "tzoffset", "", "Timezone offset [+-]hh:mm for all files")
	fs.StringVar(&fc.Exclude, "e", "", "Exclude file, 'none' to disable")
	fs.StringVar(&fc.Exclude, "exclude", "", "Exclude file, 'none' to disable")
	fs.StringVar(&fc.Format, "format", "", "Output format: text, json, raw")
	fs.StringVar(&fc.Header, "header", "", "Merged-files header: always, never, auto")
	fs.BoolVar(&fc.NoHeader, "no-header", false, "Do not print the merged-files header")
	fs.Int64Var(&fc.Prefetch, "prefetch", -1, "Per-file read-ahead queue size, 0 disables")

	// Logging flags
	fs.StringVar(&fc.LogOutput, "log-output", "", "Log output: file, stdout, stderr, both, none (overrides config)")
	fs.StringVar(&fc.LogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fc.Inputs = fs.Args()

	// Validate log-output flag if provided
	if fc.LogOutput != "" {
		validOutputs := map[string]bool{
			"file": true, "stdout": true, "stderr": true,
			"both": true, "none": true,
		}
		if !validOutputs[fc.LogOutput] {
			return nil, fmt.Errorf("invalid log-output: %s (valid: file, stdout, stderr, both, none)", fc.LogOutput)
		}
	}

	// Validate log-level flag if provided
	if fc.LogLevel != "" {
		if _, err := parseLogLevel(fc.LogLevel); err != nil {
			return nil, fmt.Errorf("invalid log-level: %s (valid: debug, info, warn, error)", fc.LogLevel)
		}
	}

	if fc.NoHeader && fc.Header != "" && fc.Header != "never" {
		return nil, fmt.Errorf("-no-header conflicts with -header %s", fc.Header)
	}

	return fc, nil
}

// Apply overrides cfg with every flag that was given
func (fc *FlagConfig) Apply(cfg *config.Config) {
	if len(fc.Inputs) > 0 {
		cfg.Inputs = fc.Inputs
	}
	if fc.Quiet {
		cfg.Quiet = true
	}
	if fc.Output != "" {
		cfg.Output.Path = fc.Output
	}
	if fc.Offset != "" {
		cfg.Offset = fc.Offset
	}
	if fc.Exclude != "" {
		cfg.Exclude.File = fc.Exclude
		// An explicitly named file must exist
		cfg.Exclude.Required = !strings.EqualFold(fc.Exclude, "none")
	}
	if fc.Format != "" {
		cfg.Output.Format = fc.Format
	}
	if fc.Header != "" {
		cfg.Output.Header = fc.Header
	}
	if fc.NoHeader {
		cfg.Output.Header = "never"
	}
	if fc.Prefetch >= 0 {
		cfg.Prefetch = fc.Prefetch
	}
	if fc.LogOutput != "" {
		cfg.Logging.Output = fc.LogOutput
	}
	if fc.LogLevel != "" {
		cfg.Logging.Level = fc.LogLevel
	}
}

func customUsage(w io.Writer) {
	fmt.Fprintf(w, "logmerge - merge log files by timestamp\n\n")
	fmt.Fprintf(w, "Usage: %s [options] logfile... | archive.tgz\n\n", os.Args[0])

	fmt.Fprintf(w, "Merge:\n")
	fmt.Fprintf(w, "  -o, -output string\n\tOutput file (default stdout)\n")
	fmt.Fprintf(w, "  -t, -tzoffset string\n\tTimezone offset [+-]hh:mm for all files\n")
	fmt.Fprintf(w, "  -e, -exclude string\n\tExclude file, one regex per line; 'none' disables (default exclude.txt next to the binary)\n")
	fmt.Fprintf(w, "  -format string\n\tOutput format: text, json, raw\n")
	fmt.Fprintf(w, "  -header string\n\tMerged-files header: always, never, auto\n")
	fmt.Fprintf(w, "  -no-header\n\tDo not print the merged-files header\n")
	fmt.Fprintf(w, "  -prefetch int\n\tPer-file read-ahead queue size, 0 disables\n")

	fmt.Fprintf(w, "\nGeneral:\n")
	fmt.Fprintf(w, "  -config string\n\tConfig file path\n")
	fmt.Fprintf(w, "  -save-config string\n\tWrite the effective config to this path and exit\n")
	fmt.Fprintf(w, "  -version\n\tShow version information\n")
	fmt.Fprintf(w, "  -quiet\n\tSuppress all diagnostics\n")

	fmt.Fprintf(w, "\nLogging:\n")
	fmt.Fprintf(w, "  -log-output string\n\tLog output: file, stdout, stderr, both, none (overrides config)\n")
	fmt.Fprintf(w, "  -log-level string\n\tLog level: debug, info, warn, error (overrides config)\n")

	fmt.Fprintf(w, "\nExamples:\n")
	fmt.Fprintf(w, "  # Merge two files whose clocks differ by five hours\n")
	fmt.Fprintf(w, "  %s -t -05:00 server.log client.log\n\n", os.Args[0])
	fmt.Fprintf(w, "  # Merge a test-run archive into a file\n")
	fmt.Fprintf(w, "  %s -o merged.txt run-42.tgz\n\n", os.Args[0])
	fmt.Fprintf(w, "  # Read one input from a pipe\n")
	fmt.Fprintf(w, "  zcat old.log.gz | %s - new.log\n\n", os.Args[0])

	fmt.Fprintf(w, "Environment Variables:\n")
	fmt.Fprintf(w, "  LOGMERGE_CONFIG_FILE  Config file path\n")
	fmt.Fprintf(w, "  LOGMERGE_CONFIG_DIR   Config directory\n")
	fmt.Fprintf(w, "  LOGMERGE_*            Any config key, e.g. LOGMERGE_OUTPUT_FORMAT=json\n")
}

func parseLogLevel(level string) (int, error) {
	switch strings.ToLower(level) {
	case "debug":
		return int(log.LevelDebug), nil
	case "info":
		return int(log.LevelInfo), nil
	case "warn", "warning":
		return int(log.LevelWarn), nil
	case "error":
		return int(log.LevelError), nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", level)
	}
}
