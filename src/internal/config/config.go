// FILE: logmerge/src/internal/config/config.go
package config

// Config is the complete logmerge configuration
type Config struct {
	// Timezone offset "[+-]hh:mm" applied to every plain input file
	Offset string `toml:"offset"`

	// Per-stream read-ahead queue size; 0 pulls streams synchronously
	Prefetch int64 `toml:"prefetch"`

	// Suppress all diagnostics
	Quiet bool `toml:"quiet"`

	Output      *OutputConfig      `toml:"output"`
	Exclude     *ExcludeConfig     `toml:"exclude"`
	Filters     []FilterConfig     `toml:"filters"`
	Archive     *ArchiveConfig     `toml:"archive"`
	Decorations []DecorationConfig `toml:"decorations"`
	Logging     *LogConfig         `toml:"logging"`

	// Input paths; positional command-line arguments replace them
	Inputs []string `toml:"inputs"`
}

// OutputConfig controls where and how merged entries are written
type OutputConfig struct {
	// File path; empty writes to stdout
	Path string `toml:"path"`

	// Layout: "text", "json" or "raw"
	Format string `toml:"format"`

	// Merged-files header: "always", "never", "auto" (only on a terminal)
	Header string `toml:"header"`
}

// ExcludeConfig names the exclude file; each line is a regex that drops
// matching entries
type ExcludeConfig struct {
	// Path to the exclude file; empty or "none" disables it
	File string `toml:"file"`

	// Fail instead of warning when File cannot be read
	Required bool `toml:"required"`

	// Additional exclusion patterns
	Patterns []string `toml:"patterns"`
}

// DecorationConfig relabels sources matching Pattern as
// "<marker> <first group> <marker>"
type DecorationConfig struct {
	Pattern string `toml:"pattern"`
	Marker  string `toml:"marker"`
}
