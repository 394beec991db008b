// FILE: logmerge/src/internal/config/archive.go
package config

// ArchiveConfig selects log members out of a test-run archive
type ArchiveConfig struct {
	// Members receiving the server offset
	ServerPatterns []string `toml:"server_patterns"`

	// Members merged with a zero offset
	OtherPatterns []string `toml:"other_patterns"`

	// Members never merged even when matched above (thread dumps)
	SkipPatterns []string `toml:"skip_patterns"`

	// Regex the common prefix of all member names must match; empty disables
	PrefixPattern string `toml:"prefix_pattern"`

	// "[+-]hh:mm" for server logs; empty derives it from the archive
	ServerOffset string `toml:"server_offset"`
}

// DefaultArchiveConfig returns the member layout of test-run archives
func DefaultArchiveConfig() *ArchiveConfig {
	return &ArchiveConfig{
		ServerPatterns: []string{`/serverlogs/.*-log\.txt`},
		OtherPatterns: []string{
			`apprunner.log`,
			`\.Benchmark\.`,
			`VoltDBReplicationAgent\.`,
		},
		SkipPatterns: []string{
			`\.Benchmark\.jstack`,
			`VoltDBReplicationAgent\.jstack`,
		},
		PrefixPattern: `^tmp/\S+/apprunner/\S+`,
	}
}

// DefaultDecorations returns the archive label markers
func DefaultDecorations() []DecorationConfig {
	return []DecorationConfig{
		{Pattern: `(volt\w*)-.*.txt`, Marker: "  "},
		{Pattern: `org.voltdb.dr.VoltDB(ReplicationAgent)`, Marker: "%%"},
		{Pattern: `(apprunner).log`, Marker: "&&"},
		{Pattern: `(.*)\.Benchmark\.`, Marker: "--"},
	}
}
