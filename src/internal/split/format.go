// FILE: logmerge/src/internal/split/format.go
package split

import (
	"regexp"
	"strings"
)

// Format identifies a recognized timestamp layout
type Format int

const (
	// FormatFull is "2013-03-14 00:00:33,877" (server logs)
	FormatFull Format = iota + 1
	// FormatNoMillis is "2013-03-14 00:00:33" (replication agent)
	FormatNoMillis
	// FormatNoYear is "04-18 07:14:35", optionally with ",mmm" (apprunner)
	FormatNoYear
)

// String returns the format id used in diagnostics
func (f Format) String() string {
	switch f {
	case FormatFull:
		return "full"
	case FormatNoMillis:
		return "no_millis"
	case FormatNoYear:
		return "no_year"
	default:
		return "unknown"
	}
}

// HasYear reports whether timestamps of this format carry a 4-digit year
func (f Format) HasYear() bool {
	return f == FormatFull || f == FormatNoMillis
}

type variant struct {
	format Format
	re     *regexp.Regexp
}

// Tried in order; the first match wins. Each expression is anchored at the
// start of the line and must be followed by whitespace or end of line.
var variants = []variant{
	{FormatFull, regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}[ \t]+\d{2}:\d{2}:\d{2},\d{1,3})(?:[ \t]+|$)`)},
	{FormatNoMillis, regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}[ \t]+\d{2}:\d{2}:\d{2})(?:[ \t]+|$)`)},
	{FormatNoYear, regexp.MustCompile(`^(\d{2}-\d{2}[ \t]+\d{2}:\d{2}:\d{2}(?:,\d{1,3})?)(?:[ \t]+|$)`)},
}

// Match tests the start of line against the known formats. On success it
// returns the timestamp text and the byte offset where the message starts.
// line must not include its terminator.
func Match(line string) (Format, string, int, bool) {
	// Cheap reject before running any expression
	if len(line) < 14 || !isDigit(line[0]) || !isDigit(line[1]) {
		return 0, "", 0, false
	}

	for _, v := range variants {
		loc := v.re.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		return v.format, line[loc[2]:loc[3]], loc[1], true
	}
	return 0, "", 0, false
}

// Fields splits matched timestamp text into its date, time and optional
// millisecond parts.
func Fields(ts string) (date, clock, millis string) {
	parts := strings.Fields(ts)
	if len(parts) != 2 {
		return ts, "", ""
	}
	date, clock = parts[0], parts[1]
	if i := strings.IndexByte(clock, ','); i >= 0 {
		clock, millis = clock[:i], clock[i+1:]
	}
	return date, clock, millis
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
