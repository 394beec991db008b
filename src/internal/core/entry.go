// FILE: logmerge/src/internal/core/entry.go
package core

import "strings"

// Key is the sortable position of an entry: milliseconds since the Unix epoch,
// offset-adjusted.
type Key int64

// RawEntry is one logical log record as cut from its stream, before the
// timestamp has been interpreted.
type RawEntry struct {
	// Timestamp text exactly as matched at the start of the first line
	Timestamp string
	// Which timestamp layout matched, see split.Format
	Format int
	// Remainder of the first line plus every continuation line, terminators kept
	Message string
	Source  string
	// 1-based physical line number of the first line
	Line int
}

// LogEntry is a normalized record flowing out of the merge
type LogEntry struct {
	Key     Key    `json:"key"`
	Display string `json:"time"`
	Source  string `json:"source"`
	Message string `json:"message"`
}

// TrimTerminator drops exactly one trailing line terminator ("\n" or "\r\n")
// from an entry message. Continuation lines before it are kept.
func TrimTerminator(message string) string {
	if strings.HasSuffix(message, "\r\n") {
		return message[:len(message)-2]
	}
	return strings.TrimSuffix(message, "\n")
}
