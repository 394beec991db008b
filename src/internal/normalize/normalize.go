// FILE: logmerge/src/internal/normalize/normalize.go
package normalize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"logmerge/src/internal/core"
	"logmerge/src/internal/split"
)

// DisplayLayout renders keys for output
const DisplayLayout = "2006-01-02 15:04:05,000"

// Normalizer turns raw timestamp text into sortable keys.
//
// Keys are computed in Location (local time by default). The per-stream
// offset is an opaque millisecond delta added after that conversion, so a
// timestamp close to a daylight-saving transition of Location can land on
// the other side of it once displayed. Callers correcting for a remote
// timezone should measure their offset against the same Location.
type Normalizer struct {
	Location *time.Location
	// Now supplies the year for timestamps that have none
	Now func() time.Time
}

// New returns a normalizer using local time and the wall clock
func New() *Normalizer {
	return &Normalizer{Location: time.Local, Now: time.Now}
}

// Normalize computes the entry's key with offset applied and its display
// timestamp. Out-of-range components yield an error matching
// core.ErrMalformedTimestamp.
func (n *Normalizer) Normalize(raw core.RawEntry, offsetMillis int64) (core.LogEntry, error) {
	text := raw.Timestamp
	if !split.Format(raw.Format).HasYear() {
		text = fmt.Sprintf("%04d-%s", n.now().Year(), text)
	}

	base, err := n.Parse(text)
	if err != nil {
		var mt *core.MalformedTimestampError
		if errors.As(err, &mt) {
			mt.Source = raw.Source
			mt.Line = raw.Line
			mt.Timestamp = raw.Timestamp
		}
		return core.LogEntry{}, err
	}

	key := base + core.Key(offsetMillis)
	return core.LogEntry{
		Key:     key,
		Display: n.Display(key),
		Source:  raw.Source,
		Message: raw.Message,
	}, nil
}

// Parse reads "YYYY-MM-DD HH:MM:SS[,mmm]" as a key in the normalizer's
// location. The digits after the comma are a millisecond count.
func (n *Normalizer) Parse(text string) (core.Key, error) {
	date, clock, millis := split.Fields(text)

	d, ok := splitInts(date, "-", 3)
	if !ok {
		return 0, malformed(text, "expected YYYY-MM-DD date")
	}
	c, ok := splitInts(clock, ":", 3)
	if !ok {
		return 0, malformed(text, "expected HH:MM:SS time")
	}
	ms := 0
	if millis != "" {
		v, err := strconv.Atoi(millis)
		if err != nil || v < 0 || v > 999 || len(millis) > 3 {
			return 0, malformed(text, "milliseconds out of range")
		}
		ms = v
	}

	year, month, day := d[0], d[1], d[2]
	hour, minute, second := c[0], c[1], c[2]
	switch {
	case month < 1 || month > 12:
		return 0, malformed(text, "month out of range")
	case day < 1 || day > daysIn(year, time.Month(month)):
		return 0, malformed(text, "day out of range")
	case hour > 23:
		return 0, malformed(text, "hour out of range")
	case minute > 59:
		return 0, malformed(text, "minute out of range")
	case second > 59:
		return 0, malformed(text, "second out of range")
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, n.location())
	return core.Key(t.UnixMilli() + int64(ms)), nil
}

// Display renders key in the normalizer's location
func (n *Normalizer) Display(key core.Key) string {
	return time.UnixMilli(int64(key)).In(n.location()).Format(DisplayLayout)
}

func (n *Normalizer) location() *time.Location {
	if n.Location == nil {
		return time.Local
	}
	return n.Location
}

func (n *Normalizer) now() time.Time {
	if n.Now == nil {
		return time.Now()
	}
	return n.Now()
}

func splitInts(s, sep string, count int) ([]int, bool) {
	parts := strings.Split(s, sep)
	if len(parts) != count {
		return nil, false
	}
	out := make([]int, count)
	for i, p := range parts {
		if p == "" {
			return nil, false
		}
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func malformed(text, reason string) error {
	return &core.MalformedTimestampError{Timestamp: text, Reason: reason}
}
