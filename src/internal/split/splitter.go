// FILE: logmerge/src/internal/split/splitter.go
package split

import (
	"bufio"
	"io"
	"strings"

	"logmerge/src/internal/core"
)

// Splitter cuts a character stream into multi-line entries anchored on
// timestamp-prefixed lines. It is single-pass and not safe for concurrent use.
type Splitter struct {
	source string
	reader *bufio.Reader

	current *core.RawEntry
	builder strings.Builder

	line      int
	emitted   int
	discarded int
	done      bool
	err       error
}

// New creates a splitter reading from r. source labels every entry produced.
func New(r io.Reader, source string) *Splitter {
	return &Splitter{
		source: source,
		reader: bufio.NewReaderSize(r, 64*1024),
	}
}

// Next returns the next complete entry. At the end of the stream it returns
// io.EOF, or an error matching core.ErrNoTimestampFound if no entry was ever
// produced. A read failure is returned, matching core.ErrStreamRead, after
// the entry under construction has been yielded.
func (s *Splitter) Next() (core.RawEntry, error) {
	for !s.done {
		text, err := s.reader.ReadString('\n')
		if len(text) > 0 {
			s.line++
			if entry, ok := s.consume(text); ok {
				if err != nil {
					s.finish(err)
				}
				return entry, nil
			}
		}
		if err != nil {
			s.finish(err)
		}
	}

	if s.current != nil {
		return s.flush(), nil
	}
	if s.err != nil {
		return core.RawEntry{}, s.err
	}
	if s.emitted == 0 {
		return core.RawEntry{}, core.NoTimestampFound(s.source)
	}
	return core.RawEntry{}, io.EOF
}

// Lines returns the number of physical lines read so far
func (s *Splitter) Lines() int {
	return s.line
}

// Discarded returns the number of lines dropped because no timestamp had
// been seen yet
func (s *Splitter) Discarded() int {
	return s.discarded
}

// consume processes one physical line. It returns the previous entry when the
// line starts a new one.
func (s *Splitter) consume(text string) (core.RawEntry, bool) {
	format, ts, start, ok := Match(trimTerminator(text))
	if !ok {
		if s.current == nil {
			s.discarded++
			return core.RawEntry{}, false
		}
		s.builder.WriteString(text)
		return core.RawEntry{}, false
	}

	var prev core.RawEntry
	hadPrev := s.current != nil
	if hadPrev {
		prev = s.flush()
	}

	s.current = &core.RawEntry{
		Timestamp: ts,
		Format:    int(format),
		Source:    s.source,
		Line:      s.line,
	}
	s.builder.WriteString(text[start:])
	return prev, hadPrev
}

func (s *Splitter) flush() core.RawEntry {
	entry := *s.current
	entry.Message = s.builder.String()
	s.current = nil
	s.builder.Reset()
	s.emitted++
	return entry
}

func (s *Splitter) finish(err error) {
	s.done = true
	if err != io.EOF {
		s.err = core.StreamRead(s.source, err)
	}
}

func trimTerminator(text string) string {
	text = strings.TrimSuffix(text, "\n")
	return strings.TrimSuffix(text, "\r")
}
