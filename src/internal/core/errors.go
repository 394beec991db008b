// FILE: logmerge/src/internal/core/errors.go
package core

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Error classes. Stream- and entry-level classes are recoverable: the merge of
// unrelated streams continues. ErrSinkWrite ends the run.
var (
	ErrNoTimestampFound   = errors.New("no timestamp found")
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	ErrStreamRead         = errors.New("stream read failure")
	ErrSinkWrite          = errors.New("sink write failure")
)

// MalformedTimestampError carries the offending text of a dropped entry
type MalformedTimestampError struct {
	Source    string
	Line      int
	Timestamp string
	Reason    string
}

func (e *MalformedTimestampError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("malformed timestamp %q: %s", e.Timestamp, e.Reason)
	}
	return fmt.Sprintf("%s:%d: malformed timestamp %q: %s", e.Source, e.Line, e.Timestamp, e.Reason)
}

// Is lets errors.Is match the class sentinel
func (e *MalformedTimestampError) Is(target error) bool {
	return target == ErrMalformedTimestamp
}

// NoTimestampFound reports a stream that produced no entry at all
func NoTimestampFound(source string) error {
	return errors.Wrapf(ErrNoTimestampFound, "%s", source)
}

// StreamReadError is an I/O failure of one input stream
type StreamReadError struct {
	Source string
	Err    error
}

func (e *StreamReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Source, e.Err)
}

func (e *StreamReadError) Unwrap() error { return e.Err }

func (e *StreamReadError) Is(target error) bool {
	return target == ErrStreamRead
}

// StreamRead wraps an I/O failure of one input stream
func StreamRead(source string, err error) error {
	return &StreamReadError{Source: source, Err: err}
}

// SinkWriteError is a failure writing merged output
type SinkWriteError struct {
	Sink string
	Err  error
}

func (e *SinkWriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Sink, e.Err)
}

func (e *SinkWriteError) Unwrap() error { return e.Err }

func (e *SinkWriteError) Is(target error) bool {
	return target == ErrSinkWrite
}

// SinkWrite wraps a failure writing merged output
func SinkWrite(sink string, err error) error {
	return &SinkWriteError{Sink: sink, Err: err}
}

// IsRecoverable reports whether err only affects a single entry or stream
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrMalformedTimestamp) ||
		errors.Is(err, ErrNoTimestampFound) ||
		errors.Is(err, ErrStreamRead)
}
