package split

import (
	"errors"
	"io"
	"strings"
	"testing"

	"logmerge/src/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, s *Splitter) ([]core.RawEntry, error) {
	t.Helper()
	var entries []core.RawEntry
	for {
		entry, err := s.Next()
		if err != nil {
			return entries, err
		}
		entries = append(entries, entry)
	}
}

func TestSplitter_MultiLine(t *testing.T) {
	input := "2020-01-01 10:00:00,001 ERROR boom\n" +
		"java.lang.RuntimeException: boom\n" +
		"\tat Foo.bar(Foo.java:1)\n" +
		"2020-01-01 10:00:01,000 INFO next\n"

	entries, err := collect(t, New(strings.NewReader(input), "server.log"))
	assert.ErrorIs(t, err, io.EOF)
	require.Len(t, entries, 2)

	assert.Equal(t, "2020-01-01 10:00:00,001", entries[0].Timestamp)
	assert.Equal(t, int(FormatFull), entries[0].Format)
	assert.Equal(t, "ERROR boom\njava.lang.RuntimeException: boom\n\tat Foo.bar(Foo.java:1)\n", entries[0].Message)
	assert.Equal(t, "server.log", entries[0].Source)
	assert.Equal(t, 1, entries[0].Line)

	assert.Equal(t, "INFO next\n", entries[1].Message)
	assert.Equal(t, 4, entries[1].Line)
}

func TestSplitter_PreservesTerminators(t *testing.T) {
	input := "2020-01-01 10:00:00 a\r\ncontinued\r\n2020-01-01 10:00:01 b"

	entries, err := collect(t, New(strings.NewReader(input), "crlf.log"))
	assert.ErrorIs(t, err, io.EOF)
	require.Len(t, entries, 2)
	assert.Equal(t, "a\r\ncontinued\r\n", entries[0].Message)
	assert.Equal(t, "b", entries[1].Message)
}

func TestSplitter_DiscardsLeadingLines(t *testing.T) {
	input := "banner\n\n2020-01-01 10:00:00 first\n"

	s := New(strings.NewReader(input), "x.log")
	entries, err := collect(t, s)
	assert.ErrorIs(t, err, io.EOF)
	require.Len(t, entries, 1)
	assert.Equal(t, "first\n", entries[0].Message)
	assert.Equal(t, 2, s.Discarded())
	assert.Equal(t, 3, s.Lines())
}

func TestSplitter_NoTimestampFound(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "Empty", input: ""},
		{name: "NoTimestamps", input: "just\nsome\ntext\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			entries, err := collect(t, New(strings.NewReader(tc.input), "empty.log"))
			assert.Empty(t, entries)
			assert.ErrorIs(t, err, core.ErrNoTimestampFound)
			assert.Contains(t, err.Error(), "empty.log")
		})
	}
}

func TestSplitter_OrderFollowsFile(t *testing.T) {
	input := "2020-01-01 10:00:05 late\n2020-01-01 10:00:01 early\n"

	entries, err := collect(t, New(strings.NewReader(input), "x.log"))
	assert.ErrorIs(t, err, io.EOF)
	require.Len(t, entries, 2)
	assert.Equal(t, "late\n", entries[0].Message)
	assert.Equal(t, "early\n", entries[1].Message)
}

type failingReader struct {
	data string
	read bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.read {
		return 0, errors.New("disk on fire")
	}
	r.read = true
	return copy(p, r.data), nil
}

func TestSplitter_ReadFailure(t *testing.T) {
	r := &failingReader{data: "2020-01-01 10:00:00 a\n2020-01-01 10:00:01 b\ntrailing"}

	entries, err := collect(t, New(r, "bad.log"))
	require.Len(t, entries, 2)
	assert.Equal(t, "b\ntrailing", entries[1].Message)
	assert.ErrorIs(t, err, core.ErrStreamRead)
	assert.Contains(t, err.Error(), "disk on fire")

	// Subsequent calls keep reporting the failure
	s := New(&failingReader{}, "bad.log")
	_, err = s.Next()
	assert.ErrorIs(t, err, core.ErrStreamRead)
}
