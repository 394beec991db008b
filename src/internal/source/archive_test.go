// FILE: logmerge/src/internal/source/archive_test.go
package source

import (
	"archive/tar"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"logmerge/src/internal/config"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type archiveMember struct {
	name    string
	content string
}

const runPrefix = "tmp/run-42/apprunner/node1/"

func writeArchive(t *testing.T, dir, name string, compress bool, members []archiveMember) string {
	t.Helper()
	p := filepath.Join(dir, name)
	f, err := os.Create(p)
	require.NoError(t, err)

	var w io.Writer = f
	var gz *gzip.Writer
	if compress {
		gz = gzip.NewWriter(f)
		w = gz
	}

	tw := tar.NewWriter(w)
	mtime := time.Date(2023, time.January, 15, 12, 0, 0, 0, time.Local)
	for _, m := range members {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     m.name,
			Mode:     0644,
			Size:     int64(len(m.content)),
			ModTime:  mtime,
			Typeflag: tar.TypeReg,
		}))
		_, err := tw.Write([]byte(m.content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	if gz != nil {
		require.NoError(t, gz.Close())
	}
	require.NoError(t, f.Close())
	return p
}

func testMembers() []archiveMember {
	return []archiveMember{
		{name: runPrefix + "apprunner.log", content: "2023-01-15 10:00:00,000 runner\n"},
		{name: runPrefix + "serverlogs/voltdbroot-host1-log.txt", content: "2023-01-15 15:00:00,000 server\n"},
		{name: runPrefix + "client1.Benchmark.out", content: "2023-01-15 10:00:01,000 bench\n"},
		{name: runPrefix + "client1.Benchmark.jstack", content: "thread dump\n"},
		{name: runPrefix + "README", content: "not a log\n"},
	}
}

func TestIsArchive(t *testing.T) {
	dir := t.TempDir()
	plain := writeFile(t, dir, "a.log", "2023-01-15 10:00:00,000 x\n")
	zipped := writeGzipFile(t, dir, "a.log.gz", "2023-01-15 10:00:00,000 x\n")
	tarball := writeArchive(t, dir, "run.tar", false, testMembers())
	tgz := writeArchive(t, dir, "run.tgz", true, testMembers())
	empty := writeFile(t, dir, "empty.log", "")

	testCases := []struct {
		name     string
		path     string
		expected bool
	}{
		{name: "PlainLog", path: plain, expected: false},
		{name: "GzipLog", path: zipped, expected: false},
		{name: "Tar", path: tarball, expected: true},
		{name: "TarGz", path: tgz, expected: true},
		{name: "Empty", path: empty, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := IsArchive(tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ok)
		})
	}

	_, err := IsArchive(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestArchiveSource_Open(t *testing.T) {
	for _, compress := range []bool{false, true} {
		name := "Tar"
		if compress {
			name = "TarGz"
		}
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			p := writeArchive(t, dir, "run.tar", compress, testMembers())

			cfg := config.DefaultArchiveConfig()
			cfg.ServerOffset = "-05:00"
			src, err := NewArchiveSource(p, cfg, newTestLogger())
			require.NoError(t, err)

			streams, err := src.Open(context.Background())
			require.NoError(t, err)
			require.Len(t, streams, 3)

			// Server logs first, then other logs in archive order
			assert.Equal(t, "voltdbroot-host1-log.txt", streams[0].Label)
			assert.Equal(t, int64(-5*3600*1000), streams[0].OffsetMillis)
			assert.Equal(t, "apprunner.log", streams[1].Label)
			assert.Equal(t, int64(0), streams[1].OffsetMillis)
			assert.Equal(t, "client1.Benchmark.out", streams[2].Label)

			contents := make([]string, len(streams))
			for i, s := range streams {
				data, err := io.ReadAll(s.Reader)
				require.NoError(t, err)
				contents[i] = string(data)
			}
			assert.Equal(t, "2023-01-15 15:00:00,000 server\n", contents[0])
			assert.Equal(t, "2023-01-15 10:00:00,000 runner\n", contents[1])
			assert.Equal(t, "2023-01-15 10:00:01,000 bench\n", contents[2])

			require.NoError(t, CloseAll(streams))

			stats := src.GetStats()
			assert.Equal(t, "archive", stats.Type)
			assert.Equal(t, 3, stats.Streams)
			assert.Equal(t, int64(-5*3600*1000), stats.Details["server_offset"])
		})
	}
}

func TestArchiveSource_DerivedServerOffset(t *testing.T) {
	dir := t.TempDir()
	p := writeArchive(t, dir, "run.tar", false, testMembers())

	src, err := NewArchiveSource(p, config.DefaultArchiveConfig(), newTestLogger())
	require.NoError(t, err)

	streams, err := src.Open(context.Background())
	require.NoError(t, err)
	defer CloseAll(streams)

	mtime := time.Date(2023, time.January, 15, 12, 0, 0, 0, time.Local)
	expected := int64(serverOffsetSTD)
	if mtime.IsDST() {
		expected = serverOffsetDST
	}
	assert.Equal(t, expected, streams[0].OffsetMillis)
}

func TestArchiveSource_InvalidPrefix(t *testing.T) {
	dir := t.TempDir()
	p := writeArchive(t, dir, "other.tar", false, []archiveMember{
		{name: "logs/serverlogs/volt-log.txt", content: "2023-01-15 10:00:00,000 x\n"},
	})

	src, err := NewArchiveSource(p, config.DefaultArchiveConfig(), newTestLogger())
	require.NoError(t, err)
	_, err = src.Open(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "isn't a valid test-run archive")

	// Prefix validation can be disabled
	cfg := config.DefaultArchiveConfig()
	cfg.PrefixPattern = ""
	cfg.ServerOffset = "0"
	src, err = NewArchiveSource(p, cfg, newTestLogger())
	require.NoError(t, err)
	streams, err := src.Open(context.Background())
	require.NoError(t, err)
	require.Len(t, streams, 1)
	require.NoError(t, CloseAll(streams))
}

func TestArchiveSource_NoLogs(t *testing.T) {
	dir := t.TempDir()
	p := writeArchive(t, dir, "run.tar", false, []archiveMember{
		{name: runPrefix + "README", content: "nothing\n"},
	})

	src, err := NewArchiveSource(p, config.DefaultArchiveConfig(), newTestLogger())
	require.NoError(t, err)
	_, err = src.Open(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no recognized log files")
}

func TestNewArchiveSource_BadPattern(t *testing.T) {
	cfg := config.DefaultArchiveConfig()
	cfg.ServerPatterns = []string{"("}
	_, err := NewArchiveSource("x.tar", cfg, newTestLogger())
	assert.Error(t, err)
}

func TestSharedFile(t *testing.T) {
	c := &trackingCloser{}
	s := &sharedFile{closer: c, refs: 1}
	s.acquire()
	s.acquire()

	require.NoError(t, s.release())
	require.NoError(t, s.Close())
	assert.Equal(t, 0, c.closed)

	require.NoError(t, s.Close())
	assert.Equal(t, 1, c.closed)

	// Extra closes are no-ops
	require.NoError(t, s.Close())
	assert.Equal(t, 1, c.closed)
}

func TestCommonPrefix(t *testing.T) {
	assert.Equal(t, "tmp/a/", commonPrefix([]string{"tmp/a/x", "tmp/a/y"}))
	assert.Equal(t, "only", commonPrefix([]string{"only"}))
	assert.Equal(t, "", commonPrefix(nil))
}
