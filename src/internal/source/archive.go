// FILE: logmerge/src/internal/source/archive.go
package source

import (
	"archive/tar"
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"regexp"
	"sync"
	"sync/atomic"
	"time"

	"logmerge/src/internal/config"
	"logmerge/src/internal/normalize"

	"github.com/klauspost/compress/gzip"
	"github.com/lixenwraith/log"
)

var gzipMagic = []byte{0x1f, 0x8b}

// Offsets applied to server logs when the archive does not say otherwise
const (
	serverOffsetDST = -4 * 60 * 60 * 1000
	serverOffsetSTD = -5 * 60 * 60 * 1000
)

// ArchiveSource selects log members out of a test-run tar archive (optionally
// gzip-compressed). Server logs come first, then the other logs, each group in
// archive order. Every member is read in place from the archive file.
type ArchiveSource struct {
	path   string
	config *config.ArchiveConfig
	logger *log.Logger

	server  []*regexp.Regexp
	other   []*regexp.Regexp
	skip    []*regexp.Regexp
	prefix  *regexp.Regexp
	members []string

	// Statistics
	bytesRead    atomic.Uint64
	streams      atomic.Int64
	serverOffset atomic.Int64
	startTime    time.Time
}

// NewArchiveSource validates the member patterns for path
func NewArchiveSource(archivePath string, cfg *config.ArchiveConfig, logger *log.Logger) (*ArchiveSource, error) {
	if cfg == nil {
		cfg = config.DefaultArchiveConfig()
	}

	as := &ArchiveSource{
		path:      archivePath,
		config:    cfg,
		logger:    logger,
		startTime: time.Now(),
	}

	var err error
	if as.server, err = compileAll(cfg.ServerPatterns); err != nil {
		return nil, fmt.Errorf("server_patterns: %w", err)
	}
	if as.other, err = compileAll(cfg.OtherPatterns); err != nil {
		return nil, fmt.Errorf("other_patterns: %w", err)
	}
	if as.skip, err = compileAll(cfg.SkipPatterns); err != nil {
		return nil, fmt.Errorf("skip_patterns: %w", err)
	}
	if cfg.PrefixPattern != "" {
		if as.prefix, err = regexp.Compile(cfg.PrefixPattern); err != nil {
			return nil, fmt.Errorf("prefix_pattern: %w", err)
		}
	}
	return as, nil
}

// IsArchive reports whether path is a tar archive, plain or gzip-compressed
func IsArchive(p string) (bool, error) {
	f, err := os.Open(p)
	if err != nil {
		return false, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	var r io.Reader = br
	if magic, err := br.Peek(2); err == nil && bytes.Equal(magic, gzipMagic) {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return false, nil
		}
		defer gz.Close()
		r = gz
	}

	_, err = tar.NewReader(r).Next()
	return err == nil, nil
}

type member struct {
	name   string
	offset int64
	size   int64
	mtime  time.Time
}

// Open indexes the archive and opens one stream per selected member
func (as *ArchiveSource) Open(ctx context.Context) ([]Stream, error) {
	file, cleanup, err := as.openSeekable(ctx)
	if err != nil {
		return nil, err
	}
	shared := &sharedFile{closer: cleanup, refs: 1}

	members, err := index(file)
	if err != nil {
		shared.release()
		return nil, fmt.Errorf("reading archive %s: %w", as.path, err)
	}
	if len(members) == 0 {
		shared.release()
		return nil, fmt.Errorf("archive %s is empty", as.path)
	}

	if as.prefix != nil {
		names := make([]string, len(members))
		for i, m := range members {
			names[i] = m.name
		}
		if prefix := commonPrefix(names); !as.prefix.MatchString(prefix) {
			shared.release()
			return nil, fmt.Errorf("%s isn't a valid test-run archive (common prefix %q)", as.path, prefix)
		}
	}

	serverOffset, err := as.resolveServerOffset(members[0].mtime)
	if err != nil {
		shared.release()
		return nil, err
	}
	as.serverOffset.Store(serverOffset)

	var server, other []member
	for _, m := range members {
		switch {
		case as.matches(as.skip, m.name):
		case as.matches(as.server, m.name):
			server = append(server, m)
		case as.matches(as.other, m.name):
			other = append(other, m)
		}
	}

	streams := make([]Stream, 0, len(server)+len(other))
	add := func(m member, offset int64) {
		shared.acquire()
		streams = append(streams, Stream{
			Reader: &countingReader{
				r:       io.NewSectionReader(file, m.offset, m.size),
				closer:  shared,
				counter: &as.bytesRead,
			},
			OffsetMillis: offset,
			Label:        path.Base(m.name),
			Origin:       m.name,
		})
		as.members = append(as.members, m.name)
	}
	for _, m := range server {
		add(m, serverOffset)
	}
	for _, m := range other {
		add(m, 0)
	}
	// Drop the reference held while indexing
	shared.release()

	if len(streams) == 0 {
		return nil, fmt.Errorf("archive %s contains no recognized log files", as.path)
	}

	as.streams.Store(int64(len(streams)))
	as.logger.Info("msg", "Archive indexed",
		"component", "archive_source",
		"path", as.path,
		"members", len(members),
		"server_logs", len(server),
		"other_logs", len(other),
		"server_offset", normalize.FormatOffset(serverOffset))
	return streams, nil
}

// GetStats returns the source's statistics
func (as *ArchiveSource) GetStats() SourceStats {
	return SourceStats{
		Type:      "archive",
		Streams:   int(as.streams.Load()),
		BytesRead: as.bytesRead.Load(),
		StartTime: as.startTime,
		Details: map[string]any{
			"path":          as.path,
			"members":       as.members,
			"server_offset": as.serverOffset.Load(),
		},
	}
}

// resolveServerOffset uses the configured offset, or guesses US Eastern time
// from whether the first member was written during daylight-saving time in
// the local zone.
func (as *ArchiveSource) resolveServerOffset(mtime time.Time) (int64, error) {
	if as.config.ServerOffset != "" {
		ms, err := normalize.ParseOffset(as.config.ServerOffset)
		if err != nil {
			return 0, fmt.Errorf("archive server_offset: %w", err)
		}
		return ms, nil
	}
	if mtime.Local().IsDST() {
		return serverOffsetDST, nil
	}
	return serverOffsetSTD, nil
}

func (as *ArchiveSource) matches(patterns []*regexp.Regexp, name string) bool {
	for _, re := range patterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// openSeekable returns the archive as random-access data. Compressed archives
// are inflated into a temporary file removed by the returned closer.
func (as *ArchiveSource) openSeekable(ctx context.Context) (*os.File, io.Closer, error) {
	f, err := os.Open(as.path)
	if err != nil {
		return nil, nil, err
	}

	magic := make([]byte, 2)
	if _, err := io.ReadFull(f, magic); err != nil || !bytes.Equal(magic, gzipMagic) {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			f.Close()
			return nil, nil, err
		}
		return f, f, nil
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, nil, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", as.path, err)
	}
	defer gz.Close()

	tmp, err := os.CreateTemp("", "logmerge-*.tar")
	if err != nil {
		return nil, nil, err
	}
	cleanup := &tempFile{File: tmp}

	if _, err := io.Copy(tmp, &ctxReader{ctx: ctx, r: gz}); err != nil {
		cleanup.Close()
		return nil, nil, fmt.Errorf("inflating %s: %w", as.path, err)
	}

	as.logger.Debug("msg", "Inflated compressed archive",
		"component", "archive_source",
		"path", as.path,
		"temp", tmp.Name())
	return tmp, cleanup, nil
}

// index lists regular members with the position of their data
func index(r io.ReadSeeker) ([]member, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	pos := &positionReader{r: r}
	tr := tar.NewReader(pos)
	var members []member
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return members, nil
		}
		if err != nil {
			return nil, err
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		members = append(members, member{
			name:   hdr.Name,
			offset: pos.n,
			size:   hdr.Size,
			mtime:  hdr.ModTime,
		})
	}
}

func commonPrefix(names []string) string {
	if len(names) == 0 {
		return ""
	}
	prefix := names[0]
	for _, n := range names[1:] {
		i := 0
		for i < len(prefix) && i < len(n) && prefix[i] == n[i] {
			i++
		}
		prefix = prefix[:i]
	}
	return prefix
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for i, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern[%d] '%s': %w", i, p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

// positionReader tracks how far tar.Reader has consumed the archive. Only Read
// is exposed so tar skips member data by reading it, keeping n exact.
type positionReader struct {
	r io.Reader
	n int64
}

func (p *positionReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.n += int64(n)
	return n, err
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

// sharedFile closes the archive once the last member stream is closed
type sharedFile struct {
	mu     sync.Mutex
	refs   int
	closer io.Closer
	closed bool
}

func (s *sharedFile) acquire() {
	s.mu.Lock()
	s.refs++
	s.mu.Unlock()
}

func (s *sharedFile) release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refs > 0 {
		s.refs--
	}
	if s.refs > 0 || s.closed {
		return nil
	}
	s.closed = true
	return s.closer.Close()
}

// Close releases one member's reference
func (s *sharedFile) Close() error {
	return s.release()
}

type tempFile struct {
	*os.File
}

func (t *tempFile) Close() error {
	err := t.File.Close()
	if rmErr := os.Remove(t.Name()); err == nil {
		err = rmErr
	}
	return err
}
