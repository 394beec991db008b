// FILE: logmerge/src/internal/service/archive_test.go
package service

import (
	"archive/tar"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

// writeTestArchive builds a compressed test-run archive with one server log
// and one runner log
func writeTestArchive(t *testing.T, dir string) string {
	t.Helper()
	const prefix = "tmp/run-7/apprunner/node1/"
	members := []struct{ name, content string }{
		{prefix + "serverlogs/voltdbroot-host1-log.txt", "2023-01-15 15:00:00,500 server\n"},
		{prefix + "apprunner.log", "2023-01-15 10:00:00,000 runner\n"},
	}

	p := filepath.Join(dir, "run.tgz")
	f, err := os.Create(p)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	for _, m := range members {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     m.name,
			Mode:     0644,
			Size:     int64(len(m.content)),
			ModTime:  time.Date(2023, time.January, 15, 12, 0, 0, 0, time.UTC),
			Typeflag: tar.TypeReg,
		}))
		_, err := tw.Write([]byte(m.content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
	return p
}
