// FILE: logmerge/src/internal/source/stdin.go
package source

import (
	"os"
	"sync/atomic"
)

// StdinLabel is the label of entries read from standard input
const StdinLabel = "stdin"

func newStdinStream(offsetMillis int64, counter *atomic.Uint64) Stream {
	return Stream{
		// Stdin is not ours to close
		Reader:       &countingReader{r: os.Stdin, counter: counter},
		OffsetMillis: offsetMillis,
		Label:        StdinLabel,
		Origin:       StdinPath,
	}
}
