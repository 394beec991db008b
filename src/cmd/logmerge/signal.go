// FILE: logmerge/src/cmd/logmerge/signal.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lixenwraith/log"
)

// SignalHandler cancels the merge on termination signals. SIGPIPE is caught
// so that writing to a closed pipe returns EPIPE instead of killing the
// process.
type SignalHandler struct {
	logger  *log.Logger
	sigChan chan os.Signal
	done    chan struct{}
}

// NewSignalHandler registers for signals
func NewSignalHandler(logger *log.Logger) *SignalHandler {
	sh := &SignalHandler{
		logger:  logger,
		sigChan: make(chan os.Signal, 1),
		done:    make(chan struct{}),
	}

	signal.Notify(sh.sigChan,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGPIPE,
	)

	return sh
}

// Handle calls cancel on the first termination signal and returns
func (sh *SignalHandler) Handle(cancel context.CancelFunc) {
	for {
		select {
		case sig := <-sh.sigChan:
			if sig == syscall.SIGPIPE {
				// Surfaces as a write error on the sink
				continue
			}
			sh.logger.Info("msg", "Signal received, stopping merge",
				"signal", sig)
			cancel()
			return
		case <-sh.done:
			return
		}
	}
}

// Stop cleans up signal handling
func (sh *SignalHandler) Stop() {
	signal.Stop(sh.sigChan)
	close(sh.done)
}
