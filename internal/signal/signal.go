// Package signal ties contexts to process termination signals.
package signal

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// NotifyContext returns a copy of parent that is cancelled on SIGINT or
// SIGTERM. Call stop to release the signal handler.
func NotifyContext(parent context.Context) (ctx context.Context, stop context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
