package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// notifyContext is canceled on interrupt or SIGTERM; pending files in a batch
// are then reported as canceled instead of rendered.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
