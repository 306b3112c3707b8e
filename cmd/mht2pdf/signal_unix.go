//go:build !windows

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// interruptContext derives a context that ends when the process is asked
// to stop (SIGINT or SIGTERM). The returned stop releases the signal
// registration.
func interruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
