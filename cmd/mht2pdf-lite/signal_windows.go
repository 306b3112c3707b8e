//go:build windows

package main

import (
	"context"
	"os"
	"os/signal"
)

// interruptContext derives a context that ends when the process is asked
// to stop. Windows delivers os.Interrupt only; there is no SIGTERM.
func interruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}
