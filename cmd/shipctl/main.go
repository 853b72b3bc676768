package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"shipment-tracker/internal/core/logger"
	"shipment-tracker/internal/features/shipments/lookup"
	"shipment-tracker/internal/features/shipments/ports"
)

const (
	exitFailure  = 1
	exitNotFound = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	logger.Sync()

	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(exitCode(err))
}

// exitCode lets scripts tell "no such shipment" apart from a broken lookup.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, lookup.ErrNotFound), errors.Is(err, ports.ErrShipmentNotFound):
		return exitNotFound
	default:
		return exitFailure
	}
}
