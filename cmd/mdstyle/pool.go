package main

import (
	"errors"
	"fmt"
	"runtime"
)

// MaxWorkers bounds --workers.
const MaxWorkers = 64

// ErrInvalidWorkerCount is returned for a --workers value out of range.
var ErrInvalidWorkerCount = errors.New("invalid worker count")

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, MaxWorkers)
	}
	return nil
}

// resolvePoolSize determines the number of render workers.
// Priority: explicit flag > GOMAXPROCS (set from the CPU quota by automaxprocs).
// Rendering is CPU-bound and the Service is shared, so one worker per
// available CPU, capped at 16.
func resolvePoolSize(flagWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}

	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	if n > 16 {
		return 16
	}
	return n
}
