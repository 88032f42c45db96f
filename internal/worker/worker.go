// Package worker provides concurrency primitives for parallel file analysis.
package worker

import "context"

// Semaphore limits how many files are analyzed at once.
type Semaphore struct {
	permits chan struct{}
}

// NewSemaphore creates a semaphore with the given number of permits.
// A count below one is treated as one.
func NewSemaphore(count int) *Semaphore {
	if count <= 0 {
		count = 1
	}
	s := &Semaphore{permits: make(chan struct{}, count)}
	for i := 0; i < count; i++ {
		s.permits <- struct{}{}
	}
	return s
}

// Acquire takes a permit, blocking until one is available or the
// context is cancelled.
func (s *Semaphore) Acquire(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.permits:
		return nil
	}
}

// Release returns a permit to the semaphore.
func (s *Semaphore) Release() {
	select {
	case s.permits <- struct{}{}:
	default:
	}
}
