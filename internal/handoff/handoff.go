// Package handoff is the one-shot producer/consumer handoff between the
// aggregation worker and the presentation shell.
package handoff

import "sync"

// Result carries either the finished dataset or the failure that replaced
// it; never both.
type Result[T any] struct {
	Value T
	Err   error
}

// Slot is published to exactly once. Readers poll TryGet until something is
// there; there is no blocking receive because the shell's contract is a
// fixed-interval poll with a one-time loading→ready transition.
type Slot[T any] struct {
	mu        sync.Mutex
	published bool
	res       Result[T]
}

func New[T any]() *Slot[T] {
	return &Slot[T]{}
}

// Publish stores the result. A second publish is a programming error.
func (s *Slot[T]) Publish(res Result[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.published {
		panic("handoff: slot published twice")
	}
	s.published = true
	s.res = res
}

// TryGet returns the result if it has been published.
func (s *Slot[T]) TryGet() (Result[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.res, s.published
}
