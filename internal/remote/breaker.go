package remote

import "sync/atomic"

// Breaker is a two-state circuit breaker for the remote service: available
// or unavailable. It is advisory: overlapping queries may race on it with
// last-writer-wins semantics, which is acceptable because a stale
// "available" only costs one more failed attempt and a stale "unavailable"
// only skips one remote opportunity.
type Breaker struct {
	unavailable atomic.Bool
}

// NewBreaker returns a breaker in the available state.
func NewBreaker() *Breaker {
	return &Breaker{}
}

// Available reports whether the remote should be attempted.
func (b *Breaker) Available() bool {
	return !b.unavailable.Load()
}

// MarkFailure records a timeout, network failure or server error; the remote
// stays unavailable until a call succeeds.
func (b *Breaker) MarkFailure() {
	b.unavailable.Store(true)
}

// MarkSuccess returns the breaker to the available state.
func (b *Breaker) MarkSuccess() {
	b.unavailable.Store(false)
}
