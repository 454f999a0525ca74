// Package reveal separates computing an outcome from disclosing it. The
// outcome is fully resolved and persisted before it is scheduled; the delay
// only controls when observers learn about it.
package reveal

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Scheduler holds the disclosure delay and tracks pending reveals so they
// can be flushed on shutdown
type Scheduler struct {
	delay time.Duration

	mu      sync.Mutex
	pending map[string]func()
	closed  bool
}

// NewScheduler creates a scheduler. A zero or negative delay discloses
// outcomes synchronously.
func NewScheduler(delay time.Duration) *Scheduler {
	if delay < 0 {
		delay = 0
	}
	return &Scheduler{
		delay:   delay,
		pending: make(map[string]func()),
	}
}

// Delay returns the configured disclosure delay
func (s *Scheduler) Delay() time.Duration {
	return s.delay
}

// RevealTime returns when an outcome resolved at from will be disclosed
func (s *Scheduler) RevealTime(from time.Time) time.Time {
	return from.Add(s.delay)
}

// Len returns the number of reveals still pending
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Flush discloses every pending reveal now
func (s *Scheduler) Flush() {
	s.mu.Lock()
	fires := make([]func(), 0, len(s.pending))
	for _, fire := range s.pending {
		fires = append(fires, fire)
	}
	s.mu.Unlock()

	for _, fire := range fires {
		fire()
	}
	if len(fires) > 0 {
		slog.Debug(LogMsgFlushed, "count", len(fires))
	}
}

// Close flushes pending reveals. Anything scheduled afterwards is disclosed
// immediately.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.Flush()
}

func (s *Scheduler) track(id string, fire func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.pending[id] = fire
	return true
}

func (s *Scheduler) forget(id string) {
	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()
}

// Pending is a resolved outcome awaiting disclosure
type Pending[T any] struct {
	id       string
	value    T
	revealAt time.Time
	done     chan struct{}
	once     sync.Once
	timer    *time.Timer
	timerMu  sync.Mutex
	onReveal func(T)
}

// Schedule registers value for disclosure at revealAt. onReveal runs exactly
// once, before Done is closed, either from a timer, from Flush, or inline
// when the delay has already elapsed.
func Schedule[T any](s *Scheduler, id string, revealAt time.Time, value T, onReveal func(T)) *Pending[T] {
	p := &Pending[T]{
		id:       id,
		value:    value,
		revealAt: revealAt,
		done:     make(chan struct{}),
		onReveal: onReveal,
	}

	fire := func() {
		p.once.Do(func() {
			p.timerMu.Lock()
			if p.timer != nil {
				p.timer.Stop()
			}
			p.timerMu.Unlock()

			s.forget(id)
			if p.onReveal != nil {
				p.onReveal(p.value)
			}
			close(p.done)
			slog.Debug(LogMsgRevealFired, "id", id)
		})
	}

	wait := time.Until(revealAt)
	if wait <= 0 || !s.track(id, fire) {
		fire()
		return p
	}

	p.timerMu.Lock()
	p.timer = time.AfterFunc(wait, fire)
	p.timerMu.Unlock()
	slog.Debug(LogMsgRevealScheduled, "id", id, "reveal_at", revealAt)
	return p
}

// ID identifies the pending outcome
func (p *Pending[T]) ID() string { return p.id }

// RevealAt is when the outcome will be disclosed
func (p *Pending[T]) RevealAt() time.Time { return p.revealAt }

// Done is closed once the outcome has been disclosed
func (p *Pending[T]) Done() <-chan struct{} { return p.done }

// Revealed reports whether disclosure has happened
func (p *Pending[T]) Revealed() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Wait blocks until disclosure or ctx is done. Cancelling ctx does not
// cancel the outcome, which is already committed.
func (p *Pending[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.value, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result returns the resolved outcome without waiting for disclosure
func (p *Pending[T]) Result() T { return p.value }
