package mpsc

import (
	"sync/atomic"

	gferrors "github.com/vnykmshr/handoff/pkg/common/errors"
)

// Sender is a producer handle. Any number of Senders may exist for one
// channel; each live Sender keeps the channel open. Send may be called from
// any goroutine, including concurrently on the same Sender.
//
// Every Sender, including each one returned by Clone, must eventually be
// closed, or the Receiver will block forever once the queue is drained.
type Sender[T any] struct {
	shared *shared[T]
	closed atomic.Bool
}

// Send appends v to the channel and wakes the receiver if it is waiting.
// It never blocks beyond the brief critical section and never fails:
// messages sent after the Receiver has been abandoned are kept until the
// channel itself is garbage collected.
//
// Send panics if this Sender has been closed, including when Close on the
// same Sender wins a race with it.
func (s *Sender[T]) Send(v T) {
	s.mustBeOpen("Send")

	sh := s.shared
	sh.mu.Lock()
	s.mustBeOpenLocked("Send")
	sh.inner.queue = append(sh.inner.queue, v)
	sh.mu.Unlock()
	sh.ready.Signal()

	sh.sends.Add(1)
	sh.inst.sent()
}

// Clone returns a new Sender for the same channel. The channel stays open
// until every clone, and the original, has been closed.
//
// Clone panics if this Sender has been closed.
func (s *Sender[T]) Clone() *Sender[T] {
	s.mustBeOpen("Clone")

	sh := s.shared
	sh.mu.Lock()
	s.mustBeOpenLocked("Clone")
	sh.inner.senders++
	sh.inst.setSenders(sh.inner.senders)
	clone := &Sender[T]{shared: sh}
	sh.mu.Unlock()

	return clone
}

// Close releases this Sender. Closing the last live Sender closes the
// channel: the Receiver drains what is left and then reports closure.
// Close is idempotent; only the first call on a given Sender counts.
func (s *Sender[T]) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}

	sh := s.shared
	sh.mu.Lock()
	sh.inner.senders--
	n := sh.inner.senders
	sh.inst.setSenders(n)
	sh.mu.Unlock()

	if n == 0 {
		// The receiver may be parked waiting for data that will never come.
		sh.ready.Signal()
		sh.inst.closedChannel()
		sh.logger.Debug().Msg("last sender closed")
	}
}

// Senders returns the number of live Senders of the channel.
func (s *Sender[T]) Senders() int {
	sh := s.shared
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.inner.senders
}

func (s *Sender[T]) mustBeOpen(op string) {
	if s.closed.Load() {
		panic(closedSenderError(op))
	}
}

// mustBeOpenLocked repeats the check with sh.mu held. Close marks the handle
// before it takes the lock to release it, so a Send racing Close on the same
// handle either appends before the release or panics here; it never appends
// to a channel the Receiver has already seen closed.
func (s *Sender[T]) mustBeOpenLocked(op string) {
	if s.closed.Load() {
		s.shared.mu.Unlock()
		panic(closedSenderError(op))
	}
}

func closedSenderError(op string) error {
	return gferrors.NewOperationError("mpsc", op, gferrors.ErrClosed).
		WithContext("sender already closed")
}
