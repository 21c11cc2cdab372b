package mpsc

import (
	"iter"
)

// Receiver is the single consumer handle of a channel. Its methods must only
// be called from one goroutine at a time; the private buffer is not
// synchronized.
type Receiver[T any] struct {
	shared *shared[T]

	// buffer holds messages already taken off the shared queue, oldest
	// first, starting at head.
	buffer []T
	head   int

	closedSeen bool
}

// Recv returns the next message in send order. When the channel is empty it
// blocks until a message arrives. It returns the zero value and false once
// every Sender has been closed and all messages have been received; every
// later call returns false as well.
func (r *Receiver[T]) Recv() (T, bool) {
	if v, ok := r.popBuffered(); ok {
		return v, true
	}

	sh := r.shared
	sh.mu.Lock()
	sh.lockedReceives.Add(1)
	for {
		if len(sh.inner.queue) > 0 {
			v, moved := r.takeLocked()
			sh.mu.Unlock()
			r.recordSlow(moved)
			return v, true
		}

		if sh.inner.senders == 0 {
			sh.mu.Unlock()
			r.observeClosed()
			var zero T
			return zero, false
		}

		sh.waits.Add(1)
		sh.inst.waited()
		sh.ready.Wait()
	}
}

// TryRecv is the non-blocking form of Recv. It returns (v, true, nil) when a
// message is available, (zero, false, nil) when the channel is empty but
// still open, and (zero, false, ErrChannelClosed) once the channel is closed
// and drained.
func (r *Receiver[T]) TryRecv() (T, bool, error) {
	if v, ok := r.popBuffered(); ok {
		return v, true, nil
	}

	var zero T
	sh := r.shared
	sh.mu.Lock()
	sh.lockedReceives.Add(1)
	if len(sh.inner.queue) > 0 {
		v, moved := r.takeLocked()
		sh.mu.Unlock()
		r.recordSlow(moved)
		return v, true, nil
	}
	closed := sh.inner.senders == 0
	sh.mu.Unlock()

	if closed {
		r.observeClosed()
		return zero, false, ErrChannelClosed
	}
	return zero, false, nil
}

// All returns an iterator over received messages. Iteration blocks like Recv
// and ends when the channel is closed and drained. Breaking out of the loop
// early leaves the remaining messages in the channel.
//
//	for msg := range rx.All() {
//		handle(msg)
//	}
func (r *Receiver[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := r.Recv()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Len returns the number of messages sent but not yet received.
func (r *Receiver[T]) Len() int {
	sh := r.shared
	sh.mu.Lock()
	queued := len(sh.inner.queue)
	sh.mu.Unlock()
	return queued + len(r.buffer) - r.head
}

// Closed reports whether every Sender has been closed. Messages may still be
// waiting to be received.
func (r *Receiver[T]) Closed() bool {
	sh := r.shared
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.inner.senders == 0
}

// Stats returns a snapshot of the channel counters.
func (r *Receiver[T]) Stats() Stats {
	return r.shared.stats()
}

// popBuffered serves a message from the private buffer without locking.
func (r *Receiver[T]) popBuffered() (T, bool) {
	var zero T
	if r.head == len(r.buffer) {
		return zero, false
	}

	v := r.buffer[r.head]
	r.buffer[r.head] = zero
	r.head++
	if r.head == len(r.buffer) {
		r.buffer = r.buffer[:0]
		r.head = 0
	}

	r.shared.receives.Add(1)
	r.shared.fastReceives.Add(1)
	r.shared.inst.receivedFast()
	return v, true
}

// takeLocked pops the front of the shared queue. If more messages remain it
// swaps the whole queue with the (empty) private buffer, so the receiver can
// serve them without the lock and the queue reuses the buffer's backing
// array. It returns the number of messages moved. sh.mu must be held and
// the private buffer must be empty.
func (r *Receiver[T]) takeLocked() (T, int) {
	var zero T
	sh := r.shared
	q := sh.inner.queue

	v := q[0]
	q[0] = zero

	if len(q) == 1 {
		sh.inner.queue = q[:0]
		return v, 0
	}

	sh.inner.queue = r.buffer[:0]
	r.buffer = q
	r.head = 1
	return v, len(q) - 1
}

func (r *Receiver[T]) recordSlow(moved int) {
	sh := r.shared
	sh.receives.Add(1)
	sh.inst.receivedSlow()
	if moved > 0 {
		sh.bulkTransfers.Add(1)
		sh.bulkTransferred.Add(int64(moved))
		sh.inst.bulkTransferred(moved)
	}
}

func (r *Receiver[T]) observeClosed() {
	if r.closedSeen {
		return
	}
	r.closedSeen = true
	r.shared.logger.Debug().Int64("received", r.shared.receives.Load()).Msg("channel closed and drained")
}
