/*
Package mpsc provides an unbounded multi-producer, single-consumer channel.

Any number of goroutines send values through Sender handles; exactly one
goroutine receives them, in send order, through the Receiver. Unlike a
buffered Go channel, sends never block and there is no capacity to size, and
unlike a closed Go channel, closure is reference counted: the channel closes
when the last Sender is closed, not when one producer decides it is done.

Basic Usage:

	tx, rx := mpsc.New[Job]()

	for i := 0; i < workers; i++ {
		go func(tx *mpsc.Sender[Job]) {
			defer tx.Close()
			for job := range produce() {
				tx.Send(job)
			}
		}(tx.Clone())
	}
	tx.Close() // the clones keep the channel open

	for job := range rx.All() {
		process(job)
	}

Sender Lifecycle:

Clone adds a Sender, Close releases one. Go has no destructors, so every
Sender, including every clone, must be closed explicitly, typically with
defer. Closing a Sender twice is harmless; sending on or cloning a closed
Sender panics with an error wrapping errors.ErrClosed.

Receiving:

Recv blocks until a message is available and returns false once all Senders
are closed and every message has been delivered. TryRecv never blocks. All
adapts Recv to a range-over-func iterator.

Messages sent before the last Sender closes are always delivered before
closure is reported. Sending after the Receiver has been abandoned is not an
error; the messages are collected along with the channel.

Performance:

The Receiver keeps a private buffer. When it has to take the lock it removes
one message and, if more are queued, swaps the whole remaining queue into its
buffer in the same critical section. A burst of M messages therefore costs
the consumer one lock acquisition instead of M, and the swap reuses backing
arrays so a steady stream allocates nothing. Stats and the optional
Prometheus metrics expose how often each path is taken.

Thread Safety:

Sender methods are safe for concurrent use. Receiver methods must be called
from one goroutine at a time.
*/
package mpsc
