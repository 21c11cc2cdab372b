/*
Package streaming groups the message-passing components of handoff.

  - mpsc: unbounded multi-producer, single-consumer channel
  - fanin: merging producers into one mpsc channel
  - consumer: processing loop draining an mpsc Receiver

Basic usage:

	tx, rx := mpsc.New[Event]()

	c, _ := consumer.New(rx, func(e Event) error {
		return store(e)
	})
	done := c.Start()

	for _, e := range events {
		tx.Send(e)
	}
	tx.Close()

	summary := <-done

A channel closes when its last Sender is closed; receivers drain every
message sent before that and then observe closure.
*/
package streaming
