/*
Package consumer runs the single consumer loop of an mpsc channel.

A Consumer owns an mpsc.Receiver and passes every message to a Handler until
the channel is closed and drained. Handler errors and panics are counted,
logged and reported per message instead of killing the loop, so one bad
message does not strand the rest of the queue.

Basic Usage:

	tx, rx := mpsc.New[Event]()

	c, err := consumer.New(rx, func(e Event) error {
		return store(e)
	})
	if err != nil {
		return err
	}
	done := c.Start()

	// producers send on tx and its clones, then close them
	tx.Close()

	summary := <-done
	fmt.Printf("handled=%d failed=%d\n", summary.Handled, summary.Failed)

Per-message Results:

	config := consumer.Config[Event]{
		Name: "events",
		OnResult: func(r consumer.Result[Event]) {
			if r.Error != nil {
				deadLetter.Send(r.Message)
			}
		},
	}

Set StopOnError to end the run at the first failure; Run then returns an
error wrapping the handler's error and unreceived messages stay in the
channel.
*/
package consumer
