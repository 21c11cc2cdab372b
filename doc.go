/*
Package handoff provides an unbounded multi-producer, single-consumer channel
for Go and a few building blocks around it.

Core (pkg/streaming/mpsc):
  - Sender: cloneable producer handle; Send never blocks
  - Receiver: single consumer; Recv blocks until a message arrives or every
    Sender is closed, and serves backlogs from a private buffer without locking

Streaming (pkg/streaming):
  - fanin: merge Go channels or hand out one Sender per producer
  - consumer: drain a Receiver through a handler with panic recovery

Scheduling (pkg/scheduling):
  - feed: send a message on a cron schedule

Example usage:

	import "github.com/vnykmshr/handoff/pkg/streaming/mpsc"

	tx, rx := mpsc.New[string]()
	go func() {
		defer tx.Close()
		tx.Send("hello")
	}()

	for msg := range rx.All() {
		fmt.Println(msg)
	}
*/
package handoff
