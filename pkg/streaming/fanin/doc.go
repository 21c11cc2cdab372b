// Package fanin builds fan-in pipelines on top of mpsc channels: merging Go
// channels into one Receiver, handing out one Sender per producer, and
// collecting a closed channel into a slice.
package fanin
