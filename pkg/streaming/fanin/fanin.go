package fanin

import (
	"github.com/vnykmshr/handoff/pkg/common/validation"
	"github.com/vnykmshr/handoff/pkg/streaming/mpsc"
)

// Merge forwards every value from sources into a single Receiver. Each source
// is drained by its own goroutine holding its own Sender clone; the Receiver
// reports closure once every source has been closed and drained. Values from
// one source keep their order; values from different sources interleave in
// arrival order.
//
// A source that is never closed keeps its goroutine, and the channel, alive.
func Merge[T any](sources ...<-chan T) *mpsc.Receiver[T] {
	tx, rx := mpsc.New[T]()
	forward(tx, sources)
	return rx
}

// MergeWithConfig is Merge with a configured channel.
func MergeWithConfig[T any](config mpsc.Config, sources ...<-chan T) (*mpsc.Receiver[T], error) {
	tx, rx, err := mpsc.NewWithConfig[T](config)
	if err != nil {
		return nil, err
	}
	forward(tx, sources)
	return rx, nil
}

func forward[T any](tx *mpsc.Sender[T], sources []<-chan T) {
	for _, src := range sources {
		go pump(src, tx.Clone())
	}
	// The clones now carry the channel; with no sources this closes it.
	tx.Close()
}

func pump[T any](src <-chan T, tx *mpsc.Sender[T]) {
	defer tx.Close()
	for v := range src {
		tx.Send(v)
	}
}

// Senders creates a channel with n Senders, for n producers that each own and
// close one handle.
func Senders[T any](n int) ([]*mpsc.Sender[T], *mpsc.Receiver[T], error) {
	return SendersWithConfig[T](n, mpsc.DefaultConfig())
}

// SendersWithConfig is Senders with a configured channel.
func SendersWithConfig[T any](n int, config mpsc.Config) ([]*mpsc.Sender[T], *mpsc.Receiver[T], error) {
	if err := validation.ValidatePositive("fanin", "n", n); err != nil {
		return nil, nil, err
	}

	tx, rx, err := mpsc.NewWithConfig[T](config)
	if err != nil {
		return nil, nil, err
	}

	senders := make([]*mpsc.Sender[T], n)
	senders[0] = tx
	for i := 1; i < n; i++ {
		senders[i] = tx.Clone()
	}
	return senders, rx, nil
}

// Collect receives until the channel is closed and returns everything
// received, in receive order.
func Collect[T any](rx *mpsc.Receiver[T]) []T {
	var out []T
	for v := range rx.All() {
		out = append(out, v)
	}
	return out
}
