package consumer

import (
	"fmt"
	"strings"

	"github.com/vnykmshr/handoff/pkg/streaming/mpsc"
)

// Example demonstrates draining a channel with a Consumer.
func Example() {
	tx, rx := mpsc.New[string]()

	c, err := New(rx, func(s string) error {
		fmt.Println(strings.ToUpper(s))
		return nil
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	done := c.Start()

	tx.Send("hello")
	tx.Send("world")
	tx.Close()

	summary := <-done
	fmt.Printf("handled=%d failed=%d\n", summary.Handled, summary.Failed)

	// Output:
	// HELLO
	// WORLD
	// handled=2 failed=0
}
