package mpsc

import (
	"fmt"
	"sort"
	"sync"
)

// Example demonstrates basic channel usage.
func Example() {
	tx, rx := New[string]()

	tx.Send("first")
	tx.Send("second")
	tx.Close()

	for {
		msg, ok := rx.Recv()
		if !ok {
			fmt.Println("closed")
			break
		}
		fmt.Println(msg)
	}

	// Output:
	// first
	// second
	// closed
}

// Example_fanIn demonstrates several producers feeding one consumer.
func Example_fanIn() {
	tx, rx := New[int]()

	var wg sync.WaitGroup
	for p := 0; p < 3; p++ {
		wg.Add(1)
		go func(p int, tx *Sender[int]) {
			defer wg.Done()
			defer tx.Close()
			tx.Send(p * 10)
		}(p, tx.Clone())
	}
	tx.Close()

	var got []int
	for v := range rx.All() {
		got = append(got, v)
	}
	wg.Wait()

	sort.Ints(got)
	fmt.Println(got)

	// Output:
	// [0 10 20]
}

// Example_tryRecv demonstrates non-blocking receives.
func Example_tryRecv() {
	tx, rx := New[int]()

	_, ok, err := rx.TryRecv()
	fmt.Printf("empty: ok=%v err=%v\n", ok, err)

	tx.Send(1)
	v, ok, _ := rx.TryRecv()
	fmt.Printf("value: %d ok=%v\n", v, ok)

	tx.Close()
	_, ok, err = rx.TryRecv()
	fmt.Printf("closed: ok=%v err=%v\n", ok, err)

	// Output:
	// empty: ok=false err=<nil>
	// value: 1 ok=true
	// closed: ok=false err=mpsc: channel has no live senders: resource is closed
}

// Example_stats shows the effect of the receiver's private buffer.
func Example_stats() {
	tx, rx := New[int]()
	for i := 0; i < 100; i++ {
		tx.Send(i)
	}
	tx.Close()

	for range rx.All() {
	}

	stats := rx.Stats()
	fmt.Printf("received %d messages with %d locked receives\n", stats.Receives, stats.LockedReceives)

	// Output:
	// received 100 messages with 2 locked receives
}
