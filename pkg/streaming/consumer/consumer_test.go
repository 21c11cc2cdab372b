package consumer

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/vnykmshr/handoff/internal/testutil"
	gferrors "github.com/vnykmshr/handoff/pkg/common/errors"
	"github.com/vnykmshr/handoff/pkg/metrics"
	"github.com/vnykmshr/handoff/pkg/streaming/mpsc"
)

func TestNewValidation(t *testing.T) {
	_, rx := mpsc.New[int]()
	ok := func(int) error { return nil }

	tests := []struct {
		name    string
		rx      *mpsc.Receiver[int]
		handler Handler[int]
		config  Config[int]
	}{
		{"nil receiver", nil, ok, DefaultConfig[int]()},
		{"nil handler", rx, nil, DefaultConfig[int]()},
		{"empty name", rx, ok, Config[int]{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWithConfig(tt.rx, tt.handler, tt.config)
			testutil.AssertError(t, err)
			if !errors.Is(err, gferrors.ErrInvalidConfiguration) {
				t.Errorf("expected ErrInvalidConfiguration, got %v", err)
			}
		})
	}
}

func TestRunHandlesAllMessagesInOrder(t *testing.T) {
	tx, rx := mpsc.New[int]()
	for i := 1; i <= 5; i++ {
		tx.Send(i)
	}
	tx.Close()

	var got []int
	c, err := New(rx, func(v int) error {
		got = append(got, v)
		return nil
	})
	testutil.AssertNoError(t, err)

	summary, err := c.Run()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, summary.Handled, int64(5))
	testutil.AssertEqual(t, summary.Failed, int64(0))
	testutil.AssertEqual(t, len(got), 5)
	for i, v := range got {
		testutil.AssertEqual(t, v, i+1)
	}
}

func TestRunCountsFailuresAndContinues(t *testing.T) {
	tx, rx := mpsc.New[int]()
	for i := 1; i <= 6; i++ {
		tx.Send(i)
	}
	tx.Close()

	var results []Result[int]
	c, err := NewWithConfig(rx, func(v int) error {
		if v%2 == 0 {
			return errors.New("even")
		}
		return nil
	}, Config[int]{
		Name:     "odd-only",
		OnResult: func(r Result[int]) { results = append(results, r) },
	})
	testutil.AssertNoError(t, err)

	summary, err := c.Run()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, summary.Handled, int64(3))
	testutil.AssertEqual(t, summary.Failed, int64(3))

	testutil.AssertEqual(t, len(results), 6)
	for i, r := range results {
		testutil.AssertEqual(t, r.Seq, int64(i+1))
		testutil.AssertEqual(t, r.Message, i+1)
		testutil.AssertEqual(t, r.Error != nil, r.Message%2 == 0)
	}
}

func TestRunRecoversPanics(t *testing.T) {
	tx, rx := mpsc.New[string]()
	tx.Send("ok")
	tx.Send("boom")
	tx.Send("ok")
	tx.Close()

	var failure error
	c, err := NewWithConfig(rx, func(s string) error {
		if s == "boom" {
			panic("handler exploded")
		}
		return nil
	}, Config[string]{
		Name: "panicky",
		OnResult: func(r Result[string]) {
			if r.Error != nil {
				failure = r.Error
			}
		},
	})
	testutil.AssertNoError(t, err)

	summary, err := c.Run()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, summary.Handled, int64(2))
	testutil.AssertEqual(t, summary.Failed, int64(1))

	if !errors.Is(failure, gferrors.ErrHandlerPanicked) {
		t.Fatalf("expected ErrHandlerPanicked, got %v", failure)
	}
	if !strings.Contains(failure.Error(), "handler exploded") {
		t.Errorf("panic value missing from error: %v", failure)
	}
}

func TestStopOnError(t *testing.T) {
	tx, rx := mpsc.New[int]()
	for i := 1; i <= 5; i++ {
		tx.Send(i)
	}
	tx.Close()

	errBad := errors.New("bad message")
	c, err := NewWithConfig(rx, func(v int) error {
		if v == 3 {
			return errBad
		}
		return nil
	}, Config[int]{Name: "strict", StopOnError: true})
	testutil.AssertNoError(t, err)

	summary, err := c.Run()
	testutil.AssertError(t, err)
	if !errors.Is(err, errBad) {
		t.Fatalf("expected errBad, got %v", err)
	}
	testutil.AssertEqual(t, summary.Handled, int64(2))
	testutil.AssertEqual(t, summary.Failed, int64(1))

	// Unhandled messages remain in the channel.
	testutil.AssertEqual(t, rx.Len(), 2)
}

func TestRunOnlyOnce(t *testing.T) {
	tx, rx := mpsc.New[int]()
	tx.Close()

	c, err := New(rx, func(int) error { return nil })
	testutil.AssertNoError(t, err)

	_, err = c.Run()
	testutil.AssertNoError(t, err)

	_, err = c.Run()
	if !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("expected ErrAlreadyStarted, got %v", err)
	}
}

func TestStartWithConcurrentProducers(t *testing.T) {
	tx, rx := mpsc.New[int]()

	var mu sync.Mutex
	total := 0
	c, err := New(rx, func(v int) error {
		mu.Lock()
		total += v
		mu.Unlock()
		return nil
	})
	testutil.AssertNoError(t, err)
	done := c.Start()

	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func(s *mpsc.Sender[int]) {
			defer wg.Done()
			defer s.Close()
			for i := 1; i <= 100; i++ {
				s.Send(i)
			}
		}(tx.Clone())
	}
	tx.Close()
	wg.Wait()

	select {
	case summary := <-done:
		testutil.AssertNoError(t, summary.Err)
		testutil.AssertEqual(t, summary.Handled, int64(400))
	case <-time.After(testutil.TestTimeout):
		t.Fatal("consumer did not finish")
	}

	mu.Lock()
	defer mu.Unlock()
	testutil.AssertEqual(t, total, 4*5050)
}

func TestMetricsAndLogging(t *testing.T) {
	reg := prometheus.NewRegistry()
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	tx, rx := mpsc.New[int]()
	tx.Send(1)
	tx.Send(2)
	tx.Close()

	c, err := NewWithConfig(rx, func(v int) error {
		if v == 2 {
			return errors.New("rejected")
		}
		return nil
	}, Config[int]{
		Name:    "audited",
		Logger:  &logger,
		Metrics: metrics.Config{Enabled: true, Registry: reg},
	})
	testutil.AssertNoError(t, err)

	_, err = c.Run()
	testutil.AssertNoError(t, err)

	registry := metrics.For(metrics.Config{Registry: reg})
	testutil.AssertEqual(t, promtest.ToFloat64(registry.ConsumerHandled.WithLabelValues("audited")), 1.0)
	testutil.AssertEqual(t, promtest.ToFloat64(registry.ConsumerFailed.WithLabelValues("audited")), 1.0)

	out := buf.String()
	if !strings.Contains(out, "message handler failed") || !strings.Contains(out, "rejected") {
		t.Errorf("expected failure to be logged, got:\n%s", out)
	}
}
