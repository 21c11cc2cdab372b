package consumer

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/vnykmshr/handoff/internal/logging"
	gferrors "github.com/vnykmshr/handoff/pkg/common/errors"
	"github.com/vnykmshr/handoff/pkg/common/validation"
	"github.com/vnykmshr/handoff/pkg/metrics"
	"github.com/vnykmshr/handoff/pkg/streaming/mpsc"
)

// ErrAlreadyStarted is returned when Run is called on a consumer that has
// already been started.
var ErrAlreadyStarted = errors.New("consumer: already started")

// Handler processes one message. A returned error marks the message as
// failed; it does not stop the consumer unless Config.StopOnError is set.
type Handler[T any] func(msg T) error

// Result describes the handling of a single message.
type Result[T any] struct {
	// Message is the message that was handled.
	Message T

	// Seq is the 1-based position of the message in the receive order.
	Seq int64

	// Error is any error returned by the handler, or an OperationError
	// wrapping errors.ErrHandlerPanicked if it panicked.
	Error error

	// Duration is how long the handler took.
	Duration time.Duration
}

// Summary describes a completed run.
type Summary struct {
	// Handled is the number of messages handled without error.
	Handled int64

	// Failed is the number of messages whose handler failed or panicked.
	Failed int64

	// Duration is the wall time of the run.
	Duration time.Duration

	// Err is the error that ended the run early, if any.
	Err error
}

// Config holds configuration for a Consumer.
type Config[T any] struct {
	// Name identifies the consumer in logs and metric labels.
	Name string

	// StopOnError ends the run at the first failed message. Messages not yet
	// received stay in the channel.
	StopOnError bool

	// OnResult, if set, is called synchronously after every message.
	OnResult func(Result[T])

	// Logger receives failures at warn level and run boundaries at debug level.
	Logger *zerolog.Logger

	// Metrics enables Prometheus instrumentation.
	Metrics metrics.Config
}

// DefaultConfig returns a default configuration.
func DefaultConfig[T any]() Config[T] {
	return Config[T]{
		Name: "consumer",
	}
}

// Consumer drains an mpsc.Receiver, passing each message to a Handler.
// A Consumer is the single goroutine allowed to use its Receiver.
type Consumer[T any] struct {
	rx      *mpsc.Receiver[T]
	handler Handler[T]
	config  Config[T]
	logger  zerolog.Logger
	inst    *instruments

	started atomic.Bool
}

// New creates a Consumer with default configuration.
func New[T any](rx *mpsc.Receiver[T], handler Handler[T]) (*Consumer[T], error) {
	return NewWithConfig(rx, handler, DefaultConfig[T]())
}

// NewWithConfig creates a Consumer with the specified configuration.
func NewWithConfig[T any](rx *mpsc.Receiver[T], handler Handler[T], config Config[T]) (*Consumer[T], error) {
	if rx == nil {
		return nil, gferrors.NewValidationError("consumer", "receiver", nil, "cannot be nil").
			WithHint("pass the receiver returned by mpsc.New")
	}
	if handler == nil {
		return nil, gferrors.NewValidationError("consumer", "handler", nil, "cannot be nil").
			WithHint("provide a handler function")
	}
	if err := validation.ValidateNotEmpty("consumer", "Name", config.Name); err != nil {
		return nil, err
	}

	return &Consumer[T]{
		rx:      rx,
		handler: handler,
		config:  config,
		logger:  logging.OrNop(config.Logger).With().Str("consumer", config.Name).Logger(),
		inst:    newInstruments(config.Name, config.Metrics),
	}, nil
}

// Run receives and handles messages until the channel is closed and drained,
// or until the first failure when StopOnError is set. It blocks the calling
// goroutine and may only be called once.
func (c *Consumer[T]) Run() (Summary, error) {
	if !c.started.CompareAndSwap(false, true) {
		return Summary{Err: ErrAlreadyStarted}, ErrAlreadyStarted
	}

	start := time.Now()
	var summary Summary
	var seq int64

	c.logger.Debug().Msg("consumer started")

	for msg := range c.rx.All() {
		seq++
		result := c.handle(msg, seq)

		if result.Error != nil {
			summary.Failed++
			c.logger.Warn().Err(result.Error).Int64("seq", seq).Msg("message handler failed")
		} else {
			summary.Handled++
		}
		c.inst.record(result.Error, result.Duration)

		if c.config.OnResult != nil {
			c.config.OnResult(result)
		}

		if result.Error != nil && c.config.StopOnError {
			summary.Err = fmt.Errorf("consumer %s: stopped at message %d: %w", c.config.Name, seq, result.Error)
			break
		}
	}

	summary.Duration = time.Since(start)
	c.logger.Debug().
		Int64("handled", summary.Handled).
		Int64("failed", summary.Failed).
		Dur("duration", summary.Duration).
		Msg("consumer finished")

	return summary, summary.Err
}

// Start runs the consumer on a new goroutine. The returned channel delivers
// the Summary once the run ends and is then closed.
func (c *Consumer[T]) Start() <-chan Summary {
	done := make(chan Summary, 1)
	go func() {
		defer close(done)
		summary, _ := c.Run()
		done <- summary
	}()
	return done
}

// handle runs the handler for one message, converting a panic into an error.
func (c *Consumer[T]) handle(msg T, seq int64) (result Result[T]) {
	result = Result[T]{Message: msg, Seq: seq}
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			result.Error = gferrors.NewOperationError("consumer", "Handle", gferrors.ErrHandlerPanicked).
				WithContext(fmt.Sprintf("%v\nStack trace:\n%s", r, debug.Stack()))
		}
		result.Duration = time.Since(start)
	}()

	result.Error = c.handler(msg)
	return result
}
