package mpsc

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/vnykmshr/handoff/internal/logging"
	gferrors "github.com/vnykmshr/handoff/pkg/common/errors"
	"github.com/vnykmshr/handoff/pkg/common/validation"
	"github.com/vnykmshr/handoff/pkg/metrics"
)

// ErrChannelClosed is returned by TryRecv once every sender has been closed
// and no messages remain.
var ErrChannelClosed = fmt.Errorf("mpsc: channel has no live senders: %w", gferrors.ErrClosed)

// Config holds configuration for a channel.
type Config struct {
	// Name identifies the channel in logs and metric labels.
	// Required when Metrics.Enabled is set.
	Name string

	// InitialCapacity pre-sizes the shared queue (0 = grow on demand).
	// It is a sizing hint, not a bound: sends never block.
	InitialCapacity int

	// Logger receives lifecycle events at debug level. Nil disables logging.
	Logger *zerolog.Logger

	// Metrics enables Prometheus instrumentation.
	Metrics metrics.Config
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		Name: "mpsc",
	}
}

// Stats holds counters describing channel activity.
type Stats struct {
	// Sends is the total number of messages sent.
	Sends int64

	// Receives is the total number of messages received.
	Receives int64

	// FastReceives is the number of receives served from the receiver's
	// private buffer without taking the lock.
	FastReceives int64

	// LockedReceives is the number of receives that took the lock.
	LockedReceives int64

	// BulkTransfers is the number of times the remaining queue was moved into
	// the receiver's buffer.
	BulkTransfers int64

	// BulkTransferred is the total number of messages moved by bulk transfers.
	BulkTransferred int64

	// Waits is the number of times the receiver blocked waiting for a message.
	Waits int64
}

// inner is the state guarded by shared.mu.
type inner[T any] struct {
	queue   []T
	senders int
}

// shared is the state referenced by every Sender and the Receiver of one
// channel. It lives as long as any of them is reachable.
type shared[T any] struct {
	mu    sync.Mutex
	ready sync.Cond // L is &mu
	inner inner[T]

	name   string
	logger zerolog.Logger
	inst   *instruments

	sends           atomic.Int64
	receives        atomic.Int64
	fastReceives    atomic.Int64
	lockedReceives  atomic.Int64
	bulkTransfers   atomic.Int64
	bulkTransferred atomic.Int64
	waits           atomic.Int64
}

// New creates a channel with default configuration and returns its first
// Sender and its only Receiver.
func New[T any]() (*Sender[T], *Receiver[T]) {
	return newChannel[T](DefaultConfig())
}

// NewWithConfig creates a channel with the specified configuration.
func NewWithConfig[T any](config Config) (*Sender[T], *Receiver[T], error) {
	if err := validation.ValidateNonNegative("mpsc", "InitialCapacity", config.InitialCapacity); err != nil {
		return nil, nil, err
	}
	if config.Metrics.Enabled {
		if err := validation.ValidateNotEmpty("mpsc", "Name", config.Name); err != nil {
			return nil, nil, err
		}
	}

	tx, rx := newChannel[T](config)
	return tx, rx, nil
}

func newChannel[T any](config Config) (*Sender[T], *Receiver[T]) {
	sh := &shared[T]{
		name:   config.Name,
		logger: logging.OrNop(config.Logger).With().Str("channel", config.Name).Logger(),
		inst:   newInstruments(config.Name, config.Metrics),
	}
	sh.ready.L = &sh.mu
	sh.inner.senders = 1
	if config.InitialCapacity > 0 {
		sh.inner.queue = make([]T, 0, config.InitialCapacity)
	}

	sh.inst.setSenders(1)
	sh.logger.Debug().Msg("channel created")

	return &Sender[T]{shared: sh}, &Receiver[T]{shared: sh}
}

func (sh *shared[T]) stats() Stats {
	return Stats{
		Sends:           sh.sends.Load(),
		Receives:        sh.receives.Load(),
		FastReceives:    sh.fastReceives.Load(),
		LockedReceives:  sh.lockedReceives.Load(),
		BulkTransfers:   sh.bulkTransfers.Load(),
		BulkTransferred: sh.bulkTransferred.Load(),
		Waits:           sh.waits.Load(),
	}
}
