package feed

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/vnykmshr/handoff/internal/logging"
	gferrors "github.com/vnykmshr/handoff/pkg/common/errors"
	"github.com/vnykmshr/handoff/pkg/common/validation"
	"github.com/vnykmshr/handoff/pkg/metrics"
	"github.com/vnykmshr/handoff/pkg/streaming/mpsc"
)

// ErrStopped is returned by Start once the feed has been stopped.
var ErrStopped = errors.New("feed: stopped")

// parser accepts an optional leading seconds field, so both "*/5 * * * *"
// and "*/5 * * * * *" parse, along with descriptors such as "@every 2s".
var parser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Config holds configuration for a Feed.
type Config struct {
	// Name identifies the feed in logs and metric labels.
	Name string

	// Schedule is a cron expression. An optional leading seconds field and
	// descriptors ("@hourly", "@every 30s") are accepted. Intervals shorter
	// than a second are rounded up to one second.
	Schedule string

	// MaxFires stops the feed after that many messages (0 = unlimited).
	MaxFires int

	// Location is the time zone the schedule is evaluated in (nil = time.Local).
	Location *time.Location

	// Logger receives each fire at debug level, and scheduler errors.
	Logger *zerolog.Logger

	// Metrics enables Prometheus instrumentation.
	Metrics metrics.Config
}

// Feed sends one produced message on a channel every time its cron schedule
// fires. It owns its own Sender clone, so the channel stays open while the
// feed runs and is released when the feed stops.
type Feed[T any] struct {
	name     string
	schedule cron.Schedule
	cron     *cron.Cron
	produce  func(time.Time) T
	maxFires int64
	logger   zerolog.Logger
	inst     *instruments

	mu    sync.Mutex
	tx    *mpsc.Sender[T] // nil once stopped
	fires atomic.Int64
}

// Validate reports whether expr is a schedule Feed accepts.
func Validate(expr string) error {
	if err := validation.ValidateNotEmpty("feed", "Schedule", expr); err != nil {
		return err
	}
	if _, err := parser.Parse(expr); err != nil {
		return gferrors.NewValidationError("feed", "Schedule", expr, err.Error()).
			WithHint("use a cron expression such as \"*/5 * * * * *\" or a descriptor such as \"@every 5s\"")
	}
	return nil
}

// New creates a stopped Feed that sends produce(now) through a clone of
// sender on every fire. The caller keeps, and must still close, sender
// itself.
func New[T any](sender *mpsc.Sender[T], config Config, produce func(time.Time) T) (*Feed[T], error) {
	if sender == nil {
		return nil, gferrors.NewValidationError("feed", "sender", nil, "cannot be nil")
	}
	if produce == nil {
		return nil, gferrors.NewValidationError("feed", "produce", nil, "cannot be nil").
			WithHint("provide a function building the message for each fire")
	}
	if err := validation.ValidateNotEmpty("feed", "Name", config.Name); err != nil {
		return nil, err
	}
	if err := validation.ValidateNonNegative("feed", "MaxFires", config.MaxFires); err != nil {
		return nil, err
	}
	if err := Validate(config.Schedule); err != nil {
		return nil, err
	}
	schedule, _ := parser.Parse(config.Schedule)

	location := config.Location
	if location == nil {
		location = time.Local
	}

	logger := logging.OrNop(config.Logger).With().Str("feed", config.Name).Logger()
	cronLogger := logging.NewCronLogger(logger)

	f := &Feed[T]{
		name:     config.Name,
		schedule: schedule,
		produce:  produce,
		maxFires: int64(config.MaxFires),
		logger:   logger,
		inst:     newInstruments(config.Name, config.Metrics),
	}
	f.cron = cron.New(
		cron.WithParser(parser),
		cron.WithLocation(location),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
	f.cron.Schedule(schedule, cron.FuncJob(func() {
		f.fire(time.Now().In(location))
	}))

	f.tx = sender.Clone()
	return f, nil
}

// Start begins firing on schedule. Starting a running feed does nothing.
func (f *Feed[T]) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.tx == nil {
		return ErrStopped
	}
	f.cron.Start()
	f.logger.Debug().Time("next", f.Next()).Msg("feed started")
	return nil
}

// Stop stops the schedule and closes the feed's Sender. The returned channel
// is closed once any in-flight fire has finished. Stop is idempotent.
func (f *Feed[T]) Stop() <-chan struct{} {
	f.mu.Lock()
	f.releaseLocked()
	f.mu.Unlock()

	return f.cron.Stop().Done()
}

// Fires returns the number of messages sent so far.
func (f *Feed[T]) Fires() int64 {
	return f.fires.Load()
}

// Next returns the next time the schedule fires after now.
func (f *Feed[T]) Next() time.Time {
	return f.schedule.Next(time.Now().In(f.cron.Location()))
}

// fire sends one message. It is the cron job body.
func (f *Feed[T]) fire(now time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.tx == nil {
		return
	}

	f.tx.Send(f.produce(now))
	n := f.fires.Add(1)
	f.inst.fired()
	f.logger.Debug().Int64("fire", n).Time("at", now).Msg("feed fired")

	if f.maxFires > 0 && n >= f.maxFires {
		f.releaseLocked()
		// Jobs run on their own goroutine, so stopping from inside one
		// does not deadlock the scheduler loop.
		f.cron.Stop()
	}
}

func (f *Feed[T]) releaseLocked() {
	if f.tx == nil {
		return
	}
	f.tx.Close()
	f.tx = nil
	f.logger.Debug().Int64("fires", f.fires.Load()).Msg("feed stopped")
}
