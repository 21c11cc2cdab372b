package consumer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/handoff/pkg/metrics"
)

// instruments holds the Prometheus children bound to one consumer's label.
// A nil *instruments records nothing.
type instruments struct {
	handled  prometheus.Counter
	failed   prometheus.Counter
	duration prometheus.Observer
}

func newInstruments(name string, config metrics.Config) *instruments {
	if !config.Enabled {
		return nil
	}

	registry := metrics.For(config)
	return &instruments{
		handled:  registry.ConsumerHandled.WithLabelValues(name),
		failed:   registry.ConsumerFailed.WithLabelValues(name),
		duration: registry.ConsumerDuration.WithLabelValues(name),
	}
}

func (i *instruments) record(err error, d time.Duration) {
	if i == nil {
		return
	}
	i.duration.Observe(d.Seconds())
	if err != nil {
		i.failed.Inc()
	} else {
		i.handled.Inc()
	}
}
