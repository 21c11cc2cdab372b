package feed

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/handoff/pkg/metrics"
)

// instruments holds the Prometheus children bound to one feed's label.
// A nil *instruments records nothing.
type instruments struct {
	fires prometheus.Counter
}

func newInstruments(name string, config metrics.Config) *instruments {
	if !config.Enabled {
		return nil
	}
	return &instruments{
		fires: metrics.For(config).FeedFires.WithLabelValues(name),
	}
}

func (i *instruments) fired() {
	if i == nil {
		return
	}
	i.fires.Inc()
}
