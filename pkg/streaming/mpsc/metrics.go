package mpsc

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/handoff/pkg/metrics"
)

// instruments holds the Prometheus children bound to one channel's labels.
// A nil *instruments records nothing.
type instruments struct {
	sends        prometheus.Counter
	fastReceives prometheus.Counter
	slowReceives prometheus.Counter
	bulk         prometheus.Counter
	bulkSize     prometheus.Observer
	senders      prometheus.Gauge
	waits        prometheus.Counter
	closed       prometheus.Counter
}

func newInstruments(name string, config metrics.Config) *instruments {
	if !config.Enabled {
		return nil
	}

	registry := metrics.For(config)
	return &instruments{
		sends:        registry.ChannelSends.WithLabelValues(name),
		fastReceives: registry.ChannelReceives.WithLabelValues(name, "fast"),
		slowReceives: registry.ChannelReceives.WithLabelValues(name, "slow"),
		bulk:         registry.ChannelBulkTransfers.WithLabelValues(name),
		bulkSize:     registry.ChannelBulkTransferSize.WithLabelValues(name),
		senders:      registry.ChannelSenders.WithLabelValues(name),
		waits:        registry.ChannelWaits.WithLabelValues(name),
		closed:       registry.ChannelClosed.WithLabelValues(name),
	}
}

func (i *instruments) sent() {
	if i != nil {
		i.sends.Inc()
	}
}

func (i *instruments) receivedFast() {
	if i != nil {
		i.fastReceives.Inc()
	}
}

func (i *instruments) receivedSlow() {
	if i != nil {
		i.slowReceives.Inc()
	}
}

func (i *instruments) bulkTransferred(n int) {
	if i != nil {
		i.bulk.Inc()
		i.bulkSize.Observe(float64(n))
	}
}

func (i *instruments) setSenders(n int) {
	if i != nil {
		i.senders.Set(float64(n))
	}
}

func (i *instruments) waited() {
	if i != nil {
		i.waits.Inc()
	}
}

func (i *instruments) closedChannel() {
	if i != nil {
		i.closed.Inc()
	}
}
