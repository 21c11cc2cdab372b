// Package metrics provides Prometheus instrumentation for handoff components.
package metrics

import (
	"reflect"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for handoff components.
type Registry struct {
	// Channel Metrics
	ChannelSends            *prometheus.CounterVec
	ChannelReceives         *prometheus.CounterVec
	ChannelBulkTransfers    *prometheus.CounterVec
	ChannelBulkTransferSize *prometheus.HistogramVec
	ChannelSenders          *prometheus.GaugeVec
	ChannelWaits            *prometheus.CounterVec
	ChannelClosed           *prometheus.CounterVec

	// Consumer Metrics
	ConsumerHandled  *prometheus.CounterVec
	ConsumerFailed   *prometheus.CounterVec
	ConsumerDuration *prometheus.HistogramVec

	// Feed Metrics
	FeedFires *prometheus.CounterVec
}

type registryKey struct {
	reg       prometheus.Registerer
	namespace string
}

var (
	registriesMu sync.Mutex
	registries   = make(map[registryKey]*Registry)
)

// For returns the Registry bound to the registerer and namespace in config,
// creating and registering the collectors on first use. Components sharing a
// registerer share one Registry, so constructing many instrumented components
// never registers a collector twice.
//
// Registerers are matched by ==, so pass a pointer such as
// *prometheus.Registry. A registerer whose dynamic type is not comparable is
// never cached: every call registers a new set of collectors, and the second
// call on the same registerer panics on duplicate registration.
func For(config Config) *Registry {
	reg, namespace := config.registerer(), config.namespace()
	if !reflect.TypeOf(reg).Comparable() {
		return newRegistry(reg, namespace)
	}
	key := registryKey{reg: reg, namespace: namespace}

	registriesMu.Lock()
	defer registriesMu.Unlock()

	if r, ok := registries[key]; ok {
		return r
	}
	r := newRegistry(reg, namespace)
	registries[key] = r
	return r
}

// Forget drops the cached Registry for the registerer and namespace in
// config, so a short-lived registerer can be garbage collected. It does not
// unregister the collectors; components built before the call keep working.
func Forget(config Config) {
	reg, namespace := config.registerer(), config.namespace()
	if !reflect.TypeOf(reg).Comparable() {
		return
	}

	registriesMu.Lock()
	defer registriesMu.Unlock()
	delete(registries, registryKey{reg: reg, namespace: namespace})
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
// Calling it twice with the same registerer panics on duplicate registration;
// components use For instead.
func NewRegistry(reg prometheus.Registerer) *Registry {
	return newRegistry(reg, DefaultNamespace)
}

func newRegistry(reg prometheus.Registerer, namespace string) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Channel Metrics
		ChannelSends: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "channel",
				Name:      "sends_total",
				Help:      "Total number of messages sent",
			},
			[]string{"channel"},
		),

		ChannelReceives: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "channel",
				Name:      "receives_total",
				Help:      "Total number of messages received, by receive path",
			},
			[]string{"channel", "path"},
		),

		ChannelBulkTransfers: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "channel",
				Name:      "bulk_transfers_total",
				Help:      "Total number of queue-to-buffer bulk transfers",
			},
			[]string{"channel"},
		),

		ChannelBulkTransferSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "channel",
				Name:      "bulk_transfer_size",
				Help:      "Number of messages moved into the receiver buffer per bulk transfer",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"channel"},
		),

		ChannelSenders: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "channel",
				Name:      "senders",
				Help:      "Number of live sender handles",
			},
			[]string{"channel"},
		),

		ChannelWaits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "channel",
				Name:      "waits_total",
				Help:      "Total number of times the receiver blocked waiting for messages",
			},
			[]string{"channel"},
		),

		ChannelClosed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "channel",
				Name:      "closed_total",
				Help:      "Total number of channels whose last sender was closed",
			},
			[]string{"channel"},
		),

		// Consumer Metrics
		ConsumerHandled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "consumer",
				Name:      "handled_total",
				Help:      "Total number of messages handled successfully",
			},
			[]string{"consumer"},
		),

		ConsumerFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "consumer",
				Name:      "failed_total",
				Help:      "Total number of messages whose handler returned an error or panicked",
			},
			[]string{"consumer"},
		),

		ConsumerDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "consumer",
				Name:      "handle_duration_seconds",
				Help:      "Time spent in the message handler",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"consumer"},
		),

		// Feed Metrics
		FeedFires: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "feed",
				Name:      "fires_total",
				Help:      "Total number of scheduled feed firings",
			},
			[]string{"feed"},
		),
	}
}
