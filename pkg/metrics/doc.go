// Package metrics provides Prometheus instrumentation for handoff components.
//
// # Overview
//
// The metrics package provides instrumentation for:
//   - MPSC channels (sends, receives by path, bulk transfers, waits, live senders)
//   - Consumers (handled and failed messages, handler latency)
//   - Scheduled feeds (firings)
//
// # Quick Start
//
// Enable metrics through the component configs:
//
//	tx, rx, err := mpsc.NewWithConfig[Job](mpsc.Config{
//		Name:    "jobs",
//		Metrics: metrics.DefaultConfig(),
//	})
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	config := metrics.Config{
//		Enabled:  true,
//		Registry: registry,
//	}
//
// Components that share a registerer share one Registry (see For), so any
// number of channels can be instrumented against the same registerer.
//
// # Available Metrics
//
// ## Channel Metrics
//
//   - handoff_channel_sends_total: Total number of messages sent
//   - handoff_channel_receives_total: Messages received, labeled by path ("fast" or "slow")
//   - handoff_channel_bulk_transfers_total: Queue-to-buffer bulk transfers
//   - handoff_channel_bulk_transfer_size: Messages moved per bulk transfer
//   - handoff_channel_senders: Live sender handles
//   - handoff_channel_waits_total: Times the receiver blocked
//   - handoff_channel_closed_total: Channels whose last sender closed
//
// ## Consumer Metrics
//
//   - handoff_consumer_handled_total: Messages handled successfully
//   - handoff_consumer_failed_total: Messages whose handler failed or panicked
//   - handoff_consumer_handle_duration_seconds: Handler latency
//
// ## Feed Metrics
//
//   - handoff_feed_fires_total: Scheduled feed firings
//
// # Labels
//
//   - channel: Name of the channel (mpsc.Config.Name)
//   - path: Receive path, "fast" for buffer hits and "slow" for locked receives
//   - consumer: Name of the consumer
//   - feed: Name of the feed
//
// # Performance
//
// Components resolve their labeled children once at construction, so the hot
// path only increments pre-bound counters.
package metrics
