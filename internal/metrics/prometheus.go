// Copyright (c) 2025 NetPulse authors
// All rights reserved. Use of this source code is governed by an
// MIT-style license that can be found in the LICENSE file.

// Package metrics declares the Prometheus instruments exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TicksTotal counts completed sampling ticks.
	TicksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "netpulse_ticks_total",
			Help: "Total number of completed sampling ticks",
		},
	)

	// TicksSkipped counts ticks dropped because the counter source
	// could not be queried.
	TicksSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "netpulse_ticks_skipped_total",
			Help: "Total number of ticks skipped due to source errors",
		},
	)

	// Subscribers tracks currently attached feed subscribers.
	Subscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "netpulse_subscribers",
			Help: "Number of currently attached feed subscribers",
		},
	)

	// EventsDropped counts payloads discarded because a subscriber's
	// buffer was full.
	EventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "netpulse_feed_events_dropped_total",
			Help: "Total payloads dropped on slow subscriber buffers",
		},
	)

	// AnomaliesDetected counts emitted anomaly tags by type.
	AnomaliesDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netpulse_anomalies_total",
			Help: "Total number of anomaly tags emitted",
		},
		[]string{"type"},
	)

	// HealthScore mirrors the latest smoothed health score.
	HealthScore = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "netpulse_health_score",
			Help: "Latest smoothed health score (0-100)",
		},
	)

	// ThroughputBytes mirrors the latest total throughput in bytes/sec.
	ThroughputBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "netpulse_throughput_bytes_per_second",
			Help: "Latest total throughput in bytes per second",
		},
	)

	// PacketsPerSec mirrors the latest total packet rate.
	PacketsPerSec = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "netpulse_packets_per_second",
			Help: "Latest total packet rate",
		},
	)
)
