// Copyright (c) 2025 NetPulse authors
// All rights reserved. Use of this source code is governed by an
// MIT-style license that can be found in the LICENSE file.

// Package monitor runs the sampling loop and fans payloads out to
// subscribers.
package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"netpulse/internal/metrics"
	"netpulse/internal/netstat"
	"netpulse/internal/pipeline"
)

// subscriberBuffer bounds each subscriber channel. A subscriber that falls
// this many payloads behind starts losing the newest ones; the loop never
// blocks on it.
const subscriberBuffer = 16

// Options configure a Monitor.
type Options struct {
	Interval       time.Duration
	WindowSize     int
	BurstThreshold float64
	Alpha          float64
	ReferenceBPS   float64
}

// Monitor owns the telemetry pipeline: it samples counters on a fixed
// cadence, derives rates, scores health, classifies anomalies and
// broadcasts the resulting payload. All pipeline state (rolling window,
// EWMA) is mutated only by the loop goroutine.
type Monitor struct {
	sampler  netstat.Sampler
	detector *pipeline.BurstDetector
	scorer   *pipeline.HealthScorer
	interval time.Duration
	log      *zap.Logger

	mu      sync.Mutex
	clients map[chan Payload]bool

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a Monitor sampling through the given sampler.
func New(sampler netstat.Sampler, opts Options, log *zap.Logger) *Monitor {
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Monitor{
		sampler:  sampler,
		detector: pipeline.NewBurstDetector(opts.WindowSize, opts.BurstThreshold),
		scorer:   pipeline.NewHealthScorer(opts.Alpha, opts.ReferenceBPS),
		interval: opts.Interval,
		log:      log,
		clients:  make(map[chan Payload]bool),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start launches the sampling loop.
func (m *Monitor) Start() {
	go m.loop()
}

// Stop terminates the loop and waits for it to exit. Subscriber channels
// stay open; subscribers detach through Unsubscribe as their connections
// close.
func (m *Monitor) Stop() {
	m.cancel()
	<-m.done
}

// Subscribe registers a payload channel. The first event it carries is the
// payload of the tick in progress at subscription time; there is no
// backfill.
func (m *Monitor) Subscribe() chan Payload {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan Payload, subscriberBuffer)
	m.clients[ch] = true
	metrics.Subscribers.Set(float64(len(m.clients)))
	return ch
}

// Unsubscribe detaches and closes a subscriber channel. Detaching never
// disturbs the loop or other subscribers.
func (m *Monitor) Unsubscribe(ch chan Payload) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.clients[ch]; ok {
		delete(m.clients, ch)
		close(ch)
	}
	metrics.Subscribers.Set(float64(len(m.clients)))
}

// loop is the emission loop. It primes with one snapshot, then on every
// cycle samples, computes and broadcasts. The wait is a fixed sleep after
// compute with no drift compensation, so slow computation stretches the
// effective period.
func (m *Monitor) loop() {
	defer close(m.done)

	var prev *netstat.Snapshot
	for {
		cur, err := m.sampler.Sample(m.ctx)
		switch {
		case m.ctx.Err() != nil:
			return
		case err != nil:
			// No data this tick; keep the previous snapshot so the
			// next successful sample computes over the full gap.
			metrics.TicksSkipped.Inc()
			m.log.Warn("sample failed, skipping tick", zap.Error(err))
		case prev == nil:
			prev = &cur
		default:
			m.broadcast(m.tick(*prev, cur))
			prev = &cur
		}

		select {
		case <-m.ctx.Done():
			return
		case <-time.After(m.interval):
		}
	}
}

// tick runs one full pipeline pass over a snapshot pair.
func (m *Monitor) tick(prev, cur netstat.Snapshot) Payload {
	rates := pipeline.ComputeRates(prev, cur)
	_, burst := m.detector.Observe(rates.PktsSecTotal)
	health := m.scorer.Score(rates)
	anomalies := pipeline.Classify(rates, burst)

	metrics.TicksTotal.Inc()
	metrics.HealthScore.Set(health)
	metrics.ThroughputBytes.Set(rates.BytesSecTotal)
	metrics.PacketsPerSec.Set(rates.PktsSecTotal)
	for _, a := range anomalies {
		metrics.AnomaliesDetected.WithLabelValues(a.Type).Inc()
	}
	if len(anomalies) > 0 {
		m.log.Info("anomalies detected",
			zap.Int("count", len(anomalies)),
			zap.Float64("pkts_per_sec", rates.PktsSecTotal))
	}

	return newPayload(cur, rates, health, anomalies)
}

// broadcast delivers a payload to every subscriber without blocking the
// loop: a full subscriber buffer drops the payload for that subscriber.
func (m *Monitor) broadcast(p Payload) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for ch := range m.clients {
		select {
		case ch <- p:
		default:
			metrics.EventsDropped.Inc()
		}
	}
}
