// Copyright (c) 2025 NetPulse authors
// All rights reserved. Use of this source code is governed by an
// MIT-style license that can be found in the LICENSE file.

package monitor

import (
	"math"

	"netpulse/internal/netstat"
	"netpulse/internal/pipeline"
)

// ErrorCounts holds the per-tick error and drop deltas.
type ErrorCounts struct {
	In      int64 `json:"in"`
	Out     int64 `json:"out"`
	DropIn  int64 `json:"drop_in"`
	DropOut int64 `json:"drop_out"`
}

// ConnCounts holds the instantaneous connection gauges.
type ConnCounts struct {
	TCP         int `json:"tcp"`
	UDP         int `json:"udp"`
	Established int `json:"established"`
}

// Payload is the event broadcast to subscribers, one per tick. It is
// immutable once constructed and not retained after broadcast.
type Payload struct {
	TS             int64              `json:"ts"`
	ThroughputBPS  int64              `json:"throughput_bps"`
	ThroughputMbps float64            `json:"throughput_mbps"`
	PktsPerSec     float64            `json:"pkts_per_sec"`
	Errors         ErrorCounts        `json:"errors"`
	Conns          ConnCounts         `json:"conns"`
	Health         float64            `json:"health"`
	Anomalies      []pipeline.Anomaly `json:"anomalies"`
}

// newPayload assembles the outbound event from one tick's results.
// Display fields are rounded here: Mbps and pkts/sec to two decimals,
// health to one.
func newPayload(cur netstat.Snapshot, r pipeline.RateSet, health float64, anomalies []pipeline.Anomaly) Payload {
	return Payload{
		TS:             cur.Taken.Unix(),
		ThroughputBPS:  int64(r.BytesSecTotal),
		ThroughputMbps: round2(r.BytesSecTotal / 1e6),
		PktsPerSec:     round2(r.PktsSecTotal),
		Errors: ErrorCounts{
			In:      int64(r.ErrinDelta),
			Out:     int64(r.ErroutDelta),
			DropIn:  int64(r.DropinDelta),
			DropOut: int64(r.DropoutDelta),
		},
		Conns: ConnCounts{
			TCP:         cur.TCPConns,
			UDP:         cur.UDPConns,
			Established: cur.Established,
		},
		Health:    health,
		Anomalies: anomalies,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
