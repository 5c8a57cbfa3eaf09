// Copyright (c) 2025 NetPulse authors
// All rights reserved. Use of this source code is governed by an
// MIT-style license that can be found in the LICENSE file.

// Package pipeline holds the per-tick computation chain: rate derivation
// from snapshot pairs, rolling-window burst detection, EWMA health scoring
// and anomaly classification.
package pipeline

import "netpulse/internal/netstat"

// minElapsed floors the sampling interval so two near-simultaneous
// snapshots never divide by zero.
const minElapsed = 1e-6

// RateSet holds per-second rates and per-tick deltas derived from two
// consecutive snapshots. Every field is clamped to >= 0: a counter reset
// reads as a transient zero, never as a negative or wraparound spike.
type RateSet struct {
	BytesSecSent float64
	BytesSecRecv float64
	PktsSecSent  float64
	PktsSecRecv  float64

	BytesSecTotal float64
	PktsSecTotal  float64

	ErrinDelta   float64
	ErroutDelta  float64
	DropinDelta  float64
	DropoutDelta float64
}

// ComputeRates derives a RateSet from the previous and current snapshot.
// Elapsed time comes from the snapshot timestamps and is floored at
// minElapsed seconds.
func ComputeRates(prev, cur netstat.Snapshot) RateSet {
	dt := cur.Taken.Sub(prev.Taken).Seconds()
	if dt < minElapsed {
		dt = minElapsed
	}

	r := RateSet{
		BytesSecSent: counterRate(prev.BytesSent, cur.BytesSent, dt),
		BytesSecRecv: counterRate(prev.BytesRecv, cur.BytesRecv, dt),
		PktsSecSent:  counterRate(prev.PacketsSent, cur.PacketsSent, dt),
		PktsSecRecv:  counterRate(prev.PacketsRecv, cur.PacketsRecv, dt),
		ErrinDelta:   counterDelta(prev.Errin, cur.Errin),
		ErroutDelta:  counterDelta(prev.Errout, cur.Errout),
		DropinDelta:  counterDelta(prev.Dropin, cur.Dropin),
		DropoutDelta: counterDelta(prev.Dropout, cur.Dropout),
	}
	r.BytesSecTotal = r.BytesSecSent + r.BytesSecRecv
	r.PktsSecTotal = r.PktsSecSent + r.PktsSecRecv
	return r
}

// counterRate converts a cumulative counter pair into a per-second rate.
// cur < prev means the counter reset; the clamp makes that tick read zero.
func counterRate(prev, cur uint64, dt float64) float64 {
	if cur < prev {
		return 0
	}
	return float64(cur-prev) / dt
}

// counterDelta is the clamped per-tick difference of a cumulative counter.
func counterDelta(prev, cur uint64) float64 {
	if cur < prev {
		return 0
	}
	return float64(cur - prev)
}
