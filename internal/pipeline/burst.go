// Copyright (c) 2025 NetPulse authors
// All rights reserved. Use of this source code is governed by an
// MIT-style license that can be found in the LICENSE file.

package pipeline

import "math"

const (
	// DefaultWindowSize bounds the burst detector's sample history.
	DefaultWindowSize = 30
	// DefaultBurstThreshold is the z-score above which a sample counts
	// as a burst.
	DefaultBurstThreshold = 2.5

	// stddevEpsilon guards the z-score against a flat window.
	stddevEpsilon = 1e-6
)

// BurstDetector keeps a fixed-size FIFO window of packet-rate samples and
// flags samples that deviate sharply from the window's recent behaviour.
// It is memoryless beyond the window, so a sustained regime shift
// self-normalizes after windowSize ticks.
//
// Not safe for concurrent use; the emission loop is the single writer.
type BurstDetector struct {
	window    []float64
	size      int
	threshold float64
}

// NewBurstDetector creates a detector with the given window size and
// z-score threshold. Non-positive arguments fall back to the defaults.
func NewBurstDetector(size int, threshold float64) *BurstDetector {
	if size <= 0 {
		size = DefaultWindowSize
	}
	if threshold <= 0 {
		threshold = DefaultBurstThreshold
	}
	return &BurstDetector{
		window:    make([]float64, 0, size),
		size:      size,
		threshold: threshold,
	}
}

// Observe appends a packet-rate sample, evicting the oldest when the
// window is full, and reports the sample's z-score against the window and
// whether it qualifies as a burst.
func (d *BurstDetector) Observe(pktsPerSec float64) (z float64, burst bool) {
	d.window = append(d.window, pktsPerSec)
	if len(d.window) > d.size {
		d.window = d.window[1:]
	}

	mean := 0.0
	for _, v := range d.window {
		mean += v
	}
	mean /= float64(len(d.window))

	// Population variance; a single sample carries no spread.
	variance := 0.0
	if len(d.window) > 1 {
		for _, v := range d.window {
			diff := v - mean
			variance += diff * diff
		}
		variance /= float64(len(d.window))
	}

	stddev := math.Sqrt(variance)
	if stddev <= stddevEpsilon {
		return 0, false
	}
	z = (pktsPerSec - mean) / stddev
	return z, z > d.threshold
}

// Len reports how many samples the window currently holds.
func (d *BurstDetector) Len() int { return len(d.window) }
