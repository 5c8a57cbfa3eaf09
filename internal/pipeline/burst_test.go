// Copyright (c) 2025 NetPulse authors
// All rights reserved. Use of this source code is governed by an
// MIT-style license that can be found in the LICENSE file.

package pipeline

import "testing"

// A flat window has no spread: z must be forced to 0 and no burst flagged.
func TestBurstDetectorFlatWindow(t *testing.T) {
	d := NewBurstDetector(DefaultWindowSize, DefaultBurstThreshold)
	for i := 0; i < 20; i++ {
		z, burst := d.Observe(100)
		if z != 0 {
			t.Fatalf("z = %v on flat window, want 0", z)
		}
		if burst {
			t.Fatal("burst flagged on flat window")
		}
	}
}

func TestBurstDetectorWindowEviction(t *testing.T) {
	d := NewBurstDetector(30, DefaultBurstThreshold)
	for i := 0; i < 35; i++ {
		d.Observe(float64(i))
	}
	if d.Len() != 30 {
		t.Fatalf("window length = %d after 35 appends, want 30", d.Len())
	}
	// Oldest five evicted: samples 5..34 remain, newest last.
	if d.window[0] != 5 {
		t.Errorf("oldest sample = %v, want 5", d.window[0])
	}
	if d.window[29] != 34 {
		t.Errorf("newest sample = %v, want 34", d.window[29])
	}
}

// A sample far above a near-flat history must exceed the z threshold.
func TestBurstDetectorSpike(t *testing.T) {
	d := NewBurstDetector(30, DefaultBurstThreshold)
	for i := 0; i < 30; i++ {
		// Mild jitter so the window is not degenerate.
		d.Observe(100 + float64(i%3))
	}
	z, burst := d.Observe(10000)
	if !burst {
		t.Fatalf("no burst flagged for spike, z = %v", z)
	}
	if z <= DefaultBurstThreshold {
		t.Errorf("z = %v, want > %v", z, DefaultBurstThreshold)
	}
}

func TestBurstDetectorSingleSample(t *testing.T) {
	d := NewBurstDetector(30, DefaultBurstThreshold)
	z, burst := d.Observe(12345)
	if z != 0 || burst {
		t.Errorf("first sample: z = %v burst = %v, want 0/false", z, burst)
	}
}

func TestBurstDetectorDefaults(t *testing.T) {
	d := NewBurstDetector(0, 0)
	if d.size != DefaultWindowSize {
		t.Errorf("size = %d, want %d", d.size, DefaultWindowSize)
	}
	if d.threshold != DefaultBurstThreshold {
		t.Errorf("threshold = %v, want %v", d.threshold, DefaultBurstThreshold)
	}
}
