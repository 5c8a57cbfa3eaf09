// Copyright (c) 2025 NetPulse authors
// All rights reserved. Use of this source code is governed by an
// MIT-style license that can be found in the LICENSE file.

package pipeline

import "math"

const (
	// DefaultAlpha is the EWMA smoothing weight; the time constant is
	// roughly 1/alpha ticks.
	DefaultAlpha = 0.2
	// DefaultReferenceCapacity is the throughput in bytes/sec that scores
	// near 100: 25 MiB/s.
	DefaultReferenceCapacity = 25 * 1024 * 1024

	errorWeight = 5
	dropWeight  = 3
)

// HealthScorer maps a RateSet to a 0-100 score and smooths it across
// ticks with an exponential moving average. Throughput raises the score
// along a saturating exponential; interface errors and drops subtract a
// weighted penalty, errors counting heavier than drops.
//
// The smoothed value is the scorer's only state; the emission loop is the
// single writer.
type HealthScorer struct {
	alpha       float64
	refCapacity float64

	smoothed float64
	primed   bool
}

// NewHealthScorer creates a scorer with the given smoothing weight and
// reference capacity in bytes/sec. Non-positive arguments fall back to the
// defaults.
func NewHealthScorer(alpha, refCapacity float64) *HealthScorer {
	if alpha <= 0 || alpha > 1 {
		alpha = DefaultAlpha
	}
	if refCapacity <= 0 {
		refCapacity = DefaultReferenceCapacity
	}
	return &HealthScorer{alpha: alpha, refCapacity: refCapacity}
}

// Score computes the instantaneous health for one tick and folds it into
// the running average. The first call seeds the average directly. The
// returned value is rounded to one decimal for display; the carried state
// stays unrounded.
func (s *HealthScorer) Score(r RateSet) float64 {
	raw := s.Raw(r)
	if !s.primed {
		s.smoothed = raw
		s.primed = true
	} else {
		s.smoothed = s.alpha*raw + (1-s.alpha)*s.smoothed
	}
	return math.Round(s.smoothed*10) / 10
}

// Raw returns the unsmoothed score for a RateSet, clamped to [0, 100].
func (s *HealthScorer) Raw(r RateSet) float64 {
	ratio := r.BytesSecTotal / s.refCapacity
	base := 100 * (1 - math.Exp(-ratio))

	penalty := errorWeight*(r.ErrinDelta+r.ErroutDelta) +
		dropWeight*(r.DropinDelta+r.DropoutDelta)

	raw := base - penalty
	if raw < 0 {
		return 0
	}
	if raw > 100 {
		return 100
	}
	return raw
}
