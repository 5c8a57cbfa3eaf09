// Copyright (c) 2025 NetPulse authors
// All rights reserved. Use of this source code is governed by an
// MIT-style license that can be found in the LICENSE file.

package pipeline

import "fmt"

// Anomaly tag types, in emission order.
const (
	AnomalyBurst = "burst"
	AnomalyDrop  = "drop"
	AnomalyError = "error"
)

// Anomaly is a discrete condition flagged for one tick.
type Anomaly struct {
	Type string `json:"type"`
	Msg  string `json:"msg"`
}

// Classify derives the anomaly tags for one tick. Tags appear in fixed
// order (burst, drop, error) and every tick re-evaluates independently;
// a persisting condition re-emits its tag each tick. The result is never
// nil so a clean tick serializes as an empty JSON array.
func Classify(r RateSet, burst bool) []Anomaly {
	anomalies := []Anomaly{}
	if burst {
		anomalies = append(anomalies, Anomaly{
			Type: AnomalyBurst,
			Msg:  fmt.Sprintf("Burst: %.1f pkts/s", r.PktsSecTotal),
		})
	}
	if r.DropinDelta+r.DropoutDelta > 0 {
		anomalies = append(anomalies, Anomaly{Type: AnomalyDrop, Msg: "Packet drops detected"})
	}
	if r.ErrinDelta+r.ErroutDelta > 0 {
		anomalies = append(anomalies, Anomaly{Type: AnomalyError, Msg: "Interface errors detected"})
	}
	return anomalies
}
