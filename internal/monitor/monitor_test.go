// Copyright (c) 2025 NetPulse authors
// All rights reserved. Use of this source code is governed by an
// MIT-style license that can be found in the LICENSE file.

package monitor

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"netpulse/internal/netstat"
	"netpulse/internal/pipeline"
)

// scriptedSampler replays prepared snapshots, then repeats the last one.
// A nil entry simulates a source failure.
type scriptedSampler struct {
	mu    sync.Mutex
	snaps []*netstat.Snapshot
	calls int
}

func (s *scriptedSampler) Sample(ctx context.Context) (netstat.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	if i >= len(s.snaps) {
		i = len(s.snaps) - 1
	}
	s.calls++
	if s.snaps[i] == nil {
		return netstat.Snapshot{}, netstat.ErrSourceUnavailable
	}
	snap := *s.snaps[i]
	snap.Taken = time.Now()
	return snap, nil
}

func testMonitor(s netstat.Sampler, interval time.Duration) *Monitor {
	return New(s, Options{
		Interval:       interval,
		WindowSize:     pipeline.DefaultWindowSize,
		BurstThreshold: pipeline.DefaultBurstThreshold,
		Alpha:          pipeline.DefaultAlpha,
		ReferenceBPS:   pipeline.DefaultReferenceCapacity,
	}, zap.NewNop())
}

func TestMonitorDeliversPayloads(t *testing.T) {
	s := &scriptedSampler{snaps: []*netstat.Snapshot{
		{BytesSent: 1000, BytesRecv: 1000, TCPConns: 4, UDPConns: 2, Established: 3},
		{BytesSent: 2000, BytesRecv: 3000, TCPConns: 4, UDPConns: 2, Established: 3},
		{BytesSent: 3000, BytesRecv: 5000, TCPConns: 5, UDPConns: 2, Established: 4},
	}}
	m := testMonitor(s, 5*time.Millisecond)
	ch := m.Subscribe()
	m.Start()
	defer m.Stop()

	var got []Payload
	timeout := time.After(2 * time.Second)
	for len(got) < 2 {
		select {
		case p := <-ch:
			got = append(got, p)
		case <-timeout:
			t.Fatalf("received %d payloads before timeout, want 2", len(got))
		}
	}

	// Payloads arrive in tick order, fully assembled.
	if got[0].TS > got[1].TS {
		t.Errorf("timestamps out of order: %d then %d", got[0].TS, got[1].TS)
	}
	first := got[0]
	if first.ThroughputBPS <= 0 {
		t.Errorf("ThroughputBPS = %d, want > 0", first.ThroughputBPS)
	}
	if first.Conns.TCP != 4 || first.Conns.UDP != 2 || first.Conns.Established != 3 {
		t.Errorf("Conns = %+v, want {4 2 3}", first.Conns)
	}
	if first.Anomalies == nil {
		t.Error("Anomalies is nil, want empty slice")
	}

	m.Unsubscribe(ch)
}

func TestMonitorSkipsTickOnSourceError(t *testing.T) {
	s := &scriptedSampler{snaps: []*netstat.Snapshot{
		{BytesSent: 1000},
		nil, // this tick is skipped, loop must survive
		{BytesSent: 3000},
		{BytesSent: 4000},
	}}
	m := testMonitor(s, 5*time.Millisecond)
	ch := m.Subscribe()
	m.Start()
	defer m.Stop()

	select {
	case p := <-ch:
		// First payload comes from the snapshot after the failure.
		if p.ThroughputBPS <= 0 {
			t.Errorf("ThroughputBPS = %d, want > 0", p.ThroughputBPS)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no payload after a recovered source error")
	}
	m.Unsubscribe(ch)
}

func TestMonitorSlowSubscriberDoesNotStallLoop(t *testing.T) {
	s := &scriptedSampler{snaps: []*netstat.Snapshot{{BytesSent: 1000}}}
	m := testMonitor(s, time.Millisecond)

	slow := m.Subscribe() // never drained
	fast := m.Subscribe()
	m.Start()
	defer m.Stop()

	// The fast subscriber must keep receiving well past the slow
	// subscriber's buffer capacity.
	timeout := time.After(2 * time.Second)
	for i := 0; i < subscriberBuffer*2; i++ {
		select {
		case <-fast:
		case <-timeout:
			t.Fatalf("fast subscriber stalled after %d payloads", i)
		}
	}

	m.Unsubscribe(slow)
	m.Unsubscribe(fast)
}

func TestMonitorUnsubscribeClosesChannel(t *testing.T) {
	s := &scriptedSampler{snaps: []*netstat.Snapshot{{}}}
	m := testMonitor(s, time.Millisecond)
	ch := m.Subscribe()
	m.Unsubscribe(ch)
	if _, ok := <-ch; ok {
		t.Error("channel still open after Unsubscribe")
	}
	// Double unsubscribe is a no-op.
	m.Unsubscribe(ch)
}

func TestTickAssemblesPayload(t *testing.T) {
	m := testMonitor(&scriptedSampler{snaps: []*netstat.Snapshot{{}}}, time.Second)

	t0 := time.Unix(1700000000, 0)
	prev := netstat.Snapshot{Taken: t0, BytesSent: 0, BytesRecv: 0, PacketsSent: 0, PacketsRecv: 0}
	cur := netstat.Snapshot{
		Taken: t0.Add(time.Second), BytesSent: 500000, BytesRecv: 750000,
		PacketsSent: 100, PacketsRecv: 150,
		Dropin: 2, TCPConns: 7, UDPConns: 1, Established: 6,
	}

	p := m.tick(prev, cur)
	if p.TS != cur.Taken.Unix() {
		t.Errorf("TS = %d, want %d", p.TS, cur.Taken.Unix())
	}
	if p.ThroughputBPS != 1250000 {
		t.Errorf("ThroughputBPS = %d, want 1250000", p.ThroughputBPS)
	}
	if p.ThroughputMbps != 1.25 {
		t.Errorf("ThroughputMbps = %v, want 1.25", p.ThroughputMbps)
	}
	if p.PktsPerSec != 250 {
		t.Errorf("PktsPerSec = %v, want 250", p.PktsPerSec)
	}
	if p.Errors.DropIn != 2 {
		t.Errorf("Errors.DropIn = %d, want 2", p.Errors.DropIn)
	}
	if len(p.Anomalies) != 1 || p.Anomalies[0].Type != pipeline.AnomalyDrop {
		t.Errorf("Anomalies = %v, want single drop tag", p.Anomalies)
	}
	if p.Health < 0 || p.Health > 100 {
		t.Errorf("Health = %v, want [0, 100]", p.Health)
	}
}
