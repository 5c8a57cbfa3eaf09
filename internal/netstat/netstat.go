// Copyright (c) 2025 NetPulse authors
// All rights reserved. Use of this source code is governed by an
// MIT-style license that can be found in the LICENSE file.

package netstat

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/net"
)

// ErrSourceUnavailable is returned when the OS counter interface cannot be
// queried (missing platform API, insufficient privilege). Callers treat it
// as "no data this tick", not as fatal.
var ErrSourceUnavailable = errors.New("netstat: counter source unavailable")

// Snapshot is an immutable view of the host-wide network counters at one
// instant. Counter fields are cumulative since boot and may reset to zero
// on interface restart; connection fields are instantaneous gauges.
type Snapshot struct {
	Taken time.Time

	BytesSent   uint64
	BytesRecv   uint64
	PacketsSent uint64
	PacketsRecv uint64
	Errin       uint64
	Errout      uint64
	Dropin      uint64
	Dropout     uint64

	TCPConns    int
	UDPConns    int
	Established int
}

// Sampler produces counter snapshots on demand.
type Sampler interface {
	Sample(ctx context.Context) (Snapshot, error)
}

// SystemSampler reads host-wide counters and the connection table through
// gopsutil.
type SystemSampler struct{}

func NewSystemSampler() *SystemSampler { return &SystemSampler{} }

// Sample queries the aggregated IO counters and the inet connection table.
// A failure of either query surfaces as ErrSourceUnavailable; individual
// connections that cannot be classified are skipped without failing the
// whole call.
func (s *SystemSampler) Sample(ctx context.Context) (Snapshot, error) {
	counters, err := net.IOCountersWithContext(ctx, false)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: io counters: %v", ErrSourceUnavailable, err)
	}
	if len(counters) == 0 {
		return Snapshot{}, fmt.Errorf("%w: no aggregated io counters", ErrSourceUnavailable)
	}
	io := counters[0]

	conns, err := net.ConnectionsWithContext(ctx, "inet")
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: connections: %v", ErrSourceUnavailable, err)
	}
	tcp, udp, established := CountConnections(conns)

	return Snapshot{
		Taken:       time.Now(),
		BytesSent:   io.BytesSent,
		BytesRecv:   io.BytesRecv,
		PacketsSent: io.PacketsSent,
		PacketsRecv: io.PacketsRecv,
		Errin:       io.Errin,
		Errout:      io.Errout,
		Dropin:      io.Dropin,
		Dropout:     io.Dropout,
		TCPConns:    tcp,
		UDPConns:    udp,
		Established: established,
	}, nil
}

// CountConnections splits a connection table into tcp/udp totals and the
// number of established TCP connections. Entries of any other socket type
// (raw, unix leaking through on some platforms) are ignored.
func CountConnections(conns []net.ConnectionStat) (tcp, udp, established int) {
	for _, c := range conns {
		switch c.Type {
		case syscall.SOCK_STREAM:
			tcp++
			if c.Status == "ESTABLISHED" {
				established++
			}
		case syscall.SOCK_DGRAM:
			udp++
		}
	}
	return tcp, udp, established
}
