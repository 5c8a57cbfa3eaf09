// Copyright (c) 2025 NetPulse authors
// All rights reserved. Use of this source code is governed by an
// MIT-style license that can be found in the LICENSE file.

package handlers

import (
	"encoding/json"
	"net/http"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// systemStats is a one-shot snapshot of host health for the dashboard
// sidebar. Fields that cannot be read stay at their zero value.
type systemStats struct {
	CPU        float64 `json:"cpu"`    // usage percentage
	Memory     float64 `json:"memory"` // usage percentage
	Uptime     uint64  `json:"uptime"` // seconds
	Goroutines int     `json:"goroutines"`
}

// SystemHandler reports current host CPU, memory and uptime.
// @Summary Host system stats
// @Tags system
// @Produce json
// @Success 200 {object} systemStats
// @Router /api/system [get]
func SystemHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		stat := systemStats{Goroutines: runtime.NumGoroutine()}

		if pct, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pct) > 0 {
			stat.CPU = pct[0]
		}
		if v, err := mem.VirtualMemoryWithContext(ctx); err == nil {
			stat.Memory = v.UsedPercent
		}
		if u, err := host.UptimeWithContext(ctx); err == nil {
			stat.Uptime = u
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(stat)
	}
}
