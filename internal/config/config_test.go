// Copyright (c) 2025 NetPulse authors
// All rights reserved. Use of this source code is governed by an
// MIT-style license that can be found in the LICENSE file.

package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SampleInterval != time.Second {
		t.Errorf("SampleInterval = %v, want 1s", cfg.SampleInterval)
	}
	if cfg.WindowSize != 30 {
		t.Errorf("WindowSize = %d, want 30", cfg.WindowSize)
	}
	if cfg.BurstThreshold != 2.5 {
		t.Errorf("BurstThreshold = %v, want 2.5", cfg.BurstThreshold)
	}
	if cfg.HealthAlpha != 0.2 {
		t.Errorf("HealthAlpha = %v, want 0.2", cfg.HealthAlpha)
	}
	if cfg.ReferenceBPS != 25*1024*1024 {
		t.Errorf("ReferenceBPS = %v, want 26214400", cfg.ReferenceBPS)
	}
}

// Every documented environment variable must take effect under its
// underscore spelling.
func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("LISTEN_ADDR", "0.0.0.0:9999")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SAMPLE_INTERVAL", "250ms")
	t.Setenv("WINDOW_SIZE", "60")
	t.Setenv("BURST_THRESHOLD", "3.5")
	t.Setenv("HEALTH_ALPHA", "0.5")
	t.Setenv("REFERENCE_CAPACITY_BPS", "1000000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != "0.0.0.0:9999" {
		t.Errorf("ListenAddr = %q, want 0.0.0.0:9999", cfg.ListenAddr)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.SampleInterval != 250*time.Millisecond {
		t.Errorf("SampleInterval = %v, want 250ms", cfg.SampleInterval)
	}
	if cfg.WindowSize != 60 {
		t.Errorf("WindowSize = %d, want 60", cfg.WindowSize)
	}
	if cfg.BurstThreshold != 3.5 {
		t.Errorf("BurstThreshold = %v, want 3.5", cfg.BurstThreshold)
	}
	if cfg.HealthAlpha != 0.5 {
		t.Errorf("HealthAlpha = %v, want 0.5", cfg.HealthAlpha)
	}
	if cfg.ReferenceBPS != 1000000 {
		t.Errorf("ReferenceBPS = %v, want 1000000", cfg.ReferenceBPS)
	}
}

func TestLoadRejectsBadAlpha(t *testing.T) {
	t.Setenv("HEALTH_ALPHA", "1.5")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for alpha > 1")
	}
}
