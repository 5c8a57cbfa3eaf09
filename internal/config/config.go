// Copyright (c) 2025 NetPulse authors
// All rights reserved. Use of this source code is governed by an
// MIT-style license that can be found in the LICENSE file.

// Package config loads runtime settings from the environment. There is no
// config file and no flags: every knob has a compiled default and can be
// overridden by an environment variable of the same name.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every configurable value for the monitor. The mapstructure
// tags double as the environment variable names once upper-cased:
// LISTEN_ADDR, SAMPLE_INTERVAL, WINDOW_SIZE, BURST_THRESHOLD,
// HEALTH_ALPHA, REFERENCE_CAPACITY_BPS, LOG_LEVEL.
type Config struct {
	ListenAddr string `mapstructure:"listen_addr"` // e.g. "127.0.0.1:8080"
	LogLevel   string `mapstructure:"log_level"`   // debug|info|warn|error

	SampleInterval time.Duration `mapstructure:"sample_interval"`        // cadence of the emission loop
	WindowSize     int           `mapstructure:"window_size"`            // burst detector window, in samples
	BurstThreshold float64       `mapstructure:"burst_threshold"`        // z-score above which a burst is flagged
	HealthAlpha    float64       `mapstructure:"health_alpha"`           // EWMA smoothing weight
	ReferenceBPS   float64       `mapstructure:"reference_capacity_bps"` // throughput scoring ~100, bytes/sec
}

// Load reads the environment and returns a fully populated Config.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("listen_addr", "127.0.0.1:8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("sample_interval", "1s")
	v.SetDefault("window_size", 30)
	v.SetDefault("burst_threshold", 2.5)
	v.SetDefault("health_alpha", 0.2)
	v.SetDefault("reference_capacity_bps", 25*1024*1024)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("cannot decode config: %w", err)
	}

	if cfg.SampleInterval <= 0 {
		return nil, fmt.Errorf("SAMPLE_INTERVAL must be positive, got %v", cfg.SampleInterval)
	}
	if cfg.WindowSize <= 0 {
		return nil, fmt.Errorf("WINDOW_SIZE must be positive, got %d", cfg.WindowSize)
	}
	if cfg.HealthAlpha <= 0 || cfg.HealthAlpha > 1 {
		return nil, fmt.Errorf("HEALTH_ALPHA must be in (0, 1], got %v", cfg.HealthAlpha)
	}
	if cfg.ReferenceBPS <= 0 {
		return nil, fmt.Errorf("REFERENCE_CAPACITY_BPS must be positive, got %v", cfg.ReferenceBPS)
	}

	return &cfg, nil
}
