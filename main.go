// Copyright (c) 2025 NetPulse authors
// All rights reserved. Use of this source code is governed by an
// MIT-style license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"netpulse/internal/config"
	"netpulse/internal/logger"
	"netpulse/internal/monitor"
	"netpulse/internal/netstat"
	"netpulse/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error loading config:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error setting up logger:", err)
		os.Exit(1)
	}
	defer logger.Flush(log)

	m := monitor.New(netstat.NewSystemSampler(), monitor.Options{
		Interval:       cfg.SampleInterval,
		WindowSize:     cfg.WindowSize,
		BurstThreshold: cfg.BurstThreshold,
		Alpha:          cfg.HealthAlpha,
		ReferenceBPS:   cfg.ReferenceBPS,
	}, log)
	m.Start()
	log.Info("monitor started",
		zap.Duration("interval", cfg.SampleInterval),
		zap.Int("window", cfg.WindowSize))

	srv := server.New(cfg.ListenAddr, m, log)
	srv.Routes()
	srv.Start()

	// wait for interrupt or termination signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("error during server shutdown", zap.Error(err))
	}
	m.Stop()
	log.Info("stopped")
}
