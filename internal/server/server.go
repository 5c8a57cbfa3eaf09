// Copyright (c) 2025 NetPulse authors
// All rights reserved. Use of this source code is governed by an
// MIT-style license that can be found in the LICENSE file.

package server

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"netpulse/internal/handlers"
	"netpulse/internal/monitor"
)

// Server represents the HTTP server configuration and mux.
type Server struct {
	Addr       string
	Mux        *http.ServeMux
	monitor    *monitor.Monitor
	log        *zap.Logger
	httpServer *http.Server
}

// New creates a Server for the given listen address and monitor.
func New(addr string, m *monitor.Monitor, log *zap.Logger) *Server {
	return &Server{
		Addr:    addr,
		Mux:     http.NewServeMux(),
		monitor: m,
		log:     log,
	}
}

// Routes registers all HTTP handlers on the server mux.
func (s *Server) Routes() {
	s.Mux.HandleFunc("/health", handlers.Health)
	s.Mux.Handle("/stream", handlers.StreamHandler(s.monitor, s.log))
	s.Mux.Handle("/ws/feed", handlers.FeedHandler(s.monitor, s.log))
	s.Mux.Handle("/api/system", handlers.SystemHandler())
	s.Mux.Handle("/metrics", promhttp.Handler())
	s.Mux.HandleFunc("/", handlers.Index)
}

// Start runs ListenAndServe in a goroutine and returns immediately.
func (s *Server) Start() {
	s.httpServer = &http.Server{Addr: s.Addr, Handler: s.Mux}
	s.log.Info("server listening", zap.String("addr", s.Addr))
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Fatal("server error", zap.Error(err))
		}
	}()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
