// Copyright (c) 2025 NetPulse authors
// All rights reserved. Use of this source code is governed by an
// MIT-style license that can be found in the LICENSE file.

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"netpulse/internal/monitor"
)

// StreamHandler returns a handler for the Server-Sent Events feed.
// @Summary Stream live telemetry
// @Description Subscribe to per-second telemetry payloads
// @Tags feed
// @Produce text/event-stream
// @Success 200 {string} string "stream"
// @Router /stream [get]
func StreamHandler(m *monitor.Monitor, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
			return
		}
		flusher.Flush()

		ch := m.Subscribe()
		defer m.Unsubscribe(ch)

		log.Debug("sse client connected", zap.String("remote", r.RemoteAddr))
		defer log.Debug("sse client disconnected", zap.String("remote", r.RemoteAddr))

		for {
			select {
			case <-r.Context().Done():
				return
			case p, ok := <-ch:
				if !ok {
					return
				}
				data, err := json.Marshal(p)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "data: %s\n\n", data)
				flusher.Flush()
			}
		}
	}
}
