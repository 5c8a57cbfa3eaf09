// Copyright (c) 2025 NetPulse authors
// All rights reserved. Use of this source code is governed by an
// MIT-style license that can be found in the LICENSE file.

package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"netpulse/internal/monitor"
)

// FeedHandler upgrades the connection to a WebSocket and pushes the same
// telemetry payloads as the SSE stream, one JSON message per tick.
// @Summary Connect to telemetry WebSocket
// @Description Upgrade to WebSocket for the live payload feed.
// @Tags feed
// @Success 101
// @Router /ws/feed [get]
func FeedHandler(m *monitor.Monitor, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		up := websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 8192,
			CheckOrigin:     func(r *http.Request) bool { return true },
		}
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			http.Error(w, "upgrade failed", http.StatusBadRequest)
			return
		}
		defer conn.Close()

		ch := m.Subscribe()
		defer m.Unsubscribe(ch)

		log.Debug("ws client connected", zap.String("remote", r.RemoteAddr))
		defer log.Debug("ws client disconnected", zap.String("remote", r.RemoteAddr))

		// The feed is push-only; the read loop just detects the close
		// handshake (or a dropped peer) and ends the subscription.
		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-r.Context().Done():
				return
			case <-closed:
				return
			case p, ok := <-ch:
				if !ok {
					return
				}
				if err := conn.WriteJSON(p); err != nil {
					return
				}
			}
		}
	}
}
