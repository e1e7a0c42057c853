/*
Package handler provides the HTTP handlers and routing setup for the development room server.

This file contains the HandleWebSocket function, which is responsible for rate limiting,
upgrading the HTTP connection to WebSocket, and initiating the client lifecycle.
*/
package handler

import (
	"net"
	"net/http"

	"github.com/gorilla/websocket"

	"plumchat/internal/app/server"
	"plumchat/internal/pkg/errs"
	"plumchat/internal/pkg/limiter"
	"plumchat/internal/pkg/logx"
	"plumchat/internal/pkg/resp"
)

// HandleWebSocket creates an HTTP HandlerFunc to process WebSocket connection requests.
func HandleWebSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if ip == "" {
			ip = "unknown_ip"
		}

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, http.StatusTooManyRequests,
				errs.ErrRateLimitExceeded, errs.MessageFor(errs.ErrRateLimitExceeded))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := server.NewClient(deps.Room, conn)

		go client.WritePump()

		logx.Info("WebSocket connection established", "remote_addr", conn.RemoteAddr().String())

		deps.Room.Register(client)

		client.ReadPump()
	}
}
