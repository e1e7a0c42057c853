/*
Package transport owns the persistent connection to the chat server.

This file defines the WebSocket implementation of the Sender contract. It dials
the server, runs a read pump that publishes every inbound text frame to the
relay broker, and a write pump that drains the outbound queue with write
deadlines and keepalive pings.
*/
package transport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"plumchat/internal/app/relay"
	"plumchat/internal/pkg/errs"
	"plumchat/internal/pkg/logx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed to wait for a Pong message from the server.
	pongWait = 60 * time.Second

	// frequency at which the client sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a frame sent by the server.
	maxMessageSize = 8192

	// capacity of the outbound frame queue.
	sendQueueSize = 256
)

// WebSocket is the Sender implementation backed by a gorilla/websocket connection.
// Inbound text frames are published to the relay broker; outbound frames are
// queued and written by a dedicated write pump.
type WebSocket struct {
	conn   *websocket.Conn
	broker *relay.Broker
	send   chan string
	logger zerolog.Logger

	closeOnce sync.Once
	closed    chan struct{}
}

// Dial connects to the chat server at url and starts the read and write pumps.
// Every inbound text frame is published to broker until the connection ends.
func Dial(ctx context.Context, url string, broker *relay.Broker) (*WebSocket, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", url, err)
	}

	wsLogger := logx.Logger().With().
		Str("component", "transport").
		Str("server_url", url).
		Logger()

	ws := &WebSocket{
		conn:   conn,
		broker: broker,
		send:   make(chan string, sendQueueSize),
		logger: wsLogger,
		closed: make(chan struct{}),
	}

	go ws.writePump()
	go ws.readPump()

	ws.logger.Info().Msg("Connection established.")

	return ws, nil
}

// Send enqueues one outbound text frame. It never blocks: if the connection is
// closed or the queue is full, it fails immediately with a *errs.SendError.
func (ws *WebSocket) Send(text string) error {
	select {
	case <-ws.closed:
		return errs.NewSendError(errs.ErrTransportClosed, nil)
	default:
	}

	select {
	case ws.send <- text:
		return nil
	default:
		ws.logger.Warn().Int("queue_len", len(ws.send)).Msg("Send queue full, dropping frame.")
		return errs.NewSendError(errs.ErrSendQueueFull, nil)
	}
}

// Close tears the connection down. Pending queued frames may be lost; there is
// no draining guarantee. Closing twice is harmless.
func (ws *WebSocket) Close() {
	ws.closeOnce.Do(func() {
		close(ws.closed)

		if err := ws.conn.Close(); err != nil {
			ws.logger.Debug().Err(err).Msg("Connection close error.")
		}

		ws.logger.Info().Msg("Connection closed.")
	})
}

// readPump reads text frames from the connection and publishes them to the
// broker. It handles heartbeats (Pong) and closes the transport when the
// connection ends.
func (ws *WebSocket) readPump() {
	defer ws.Close()

	ws.conn.SetReadLimit(maxMessageSize)

	if err := ws.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		ws.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	ws.conn.SetPongHandler(func(string) error {
		return ws.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, messageBytes, err := ws.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				ws.logger.Info().Err(err).Msg("Error reading frame (server close/going away)")
			}
			return
		}

		ws.broker.Publish(string(messageBytes))
	}
}

// writePump drains the send queue to the connection and keeps the heartbeat
// alive with periodic pings.
func (ws *WebSocket) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		ws.Close()
	}()

	for {
		select {
		case text := <-ws.send:
			if err := ws.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				ws.logger.Error().Err(err).Msg("Failed to set write deadline")
				return
			}

			if err := ws.conn.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
				ws.logger.Error().Err(err).Msg("Error writing frame")
				return
			}

		case <-ticker.C:
			if err := ws.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				ws.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
				return
			}

			if err := ws.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				ws.logger.Error().Err(err).Msg("Error writing ping")
				return
			}

		case <-ws.closed:
			if err := ws.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := ws.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
				ws.logger.Debug().Err(err).Msg("Error writing close message")
			}
			return
		}
	}
}
