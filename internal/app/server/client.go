/*
Package server implements the development room server.

This file defines the Client struct, representing one active WebSocket
connection. It manages the connection's message loops (ReadPump and WritePump)
and forwards decoded frames to the Room.
*/
package server

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"plumchat/internal/app/protocol"
	"plumchat/internal/pkg/errs"
	"plumchat/internal/pkg/logx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a frame sent by the client.
	maxMessageSize = 8192

	// capacity of the per-connection outbound queue.
	sendQueueSize = 256
)

// Client represents one active WebSocket connection in the room.
type Client struct {
	// the room this connection belongs to.
	room *Room

	// underlying WebSocket connection object.
	conn *websocket.Conn

	// a buffered channel used to queue frames waiting to be sent to the client.
	send chan string

	// structured logger with connection context.
	logger zerolog.Logger

	// closeOnce guards the send queue against double close.
	closeOnce sync.Once
}

// NewClient constructs a Client for an upgraded connection.
func NewClient(room *Room, wsConn *websocket.Conn) *Client {
	clientLogger := logx.Logger().With().
		Str("component", "client").
		Str("remote_addr", wsConn.RemoteAddr().String()).
		Logger()

	return &Client{
		room:   room,
		conn:   wsConn,
		send:   make(chan string, sendQueueSize),
		logger: clientLogger,
	}
}

// ReadPump reads frames from the WebSocket connection, decodes them and
// forwards them to the room. It handles heartbeats (Pong) and performs cleanup
// when the connection closes.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, messageBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading frame (client close/going away)")
			}
			break
		}

		frame, err := protocol.DecodeFrame(string(messageBytes))
		if err != nil {
			c.logger.Warn().Err(err).Msg("Client sent a malformed frame. Dropping.")
			continue
		}

		select {
		case c.room.inbound <- inboundFrame{client: c, frame: frame}:
		default:
			c.logger.Warn().Msg("Room inbound queue full. Dropping frame.")
		}
	}
}

// cleanupOnDisconnect notifies the room and closes the connection when the
// client's ReadPump terminates.
func (c *Client) cleanupOnDisconnect() {
	c.logger.Info().Msg("Connection cleanup starting.")

	select {
	case c.room.leave <- c:
	case <-c.room.stop:
	}

	if err := c.conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Connection close error")
	}
}

// WritePump writes queued frames to the WebSocket connection and keeps the
// heartbeat alive with periodic pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Connection close error in WritePump")
		}
	}()

	for {
		select {
		case frame, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error().Err(err).Msg("Failed to set write deadline")
				return
			}

			if !ok {
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.logger.Debug().Err(err).Msg("Error writing close message")
				}
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
				c.logger.Error().Err(err).Msg("Error writing frame")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
				return
			}

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Error().Err(err).Msg("Error writing ping")
				return
			}
		}
	}
}

// enqueue places one frame on the send queue without blocking.
func (c *Client) enqueue(frame string) error {
	select {
	case c.send <- frame:
		return nil
	default:
		c.logger.Warn().Int("queue_len", len(c.send)).Msg("Send queue full, dropping frame")
		return errs.NewSendError(errs.ErrSendQueueFull, nil)
	}
}

// closeSend closes the send queue, which makes WritePump send a close frame and
// terminate. Safe to call more than once.
func (c *Client) closeSend() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}
