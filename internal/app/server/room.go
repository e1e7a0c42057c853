/*
Package server implements the development room server: a single in-memory chat
room speaking the same wire protocol as the client, so the client can be
exercised end-to-end. There is one room, no persistence and no authentication.

This file defines the Room struct, the event loop that owns the connection set.
It learns usernames from register frames, broadcasts the authoritative roster on
every roster change, and fans out attributed chat messages to all clients.
*/
package server

import (
	"github.com/rs/zerolog"

	"plumchat/internal/app/protocol"
	"plumchat/internal/pkg/logx"
)

// inboundChannelBuffer is the capacity of the inbound frame queue.
const inboundChannelBuffer = 1024

// inboundFrame pairs a decoded frame with the connection it arrived on.
type inboundFrame struct {
	client *Client
	frame  protocol.Frame
}

// Room is the single chat room. Its Run loop exclusively owns the connection
// set and all per-connection naming state; every mutation flows through the
// join, leave and inbound channels.
type Room struct {
	// capacity is the maximum number of simultaneous connections; 0 means unbounded.
	capacity int

	// names maps each connection to the username it registered, "" before registration.
	names map[*Client]string

	// order lists registered connections in registration order; it defines roster order.
	order []*Client

	// join carries connections entering the room.
	join chan *Client

	// leave carries connections exiting the room.
	leave chan *Client

	// inbound carries decoded frames from all connections.
	inbound chan inboundFrame

	// stop signals the Run loop to terminate.
	stop chan struct{}

	// structured logger with room context.
	logger zerolog.Logger
}

// NewRoom creates a Room with the given connection capacity.
func NewRoom(capacity int) *Room {
	roomLogger := logx.Logger().With().
		Str("component", "room").
		Logger()

	return &Room{
		capacity: capacity,
		names:    make(map[*Client]string),
		join:     make(chan *Client),
		leave:    make(chan *Client),
		inbound:  make(chan inboundFrame, inboundChannelBuffer),
		stop:     make(chan struct{}),
		logger:   roomLogger,
	}
}

// Stop terminates the Run loop and closes every connection's send queue.
func (r *Room) Stop() {
	select {
	case <-r.stop:
	default:
		close(r.stop)
	}
}

// Run is the room's event loop. It must run in exactly one goroutine; it owns
// all room state for its lifetime.
func (r *Room) Run() {
	defer func() {
		for client := range r.names {
			client.closeSend()
		}

		r.logger.Info().Msg("Room Run loop finished.")
	}()

	for {
		select {
		case client := <-r.join:
			if r.capacity > 0 && len(r.names) >= r.capacity {
				r.logger.Warn().
					Int("capacity", r.capacity).
					Msg("Room is full. New connection rejected.")

				client.closeSend()
				continue
			}

			r.names[client] = ""

			r.logger.Info().
				Int("total_connections", len(r.names)).
				Msg("Connection joined room.")

		case client := <-r.leave:
			name, ok := r.names[client]
			if !ok {
				continue
			}

			delete(r.names, client)
			client.closeSend()

			r.logger.Info().
				Str("username", name).
				Int("total_connections", len(r.names)).
				Msg("Connection left room.")

			if name != "" {
				r.dropFromOrder(client)
				r.broadcastRoster()
			}

		case msg := <-r.inbound:
			r.handleFrame(msg.client, msg.frame)

		case <-r.stop:
			r.logger.Info().Msg("Room stop initiated.")
			return
		}
	}
}

// Register queues a connection for admission to the room.
func (r *Room) Register(client *Client) {
	select {
	case r.join <- client:
	case <-r.stop:
		client.closeSend()
	}
}

// handleFrame applies one inbound frame to room state.
func (r *Room) handleFrame(client *Client, frame protocol.Frame) {
	if _, ok := r.names[client]; !ok {
		// The connection left while its frame was queued.
		return
	}

	switch frame.MessageType {
	case protocol.MessageTypeRegister:
		if frame.Data == nil || *frame.Data == "" {
			r.logger.Warn().Msg("Register frame without a username. Dropping.")
			return
		}

		if r.names[client] != "" {
			r.logger.Warn().
				Str("username", r.names[client]).
				Msg("Connection attempted to register twice. Dropping.")
			return
		}

		r.names[client] = *frame.Data
		r.order = append(r.order, client)

		r.logger.Info().
			Str("username", *frame.Data).
			Int("roster_size", len(r.order)).
			Msg("Username registered.")

		r.broadcastRoster()

	case protocol.MessageTypeMessage:
		name := r.names[client]
		if name == "" {
			r.logger.Warn().Msg("Message frame from an unregistered connection. Dropping.")
			return
		}

		payload := protocol.ChatPayload{
			From:    name,
			Message: *frame.Data,
		}

		data, err := payload.Encode()
		if err != nil {
			r.logger.Error().Err(err).Msg("Failed to encode chat payload for broadcast.")
			return
		}

		raw, err := protocol.NewMessageFrame(data).Encode()
		if err != nil {
			r.logger.Error().Err(err).Msg("Failed to encode message frame for broadcast.")
			return
		}

		// Fan out to every connection, the sender included: clients render
		// their own messages from the echo.
		r.broadcast(raw)

	default:
		r.logger.Warn().
			Str("message_type", frame.MessageType.String()).
			Msg("Unexpected inbound frame kind. Dropping.")
	}
}

// broadcastRoster sends the full, authoritative username list to every connection.
func (r *Room) broadcastRoster() {
	names := make([]string, 0, len(r.order))
	for _, client := range r.order {
		names = append(names, r.names[client])
	}

	raw, err := protocol.NewUsersFrame(names).Encode()
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to encode users frame for broadcast.")
		return
	}

	r.broadcast(raw)
}

// broadcast enqueues raw on every connection, unregistering any whose queue is full.
func (r *Room) broadcast(raw string) {
	for client := range r.names {
		if err := client.enqueue(raw); err != nil {
			r.logger.Warn().
				Str("username", r.names[client]).
				Msg("Connection send queue full. Scheduling removal.")

			select {
			case r.leave <- client:
			default:
				r.logger.Warn().Msg("Leave channel blocked, skipping removal.")
			}
		}
	}
}

// dropFromOrder removes a connection from the registration-order slice.
func (r *Room) dropFromOrder(client *Client) {
	for i, c := range r.order {
		if c == client {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}
