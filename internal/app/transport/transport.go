/*
Package transport owns the persistent connection to the chat server.

This file defines the Sender contract consumed by the chat session: a
non-blocking enqueue of one outbound text frame. The concrete WebSocket
implementation lives in websocket.go.
*/
package transport

// Sender enqueues one outbound text frame without blocking on network I/O.
// A failed enqueue is reported as a *errs.SendError; delivery of a successful
// enqueue is not acknowledged — outbound order is enqueue order, and the caller
// never learns whether a frame reached the peer.
type Sender interface {
	Send(text string) error
}
