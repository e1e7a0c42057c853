/*
Package chat contains the client-side core of the chat room: the Session state
machine that turns the asynchronous stream of inbound frames into consistent
roster and message-log state, and turns user input into correctly framed
outbound messages.

A Session is confined to a single event loop (the owning view's): handlers run
one at a time, so the Session does no locking of its own.
*/
package chat

import (
	"strings"

	"github.com/rs/zerolog"

	"plumchat/internal/app/protocol"
	"plumchat/internal/app/transport"
	"plumchat/internal/app/user"
	"plumchat/internal/pkg/logx"
)

// State identifies where a Session is in its lifecycle.
type State string

const (
	// StateUninitialized is the state before Initialize is called.
	StateUninitialized State = "uninitialized"

	// StateActive is entered by Initialize and is terminal for the session.
	StateActive State = "active"
)

// Message is one entry of the message log. Messages are immutable once created,
// appended in arrival order and never removed or reordered.
type Message struct {
	// Sender is the username the server attributed the message to.
	Sender string

	// Body is the raw chat text.
	Body string
}

// Option configures a Session at construction.
type Option func(*Session)

// WithErrorSink threads send failures to the given sink. Sends stay
// fire-and-forget either way; the sink only makes their failures observable.
func WithErrorSink(sink func(error)) Option {
	return func(s *Session) {
		s.errorSink = sink
	}
}

// Session owns the client state of one chat view: the roster, the message log
// and the input buffer. Inbound frames mutate the state all-or-nothing; a
// malformed frame is dropped and logged, never corrupting what came before.
type Session struct {
	sender    transport.Sender
	errorSink func(error)

	state    State
	identity string

	roster []user.Profile
	log    []Message
	input  string

	logger zerolog.Logger
}

// NewSession constructs an empty, uninitialized Session that sends outbound
// frames through sender.
func NewSession(sender transport.Sender, opts ...Option) *Session {
	sessionLogger := logx.Logger().With().
		Str("component", "session").
		Logger()

	s := &Session{
		sender: sender,
		state:  StateUninitialized,
		logger: sessionLogger,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Initialize records the user's identity, transitions the session to Active and
// emits exactly one registration frame. Registration is fire-and-forget: an
// enqueue failure is logged and sunk, never surfaced. Calling Initialize on an
// already active session is a logged no-op, so the register frame is sent at
// most once per session.
func (s *Session) Initialize(identity string) {
	if s.state == StateActive {
		s.logger.Warn().
			Str("identity", s.identity).
			Msg("Initialize called on an active session. Ignoring.")
		return
	}

	s.identity = identity
	s.state = StateActive
	s.logger = s.logger.With().Str("identity", identity).Logger()

	s.sendFrame(protocol.NewRegisterFrame(identity))

	s.logger.Debug().Msg("Session initialized, registration sent.")
}

// HandleFrame parses raw as a wire frame and applies it to the session state.
// It reports whether the state changed in a way that warrants a re-render.
//
// A users frame wholly replaces the roster (the frame is authoritative, not
// incremental). A message frame appends one entry to the log. An inbound
// register frame is unexpected but harmless: an intentional no-op,
// distinguished from a protocol error. Any malformed frame is dropped with the
// prior state unchanged.
func (s *Session) HandleFrame(raw string) bool {
	frame, err := protocol.DecodeFrame(raw)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Dropping malformed inbound frame.")
		return false
	}

	switch frame.MessageType {
	case protocol.MessageTypeUsers:
		s.roster = user.ProfilesFromNames(frame.DataArray)

		s.logger.Debug().
			Int("roster_size", len(s.roster)).
			Msg("Roster replaced.")
		return true

	case protocol.MessageTypeMessage:
		payload, err := protocol.DecodeChatPayload(*frame.Data)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Dropping message frame with malformed chat payload.")
			return false
		}

		s.log = append(s.log, Message{
			Sender: payload.From,
			Body:   payload.Message,
		})

		s.logger.Debug().
			Str("sender", payload.From).
			Int("log_size", len(s.log)).
			Msg("Message appended.")
		return true

	default:
		// register: not a meaningful inbound kind for this client.
		s.logger.Debug().
			Str("message_type", frame.MessageType.String()).
			Msg("Ignoring inbound frame kind.")
		return false
	}
}

// SetInput mirrors the UI input control's buffer into the session.
func (s *Session) SetInput(text string) {
	s.input = text
}

// Input returns the current input buffer.
func (s *Session) Input() string {
	return s.input
}

// Submit sends the current input buffer as one chat frame. A buffer that is
// empty after trimming is a complete no-op. Otherwise the raw buffer text
// becomes the frame's data (the server attributes messages, so the identity is
// not re-sent), the send is fire-and-forget, and the buffer is cleared
// unconditionally to keep the input control responsive.
func (s *Session) Submit() {
	if strings.TrimSpace(s.input) == "" {
		return
	}

	s.sendFrame(protocol.NewMessageFrame(s.input))

	s.input = ""
}

// State returns the session's lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Identity returns the username recorded by Initialize.
func (s *Session) Identity() string {
	return s.identity
}

// Roster returns a copy of the current roster in server order.
func (s *Session) Roster() []user.Profile {
	roster := make([]user.Profile, len(s.roster))
	copy(roster, s.roster)
	return roster
}

// Log returns a copy of the message log in arrival order, oldest first.
func (s *Session) Log() []Message {
	log := make([]Message, len(s.log))
	copy(log, s.log)
	return log
}

// sendFrame encodes and enqueues one outbound frame. Failures are logged and
// handed to the error sink; they are never retried and never block the caller.
func (s *Session) sendFrame(frame protocol.Frame) {
	raw, err := frame.Encode()
	if err != nil {
		s.logger.Error().Err(err).
			Str("message_type", frame.MessageType.String()).
			Msg("Failed to encode outbound frame.")
		s.sink(err)
		return
	}

	if err := s.sender.Send(raw); err != nil {
		s.logger.Warn().Err(err).
			Str("message_type", frame.MessageType.String()).
			Msg("Failed to enqueue outbound frame.")
		s.sink(err)
	}
}

func (s *Session) sink(err error) {
	if s.errorSink != nil {
		s.errorSink(err)
	}
}
