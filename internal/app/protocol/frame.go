/*
Package protocol defines the wire format shared by the chat client and the room server.

This file defines the Frame envelope: a single JSON object with a lower-cased
messageType discriminant and two optional payload fields, one list-typed (dataArray)
and one string-typed (data). Exactly one payload field is meaningful per kind.
*/
package protocol

import (
	"github.com/goccy/go-json"

	"plumchat/internal/pkg/errs"
)

// MessageType is the frame discriminant transmitted in the messageType field.
type MessageType string

const (
	// MessageTypeUsers marks a frame carrying the full, authoritative roster in dataArray.
	MessageTypeUsers MessageType = "users"

	// MessageTypeRegister marks a frame carrying a username in data. Clients send it
	// exactly once per session; the server never sends a meaningful one back.
	MessageTypeRegister MessageType = "register"

	// MessageTypeMessage marks a frame whose data field is itself a JSON-encoded
	// chat payload (see ChatPayload).
	MessageTypeMessage MessageType = "message"
)

// String returns the wire form of the discriminant.
func (t MessageType) String() string {
	return string(t)
}

// Frame is the transport envelope for every message exchanged with the peer group.
// All three fields are always serialized, with null standing in for an absent
// payload, to match the peer's codec exactly.
type Frame struct {
	// MessageType is the frame kind discriminant.
	MessageType MessageType `json:"messageType"`

	// DataArray carries the roster for users frames; null otherwise.
	DataArray []string `json:"dataArray"`

	// Data carries the string payload for register and message frames; null otherwise.
	Data *string `json:"data"`
}

// NewRegisterFrame builds the outbound registration frame for the given username.
func NewRegisterFrame(username string) Frame {
	return Frame{
		MessageType: MessageTypeRegister,
		Data:        &username,
	}
}

// NewMessageFrame builds an outbound chat frame whose data field holds the given
// string. For frames bound for the server this is the raw input text; for frames
// the server fans out it is an encoded ChatPayload.
func NewMessageFrame(data string) Frame {
	return Frame{
		MessageType: MessageTypeMessage,
		Data:        &data,
	}
}

// NewUsersFrame builds a roster frame carrying the full list of connected usernames.
func NewUsersFrame(names []string) Frame {
	return Frame{
		MessageType: MessageTypeUsers,
		DataArray:   names,
	}
}

// Encode serializes the frame to its wire form.
// A serialization failure is reported as a *errs.ProtocolError.
func (f Frame) Encode() (string, error) {
	raw, err := json.Marshal(f)
	if err != nil {
		return "", errs.NewProtocolError(errs.ErrFrameEncode, err)
	}

	return string(raw), nil
}

// DecodeFrame parses raw as a Frame and validates its shape: the discriminant must
// be one of the three known kinds, a users frame must carry dataArray, and a message
// frame must carry data. Any violation is reported as a *errs.ProtocolError.
// The nested chat payload of a message frame is NOT decoded here; see DecodeChatPayload.
func DecodeFrame(raw string) (Frame, error) {
	var frame Frame
	if err := json.Unmarshal([]byte(raw), &frame); err != nil {
		return Frame{}, errs.NewProtocolError(errs.ErrFrameSyntax, err)
	}

	switch frame.MessageType {
	case MessageTypeUsers:
		if frame.DataArray == nil {
			return Frame{}, errs.NewProtocolError(errs.ErrUsersPayloadMissing, nil)
		}

	case MessageTypeMessage:
		if frame.Data == nil {
			return Frame{}, errs.NewProtocolError(errs.ErrMessagePayloadMissing, nil)
		}

	case MessageTypeRegister:
		// No inbound payload requirement: the client treats any inbound register
		// frame as unexpected but harmless.

	default:
		return Frame{}, errs.NewProtocolError(errs.ErrUnknownMessageType, nil)
	}

	return frame, nil
}
