/*
Package protocol defines the wire format shared by the chat client and the room server.

This file defines the ChatPayload carried — JSON-encoded a second time — inside the data
field of a message frame. The double encoding is a compatibility constraint with the
peer group: the outer envelope is transport-generic, the inner payload domain-specific.
*/
package protocol

import (
	"github.com/goccy/go-json"

	"plumchat/internal/pkg/errs"
)

// ChatPayload is the domain payload of a message frame: who said what.
type ChatPayload struct {
	// From is the sender's username as attributed by the server.
	From string `json:"from"`

	// Message is the raw chat text.
	Message string `json:"message"`
}

// Encode serializes the payload to the JSON string placed in a message frame's
// data field. A serialization failure is reported as a *errs.ProtocolError.
func (p ChatPayload) Encode() (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", errs.NewProtocolError(errs.ErrChatPayloadEncode, err)
	}

	return string(raw), nil
}

// DecodeChatPayload parses the data field of a message frame as a ChatPayload.
// Both the from and message fields must be present in the JSON object; a payload
// that is not a JSON object, or that lacks either field, is reported as a
// *errs.ProtocolError.
func DecodeChatPayload(data string) (ChatPayload, error) {
	var fields struct {
		From    *string `json:"from"`
		Message *string `json:"message"`
	}

	if err := json.Unmarshal([]byte(data), &fields); err != nil {
		return ChatPayload{}, errs.NewProtocolError(errs.ErrChatPayloadSyntax, err)
	}

	if fields.From == nil || fields.Message == nil {
		return ChatPayload{}, errs.NewProtocolError(errs.ErrChatPayloadShape, nil)
	}

	return ChatPayload{
		From:    *fields.From,
		Message: *fields.Message,
	}, nil
}
