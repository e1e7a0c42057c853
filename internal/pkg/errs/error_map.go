/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to their human-readable messages, used to
standardize log output and test assertions across the client and the development server.
*/
package errs

// errorMessages stores the message template corresponding to every application error code.
var errorMessages = map[int]string{
	// 11xx: Frame Envelope Errors
	ErrFrameSyntax:           "Inbound frame is not valid JSON.",
	ErrUnknownMessageType:    "Unrecognized messageType discriminant.",
	ErrUsersPayloadMissing:   "Users frame is missing its dataArray payload.",
	ErrMessagePayloadMissing: "Message frame is missing its data payload.",
	ErrFrameEncode:           "Outbound frame could not be serialized.",

	// 12xx: Chat Payload Errors
	ErrChatPayloadSyntax: "Chat payload is not valid JSON.",
	ErrChatPayloadShape:  "Chat payload is missing its from or message field.",
	ErrChatPayloadEncode: "Outbound chat payload could not be serialized.",

	// 21xx: Transport Send Errors
	ErrSendQueueFull:   "Outbound send queue is full.",
	ErrTransportClosed: "Connection is closed.",

	// 31xx: Connection Admission Errors
	ErrRateLimitExceeded: "Too many connection attempts. Please try again later.",
	ErrRoomIsFull:        "This chat room is full.",

	// 5xxx: Internal Errors
	ErrUnknown: "Something went wrong.",
}

// MessageFor returns the message registered for code, falling back to the
// ErrUnknown message when the code has no entry.
func MessageFor(code int) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return errorMessages[ErrUnknown]
}
