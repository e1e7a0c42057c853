/*
Package errs provides the error types and application-level error code constants
shared by the chat client and the development room server.

These error codes identify specific protocol and transport failures in logs and
in tests; they are never transmitted to the remote peer.
*/
package errs

// 11xx: Frame Envelope Errors
const (
	// ErrFrameSyntax indicates that an inbound frame was not a valid JSON object.
	ErrFrameSyntax = 1101

	// ErrUnknownMessageType indicates that the frame discriminant was not one of
	// the recognized kinds.
	ErrUnknownMessageType = 1102

	// ErrUsersPayloadMissing indicates that a users frame carried no dataArray payload.
	ErrUsersPayloadMissing = 1103

	// ErrMessagePayloadMissing indicates that a message frame carried no data payload.
	ErrMessagePayloadMissing = 1104

	// ErrFrameEncode indicates that an outbound frame could not be serialized.
	ErrFrameEncode = 1105
)

// 12xx: Chat Payload Errors (the nested JSON carried by a message frame)
const (
	// ErrChatPayloadSyntax indicates that the data field of a message frame was
	// not itself a valid JSON object.
	ErrChatPayloadSyntax = 1201

	// ErrChatPayloadShape indicates that the nested chat payload was valid JSON
	// but lacked its from or message field.
	ErrChatPayloadShape = 1202

	// ErrChatPayloadEncode indicates that an outbound chat payload could not be serialized.
	ErrChatPayloadEncode = 1203
)

// 21xx: Transport Send Errors
const (
	// ErrSendQueueFull indicates that the outbound queue had no room for the frame.
	ErrSendQueueFull = 2101

	// ErrTransportClosed indicates that a send was attempted after the connection closed.
	ErrTransportClosed = 2102
)

// 31xx: Connection Admission Errors (development server only)
const (
	// ErrRateLimitExceeded indicates that the connection rate from one address
	// exceeded the configured limit.
	ErrRateLimitExceeded = 3101

	// ErrRoomIsFull indicates that the room reached its configured capacity.
	ErrRoomIsFull = 3102
)

// 5xxx: Internal Errors
const (
	// ErrUnknown represents an unclassified internal error.
	ErrUnknown = 5000
)
