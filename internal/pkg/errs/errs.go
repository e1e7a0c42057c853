/*
Package errs provides custom error types and application-level error code constants.

This file defines the two error families of the chat core: ProtocolError for malformed
or unrecognized wire frames, and SendError for outbound enqueue failures. Both carry a
business code and a human-readable message, and both wrap an optional underlying cause.
*/
package errs

import (
	"fmt"
)

// ProtocolError reports a malformed or unrecognized frame or payload.
// It is always recovered locally: the offending update is dropped and logged,
// prior state is left untouched.
type ProtocolError struct {
	// Code is the business error code (see error_codes.go).
	Code int

	// Message is the human-readable error description.
	Message string

	// Err is the underlying cause, if any (e.g. a JSON syntax error).
	Err error
}

// Error implements the standard Go error interface.
func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("protocol error %d: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("protocol error %d: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for use with errors.Is and errors.As.
func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// NewProtocolError constructs a *ProtocolError for a predefined error code,
// wrapping the optional cause. An unknown code falls back to ErrUnknown.
func NewProtocolError(code int, cause error) *ProtocolError {
	return &ProtocolError{
		Code:    code,
		Message: MessageFor(code),
		Err:     cause,
	}
}

// SendError reports a failed outbound enqueue. Sends are fire-and-forget:
// a SendError is logged (and optionally observed through an error sink),
// never retried and never surfaced to the user.
type SendError struct {
	// Code is the business error code (see error_codes.go).
	Code int

	// Message is the human-readable error description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the standard Go error interface.
func (e *SendError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("send error %d: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("send error %d: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for use with errors.Is and errors.As.
func (e *SendError) Unwrap() error {
	return e.Err
}

// NewSendError constructs a *SendError for a predefined error code,
// wrapping the optional cause. An unknown code falls back to ErrUnknown.
func NewSendError(code int, cause error) *SendError {
	return &SendError{
		Code:    code,
		Message: MessageFor(code),
		Err:     cause,
	}
}
