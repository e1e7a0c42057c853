package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestProtocolErrorWrapping(t *testing.T) {
	cause := fmt.Errorf("unexpected end of JSON input")
	err := NewProtocolError(ErrFrameSyntax, cause)

	if err.Code != ErrFrameSyntax {
		t.Errorf("Code = %d, want %d", err.Code, ErrFrameSyntax)
	}
	if err.Message != MessageFor(ErrFrameSyntax) {
		t.Errorf("Message = %q, want %q", err.Message, MessageFor(ErrFrameSyntax))
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is does not see the wrapped cause")
	}

	var protoErr *ProtocolError
	if !errors.As(error(err), &protoErr) {
		t.Error("errors.As does not match *ProtocolError")
	}
}

func TestSendErrorWithoutCause(t *testing.T) {
	err := NewSendError(ErrSendQueueFull, nil)

	if err.Unwrap() != nil {
		t.Errorf("Unwrap() = %v, want nil", err.Unwrap())
	}
	if err.Error() == "" {
		t.Error("Error() is empty")
	}
}

func TestMessageForUnknownCode(t *testing.T) {
	if got := MessageFor(-42); got != MessageFor(ErrUnknown) {
		t.Errorf("MessageFor(-42) = %q, want the ErrUnknown message", got)
	}
}
