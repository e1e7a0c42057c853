package protocol

import (
	"errors"
	"strings"
	"testing"

	"plumchat/internal/pkg/errs"
)

func TestDecodeFrame(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantType MessageType
		wantCode int
	}{
		{
			name:     "users frame",
			raw:      `{"messageType":"users","dataArray":["alice","bob"]}`,
			wantType: MessageTypeUsers,
		},
		{
			name:     "users frame with empty roster",
			raw:      `{"messageType":"users","dataArray":[]}`,
			wantType: MessageTypeUsers,
		},
		{
			name:     "message frame",
			raw:      `{"messageType":"message","data":"{\"from\":\"alice\",\"message\":\"hi\"}"}`,
			wantType: MessageTypeMessage,
		},
		{
			name:     "register frame without payload",
			raw:      `{"messageType":"register"}`,
			wantType: MessageTypeRegister,
		},
		{
			name:     "not json",
			raw:      `{{{`,
			wantCode: errs.ErrFrameSyntax,
		},
		{
			name:     "unknown discriminant",
			raw:      `{"messageType":"bogus"}`,
			wantCode: errs.ErrUnknownMessageType,
		},
		{
			name:     "users frame missing dataArray",
			raw:      `{"messageType":"users","data":"alice"}`,
			wantCode: errs.ErrUsersPayloadMissing,
		},
		{
			name:     "users frame with null dataArray",
			raw:      `{"messageType":"users","dataArray":null}`,
			wantCode: errs.ErrUsersPayloadMissing,
		},
		{
			name:     "message frame missing data",
			raw:      `{"messageType":"message","dataArray":["x"]}`,
			wantCode: errs.ErrMessagePayloadMissing,
		},
		{
			name:     "users frame with wrong payload shape",
			raw:      `{"messageType":"users","dataArray":"alice"}`,
			wantCode: errs.ErrFrameSyntax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := DecodeFrame(tt.raw)

			if tt.wantCode != 0 {
				var protoErr *errs.ProtocolError
				if !errors.As(err, &protoErr) {
					t.Fatalf("DecodeFrame(%q) error = %v, want *errs.ProtocolError", tt.raw, err)
				}
				if protoErr.Code != tt.wantCode {
					t.Errorf("DecodeFrame(%q) code = %d, want %d", tt.raw, protoErr.Code, tt.wantCode)
				}
				return
			}

			if err != nil {
				t.Fatalf("DecodeFrame(%q) error = %v", tt.raw, err)
			}
			if frame.MessageType != tt.wantType {
				t.Errorf("DecodeFrame(%q) type = %q, want %q", tt.raw, frame.MessageType, tt.wantType)
			}
		})
	}
}

func TestFrameRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "users", raw: `{"messageType":"users","dataArray":["alice","bob"]}`},
		{name: "register", raw: `{"messageType":"register","data":"alice","dataArray":null}`},
		{name: "message", raw: `{"messageType":"message","data":"{\"from\":\"alice\",\"message\":\"hi\"}"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := DecodeFrame(tt.raw)
			if err != nil {
				t.Fatalf("DecodeFrame() error = %v", err)
			}

			encoded, err := decoded.Encode()
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}

			again, err := DecodeFrame(encoded)
			if err != nil {
				t.Fatalf("DecodeFrame(re-encoded) error = %v", err)
			}

			if again.MessageType != decoded.MessageType {
				t.Errorf("round trip changed discriminant: %q -> %q", decoded.MessageType, again.MessageType)
			}
			if len(again.DataArray) != len(decoded.DataArray) {
				t.Errorf("round trip changed dataArray length: %d -> %d", len(decoded.DataArray), len(again.DataArray))
			}
			for i := range decoded.DataArray {
				if again.DataArray[i] != decoded.DataArray[i] {
					t.Errorf("round trip changed dataArray[%d]: %q -> %q", i, decoded.DataArray[i], again.DataArray[i])
				}
			}
			if (again.Data == nil) != (decoded.Data == nil) {
				t.Fatalf("round trip changed data presence")
			}
			if decoded.Data != nil && *again.Data != *decoded.Data {
				t.Errorf("round trip changed data: %q -> %q", *decoded.Data, *again.Data)
			}
		})
	}
}

func TestOutboundFrameWireShape(t *testing.T) {
	encoded, err := NewRegisterFrame("alice").Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	// All three keys are serialized, null standing in for absent payloads,
	// to match the peer's codec.
	for _, want := range []string{`"messageType":"register"`, `"data":"alice"`, `"dataArray":null`} {
		if !strings.Contains(encoded, want) {
			t.Errorf("register frame %s does not contain %s", encoded, want)
		}
	}

	encoded, err = NewMessageFrame("hello").Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	for _, want := range []string{`"messageType":"message"`, `"data":"hello"`, `"dataArray":null`} {
		if !strings.Contains(encoded, want) {
			t.Errorf("message frame %s does not contain %s", encoded, want)
		}
	}
}

func TestDecodeChatPayload(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		want     ChatPayload
		wantCode int
	}{
		{
			name: "valid payload",
			data: `{"from":"alice","message":"hi"}`,
			want: ChatPayload{From: "alice", Message: "hi"},
		},
		{
			name: "empty strings are present",
			data: `{"from":"","message":""}`,
			want: ChatPayload{},
		},
		{
			name:     "not json",
			data:     `hello world`,
			wantCode: errs.ErrChatPayloadSyntax,
		},
		{
			name:     "missing from",
			data:     `{"message":"hi"}`,
			wantCode: errs.ErrChatPayloadShape,
		},
		{
			name:     "missing message",
			data:     `{"from":"alice"}`,
			wantCode: errs.ErrChatPayloadShape,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeChatPayload(tt.data)

			if tt.wantCode != 0 {
				var protoErr *errs.ProtocolError
				if !errors.As(err, &protoErr) {
					t.Fatalf("DecodeChatPayload(%q) error = %v, want *errs.ProtocolError", tt.data, err)
				}
				if protoErr.Code != tt.wantCode {
					t.Errorf("DecodeChatPayload(%q) code = %d, want %d", tt.data, protoErr.Code, tt.wantCode)
				}
				return
			}

			if err != nil {
				t.Fatalf("DecodeChatPayload(%q) error = %v", tt.data, err)
			}
			if got != tt.want {
				t.Errorf("DecodeChatPayload(%q) = %+v, want %+v", tt.data, got, tt.want)
			}
		})
	}
}

func TestChatPayloadRoundTrip(t *testing.T) {
	payload := ChatPayload{From: "alice", Message: `she said "hi"`}

	encoded, err := payload.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	decoded, err := DecodeChatPayload(encoded)
	if err != nil {
		t.Fatalf("DecodeChatPayload() error = %v", err)
	}

	if decoded != payload {
		t.Errorf("round trip = %+v, want %+v", decoded, payload)
	}
}
