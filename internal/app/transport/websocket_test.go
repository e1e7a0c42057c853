package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"plumchat/internal/app/relay"
	"plumchat/internal/pkg/errs"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// echoServer upgrades each request and echoes every text frame back.
func echoServer(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		for {
			mt, payload, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if err := conn.WriteMessage(mt, payload); err != nil {
				return
			}
		}
	}))
}

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestDialSendAndReceive(t *testing.T) {
	server := echoServer(t)
	defer server.Close()

	broker := relay.NewBroker()
	defer broker.Close()

	sub := broker.Subscribe()

	ws, err := Dial(context.Background(), wsURL(server), broker)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer ws.Close()

	if err := ws.Send(`{"messageType":"register","data":"alice","dataArray":null}`); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	select {
	case frame := <-sub.C:
		if !strings.Contains(frame, `"register"`) {
			t.Errorf("received frame %q, want the echoed register frame", frame)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the echoed frame on the relay")
	}
}

func TestSendAfterClose(t *testing.T) {
	server := echoServer(t)
	defer server.Close()

	broker := relay.NewBroker()
	defer broker.Close()

	ws, err := Dial(context.Background(), wsURL(server), broker)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}

	ws.Close()
	ws.Close() // second close is harmless

	err = ws.Send("after close")

	var sendErr *errs.SendError
	if !errors.As(err, &sendErr) {
		t.Fatalf("Send() after close error = %v, want *errs.SendError", err)
	}
	if sendErr.Code != errs.ErrTransportClosed {
		t.Errorf("Send() after close code = %d, want %d", sendErr.Code, errs.ErrTransportClosed)
	}
}

func TestDialFailure(t *testing.T) {
	broker := relay.NewBroker()
	defer broker.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	if _, err := Dial(ctx, "ws://127.0.0.1:1/ws", broker); err == nil {
		t.Fatal("Dial() to an unreachable address succeeded, want error")
	}
}
