package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"plumchat/internal/app/chat"
	"plumchat/internal/app/relay"
	"plumchat/internal/app/server"
	"plumchat/internal/app/transport"
	"plumchat/internal/app/view"
	"plumchat/internal/configs"
)

func startRoomServer(t *testing.T, capacity int) *httptest.Server {
	t.Helper()

	room := server.NewRoom(capacity)
	go room.Run()
	t.Cleanup(room.Stop)

	deps := &AppDeps{
		Room: room,
		Config: &configs.AppConfig{
			Environment:    "development",
			AllowedOrigins: []string{},
			RoomCapacity:   capacity,
		},
	}

	ts := httptest.NewServer(Router(deps))
	t.Cleanup(ts.Close)

	return ts
}

// testClient wires a full client stack against the test server: transport,
// relay, session.
type testClient struct {
	session *chat.Session
	sub     *relay.Subscription
}

func dialClient(t *testing.T, ts *httptest.Server, username string) *testClient {
	t.Helper()

	broker := relay.NewBroker()
	t.Cleanup(broker.Close)

	sub := broker.Subscribe()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	ws, err := transport.Dial(context.Background(), url, broker)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(ws.Close)

	session := chat.NewSession(ws)
	session.Initialize(username)

	return &testClient{session: session, sub: sub}
}

// waitFor pumps inbound frames into the session until cond holds or the
// deadline passes.
func (c *testClient) waitFor(t *testing.T, cond func(*chat.Session) bool) {
	t.Helper()

	deadline := time.After(3 * time.Second)
	for {
		if cond(c.session) {
			return
		}

		select {
		case raw, ok := <-c.sub.C:
			if !ok {
				t.Fatal("relay subscription closed while waiting")
			}
			c.session.HandleFrame(raw)
		case <-deadline:
			t.Fatalf("condition not reached: roster=%d log=%d",
				len(c.session.Roster()), len(c.session.Log()))
		}
	}
}

func TestChatEndToEnd(t *testing.T) {
	ts := startRoomServer(t, 10)

	alice := dialClient(t, ts, "alice")
	alice.waitFor(t, func(s *chat.Session) bool {
		return len(s.Roster()) == 1
	})

	bob := dialClient(t, ts, "bob")

	for _, client := range []*testClient{alice, bob} {
		client.waitFor(t, func(s *chat.Session) bool {
			return len(s.Roster()) == 2
		})
	}

	alice.session.SetInput("hi")
	alice.session.Submit()

	for name, client := range map[string]*testClient{"alice": alice, "bob": bob} {
		client.waitFor(t, func(s *chat.Session) bool {
			return len(s.Log()) == 1
		})

		roster := client.session.Roster()
		if roster[0].Name != "alice" || roster[1].Name != "bob" {
			t.Errorf("%s roster = %+v, want [alice bob] in join order", name, roster)
		}

		log := client.session.Log()
		if log[0].Sender != "alice" || log[0].Body != "hi" {
			t.Errorf("%s log = %+v, want [{alice hi}]", name, log)
		}

		tree := view.Render(roster, log)
		if len(tree.Users) != 2 || len(tree.Messages) != 1 {
			t.Errorf("%s rendered tree = %+v, want 2 user cards and 1 bubble", name, tree)
		}
		if !tree.Messages[0].Known || tree.Messages[0].Sender != "alice" {
			t.Errorf("%s bubble = %+v, want attributed to alice", name, tree.Messages[0])
		}
	}
}

func TestUnregisteredSenderIsDropped(t *testing.T) {
	ts := startRoomServer(t, 10)

	// A client that never registers: its message frames must not reach peers.
	broker := relay.NewBroker()
	t.Cleanup(broker.Close)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	lurkerWS, err := transport.Dial(context.Background(), url, broker)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(lurkerWS.Close)
	lurker := chat.NewSession(lurkerWS)

	alice := dialClient(t, ts, "alice")
	alice.waitFor(t, func(s *chat.Session) bool {
		return len(s.Roster()) == 1
	})

	lurker.SetInput("sneaky")
	lurker.Submit()

	alice.session.SetInput("hello")
	alice.session.Submit()

	alice.waitFor(t, func(s *chat.Session) bool {
		return len(s.Log()) == 1
	})

	log := alice.session.Log()
	if log[0].Body != "hello" {
		t.Errorf("log = %+v, want only alice's own message", log)
	}
}

func TestRoomCapacity(t *testing.T) {
	ts := startRoomServer(t, 1)

	alice := dialClient(t, ts, "alice")
	alice.waitFor(t, func(s *chat.Session) bool {
		return len(s.Roster()) == 1
	})

	// The room is at capacity: carol's connection is refused, so her
	// registration never reaches the roster.
	dialClient(t, ts, "carol")

	alice.session.SetInput("ping")
	alice.session.Submit()

	alice.waitFor(t, func(s *chat.Session) bool {
		return len(s.Log()) == 1
	})

	if roster := alice.session.Roster(); len(roster) != 1 || roster[0].Name != "alice" {
		t.Errorf("roster = %+v, want only alice (room capacity is 1)", roster)
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts := startRoomServer(t, 10)

	res, err := ts.Client().Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz error = %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != 200 {
		t.Errorf("GET /healthz status = %d, want 200", res.StatusCode)
	}
}
