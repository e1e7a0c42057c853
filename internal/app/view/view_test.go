package view

import (
	"reflect"
	"testing"

	"plumchat/internal/app/chat"
	"plumchat/internal/app/user"
)

func TestRenderOrdering(t *testing.T) {
	roster := user.ProfilesFromNames([]string{"bob", "alice"})
	log := []chat.Message{
		{Sender: "alice", Body: "first"},
		{Sender: "bob", Body: "second"},
		{Sender: "alice", Body: "third"},
	}

	tree := Render(roster, log)

	if len(tree.Users) != 2 || tree.Users[0].Name != "bob" || tree.Users[1].Name != "alice" {
		t.Errorf("Users = %+v, want roster order [bob alice]", tree.Users)
	}

	if len(tree.Messages) != 3 {
		t.Fatalf("Messages length = %d, want 3", len(tree.Messages))
	}
	for i, want := range []string{"first", "second", "third"} {
		if tree.Messages[i].Content.Value != want {
			t.Errorf("Messages[%d] = %q, want %q (oldest first, no reversal)", i, tree.Messages[i].Content.Value, want)
		}
	}
}

func TestRenderContentHeuristic(t *testing.T) {
	tests := []struct {
		name string
		body string
		want ContentKind
	}{
		{name: "gif suffix", body: "http://x/y.gif", want: ContentImage},
		{name: "bare gif name", body: "party.gif", want: ContentImage},
		{name: "png suffix stays text", body: "http://x/y.png", want: ContentText},
		{name: "plain text", body: "hello", want: ContentText},
		{name: "gif mentioned mid-body", body: "see y.gif here", want: ContentText},
		{name: "uppercase suffix stays text", body: "http://x/y.GIF", want: ContentText},
	}

	roster := user.ProfilesFromNames([]string{"alice"})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := Render(roster, []chat.Message{{Sender: "alice", Body: tt.body}})

			if got := tree.Messages[0].Content.Kind; got != tt.want {
				t.Errorf("content kind for %q = %q, want %q", tt.body, got, tt.want)
			}
			if got := tree.Messages[0].Content.Value; got != tt.body {
				t.Errorf("content value = %q, want %q", got, tt.body)
			}
		})
	}
}

func TestRenderUnknownSender(t *testing.T) {
	roster := user.ProfilesFromNames([]string{"alice"})
	log := []chat.Message{
		{Sender: "alice", Body: "known"},
		{Sender: "stranger", Body: "unknown"},
	}

	tree := Render(roster, log)

	if len(tree.Messages) != 2 {
		t.Fatalf("Messages length = %d, want 2 (unknown senders are retained)", len(tree.Messages))
	}

	known := tree.Messages[0]
	if !known.Known || known.AvatarURL != user.AvatarURL("alice") {
		t.Errorf("known sender bubble = %+v, want decorated", known)
	}

	unknown := tree.Messages[1]
	if unknown.Known || unknown.AvatarURL != "" {
		t.Errorf("unknown sender bubble = %+v, want undecorated", unknown)
	}
	if unknown.Content.Value != "unknown" {
		t.Errorf("unknown sender body = %q, want rendered anyway", unknown.Content.Value)
	}
}

func TestRenderIsReferentiallySafe(t *testing.T) {
	roster := user.ProfilesFromNames([]string{"alice", "bob"})
	log := []chat.Message{{Sender: "alice", Body: "hi"}}

	first := Render(roster, log)
	second := Render(roster, log)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Render is not referentially safe:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}

func TestRenderEmptyState(t *testing.T) {
	tree := Render(nil, nil)

	if len(tree.Users) != 0 || len(tree.Messages) != 0 {
		t.Errorf("Render(nil, nil) = %+v, want empty regions", tree)
	}
}
