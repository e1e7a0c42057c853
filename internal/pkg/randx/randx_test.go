package randx

import (
	"strings"
	"testing"
)

func TestGuestNickname(t *testing.T) {
	seen := make(map[string]struct{})

	for range 50 {
		name, err := GuestNickname()
		if err != nil {
			t.Fatalf("GuestNickname() error = %v", err)
		}

		if !IsValidGuestNickname(name) {
			t.Errorf("GuestNickname() = %q, not a valid guest nickname", name)
		}

		seen[name] = struct{}{}
	}

	if len(seen) < 2 {
		t.Errorf("GuestNickname() produced %d distinct names in 50 draws", len(seen))
	}
}

func TestIsValidGuestNickname(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "valid", in: "guest_Ab12Cd", want: true},
		{name: "missing prefix", in: "Ab12Cd", want: false},
		{name: "too short", in: "guest_Ab1", want: false},
		{name: "too long", in: "guest_Ab12Cd3", want: false},
		{name: "invalid character", in: "guest_Ab12C!", want: false},
		{name: "empty", in: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidGuestNickname(tt.in); got != tt.want {
				t.Errorf("IsValidGuestNickname(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSubscriptionID(t *testing.T) {
	a := SubscriptionID()
	b := SubscriptionID()

	if a == b {
		t.Errorf("SubscriptionID() returned the same value twice: %q", a)
	}

	if strings.Count(a, "-") != 4 {
		t.Errorf("SubscriptionID() = %q, want UUID format", a)
	}
}
