/*
Package user contains core data structures related to chat participant identity.

It defines the Profile struct, the client-side representation of a roster entry,
and the deterministic derivation of avatar URLs from usernames.
*/
package user

import "fmt"

// AvatarURLTemplate is the fixed template avatar URLs are derived from, with the
// username interpolated as the final path segment. The derivation is pure: the
// same name always yields the same URL, and no network round-trip is needed to
// compute it.
const AvatarURLTemplate = "https://avatars.dicebear.com/api/adventurer-neutral/%s.svg"

// Profile represents one roster entry as displayed by the client.
// It is derived locally from a username and never transmitted.
type Profile struct {
	// Name is the participant's username as announced by the server.
	Name string `json:"name"`

	// AvatarURL is the avatar image URL derived from Name.
	AvatarURL string `json:"avatarUrl"`
}

// NewProfile builds the Profile for the given username, deriving its avatar URL.
func NewProfile(name string) Profile {
	return Profile{
		Name:      name,
		AvatarURL: AvatarURL(name),
	}
}

// AvatarURL derives the avatar image URL for the given username. The name is
// interpolated raw, without escaping, to stay byte-compatible with peers that
// derive the same URL.
func AvatarURL(name string) string {
	return fmt.Sprintf(AvatarURLTemplate, name)
}

// ProfilesFromNames maps an ordered list of usernames to Profiles, preserving order.
func ProfilesFromNames(names []string) []Profile {
	profiles := make([]Profile, 0, len(names))

	for _, name := range names {
		profiles = append(profiles, NewProfile(name))
	}

	return profiles
}
