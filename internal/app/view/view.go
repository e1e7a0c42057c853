/*
Package view projects chat session state into a renderable tree.

Render is a pure function: invoking it repeatedly with the same state yields the
same tree, with no side effects and no hidden counters. How the tree is drawn
(terminal, test assertion) is the caller's concern.
*/
package view

import (
	"strings"

	"plumchat/internal/app/chat"
	"plumchat/internal/app/user"
)

// imageSuffix is the content-sniffing heuristic for inline images: a message
// body ending in this suffix renders as an image reference instead of literal
// text. It is a string suffix match only, deliberately not a content-type
// check, to keep observable behavior identical across peers.
const imageSuffix = ".gif"

// ContentKind distinguishes how a message body is presented.
type ContentKind string

const (
	// ContentText renders the body as literal text.
	ContentText ContentKind = "text"

	// ContentImage renders the body as an inline image reference.
	ContentImage ContentKind = "image"
)

// UserCard is one rendered roster entry.
type UserCard struct {
	// Name is the participant's username.
	Name string

	// AvatarURL is the derived avatar image URL.
	AvatarURL string
}

// Content is the presentation of one message body.
type Content struct {
	// Kind selects the presentation rule.
	Kind ContentKind

	// Value is the body text, or the image URL for ContentImage.
	Value string
}

// Bubble is one rendered message.
type Bubble struct {
	// Sender is the attributed username.
	Sender string

	// AvatarURL is the sender's avatar, empty when the sender is unknown.
	AvatarURL string

	// Known reports whether the sender has a matching roster entry. Messages
	// from unknown senders are still rendered, without identity decoration.
	Known bool

	// Content is the presented message body.
	Content Content
}

// Tree is the full rendered view: the roster region and the log region,
// independently iterated.
type Tree struct {
	// Users lists roster entries in current roster order.
	Users []UserCard

	// Messages lists chat bubbles in log order, oldest first.
	Messages []Bubble
}

// Render maps the current roster and message log to a Tree.
func Render(roster []user.Profile, log []chat.Message) Tree {
	avatars := make(map[string]string, len(roster))

	users := make([]UserCard, 0, len(roster))
	for _, profile := range roster {
		users = append(users, UserCard{
			Name:      profile.Name,
			AvatarURL: profile.AvatarURL,
		})
		avatars[profile.Name] = profile.AvatarURL
	}

	messages := make([]Bubble, 0, len(log))
	for _, message := range log {
		avatarURL, known := avatars[message.Sender]

		messages = append(messages, Bubble{
			Sender:    message.Sender,
			AvatarURL: avatarURL,
			Known:     known,
			Content:   renderContent(message.Body),
		})
	}

	return Tree{
		Users:    users,
		Messages: messages,
	}
}

// renderContent applies the presentation rule to one message body.
func renderContent(body string) Content {
	if strings.HasSuffix(body, imageSuffix) {
		return Content{Kind: ContentImage, Value: body}
	}

	return Content{Kind: ContentText, Value: body}
}
