/*
Package ui renders the chat session in the terminal with Bubble Tea.

This file defines the Model, the single-threaded event loop that owns the chat
Session: relay frames and key events arrive one at a time through Update, so the
Session needs no locking. The view tree is re-projected only after a frame that
actually mutated state.
*/
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"plumchat/internal/app/chat"
	"plumchat/internal/app/relay"
	"plumchat/internal/app/view"
)

// frameMsg carries one raw inbound frame from the relay subscription.
type frameMsg string

// relayClosedMsg signals that the subscription ended.
type relayClosedMsg struct{}

var (
	rosterStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("93")).
			Padding(0, 1).
			Width(24)

	logStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("93")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("129")).
			Bold(true)

	senderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Bold(true)

	imageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Underline(true)
)

// Model is the Bubble Tea model for one chat view.
type Model struct {
	session *chat.Session
	sub     *relay.Subscription

	input textinput.Model
	tree  view.Tree

	width  int
	height int
}

// NewModel constructs the chat view around an initialized session and its
// relay subscription.
func NewModel(session *chat.Session, sub *relay.Subscription) Model {
	input := textinput.New()
	input.Placeholder = "Type your message..."
	input.Focus()
	input.CharLimit = 512

	return Model{
		session: session,
		sub:     sub,
		input:   input,
		tree:    view.Render(session.Roster(), session.Log()),
	}
}

// waitForFrame blocks on the relay subscription and delivers the next frame
// as a message.
func waitForFrame(sub *relay.Subscription) tea.Cmd {
	return func() tea.Msg {
		raw, ok := <-sub.C
		if !ok {
			return relayClosedMsg{}
		}
		return frameMsg(raw)
	}
}

// Init starts the cursor blink and the first subscription wait.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForFrame(m.sub))
}

// Update handles one event: an inbound frame, a key press, or a resize.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		if m.session.HandleFrame(string(msg)) {
			m.tree = view.Render(m.session.Roster(), m.session.Log())
		}
		return m, waitForFrame(m.sub)

	case relayClosedMsg:
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			m.session.SetInput(m.input.Value())
			m.session.Submit()
			// The session clears its buffer only on an actual submission;
			// mirror whatever is left back into the widget.
			m.input.SetValue(m.session.Input())
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View draws the roster pane, the message log and the input line.
func (m Model) View() string {
	roster := m.renderRoster()
	log := m.renderLog()

	panes := lipgloss.JoinHorizontal(lipgloss.Top, roster, log)

	return lipgloss.JoinVertical(lipgloss.Left, panes, m.input.View())
}

func (m Model) renderRoster() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Users"))
	b.WriteString("\n")

	for _, card := range m.tree.Users {
		fmt.Fprintf(&b, "● %s\n", card.Name)
	}

	return rosterStyle.Render(b.String())
}

func (m Model) renderLog() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Purple Chat"))
	b.WriteString("\n")

	for _, bubble := range m.tree.Messages {
		sender := bubble.Sender
		if bubble.Known {
			sender = senderStyle.Render(sender)
		}

		body := bubble.Content.Value
		if bubble.Content.Kind == view.ContentImage {
			body = imageStyle.Render("[image] " + body)
		}

		fmt.Fprintf(&b, "%s: %s\n", sender, body)
	}

	width := m.width - rosterStyle.GetWidth() - 4
	if width > 0 {
		return logStyle.Width(width).Render(b.String())
	}

	return logStyle.Render(b.String())
}
