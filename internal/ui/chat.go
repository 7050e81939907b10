package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/driftchat/driftchat/internal/profile"
	"github.com/driftchat/driftchat/internal/session"
)

// ChatState is the client-visible phase of the conversation.
type ChatState int

const (
	StateWaiting ChatState = iota
	StateChatting
	StatePartnerLeft
	StateReconnecting
)

type chatLine struct {
	sender string
	text   string
	own    bool
	system bool
}

// Msg types produced by background commands.
type (
	sessionEventMsg    session.Event
	reconnectedMsg     *session.Session
	reconnectFailedMsg struct{ err error }
)

// ChatModel is the Bubble Tea model for a live conversation: waiting,
// chatting, partner-left and reconnecting states, with presence signals
// driven by terminal focus.
type ChatModel struct {
	sess      *session.Session
	serverURL string
	name      string
	interests []string

	store      *profile.Store
	transcript *profile.Transcript

	state       ChatState
	partner     string
	mutual      []string
	partnerAway bool

	lines []chatLine
	input textinput.Model
	spin  spinner.Model

	ctx    context.Context
	cancel context.CancelFunc

	width  int
	height int
	err    error
}

// NewChatModel builds the model around an already connected session. The
// store may be nil, in which case no transcript is kept.
func NewChatModel(sess *session.Session, serverURL, name string, interests []string, store *profile.Store) *ChatModel {
	ti := textinput.New()
	ti.Placeholder = "Say something..."
	ti.CharLimit = 2000
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = SpinnerStyle

	ctx, cancel := context.WithCancel(context.Background())

	return &ChatModel{
		sess:      sess,
		serverURL: serverURL,
		name:      name,
		interests: interests,
		store:     store,
		state:     StateWaiting,
		input:     ti,
		spin:      sp,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Err returns the fatal error that ended the TUI, if any.
func (m *ChatModel) Err() error {
	return m.err
}

func (m *ChatModel) Init() tea.Cmd {
	m.sess.FindPartner(m.name, m.interests)
	return tea.Batch(m.spin.Tick, textinput.Blink, m.waitForEvent(m.sess))
}

// waitForEvent relays one server event into the update loop.
func (m *ChatModel) waitForEvent(s *session.Session) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-s.Events()
		if !ok {
			return sessionEventMsg(session.Event{Type: session.EventDropped})
		}
		return sessionEventMsg(ev)
	}
}

// reconnect blocks on the retry-with-backoff loop until a transport is
// confirmed or the model's context is cancelled.
func (m *ChatModel) reconnect() tea.Cmd {
	return func() tea.Msg {
		s, err := session.Reconnect(m.ctx, m.serverURL, session.DefaultBackoff)
		if err != nil {
			return reconnectFailedMsg{err: err}
		}
		return reconnectedMsg(s)
	}
}

func (m *ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, m.quit()

		case tea.KeyCtrlN:
			if m.state == StateChatting {
				m.sess.Skip()
			} else if m.state == StatePartnerLeft {
				m.sess.FindPartner(m.name, m.interests)
				m.state = StateWaiting
			}
			return m, nil

		case tea.KeyEnter:
			return m, m.submit()
		}

	case tea.FocusMsg:
		if m.state == StateChatting {
			m.sess.Back()
		}
		return m, nil

	case tea.BlurMsg:
		if m.state == StateChatting {
			m.sess.Away()
		}
		return m, nil

	case sessionEventMsg:
		return m.handleEvent(session.Event(msg))

	case reconnectedMsg:
		m.sess = (*session.Session)(msg)
		m.sess.FindPartner(m.name, m.interests)
		m.state = StateWaiting
		m.system("Reconnected. Looking for a new partner...")
		return m, m.waitForEvent(m.sess)

	case reconnectFailedMsg:
		m.err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *ChatModel) handleEvent(ev session.Event) (tea.Model, tea.Cmd) {
	switch ev.Type {

	case session.EventWaiting:
		m.state = StateWaiting

	case session.EventChatStart:
		m.finishTranscript()
		m.state = StateChatting
		m.partner = ev.Chat.PartnerName
		m.mutual = ev.Chat.MutualInterests
		m.partnerAway = false
		m.lines = nil
		m.transcript = profile.NewTranscript(ev.Chat.PartnerName, ev.Chat.MutualInterests)
		if len(m.mutual) > 0 {
			m.system(fmt.Sprintf("You both like %s.", strings.Join(m.mutual, ", ")))
		}

	case session.EventMessage:
		m.lines = append(m.lines, chatLine{sender: ev.Message.Sender, text: ev.Message.Message})
		if m.transcript != nil {
			m.transcript.Append(ev.Message.Sender, ev.Message.Message, false)
		}

	case session.EventPartnerAway:
		m.partnerAway = true

	case session.EventPartnerBack:
		m.partnerAway = false

	case session.EventSkipped:
		m.finishTranscript()
		m.state = StateWaiting
		m.system("Skipped. Looking for someone new...")

	case session.EventPartnerLeft:
		m.finishTranscript()
		m.state = StatePartnerLeft
		m.partnerAway = false

	case session.EventDropped:
		m.finishTranscript()
		m.state = StateReconnecting
		m.system("Connection lost. The conversation is gone; reconnecting...")
		return m, m.reconnect()
	}

	return m, m.waitForEvent(m.sess)
}

func (m *ChatModel) submit() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.state != StateChatting {
		return nil
	}

	m.sess.SendChat(text)
	// The server never echoes our own lines back; render locally.
	m.lines = append(m.lines, chatLine{sender: m.name, text: text, own: true})
	if m.transcript != nil {
		m.transcript.Append(m.name, text, true)
	}
	m.input.Reset()
	return nil
}

func (m *ChatModel) quit() tea.Cmd {
	m.cancel()
	m.finishTranscript()
	m.sess.Close()
	return tea.Quit
}

// finishTranscript persists the current conversation, if any.
func (m *ChatModel) finishTranscript() {
	if m.transcript == nil || m.store == nil {
		m.transcript = nil
		return
	}
	m.store.SaveTranscript(m.transcript)
	m.transcript = nil
}

func (m *ChatModel) system(text string) {
	m.lines = append(m.lines, chatLine{text: text, system: true})
}

func (m *ChatModel) View() string {
	var b strings.Builder

	b.WriteString(m.statusLine())
	b.WriteString("\n\n")

	for _, line := range m.visibleLines() {
		switch {
		case line.system:
			b.WriteString(MutedStyle.Render(line.text))
		case line.own:
			b.WriteString(OwnStyle.Render(line.sender+":") + " " + line.text)
		default:
			b.WriteString(PartnerStyle.Render(line.sender+":") + " " + line.text)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.state == StateChatting {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	b.WriteString(FooterStyle.Render(m.footer()))

	return b.String()
}

func (m *ChatModel) statusLine() string {
	switch m.state {
	case StateWaiting:
		return fmt.Sprintf("%s %s Waiting for a partner...", m.spin.View(), IconWaiting)
	case StateReconnecting:
		return fmt.Sprintf("%s %s Reconnecting...", m.spin.View(), WarningStyle.Render(IconConnect))
	case StatePartnerLeft:
		return WarningStyle.Render(fmt.Sprintf("%s Your partner left.", IconPeer))
	default:
		status := StatusStyle.Render(fmt.Sprintf("%s %s", IconChat, m.partner))
		if m.partnerAway {
			status += " " + MutedStyle.Render(IconAway+" away")
		}
		return status
	}
}

func (m *ChatModel) footer() string {
	switch m.state {
	case StateChatting:
		return "enter send • ctrl+n skip • esc quit"
	case StatePartnerLeft:
		return "ctrl+n find someone new • esc quit"
	default:
		return "esc quit"
	}
}

// visibleLines trims history to what fits the terminal.
func (m *ChatModel) visibleLines() []chatLine {
	if m.height == 0 {
		return m.lines
	}
	max := m.height - 6
	if max < 1 {
		max = 1
	}
	if len(m.lines) <= max {
		return m.lines
	}
	return m.lines[len(m.lines)-max:]
}
