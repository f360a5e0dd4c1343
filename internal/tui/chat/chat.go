// Package chat is the interactive terminal tutor.
package chat

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skillpath/skillpath/internal/clipboard"
	"github.com/skillpath/skillpath/internal/markup"
	"github.com/skillpath/skillpath/internal/store"
	"github.com/skillpath/skillpath/internal/tutor"
	"github.com/skillpath/skillpath/internal/ui"
)

// footerHeight covers the input line, the status line and a spacer.
const footerHeight = 3

// Messages for tea.Program
type (
	updateMsg struct{ update tutor.Update }
	doneMsg   struct {
		chat *store.Chat
		err  error
	}
)

// Model is the bubbletea model for a tutor chat.
type Model struct {
	tutor    *tutor.Tutor
	chat     *store.Chat
	userID   string
	styles   *ui.Styles
	renderer *ui.TerminalRenderer

	viewport viewport.Model
	input    textarea.Model
	spinner  spinner.Model
	width    int
	height   int
	ready    bool

	streaming bool
	pending   string // user text of the turn being streamed
	partial   markup.Fragment
	events    chan tea.Msg
	cancel    context.CancelFunc
	err       error
	notice    string

	copyText func(string) error
}

// New creates a chat model. A nil chat starts a new conversation.
func New(t *tutor.Tutor, chat *store.Chat, userID string, styles *ui.Styles) *Model {
	if chat == nil {
		chat = t.NewChat(userID)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	ta := textarea.New()
	ta.Placeholder = "Ask your tutor anything..."
	ta.Prompt = "❯ "
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(1)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle()
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(styles.Theme().Muted)
	ta.FocusedStyle.Prompt = lipgloss.NewStyle().Foreground(styles.Theme().Primary).Bold(true)
	ta.BlurredStyle = ta.FocusedStyle
	ta.Focus()

	return &Model{
		tutor:    t,
		chat:     chat,
		userID:   userID,
		styles:   styles,
		renderer: ui.NewTerminalRenderer(styles, 80),
		input:    ta,
		spinner:  s,
		copyText: clipboard.CopyText,
	}
}

// Chat returns the current conversation.
func (m *Model) Chat() *store.Chat {
	return m.chat
}

func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		m.notice = ""
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		case tea.KeyCtrlN:
			if !m.streaming {
				m.chat = m.tutor.NewChat(m.userID)
				m.err = nil
				m.refresh()
			}
			return m, nil
		case tea.KeyCtrlY:
			m.copyLastReply()
			return m, nil
		case tea.KeyEnter:
			if m.streaming {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.Reset()
			return m, tea.Batch(m.startStream(text), m.spinner.Tick)
		}

	case updateMsg:
		m.partial = msg.update.Fragment
		m.refresh()
		return m, m.listen()

	case doneMsg:
		m.streaming = false
		m.partial = nil
		m.pending = ""
		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}
		m.err = msg.err
		if msg.chat != nil {
			m.chat = msg.chat
		}
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.streaming {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// copyLastReply puts the newest tutor message on the clipboard.
func (m *Model) copyLastReply() {
	msgs := m.chat.Messages
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role != store.RoleModel {
			continue
		}
		if err := m.copyText(msgs[i].Text); err != nil {
			m.notice = m.styles.Error.Render("copy failed: " + err.Error())
		} else {
			m.notice = m.styles.Success.Render("Copied last reply")
		}
		return
	}
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	vpHeight := max(height-footerHeight, 1)
	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}
	m.input.SetWidth(width)
	m.renderer.SetWidth(width)
	m.refresh()
}

// startStream sends text on a copy of the chat so the view never reads
// messages that the tutor is appending to.
func (m *Model) startStream(text string) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.streaming = true
	m.err = nil
	m.partial = nil
	m.pending = text
	m.refresh()

	events := make(chan tea.Msg)
	m.events = events
	working := m.chat.Clone()
	go func() {
		defer close(events)
		_, err := m.tutor.Send(ctx, working, text, func(u tutor.Update) {
			select {
			case events <- updateMsg{u}:
			case <-ctx.Done():
			}
		})
		// working is untouched when the model call fails.
		select {
		case events <- doneMsg{chat: working, err: err}:
		case <-ctx.Done():
		}
	}()
	return m.listen()
}

func (m *Model) listen() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}
