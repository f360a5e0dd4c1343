package chat

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/skillpath/skillpath/internal/store"
)

func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.status())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	return b.String()
}

func (m *Model) status() string {
	switch {
	case m.streaming:
		return m.spinner.View() + m.styles.Muted.Render(" thinking... (esc to quit)")
	case m.notice != "":
		return m.notice
	case m.err != nil:
		return m.styles.Error.Render("Sorry, I encountered an error. Please try again. (" + m.err.Error() + ")")
	default:
		return m.styles.Footer.Render(m.chat.Title + " · enter send · ctrl+n new chat · ctrl+y copy · esc quit")
	}
}

// transcript renders every message of the chat plus the turn in flight.
func (m *Model) transcript() string {
	var parts []string
	for _, msg := range m.chat.Messages {
		if msg.Role == store.RoleUser {
			parts = append(parts, m.userBlock(msg.Text))
			continue
		}
		parts = append(parts, m.renderer.Render(m.tutor.Renderer().Render(msg.Text)))
	}
	if m.streaming {
		parts = append(parts, m.userBlock(m.pending))
		if len(m.partial) > 0 {
			parts = append(parts, m.renderer.Render(m.partial))
		}
	}
	return strings.Join(parts, "\n\n")
}

func (m *Model) userBlock(text string) string {
	return m.styles.UserMsg.Render(wordwrap.String("❯ "+text, m.renderer.Width()-2))
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.transcript())
	m.viewport.GotoBottom()
}
