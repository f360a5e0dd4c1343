package chat

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/goleak"

	"github.com/skillpath/skillpath/internal/llm"
	"github.com/skillpath/skillpath/internal/store"
	"github.com/skillpath/skillpath/internal/tutor"
	"github.com/skillpath/skillpath/internal/ui"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestModel(p llm.Provider) *Model {
	styles := ui.NewStyledWithTheme(&bytes.Buffer{}, ui.DefaultTheme())
	m := New(tutor.New(p), nil, "", styles)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

// drive runs cmd and feeds each resulting message back into the model
// until the stream finishes.
func drive(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	for i := 0; cmd != nil; i++ {
		if i > 100 {
			t.Fatal("stream did not finish")
		}
		msg := cmd()
		if msg == nil {
			return
		}
		_, cmd = m.Update(msg)
	}
}

func TestChatStreamsReply(t *testing.T) {
	mock := llm.NewMockProvider("test").AddChunks("**Hi**", " there")
	m := newTestModel(mock)

	if !strings.Contains(m.View(), tutor.Greeting) {
		t.Fatalf("greeting missing from view:\n%s", m.View())
	}

	drive(t, m, m.startStream("hello"))

	if m.streaming {
		t.Error("still streaming after done")
	}
	view := m.View()
	for _, want := range []string{"❯ hello", "Hi there", "hello · enter send"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	msgs := m.Chat().Messages
	if len(msgs) != 3 || msgs[2].Role != store.RoleModel || msgs[2].Text != "**Hi** there" {
		t.Errorf("unexpected messages: %+v", msgs)
	}
}

func TestChatShowsErrorAndKeepsHistory(t *testing.T) {
	mock := llm.NewMockProvider("test").AddError(errors.New("boom"))
	m := newTestModel(mock)

	drive(t, m, m.startStream("hello"))

	if m.err == nil {
		t.Fatal("expected error")
	}
	if len(m.Chat().Messages) != 1 {
		t.Errorf("chat has %d messages after failure, want 1", len(m.Chat().Messages))
	}
	if !strings.Contains(m.View(), "Sorry, I encountered an error") {
		t.Errorf("error missing from view:\n%s", m.View())
	}
}

func TestChatIgnoresBlankInput(t *testing.T) {
	mock := llm.NewMockProvider("test")
	m := newTestModel(mock)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || m.streaming {
		t.Error("blank input started a stream")
	}
	if len(mock.Requests()) != 0 {
		t.Error("blank input reached the provider")
	}
}

func TestChatNewConversation(t *testing.T) {
	mock := llm.NewMockProvider("test").AddTextResponse("answer")
	m := newTestModel(mock)
	drive(t, m, m.startStream("question"))
	first := m.Chat().ID

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	if m.Chat().ID == first || len(m.Chat().Messages) != 1 {
		t.Errorf("ctrl+n did not start a new chat: %+v", m.Chat())
	}
}

func TestChatViewBeforeResize(t *testing.T) {
	styles := ui.NewStyledWithTheme(&bytes.Buffer{}, ui.DefaultTheme())
	m := New(tutor.New(llm.NewMockProvider("test")), nil, "", styles)
	if got := m.View(); got != "Loading..." {
		t.Errorf("View() = %q", got)
	}
}

func TestChatCopiesLastReply(t *testing.T) {
	mock := llm.NewMockProvider("test").AddTextResponse("**answer**")
	m := newTestModel(mock)
	var copied string
	m.copyText = func(s string) error {
		copied = s
		return nil
	}
	drive(t, m, m.startStream("question"))

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	if copied != "**answer**" {
		t.Errorf("copied %q, want the raw reply", copied)
	}
	if !strings.Contains(m.View(), "Copied last reply") {
		t.Errorf("no copy notice in view:\n%s", m.View())
	}

	m.copyText = func(string) error { return errors.New("no xclip") }
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	if !strings.Contains(m.View(), "copy failed: no xclip") {
		t.Errorf("no failure notice in view:\n%s", m.View())
	}
}

// ctxProvider records the context of each stream it opens.
type ctxProvider struct {
	*llm.MockProvider
	ctxs []context.Context
}

func (p *ctxProvider) Stream(ctx context.Context, req llm.Request) (llm.Stream, error) {
	p.ctxs = append(p.ctxs, ctx)
	return p.MockProvider.Stream(ctx, req)
}

func TestChatReleasesStreamContext(t *testing.T) {
	p := &ctxProvider{MockProvider: llm.NewMockProvider("test").AddTextResponse("done")}
	m := newTestModel(p)

	drive(t, m, m.startStream("hello"))

	if len(p.ctxs) != 1 {
		t.Fatalf("got %d streams, want 1", len(p.ctxs))
	}
	if err := p.ctxs[0].Err(); !errors.Is(err, context.Canceled) {
		t.Errorf("stream context err = %v, want context.Canceled", err)
	}
	if m.cancel != nil {
		t.Error("cancel func kept after the turn finished")
	}
}
