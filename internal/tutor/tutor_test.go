package tutor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/skillpath/skillpath/internal/llm"
	"github.com/skillpath/skillpath/internal/markup"
	"github.com/skillpath/skillpath/internal/store"
)

func newTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewChat(t *testing.T) {
	chat := New(llm.NewMockProvider("test")).NewChat("u1")
	if chat.ID == "" || chat.UserID != "u1" || chat.Title != "Chat" {
		t.Errorf("unexpected chat: %+v", chat)
	}
	if len(chat.Messages) != 1 || chat.Messages[0].Role != store.RoleModel || chat.Messages[0].Text != Greeting {
		t.Errorf("new chat should hold only the greeting: %+v", chat.Messages)
	}
}

func TestSendStreamsAccumulatedText(t *testing.T) {
	mock := llm.NewMockProvider("test").AddChunks("# Go", "\n\n* one", "\n* two")
	tu := New(mock, WithRenderer(markup.New(markup.WithHeadingLevel(3))))
	chat := tu.NewChat("")

	var texts, htmls []string
	reply, err := tu.Send(context.Background(), chat, "Teach me Go", func(u Update) {
		texts = append(texts, u.Text)
		htmls = append(htmls, u.Fragment.HTML())
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if reply != "# Go\n\n* one\n* two" {
		t.Errorf("reply = %q", reply)
	}

	wantTexts := []string{"# Go", "# Go\n\n* one", "# Go\n\n* one\n* two"}
	if diff := cmp.Diff(wantTexts, texts); diff != "" {
		t.Errorf("update texts mismatch (-want +got):\n%s", diff)
	}
	wantHTML := []string{
		"<h3>Go</h3>",
		"<h3>Go</h3><ul><li>one</li></ul>",
		"<h3>Go</h3><ul><li>one</li><li>two</li></ul>",
	}
	if diff := cmp.Diff(wantHTML, htmls); diff != "" {
		t.Errorf("update html mismatch (-want +got):\n%s", diff)
	}

	if len(chat.Messages) != 3 {
		t.Fatalf("chat has %d messages, want 3", len(chat.Messages))
	}
	if chat.Messages[1].Role != store.RoleUser || chat.Messages[2].Text != reply {
		t.Errorf("unexpected messages: %+v", chat.Messages)
	}
	if chat.Title != "Teach me Go" {
		t.Errorf("Title = %q", chat.Title)
	}
}

func TestSendHistoryExcludesGreeting(t *testing.T) {
	mock := llm.NewMockProvider("test").AddTextResponse("first").AddTextResponse("second")
	tu := New(mock, WithModel("gemini-2.5-pro"), WithInstructions("Be brief."))
	chat := tu.NewChat("")
	ctx := context.Background()

	if _, err := tu.Send(ctx, chat, "q1", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := tu.Send(ctx, chat, "q2", nil); err != nil {
		t.Fatal(err)
	}

	reqs := mock.Requests()
	if len(reqs) != 2 {
		t.Fatalf("got %d requests", len(reqs))
	}
	type msg struct {
		Role llm.Role
		Text string
	}
	var got []msg
	for _, m := range reqs[1].Messages {
		got = append(got, msg{m.Role, m.Text()})
	}
	want := []msg{
		{llm.RoleSystem, "Be brief."},
		{llm.RoleUser, "q1"},
		{llm.RoleAssistant, "first"},
		{llm.RoleUser, "q2"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
	if reqs[1].Model != "gemini-2.5-pro" {
		t.Errorf("Model = %q", reqs[1].Model)
	}
}

func TestSendDefaultInstructions(t *testing.T) {
	mock := llm.NewMockProvider("test").AddTextResponse("ok")
	tu := New(mock, WithInstructions("   "))
	if _, err := tu.Send(context.Background(), tu.NewChat(""), "hi", nil); err != nil {
		t.Fatal(err)
	}
	if got := mock.Requests()[0].Messages[0].Text(); got != SystemInstruction {
		t.Errorf("system message = %q", got)
	}
}

func TestSendEmptyMessage(t *testing.T) {
	mock := llm.NewMockProvider("test")
	tu := New(mock)
	for _, in := range []string{"", "  ", "\n\t"} {
		if _, err := tu.Send(context.Background(), tu.NewChat(""), in, nil); !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("Send(%q) error = %v, want ErrEmptyMessage", in, err)
		}
	}
	if len(mock.Requests()) != 0 {
		t.Error("blank input reached the provider")
	}
}

func TestSendRollsBackOnError(t *testing.T) {
	boom := errors.New("quota exceeded")
	mock := llm.NewMockProvider("test").AddTurn(llm.MockTurn{Chunks: []string{"partial "}, Err: boom})
	s := newTestStore(t)
	tu := New(mock, WithStore(s))
	chat := tu.NewChat("")
	before := chat.Clone()

	var updates int
	_, err := tu.Send(context.Background(), chat, "hello", func(Update) { updates++ })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if updates != 1 {
		t.Errorf("got %d updates before the failure, want 1", updates)
	}
	if diff := cmp.Diff(before, chat); diff != "" {
		t.Errorf("chat changed after failure (-want +got):\n%s", diff)
	}
	if _, err := s.GetChat(context.Background(), chat.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("failed chat was saved: %v", err)
	}
	if tu.Busy(chat.ID) {
		t.Error("chat still marked busy after failure")
	}
}

type failingStore struct {
	store.NoopStore
	err error
}

func (s failingStore) SaveChat(context.Context, *store.Chat) error { return s.err }

func TestSendLeavesChatWhenSaveFails(t *testing.T) {
	diskFull := errors.New("disk full")
	mock := llm.NewMockProvider("test").AddTextResponse("answer")
	tu := New(mock, WithStore(failingStore{err: diskFull}))
	chat := tu.NewChat("")
	before := chat.Clone()

	reply, err := tu.Send(context.Background(), chat, "hello", nil)
	if !errors.Is(err, diskFull) {
		t.Fatalf("err = %v, want %v", err, diskFull)
	}
	if reply != "" {
		t.Errorf("reply = %q, want empty", reply)
	}
	if diff := cmp.Diff(before, chat); diff != "" {
		t.Errorf("chat changed after failed save (-want +got):\n%s", diff)
	}
}

func TestSendBusy(t *testing.T) {
	mock := llm.NewMockProvider("test").AddChunks("a", "b")
	tu := New(mock)
	chat := tu.NewChat("")

	var nested error
	_, err := tu.Send(context.Background(), chat, "first", func(Update) {
		if nested == nil {
			_, nested = tu.Send(context.Background(), chat, "second", nil)
		}
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !errors.Is(nested, ErrBusy) {
		t.Errorf("concurrent Send error = %v, want ErrBusy", nested)
	}
	if len(mock.Requests()) != 1 {
		t.Errorf("got %d requests, want 1", len(mock.Requests()))
	}
}

func TestSendResetsOnRetry(t *testing.T) {
	mock := llm.NewMockProvider("test").
		AddError(errors.New("503 Service Unavailable")).
		AddChunks("fresh")
	p := llm.WrapWithRetry(mock, llm.RetryConfig{MaxAttempts: 2, BaseBackoff: 1, MaxBackoff: 1})
	tu := New(p)

	var texts []string
	reply, err := tu.Send(context.Background(), tu.NewChat(""), "hi", func(u Update) { texts = append(texts, u.Text) })
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if reply != "fresh" {
		t.Errorf("reply = %q", reply)
	}
	if texts[len(texts)-1] != "fresh" {
		t.Errorf("last update = %q", texts[len(texts)-1])
	}
}

func TestSendPersistsAndLists(t *testing.T) {
	mock := llm.NewMockProvider("test").AddTextResponse("Photosynthesis turns light into sugar.")
	s := newTestStore(t)
	tu := New(mock, WithStore(s))
	ctx := context.Background()

	chat := tu.NewChat("u1")
	if _, err := tu.Send(ctx, chat, "Explain photosynthesis like I am five please", nil); err != nil {
		t.Fatal(err)
	}

	loaded, err := tu.Load(ctx, chat.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(chat, loaded, cmpopts.IgnoreFields(store.Message{}, "CreatedAt"), cmpopts.IgnoreFields(store.Chat{}, "CreatedAt", "UpdatedAt")); diff != "" {
		t.Errorf("loaded chat mismatch (-want +got):\n%s", diff)
	}

	list, err := tu.List(ctx, "u1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].MessageCount != 3 {
		t.Fatalf("List = %+v", list)
	}
	if list[0].Title != "Explain photosynthesis li..." {
		t.Errorf("Title = %q", list[0].Title)
	}

	if others, _ := tu.List(ctx, "u2"); len(others) != 0 {
		t.Errorf("other user sees %d chats", len(others))
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		msgs []store.Message
		want string
	}{
		{nil, "Chat"},
		{[]store.Message{{Role: store.RoleModel, Text: Greeting}}, "Chat"},
		{[]store.Message{{Role: store.RoleUser, Text: "  short\nquestion "}}, "short question"},
		{[]store.Message{{Role: store.RoleUser, Text: strings.Repeat("é", 30)}}, strings.Repeat("é", 25) + "..."},
	}
	for _, tt := range tests {
		if got := Title(&store.Chat{Messages: tt.msgs}); got != tt.want {
			t.Errorf("Title(%v) = %q, want %q", tt.msgs, got, tt.want)
		}
	}
}
