package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := &User{Name: "Asha", Email: "asha@example.com", PasswordHash: "hash"}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID == "" {
		t.Fatal("expected generated ID")
	}

	dup := &User{Name: "Other", Email: "ASHA@example.com", PasswordHash: "x"}
	if err := s.CreateUser(ctx, dup); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate email err = %v, want ErrEmailTaken", err)
	}

	got, err := s.GetUserByEmail(ctx, " Asha@Example.com ")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID != u.ID || got.Name != "Asha" || got.PasswordHash != "hash" {
		t.Errorf("got %+v", got)
	}

	if _, err := s.GetUser(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUser(missing) err = %v, want ErrNotFound", err)
	}
}

func TestCurrentUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.CurrentUser(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("CurrentUser on empty store err = %v", err)
	}

	u := &User{Name: "Ravi", Email: "ravi@example.com", PasswordHash: "h"}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := s.SetCurrentUser(ctx, u.ID); err != nil {
		t.Fatalf("SetCurrentUser: %v", err)
	}
	cur, err := s.CurrentUser(ctx)
	if err != nil || cur.ID != u.ID {
		t.Fatalf("CurrentUser = %+v, %v", cur, err)
	}

	if err := s.SetCurrentUser(ctx, ""); err != nil {
		t.Fatalf("clear current user: %v", err)
	}
	if _, err := s.CurrentUser(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("after sign out err = %v, want ErrNotFound", err)
	}
}

func TestChatRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	chat := &Chat{
		Title: "Recursion",
		Messages: []Message{
			{Role: RoleModel, Text: "Hello!"},
			{Role: RoleUser, Text: "Explain recursion"},
			{Role: RoleModel, Text: "**Recursion** is..."},
		},
	}
	if err := s.SaveChat(ctx, chat); err != nil {
		t.Fatalf("SaveChat: %v", err)
	}

	got, err := s.GetChat(ctx, chat.ID)
	if err != nil {
		t.Fatalf("GetChat: %v", err)
	}
	opts := cmpopts.EquateApproxTime(time.Millisecond)
	if diff := cmp.Diff(chat, got, opts); diff != "" {
		t.Errorf("chat mismatch (-want +got):\n%s", diff)
	}

	// Saving again replaces messages.
	chat.Messages = chat.Messages[:2]
	chat.Title = "Recursion basics"
	if err := s.SaveChat(ctx, chat); err != nil {
		t.Fatalf("SaveChat update: %v", err)
	}
	got, err = s.GetChat(ctx, chat.ID)
	if err != nil {
		t.Fatalf("GetChat: %v", err)
	}
	if len(got.Messages) != 2 || got.Title != "Recursion basics" {
		t.Errorf("after update got %d messages, title %q", len(got.Messages), got.Title)
	}
}

func TestListAndDeleteChats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := &User{Name: "Meera", Email: "meera@example.com", PasswordHash: "h"}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	first := &Chat{Title: "first", UserID: u.ID, Messages: []Message{{Role: RoleModel, Text: "hi"}}}
	second := &Chat{Title: "second", Messages: []Message{{Role: RoleModel, Text: "hi"}, {Role: RoleUser, Text: "yo"}}}
	if err := s.SaveChat(ctx, first); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	if err := s.SaveChat(ctx, second); err != nil {
		t.Fatal(err)
	}

	all, err := s.ListChats(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("ListChats: %v", err)
	}
	if len(all) != 2 || all[0].Title != "second" || all[0].MessageCount != 2 {
		t.Fatalf("ListChats = %+v", all)
	}

	mine, err := s.ListChats(ctx, ListOptions{UserID: u.ID})
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 1 || mine[0].ID != first.ID {
		t.Errorf("user chats = %+v", mine)
	}

	limited, err := s.ListChats(ctx, ListOptions{Limit: 1})
	if err != nil || len(limited) != 1 {
		t.Errorf("limited = %+v, %v", limited, err)
	}

	if err := s.DeleteChat(ctx, second.ID); err != nil {
		t.Fatalf("DeleteChat: %v", err)
	}
	if err := s.DeleteChat(ctx, second.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
	if _, err := s.GetChat(ctx, second.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetChat deleted err = %v", err)
	}
}

func TestOpenFileReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "skillpath.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	ctx := context.Background()
	chat := &Chat{Title: "kept", Messages: []Message{{Role: RoleUser, Text: "q"}}}
	if err := s.SaveChat(ctx, chat); err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Second open takes the schema_version fast path.
	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.GetChat(ctx, chat.ID)
	if err != nil || got.Title != "kept" {
		t.Fatalf("GetChat after reopen = %+v, %v", got, err)
	}
}

func TestDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	got, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "skillpath", "skillpath.db"); got != want {
		t.Errorf("DefaultPath = %q, want %q", got, want)
	}
}

func TestNoopStore(t *testing.T) {
	var s Store = NoopStore{}
	ctx := context.Background()
	c := &Chat{}
	if err := s.SaveChat(ctx, c); err != nil || c.ID == "" {
		t.Errorf("SaveChat = %v, id %q", err, c.ID)
	}
	if _, err := s.GetChat(ctx, c.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetChat err = %v", err)
	}
}
