package store

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already registered")
)

// Role identifies who wrote a chat message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// User is a locally registered account.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Chat is a tutor conversation.
type Chat struct {
	ID        string
	UserID    string // empty for chats started while signed out
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
	Messages  []Message
}

// Message is one turn of a chat.
type Message struct {
	Role      Role
	Text      string
	CreatedAt time.Time
}

// ChatSummary is a chat row without its messages, for listings.
type ChatSummary struct {
	ID           string
	UserID       string
	Title        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	MessageCount int
}

// ListOptions filters ListChats.
type ListOptions struct {
	UserID string // only chats owned by this user; empty lists all
	Limit  int    // 0 means no limit
}

// NewID returns a random identifier for users and chats.
func NewID() string {
	return uuid.NewString()
}

// Clone returns a deep copy of the chat.
func (c *Chat) Clone() *Chat {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Messages = append([]Message(nil), c.Messages...)
	return &cp
}
