package store

import "context"

// Store persists accounts and tutor chats.
type Store interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	SaveChat(ctx context.Context, c *Chat) error
	GetChat(ctx context.Context, id string) (*Chat, error)
	ListChats(ctx context.Context, opts ListOptions) ([]ChatSummary, error)
	DeleteChat(ctx context.Context, id string) error

	// SetCurrentUser records the signed-in user; the empty string signs out.
	SetCurrentUser(ctx context.Context, userID string) error
	// CurrentUser returns the signed-in user or ErrNotFound.
	CurrentUser(ctx context.Context) (*User, error)

	Close() error
}
