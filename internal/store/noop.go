package store

import "context"

// NoopStore is a no-op implementation of Store used when chat history is
// disabled. It discards writes and reports every lookup as not found.
type NoopStore struct{}

func (NoopStore) CreateUser(ctx context.Context, u *User) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	return nil
}

func (NoopStore) GetUser(ctx context.Context, id string) (*User, error) {
	return nil, ErrNotFound
}

func (NoopStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return nil, ErrNotFound
}

func (NoopStore) SaveChat(ctx context.Context, c *Chat) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	return nil
}

func (NoopStore) GetChat(ctx context.Context, id string) (*Chat, error) {
	return nil, ErrNotFound
}

func (NoopStore) ListChats(ctx context.Context, opts ListOptions) ([]ChatSummary, error) {
	return nil, nil
}

func (NoopStore) DeleteChat(ctx context.Context, id string) error {
	return nil
}

func (NoopStore) SetCurrentUser(ctx context.Context, userID string) error {
	return nil
}

func (NoopStore) CurrentUser(ctx context.Context) (*User, error) {
	return nil, ErrNotFound
}

func (NoopStore) Close() error {
	return nil
}
