package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/skillpath/skillpath/internal/config"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// Schema for the skillpath database. Timestamps are unix milliseconds.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE COLLATE NOCASE,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS chats (
    id TEXT PRIMARY KEY,
    user_id TEXT REFERENCES users(id) ON DELETE SET NULL,
    title TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS chat_messages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    chat_id TEXT NOT NULL REFERENCES chats(id) ON DELETE CASCADE,
    sequence INTEGER NOT NULL,
    role TEXT NOT NULL CHECK (role IN ('user', 'model')),
    text TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    UNIQUE (chat_id, sequence)
);

CREATE INDEX IF NOT EXISTS idx_chats_updated_at ON chats(updated_at DESC);
CREATE INDEX IF NOT EXISTS idx_chats_user_id ON chats(user_id);

-- Metadata table for the signed-in user
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT
);
`

// schemaVersion is the current schema version. Increment when the schema
// changes and teach initSchemaFull how to upgrade.
const schemaVersion = 1

const currentUserKey = "current_user"

// DefaultPath returns $XDG_DATA_HOME/skillpath/skillpath.db.
func DefaultPath() (string, error) {
	dir, err := config.GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "skillpath.db"), nil
}

// Open opens (creating if needed) the database at path. An empty path
// uses DefaultPath.
func Open(path string) (*SQLiteStore, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, fmt.Errorf("get db path: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return newSQLiteStore(db)
}

// OpenMemory opens a private in-memory database.
func OpenMemory() (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	return newSQLiteStore(db)
}

func newSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// initSchema initializes the database schema.
// Optimized for the common case: schema already current = single SELECT query.
func initSchema(db *sql.DB) error {
	var currentVersion int
	err := db.QueryRow("SELECT version FROM schema_version").Scan(&currentVersion)
	if err == nil && currentVersion >= schemaVersion {
		return nil
	}
	return initSchemaFull(db, err, currentVersion)
}

func initSchemaFull(db *sql.DB, versionErr error, currentVersion int) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create base schema: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("create schema_version table: %w", err)
	}

	switch {
	case versionErr == nil:
		// Older version row: the base schema above already added anything missing.
		if _, err := db.Exec("UPDATE schema_version SET version = ?", schemaVersion); err != nil {
			return fmt.Errorf("update version from %d: %w", currentVersion, err)
		}
	case errors.Is(versionErr, sql.ErrNoRows) || strings.Contains(versionErr.Error(), "no such table"):
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("insert initial version: %w", err)
		}
	default:
		return fmt.Errorf("get current version: %w", versionErr)
	}
	return nil
}

// CreateUser inserts a new user. Emails are unique regardless of case.
func (s *SQLiteStore) CreateUser(ctx context.Context, u *User) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt.UnixMilli())
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetUser(ctx context.Context, id string) (*User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, created_at FROM users WHERE id = ?`, id))
}

func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?`, strings.TrimSpace(email)))
}

func (s *SQLiteStore) scanUser(row *sql.Row) (*User, error) {
	var u User
	var created int64
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.CreatedAt = time.UnixMilli(created)
	return &u, nil
}

// SaveChat inserts or replaces a chat and all of its messages in one
// transaction.
func (s *SQLiteStore) SaveChat(ctx context.Context, c *Chat) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO chats (id, user_id, title, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			title = excluded.title,
			updated_at = excluded.updated_at`,
		c.ID, nullString(c.UserID), c.Title, c.CreatedAt.UnixMilli(), c.UpdatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("upsert chat: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM chat_messages WHERE chat_id = ?`, c.ID); err != nil {
		return fmt.Errorf("clear messages: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chat_messages (chat_id, sequence, role, text, created_at)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare message insert: %w", err)
	}
	defer stmt.Close()

	for i := range c.Messages {
		msg := &c.Messages[i]
		if msg.CreatedAt.IsZero() {
			msg.CreatedAt = now
		}
		if _, err := stmt.ExecContext(ctx, c.ID, i, string(msg.Role), msg.Text, msg.CreatedAt.UnixMilli()); err != nil {
			return fmt.Errorf("insert message %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit chat: %w", err)
	}
	return nil
}

// GetChat loads a chat with its messages in order.
func (s *SQLiteStore) GetChat(ctx context.Context, id string) (*Chat, error) {
	var c Chat
	var userID sql.NullString
	var created, updated int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, created_at, updated_at FROM chats WHERE id = ?`, id).
		Scan(&c.ID, &userID, &c.Title, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan chat: %w", err)
	}
	c.UserID = userID.String
	c.CreatedAt = time.UnixMilli(created)
	c.UpdatedAt = time.UnixMilli(updated)

	rows, err := s.db.QueryContext(ctx, `
		SELECT role, text, created_at FROM chat_messages
		WHERE chat_id = ? ORDER BY sequence ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var msg Message
		var role string
		var at int64
		if err := rows.Scan(&role, &msg.Text, &at); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msg.Role = Role(role)
		msg.CreatedAt = time.UnixMilli(at)
		c.Messages = append(c.Messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return &c, nil
}

// ListChats returns chat summaries, most recently updated first.
func (s *SQLiteStore) ListChats(ctx context.Context, opts ListOptions) ([]ChatSummary, error) {
	query := `
		SELECT c.id, c.user_id, c.title, c.created_at, c.updated_at,
		       (SELECT COUNT(*) FROM chat_messages m WHERE m.chat_id = c.id)
		FROM chats c`
	var args []any
	if opts.UserID != "" {
		query += " WHERE c.user_id = ?"
		args = append(args, opts.UserID)
	}
	query += " ORDER BY c.updated_at DESC, c.id"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	defer rows.Close()

	var out []ChatSummary
	for rows.Next() {
		var cs ChatSummary
		var userID sql.NullString
		var created, updated int64
		if err := rows.Scan(&cs.ID, &userID, &cs.Title, &created, &updated, &cs.MessageCount); err != nil {
			return nil, fmt.Errorf("scan chat summary: %w", err)
		}
		cs.UserID = userID.String
		cs.CreatedAt = time.UnixMilli(created)
		cs.UpdatedAt = time.UnixMilli(updated)
		out = append(out, cs)
	}
	return out, rows.Err()
}

// DeleteChat removes a chat and its messages.
func (s *SQLiteStore) DeleteChat(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM chats WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete chat: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) SetCurrentUser(ctx context.Context, userID string) error {
	if userID == "" {
		_, err := s.db.ExecContext(ctx, "DELETE FROM metadata WHERE key = ?", currentUserKey)
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, currentUserKey, userID)
	return err
}

func (s *SQLiteStore) CurrentUser(ctx context.Context) (*User, error) {
	var id string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM metadata WHERE key = ?", currentUserKey).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}
	return s.GetUser(ctx, id)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// nullString converts an empty string to NULL for database storage.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
