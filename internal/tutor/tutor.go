// Package tutor runs streaming tutor conversations and keeps their history.
package tutor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/skillpath/skillpath/internal/llm"
	"github.com/skillpath/skillpath/internal/markup"
	"github.com/skillpath/skillpath/internal/store"
	"go.uber.org/zap"
)

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrBusy         = errors.New("chat is already waiting for a reply")
)

// Greeting opens every new chat. It is shown to the user but never sent
// to the model.
const Greeting = "Hello! I am your personal AI Tutor. What subject would you like to explore today?"

// SystemInstruction is the default tutor persona.
const SystemInstruction = "You are a friendly and encouraging AI tutor. " +
	"Your goal is to explain complex topics in a simple and easy-to-understand way. " +
	"Use analogies, examples, and break down information into small chunks. " +
	"After explaining a concept, ask a follow-up question to check for understanding. " +
	"Format your responses using simple markdown like **bold** for emphasis, " +
	"bullet points (* item) for lists, and code blocks (```) for code snippets."

const (
	defaultTitle  = "Chat"
	titleMaxRunes = 25
)

// Update is a snapshot of the reply being streamed. Text holds everything
// received so far, and Fragment is Text rendered from scratch.
type Update struct {
	Text     string
	Fragment markup.Fragment
}

// Tutor sends chat turns to the model.
type Tutor struct {
	provider     llm.Provider
	store        store.Store
	renderer     *markup.Renderer
	logger       *zap.Logger
	model        string
	instructions string
	now          func() time.Time

	mu   sync.Mutex
	busy map[string]bool
}

// Option configures a Tutor.
type Option func(*Tutor)

// WithStore persists chats after every completed turn.
func WithStore(s store.Store) Option { return func(t *Tutor) { t.store = s } }

func WithRenderer(r *markup.Renderer) Option { return func(t *Tutor) { t.renderer = r } }

func WithLogger(l *zap.Logger) Option { return func(t *Tutor) { t.logger = l } }

func WithModel(model string) Option { return func(t *Tutor) { t.model = model } }

// WithInstructions replaces SystemInstruction. Blank values are ignored.
func WithInstructions(s string) Option {
	return func(t *Tutor) {
		if strings.TrimSpace(s) != "" {
			t.instructions = s
		}
	}
}

func New(p llm.Provider, opts ...Option) *Tutor {
	t := &Tutor{
		provider:     p,
		store:        store.NoopStore{},
		renderer:     markup.New(),
		logger:       zap.NewNop(),
		instructions: SystemInstruction,
		now:          time.Now,
		busy:         make(map[string]bool),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Renderer returns the renderer used for updates.
func (t *Tutor) Renderer() *markup.Renderer {
	return t.renderer
}

// NewChat returns an unsaved chat holding only the greeting.
func (t *Tutor) NewChat(userID string) *store.Chat {
	now := t.now()
	return &store.Chat{
		ID:        store.NewID(),
		UserID:    userID,
		Title:     defaultTitle,
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  []store.Message{{Role: store.RoleModel, Text: Greeting, CreatedAt: now}},
	}
}

// Send appends input to chat, streams the model reply and appends it too.
// onUpdate, when non-nil, is called on every chunk with the full reply so
// far. If the model call or the save fails the chat is left as it was.
func (t *Tutor) Send(ctx context.Context, chat *store.Chat, input string, onUpdate func(Update)) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", ErrEmptyMessage
	}
	if !t.acquire(chat.ID) {
		return "", ErrBusy
	}
	defer t.release(chat.ID)

	start := t.now()
	log := t.logger.With(zap.String("chat", chat.ID), zap.String("model", t.model))

	req := llm.Request{
		Model:    t.model,
		Messages: t.history(chat, input),
	}
	reply, err := t.stream(ctx, req, onUpdate)
	if err != nil {
		log.Warn("tutor reply failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return "", fmt.Errorf("tutor reply: %w", err)
	}

	now := t.now()
	next := chat.Clone()
	next.Messages = append(next.Messages,
		store.Message{Role: store.RoleUser, Text: input, CreatedAt: start},
		store.Message{Role: store.RoleModel, Text: reply, CreatedAt: now},
	)
	next.Title = Title(next)
	next.UpdatedAt = now

	if err := t.store.SaveChat(ctx, next); err != nil {
		log.Error("save chat failed", zap.Error(err))
		return "", fmt.Errorf("save chat: %w", err)
	}
	*chat = *next
	log.Debug("tutor reply", zap.Int("chars", len(reply)), zap.Duration("elapsed", time.Since(start)))
	return reply, nil
}

// history converts the chat to model messages, skipping the greeting.
func (t *Tutor) history(chat *store.Chat, input string) []llm.Message {
	msgs := []llm.Message{llm.SystemText(t.instructions)}
	prior := chat.Messages
	if len(prior) > 0 && prior[0].Role == store.RoleModel && prior[0].Text == Greeting {
		prior = prior[1:]
	}
	for _, m := range prior {
		if m.Role == store.RoleUser {
			msgs = append(msgs, llm.UserText(m.Text))
		} else {
			msgs = append(msgs, llm.AssistantText(m.Text))
		}
	}
	return append(msgs, llm.UserText(input))
}

func (t *Tutor) stream(ctx context.Context, req llm.Request, onUpdate func(Update)) (string, error) {
	stream, err := t.provider.Stream(ctx, req)
	if err != nil {
		return "", llm.WrapProviderError(t.provider, err)
	}
	defer stream.Close()

	var sb strings.Builder
	emit := func() {
		if onUpdate != nil {
			text := sb.String()
			onUpdate(Update{Text: text, Fragment: t.renderer.Render(text)})
		}
	}
	for {
		ev, err := stream.Recv()
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return "", llm.WrapProviderError(t.provider, err)
		}
		switch ev.Type {
		case llm.EventTextDelta:
			if ev.Text == "" {
				continue
			}
			sb.WriteString(ev.Text)
			emit()
		case llm.EventRetry:
			sb.Reset()
			emit()
		case llm.EventError:
			if ev.Err != nil {
				return "", llm.WrapProviderError(t.provider, ev.Err)
			}
		}
	}
}

func (t *Tutor) acquire(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.busy[id] {
		return false
	}
	t.busy[id] = true
	return true
}

func (t *Tutor) release(id string) {
	t.mu.Lock()
	delete(t.busy, id)
	t.mu.Unlock()
}

// Busy reports whether a reply is streaming for the chat.
func (t *Tutor) Busy(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.busy[id]
}

// Load returns a stored chat.
func (t *Tutor) Load(ctx context.Context, id string) (*store.Chat, error) {
	return t.store.GetChat(ctx, id)
}

// List returns stored chats for a user, newest first.
func (t *Tutor) List(ctx context.Context, userID string) ([]store.ChatSummary, error) {
	return t.store.ListChats(ctx, store.ListOptions{UserID: userID})
}

// Title derives a chat title from its first user message.
func Title(chat *store.Chat) string {
	for _, m := range chat.Messages {
		if m.Role != store.RoleUser {
			continue
		}
		text := strings.Join(strings.Fields(m.Text), " ")
		if r := []rune(text); len(r) > titleMaxRunes {
			return string(r[:titleMaxRunes]) + "..."
		}
		return text
	}
	return defaultTitle
}
