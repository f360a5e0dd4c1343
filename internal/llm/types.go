package llm

import (
	"context"
	"errors"
)

var (
	// ErrInvalidResponse is returned when model output cannot be decoded
	// into the requested shape.
	ErrInvalidResponse = errors.New("invalid model response")
	// ErrNoAPIKey is returned when a hosted provider has no credentials.
	ErrNoAPIKey = errors.New("no API key configured")
)

// ProviderError is a failure reported by a model provider, as opposed to
// a local one.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string { return e.Provider + ": " + e.Err.Error() }

func (e *ProviderError) Unwrap() error { return e.Err }

// WrapProviderError tags err as coming from p. Nil and context errors are
// returned unchanged.
func WrapProviderError(p Provider, err error) error {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return err
	}
	return &ProviderError{Provider: p.Name(), Err: err}
}

// Provider streams model output events for a request.
type Provider interface {
	Name() string
	Stream(ctx context.Context, req Request) (Stream, error)
}

// Stream yields events until io.EOF. Callers must Close every stream.
type Stream interface {
	Recv() (Event, error)
	Close() error
}

// Request represents a single model turn.
type Request struct {
	Model           string
	Messages        []Message
	Temperature     *float32
	MaxOutputTokens int
	// ResponseSchema, when set, asks for JSON output matching this
	// JSON-schema style description.
	ResponseSchema map[string]any
}

// Role identifies a message role.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message holds a role with text parts.
type Message struct {
	Role  Role
	Parts []Part
}

// Part is a single text part of a message.
type Part struct {
	Text string
}

// Text returns the concatenated text of all parts.
func (m Message) Text() string {
	if len(m.Parts) == 1 {
		return m.Parts[0].Text
	}
	var out string
	for _, p := range m.Parts {
		out += p.Text
	}
	return out
}

// EventType describes streaming events.
type EventType string

const (
	EventTextDelta EventType = "text_delta"
	EventUsage     EventType = "usage"
	EventDone      EventType = "done"
	EventError     EventType = "error"
	EventRetry     EventType = "retry" // Emitted when retrying after a transient failure
)

// Event represents a streamed output update.
type Event struct {
	Type EventType
	Text string
	Use  *Usage
	Err  error
	// Retry fields (for EventRetry)
	RetryAttempt     int
	RetryMaxAttempts int
	RetryWaitSecs    float64
}

// Usage captures token usage if available.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

func SystemText(text string) Message {
	return Message{Role: RoleSystem, Parts: []Part{{Text: text}}}
}

func UserText(text string) Message {
	return Message{Role: RoleUser, Parts: []Part{{Text: text}}}
}

func AssistantText(text string) Message {
	return Message{Role: RoleAssistant, Parts: []Part{{Text: text}}}
}

// Temperature returns a pointer for Request.Temperature.
func Temperature(t float32) *float32 {
	return &t
}
