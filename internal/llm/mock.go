package llm

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// ErrNoMockResponse is returned when a MockProvider has nothing queued
// and no fallback.
var ErrNoMockResponse = errors.New("mock provider: no response queued")

// MockTurn is one scripted response. Chunks are streamed in order, then
// Err (if set) is reported.
type MockTurn struct {
	Chunks []string
	Err    error
	Delay  time.Duration // pause before each chunk
}

// MockProvider replays scripted turns. It is used by tests and by the
// "mock" provider setting for offline demos.
type MockProvider struct {
	name     string
	mu       sync.Mutex
	turns    []MockTurn
	requests []Request
	fallback func(Request) MockTurn
}

func NewMockProvider(name string) *MockProvider {
	if name == "" {
		name = "mock"
	}
	return &MockProvider{name: name}
}

func (m *MockProvider) Name() string {
	return m.name
}

// AddTurn queues a scripted turn.
func (m *MockProvider) AddTurn(turn MockTurn) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = append(m.turns, turn)
	return m
}

// AddTextResponse queues a single-chunk text response.
func (m *MockProvider) AddTextResponse(text string) *MockProvider {
	return m.AddTurn(MockTurn{Chunks: []string{text}})
}

// AddChunks queues a response streamed as the given chunks.
func (m *MockProvider) AddChunks(chunks ...string) *MockProvider {
	return m.AddTurn(MockTurn{Chunks: chunks})
}

// AddError queues a response that fails immediately.
func (m *MockProvider) AddError(err error) *MockProvider {
	return m.AddTurn(MockTurn{Err: err})
}

// WithFallback sets the responder used once the queue is empty.
func (m *MockProvider) WithFallback(fn func(Request) MockTurn) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallback = fn
	return m
}

// Requests returns a copy of every request received so far.
func (m *MockProvider) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}

func (m *MockProvider) next(req Request) (MockTurn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if len(m.turns) > 0 {
		turn := m.turns[0]
		m.turns = m.turns[1:]
		return turn, nil
	}
	if m.fallback != nil {
		return m.fallback(req), nil
	}
	return MockTurn{}, ErrNoMockResponse
}

func (m *MockProvider) Stream(ctx context.Context, req Request) (Stream, error) {
	turn, err := m.next(req)
	if err != nil {
		return nil, err
	}
	return newEventStream(ctx, func(ctx context.Context, events chan<- Event) error {
		var out int
		for _, chunk := range turn.Chunks {
			if turn.Delay > 0 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(turn.Delay):
				}
			}
			if err := send(ctx, events, Event{Type: EventTextDelta, Text: chunk}); err != nil {
				return err
			}
			out += len(chunk)
		}
		if turn.Err != nil {
			return turn.Err
		}
		if err := send(ctx, events, Event{Type: EventUsage, Use: &Usage{InputTokens: inputSize(req), OutputTokens: out}}); err != nil {
			return err
		}
		return send(ctx, events, Event{Type: EventDone})
	}), nil
}

func inputSize(req Request) int {
	var n int
	for _, msg := range req.Messages {
		n += len(msg.Text())
	}
	return n
}

// EchoFallback answers with a short markdown echo of the last user
// message, so the tutor works without network access.
func EchoFallback(req Request) MockTurn {
	var last string
	for _, msg := range req.Messages {
		if msg.Role == RoleUser {
			last = msg.Text()
		}
	}
	if req.ResponseSchema != nil {
		return MockTurn{Err: errors.New("mock provider: structured output needs a scripted response")}
	}
	reply := "**Offline mode.** You asked:\n\n> " + strings.ReplaceAll(strings.TrimSpace(last), "\n", "\n> ") +
		"\n\nSet `provider: gemini` and an API key for real answers."
	words := strings.SplitAfter(reply, " ")
	return MockTurn{Chunks: words, Delay: 15 * time.Millisecond}
}
