package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestMockProviderStreamsChunks(t *testing.T) {
	p := NewMockProvider("test").AddChunks("Hello", ", ", "world")

	text, err := CollectText(context.Background(), p, Request{Messages: []Message{UserText("Hi")}})
	if err != nil {
		t.Fatalf("CollectText: %v", err)
	}
	if text != "Hello, world" {
		t.Errorf("text = %q", text)
	}

	reqs := p.Requests()
	if len(reqs) != 1 || reqs[0].Messages[0].Text() != "Hi" {
		t.Errorf("recorded requests = %+v", reqs)
	}
}

func TestMockProviderErrorAfterChunks(t *testing.T) {
	boom := errors.New("boom")
	p := NewMockProvider("test").AddTurn(MockTurn{Chunks: []string{"partial"}, Err: boom})

	_, err := CollectText(context.Background(), p, Request{Messages: []Message{UserText("Hi")}})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}

func TestMockProviderEmptyQueue(t *testing.T) {
	p := NewMockProvider("")
	if p.Name() != "mock" {
		t.Errorf("Name() = %q, want mock", p.Name())
	}
	_, err := p.Stream(context.Background(), Request{})
	if !errors.Is(err, ErrNoMockResponse) {
		t.Fatalf("err = %v, want ErrNoMockResponse", err)
	}
}

func TestMockProviderEchoFallback(t *testing.T) {
	p := NewMockProvider("offline").WithFallback(func(req Request) MockTurn {
		turn := EchoFallback(req)
		turn.Delay = 0
		return turn
	})
	text, err := CollectText(context.Background(), p, Request{Messages: []Message{
		SystemText("be nice"),
		UserText("What is Go?"),
	}})
	if err != nil {
		t.Fatalf("CollectText: %v", err)
	}
	if !strings.Contains(text, "> What is Go?") {
		t.Errorf("echo reply missing question: %q", text)
	}

	_, err = CollectText(context.Background(), p, Request{
		Messages:       []Message{UserText("json please")},
		ResponseSchema: map[string]any{"type": "object"},
	})
	if err == nil {
		t.Error("expected structured request to fail on the echo fallback")
	}
}
