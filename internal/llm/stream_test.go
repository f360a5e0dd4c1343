package llm

import (
	"context"
	"errors"
	"io"
	"testing"
)

func TestEventStreamDeliversEventsThenEOF(t *testing.T) {
	stream := newEventStream(context.Background(), func(ctx context.Context, events chan<- Event) error {
		for _, s := range []string{"a", "b", "c"} {
			if err := send(ctx, events, Event{Type: EventTextDelta, Text: s}); err != nil {
				return err
			}
		}
		return nil
	})
	defer stream.Close()

	var got string
	for {
		ev, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Recv: %v", err)
		}
		got += ev.Text
	}
	if got != "abc" {
		t.Errorf("got %q, want abc", got)
	}
	if _, err := stream.Recv(); err != io.EOF {
		t.Errorf("Recv after EOF = %v, want io.EOF", err)
	}
}

func TestEventStreamReportsError(t *testing.T) {
	boom := errors.New("boom")
	stream := newEventStream(context.Background(), func(ctx context.Context, events chan<- Event) error {
		return boom
	})
	defer stream.Close()

	ev, err := stream.Recv()
	if err != nil {
		t.Fatalf("Recv: %v", err)
	}
	if ev.Type != EventError || !errors.Is(ev.Err, boom) {
		t.Errorf("event = %+v, want error event wrapping boom", ev)
	}
}

func TestEventStreamCloseStopsProducer(t *testing.T) {
	started := make(chan struct{})
	stream := newEventStream(context.Background(), func(ctx context.Context, events chan<- Event) error {
		close(started)
		for {
			if err := send(ctx, events, Event{Type: EventTextDelta, Text: "x"}); err != nil {
				return err
			}
		}
	})
	<-started
	if _, err := stream.Recv(); err != nil {
		t.Fatalf("Recv: %v", err)
	}
	if err := stream.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	// Second close is a no-op.
	if err := stream.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
