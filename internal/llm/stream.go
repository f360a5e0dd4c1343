package llm

import (
	"context"
	"io"
	"sync"
)

type eventStream struct {
	cancel    context.CancelFunc
	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// newEventStream runs fn in a goroutine and exposes the events it sends as
// a Stream. A non-nil error from fn is delivered as a final EventError.
// Close cancels fn's context and waits for it to return.
func newEventStream(ctx context.Context, fn func(ctx context.Context, events chan<- Event) error) Stream {
	ctx, cancel := context.WithCancel(ctx)
	s := &eventStream{
		cancel: cancel,
		events: make(chan Event, 16),
		done:   make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		defer close(s.events)
		if err := fn(ctx, s.events); err != nil {
			select {
			case s.events <- Event{Type: EventError, Err: err}:
			case <-ctx.Done():
			}
		}
	}()
	return s
}

func (s *eventStream) Recv() (Event, error) {
	ev, ok := <-s.events
	if !ok {
		return Event{}, io.EOF
	}
	return ev, nil
}

func (s *eventStream) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		for range s.events {
		}
		<-s.done
	})
	return nil
}

// send delivers ev unless ctx is cancelled first.
func send(ctx context.Context, events chan<- Event, ev Event) error {
	select {
	case events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
