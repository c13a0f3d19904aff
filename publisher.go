package holdemtable

import "context"

// Publisher delivers committed events to whoever listens outside the engine.
type Publisher interface {
	Publish(ctx context.Context, events []Event) error
}

type PublisherFunc func(ctx context.Context, events []Event) error

func (fn PublisherFunc) Publish(ctx context.Context, events []Event) error {
	return fn(ctx, events)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, []Event) error { return nil }
