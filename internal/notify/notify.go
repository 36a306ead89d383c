package notify

import "context"

// Notifier delivers one alert. A single synchronous attempt; retry policy,
// if any, belongs to the caller.
type Notifier interface {
	Send(ctx context.Context, title, message string) error
}

// Multi fans an alert out to several notifiers, returning the first error.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, title, message string) error {
	var firstErr error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Send(ctx, title, message); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
