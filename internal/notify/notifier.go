package notify

import "context"

// Notifier pushes a short message to the user's phone. Delivery is
// best-effort everywhere in the pipeline: callers log failures and
// move on.
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

// NopNotifier is used when no notification channel is configured.
type NopNotifier struct{}

func (NopNotifier) Notify(ctx context.Context, title, message string) error {
	return nil
}
