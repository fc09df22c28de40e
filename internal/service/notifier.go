package service

import (
	"context"
	"log/slog"
)

// Notifier is the fire-and-forget sink for human-readable messages after
// a successful create, update, or transition. Delivery failure is logged
// by the caller and never blocks or rolls back the mutation.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// NoopNotifier discards all messages.
type NoopNotifier struct{}

func (NoopNotifier) Notify(context.Context, string) error { return nil }

type slogNotifier struct {
	logger *slog.Logger
}

// NewSlogNotifier delivers notifications to the given structured logger.
func NewSlogNotifier(logger *slog.Logger) Notifier {
	if logger == nil {
		return NoopNotifier{}
	}
	return &slogNotifier{logger: logger}
}

func (n *slogNotifier) Notify(ctx context.Context, message string) error {
	n.logger.InfoContext(ctx, "notification", "message", message)
	return nil
}
