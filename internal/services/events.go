package services

import (
	"context"
	"log/slog"

	"github.com/archivo-digital/apiserver/internal/mq"
)

// EventPublisher publishes catalog events. *mq.MQ satisfies it.
type EventPublisher interface {
	PublishEvent(ctx context.Context, event mq.Event) (string, error)
}

// publishEvent is best effort: failures are logged and never reach the caller.
func publishEvent(ctx context.Context, logger *slog.Logger, publisher EventPublisher, eventType string, payload any) {
	if publisher == nil {
		return
	}
	event, err := mq.NewEvent(eventType, payload)
	if err != nil {
		logger.ErrorContext(ctx, "encode event", "type", eventType, "error", err)
		return
	}
	if _, err := publisher.PublishEvent(ctx, event); err != nil {
		logger.WarnContext(ctx, "publish event", "type", eventType, "event_id", event.ID, "error", err)
	}
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
