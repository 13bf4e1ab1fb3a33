package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/hr-service/internal/events"
)

// StartAuditWorker subscribes an audit logger to every service event.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil || logger == nil {
		return
	}
	audit := logger.Named("audit")
	for _, eventType := range events.AllEventTypes {
		dispatcher.Subscribe(eventType, func(_ context.Context, event events.Event) error {
			fields := []zap.Field{
				zap.String("event_id", event.ID),
				zap.String("event", string(event.Type)),
				zap.String("actor", event.Actor.Username),
				zap.Time("at", event.Timestamp),
			}
			if event.Actor.Role != "" {
				fields = append(fields, zap.String("actor_role", string(event.Actor.Role)))
			}
			if event.ResourceID != 0 {
				fields = append(fields, zap.Int64("resource_id", event.ResourceID))
			}
			if event.Payload != nil {
				fields = append(fields, zap.Any("payload", event.Payload))
			}
			audit.Info("audit event", fields...)
			return nil
		})
	}
}
