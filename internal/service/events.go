package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/hr-service/internal/auth"
	"github.com/spec-kit/hr-service/internal/events"
)

// publisher emits audit events. Delivery failures are logged, never returned.
type publisher struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	clock      auth.Clock
}

func newPublisher(dispatcher events.Dispatcher, logger *zap.Logger, clock auth.Clock) publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = auth.SystemClock{}
	}
	return publisher{dispatcher: dispatcher, logger: logger, clock: clock}
}

func (p publisher) publish(ctx context.Context, eventType events.EventType, actor auth.Principal, resourceID int64, payload any) {
	if p.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		ResourceID: resourceID,
		Actor:      events.Actor{Username: actor.Username, Role: actor.Role},
		Timestamp:  p.clock.Now().UTC(),
		Payload:    payload,
	}
	if err := p.dispatcher.Publish(ctx, event); err != nil {
		p.logger.Warn("event handler failed", zap.String("event", string(eventType)), zap.Error(err))
	}
}
