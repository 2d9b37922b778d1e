package services

import (
	"context"

	"go.uber.org/zap"
)

// Routing keys of the events published to the broker.
const (
	EventOrderCreated           = "order.created"
	EventOrderStatusChanged     = "order.status_changed"
	EventCustomOrderCreated     = "custom_order.created"
	EventReservationCreated     = "reservation.created"
	EventPasswordResetRequested = "user.password_reset_requested"
)

// EventPublisher delivers domain events to external consumers (mailers,
// notifications). Implemented by pkg/rabbitmq.Client.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

// publishEvent is best effort: the state change has already been committed,
// so a broker failure is logged and swallowed.
func publishEvent(ctx context.Context, p EventPublisher, routingKey string, payload interface{}) {
	if p == nil {
		zap.S().Debugf("event publisher not configured, skipping %s", routingKey)
		return
	}
	if err := p.Publish(ctx, routingKey, payload); err != nil {
		zap.S().Warnf("failed to publish %s event: %v", routingKey, err)
	}
}
