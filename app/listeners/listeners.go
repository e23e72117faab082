// Package listeners subscribes the default handlers to domain events.
package listeners

import (
	"context"

	"github.com/shashiranjanraj/servicehub/app/events"
	"github.com/shashiranjanraj/servicehub/pkg/event"
	"github.com/shashiranjanraj/servicehub/pkg/logger"
	"github.com/shashiranjanraj/servicehub/pkg/metrics"
)

// Register wires every default listener onto bus.
func Register(bus *event.Bus) {
	bus.Listen(events.UserRegisteredEvent, userRegistered)
	bus.Listen(events.OrderSubmittedEvent, orderSubmitted)
}

func userRegistered(ctx context.Context, payload any) {
	e, ok := payload.(events.UserRegistered)
	if !ok {
		return
	}
	logger.WithCtx(ctx).Info("user registered", "user_id", e.UserID)
}

func orderSubmitted(ctx context.Context, payload any) {
	e, ok := payload.(events.OrderSubmitted)
	if !ok {
		return
	}
	metrics.OrdersSubmitted.WithLabelValues(e.ServiceType).Inc()
	logger.WithCtx(ctx).Info("order submitted", "order_id", e.OrderID, "service_type", e.ServiceType)
}
