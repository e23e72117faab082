package listeners

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/servicehub/app/events"
	"github.com/shashiranjanraj/servicehub/pkg/event"
	"github.com/shashiranjanraj/servicehub/pkg/metrics"
)

func TestOrderSubmittedCountsByServiceType(t *testing.T) {
	bus := event.New()
	Register(bus)

	counter := metrics.OrdersSubmitted.WithLabelValues("plumbing")
	before := testutil.ToFloat64(counter)

	bus.Fire(context.Background(), events.OrderSubmittedEvent, events.OrderSubmitted{
		OrderID: "o1", UserID: "u1", ServiceType: "plumbing",
	})
	bus.Fire(context.Background(), events.OrderSubmittedEvent, "not a payload")

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestUserRegisteredIgnoresForeignPayload(t *testing.T) {
	bus := event.New()
	Register(bus)

	assert.NotPanics(t, func() {
		bus.Fire(context.Background(), events.UserRegisteredEvent, events.UserRegistered{UserID: "u1"})
		bus.Fire(context.Background(), events.UserRegisteredEvent, 42)
	})
}
