package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFireCallsListenersInOrder(t *testing.T) {
	bus := New()
	var got []string
	bus.Listen("order.submitted", func(_ context.Context, p any) { got = append(got, "a:"+p.(string)) })
	bus.Listen("order.submitted", func(_ context.Context, p any) { got = append(got, "b:"+p.(string)) })
	bus.Listen("user.registered", func(context.Context, any) { got = append(got, "wrong") })

	bus.Fire(context.Background(), "order.submitted", "x")

	assert.Equal(t, []string{"a:x", "b:x"}, got)
}

func TestFireSurvivesPanickingListener(t *testing.T) {
	bus := New()
	called := false
	bus.Listen("e", func(context.Context, any) { panic("boom") })
	bus.Listen("e", func(context.Context, any) { called = true })

	assert.NotPanics(t, func() { bus.Fire(context.Background(), "e", nil) })
	assert.True(t, called)
}

func TestNilBusDropsEvents(t *testing.T) {
	var bus *Bus
	assert.NotPanics(t, func() {
		bus.Fire(context.Background(), "e", nil)
	})
}
