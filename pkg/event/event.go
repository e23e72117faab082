// Package event provides an in-process event dispatcher.
//
//	bus := event.New()
//	bus.Listen("order.submitted", func(ctx context.Context, p any) { ... })
//	bus.Fire(ctx, "order.submitted", payload)
//
// A nil *Bus is valid and drops every event.
package event

import (
	"context"
	"sync"

	"github.com/shashiranjanraj/servicehub/pkg/logger"
)

// Handler receives an event payload.
type Handler func(ctx context.Context, payload any)

// Bus maps event names to listeners.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func New() *Bus {
	return &Bus{handlers: map[string][]Handler{}}
}

// Listen registers a handler for the given event name.
func (b *Bus) Listen(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], h)
}

// Fire dispatches an event synchronously to all listeners. A panicking
// listener is logged and does not stop the rest.
func (b *Bus) Fire(ctx context.Context, name string, payload any) {
	for _, h := range b.listeners(name) {
		b.call(ctx, name, h, payload)
	}
}

func (b *Bus) listeners(name string) []Handler {
	if b == nil {
		return nil
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Handler(nil), b.handlers[name]...)
}

func (b *Bus) call(ctx context.Context, name string, h Handler, payload any) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.WithCtx(ctx).Error("event listener panicked", "event", name, "panic", rec)
		}
	}()
	h(ctx, payload)
}
