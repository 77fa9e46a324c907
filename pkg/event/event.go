// Package event provides a small synchronous event dispatcher.
//
// Services fire domain events (booking.created, booking.status_changed) on an
// injected *Bus; listeners registered at boot react to them without the
// service knowing who is listening.
package event

import (
	"context"
	"sync"

	"github.com/thedosaspot/dosaspot/pkg/logger"
)

// Handler receives an event payload.
type Handler func(ctx context.Context, payload any)

// Bus holds listeners keyed by event name. The zero value is not usable;
// call New.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// New returns an empty Bus.
func New() *Bus {
	return &Bus{handlers: map[string][]Handler{}}
}

// Listen registers a handler for the given event name.
func (b *Bus) Listen(event string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[event] = append(b.handlers[event], h)
}

// Fire dispatches an event synchronously to all registered listeners.
// A nil Bus drops the event.
func (b *Bus) Fire(ctx context.Context, event string, payload any) {
	for _, h := range b.snapshot(event) {
		b.call(ctx, event, h, payload)
	}
}

func (b *Bus) snapshot(event string) []Handler {
	if b == nil {
		return nil
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Handler(nil), b.handlers[event]...)
}

// call runs one listener; a panicking listener must not take the caller down.
func (b *Bus) call(ctx context.Context, event string, h Handler, payload any) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithCtx(ctx).Error("event: listener panicked", "event", event, "panic", r)
		}
	}()
	h(ctx, payload)
}
