package event_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thedosaspot/dosaspot/pkg/event"
)

func TestFireCallsListenersInOrder(t *testing.T) {
	bus := event.New()
	var got []string
	bus.Listen("booking.created", func(_ context.Context, p any) { got = append(got, "a:"+p.(string)) })
	bus.Listen("booking.created", func(_ context.Context, p any) { got = append(got, "b:"+p.(string)) })
	bus.Listen("other", func(context.Context, any) { got = append(got, "other") })

	bus.Fire(context.Background(), "booking.created", "1")
	assert.Equal(t, []string{"a:1", "b:1"}, got)
}

func TestPanickingListenerIsContained(t *testing.T) {
	bus := event.New()
	called := false
	bus.Listen("x", func(context.Context, any) { panic("nope") })
	bus.Listen("x", func(context.Context, any) { called = true })

	assert.NotPanics(t, func() { bus.Fire(context.Background(), "x", nil) })
	assert.True(t, called)
}

func TestNilBusDropsEvents(t *testing.T) {
	var bus *event.Bus
	assert.NotPanics(t, func() {
		bus.Fire(context.Background(), "x", nil)
	})
}
