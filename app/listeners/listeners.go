// Package listeners reacts to domain events: every booking and catalog
// change is logged and counted in Prometheus.
package listeners

import (
	"context"

	"github.com/thedosaspot/dosaspot/app/models"
	"github.com/thedosaspot/dosaspot/app/services"
	"github.com/thedosaspot/dosaspot/pkg/event"
	"github.com/thedosaspot/dosaspot/pkg/logger"
	"github.com/thedosaspot/dosaspot/pkg/metrics"
)

// Register attaches every listener to bus.
func Register(bus *event.Bus) {
	bus.Listen(services.EventBookingCreated, bookingCreated)
	bus.Listen(services.EventBookingStatusChanged, bookingStatusChanged)
	bus.Listen(services.EventCatalogChanged, catalogChanged)
}

func bookingCreated(ctx context.Context, payload any) {
	b, ok := payload.(models.Booking)
	if !ok {
		return
	}
	metrics.BookingsCreated.WithLabelValues(string(b.BookingType)).Inc()
	logger.WithCtx(ctx).Info("booking created",
		"booking_id", b.ID,
		"booking_type", b.BookingType,
		"date", b.Date,
		"guests", b.Guests,
	)
}

func bookingStatusChanged(ctx context.Context, payload any) {
	c, ok := payload.(services.StatusChange)
	if !ok {
		return
	}
	metrics.BookingTransitions.WithLabelValues(string(c.Booking.Status)).Inc()
	logger.WithCtx(ctx).Info("booking status changed",
		"booking_id", c.Booking.ID,
		"from", c.From,
		"to", c.Booking.Status,
	)
}

func catalogChanged(ctx context.Context, payload any) {
	c, ok := payload.(services.CatalogChange)
	if !ok {
		return
	}
	metrics.CatalogWrites.WithLabelValues(c.Entity, c.Op).Inc()

	args := []any{"entity", c.Entity, "op", c.Op, "id", c.ID}
	if c.Cascaded > 0 {
		args = append(args, "items_removed", c.Cascaded)
	}
	logger.WithCtx(ctx).Info("catalog changed", args...)
}
