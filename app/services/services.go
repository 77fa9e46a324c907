// Package services holds the business rules: booking intake and approval,
// menu and banner administration, and the admin password check. Every write
// that needs the shared password checks it before touching the store.
package services

import (
	"github.com/thedosaspot/dosaspot/app/repositories"
	"github.com/thedosaspot/dosaspot/pkg/apperr"
	"github.com/thedosaspot/dosaspot/pkg/auth"
	"github.com/thedosaspot/dosaspot/pkg/event"
	"github.com/thedosaspot/dosaspot/pkg/storage"
	"github.com/thedosaspot/dosaspot/pkg/validate"
)

// Event names fired on the bus.
const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
	EventCatalogChanged       = "catalog.changed"
)

// Services bundles every service over one store.
type Services struct {
	Bookings *BookingService
	Menu     *MenuService
	Banners  *BannerService
	Auth     *AuthService
}

// New wires the services. disks may be nil, in which case image uploads fail.
func New(store *repositories.Store, gate *auth.Gate, events *event.Bus, disks *storage.Manager) *Services {
	return &Services{
		Bookings: NewBookingService(store, gate, events),
		Menu:     NewMenuService(store, gate, events, disks),
		Banners:  NewBannerService(store, gate, events),
		Auth:     NewAuthService(gate),
	}
}

// check runs the struct's validate tags and reports failures as one
// validation error.
func check(v any) error {
	if errs := validate.Struct(v); validate.HasErrors(errs) {
		return apperr.Validation("Validation failed", errs)
	}
	return nil
}
