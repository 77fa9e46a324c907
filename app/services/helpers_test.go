package services_test

import (
	"context"
	"testing"

	"github.com/thedosaspot/dosaspot/app/repositories"
	"github.com/thedosaspot/dosaspot/app/services"
	"github.com/thedosaspot/dosaspot/internal/testdb"
	"github.com/thedosaspot/dosaspot/pkg/auth"
	"github.com/thedosaspot/dosaspot/pkg/event"
	"github.com/thedosaspot/dosaspot/pkg/storage"
)

const adminPassword = "dosa123"

type fixture struct {
	store  *repositories.Store
	bus    *event.Bus
	events []string
	svc    *services.Services
}

func newFixture(t *testing.T, disks *storage.Manager) *fixture {
	t.Helper()
	f := &fixture{store: testdb.Store(t), bus: event.New()}
	for _, name := range []string{
		services.EventBookingCreated,
		services.EventBookingStatusChanged,
		services.EventCatalogChanged,
	} {
		name := name
		f.bus.Listen(name, func(_ context.Context, _ any) { f.events = append(f.events, name) })
	}
	f.svc = services.New(f.store, auth.NewGate(adminPassword), f.bus, disks)
	return f
}

func str(s string) *string { return &s }

func price(f float64) *float64 { return &f }
