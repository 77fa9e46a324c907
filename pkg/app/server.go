package app

import (
	"context"
	"io"
	"os"

	"github.com/thedosaspot/dosaspot/config"
	"github.com/thedosaspot/dosaspot/internal/server"
	"github.com/thedosaspot/dosaspot/pkg/logger"
)

// Prepare applies pending migrations and, when SEED_ON_BOOT is on, seeds an
// empty database. Only a migration failure is returned: a bad seed file is
// logged and the service starts without that data.
func (a *Application) Prepare(out io.Writer) error {
	if err := a.Migrate(out); err != nil {
		return err
	}
	if config.SeedOnBoot() {
		if err := a.Seed(out); err != nil {
			logger.Warn("seeding skipped", "error", err)
		}
	}
	return nil
}

// Serve prepares the database, then serves HTTP and gRPC until ctx is
// cancelled.
func (a *Application) Serve(ctx context.Context) error {
	if err := a.Prepare(os.Stdout); err != nil {
		return err
	}

	handler, err := a.Handler()
	if err != nil {
		return err
	}
	return server.Run(ctx, handler, server.Options{
		Addr:     ":" + config.AppPort(),
		GRPCPort: config.GRPCPort(),
		Check:    a.Store.Ping,
	})
}
