// Command server boots the API with the configuration from the environment
// and runs until SIGINT or SIGTERM. It is what the container image starts;
// use cmd/dosaspot for admin tasks.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/thedosaspot/dosaspot/pkg/app"
	"github.com/thedosaspot/dosaspot/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	a, err := app.Boot()
	if err != nil {
		return err
	}
	defer a.Close()
	return a.Serve(ctx)
}
