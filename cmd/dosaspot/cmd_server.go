package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thedosaspot/dosaspot/pkg/app"
)

// dosaspot serve
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run", "start"},
	Short:   "Start the HTTP and gRPC servers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := app.Boot()
		if err != nil {
			return err
		}
		defer a.Close()
		return a.Serve(ctx)
	},
}

// dosaspot route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered routes",
	RunE: withApp(func(a *app.Application, cmd *cobra.Command) error {
		return a.RouteList(cmd.OutOrStdout())
	}),
}

// withApp boots the application around fn and closes it afterwards.
func withApp(fn func(a *app.Application, cmd *cobra.Command) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		a, err := app.Boot()
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(a, cmd)
	}
}
