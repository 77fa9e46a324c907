package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thedosaspot/dosaspot/pkg/app"
)

// dosaspot migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: withApp(func(a *app.Application, cmd *cobra.Command) error {
		fmt.Fprintln(cmd.OutOrStdout(), "Running migrations…")
		return a.Migrate(cmd.OutOrStdout())
	}),
}

// dosaspot migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: withApp(func(a *app.Application, cmd *cobra.Command) error {
		fmt.Fprintln(cmd.OutOrStdout(), "Rolling back last batch…")
		return a.Rollback(cmd.OutOrStdout())
	}),
}

// dosaspot migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: withApp(func(a *app.Application, cmd *cobra.Command) error {
		return a.MigrationStatus(cmd.OutOrStdout())
	}),
}

// dosaspot seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the menu and banners into empty tables",
	RunE: withApp(func(a *app.Application, cmd *cobra.Command) error {
		fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
		return a.Seed(cmd.OutOrStdout())
	}),
}
