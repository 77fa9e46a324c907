package app

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/thedosaspot/dosaspot/config"
	"github.com/thedosaspot/dosaspot/database/seeders"
	"github.com/thedosaspot/dosaspot/pkg/migration"
)

// Migrate runs all pending migrations.
func (a *Application) Migrate(out io.Writer) error {
	return migration.New(a.DB, out).Run()
}

// Rollback reverses the last migration batch.
func (a *Application) Rollback(out io.Writer) error {
	return migration.New(a.DB, out).Rollback()
}

// MigrationStatus prints which migrations have run.
func (a *Application) MigrationStatus(out io.Writer) error {
	return migration.New(a.DB, out).Status()
}

// Seed runs every registered seeder against DATA_DIR.
func (a *Application) Seed(out io.Writer) error {
	return seeders.RunAll(a.DB, config.DataDir(), out)
}

// RouteList prints the route table.
func (a *Application) RouteList(out io.Writer) error {
	r, err := a.Router()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPATH\tNAME")
	fmt.Fprintln(w, strings.Repeat("-", 6)+"\t"+strings.Repeat("-", 4)+"\t"+strings.Repeat("-", 4))
	for _, ri := range r.Routes() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
	}
	return w.Flush()
}
