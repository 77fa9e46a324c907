// Package migration runs and tracks schema migrations.
//
// Each migration registers itself from an init() in database/migrations:
//
//	func init() {
//	    migration.Register("20240601000001_create_bookings_table", &CreateBookingsTable{})
//	}
//
//	type CreateBookingsTable struct{}
//	func (CreateBookingsTable) Up(db *gorm.DB) error   { return db.AutoMigrate(&models.Booking{}) }
//	func (CreateBookingsTable) Down(db *gorm.DB) error { return db.Migrator().DropTable("bookings") }
//
// and runs from the CLI:
//
//	dosaspot migrate             // run all pending
//	dosaspot migrate:rollback    // roll back the last batch
//	dosaspot migrate:status
package migration

import (
	"database/sql"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/thedosaspot/dosaspot/pkg/logger"
)

// Migration is the interface every migration must implement.
type Migration interface {
	// Up applies the migration.
	Up(db *gorm.DB) error
	// Down reverses the migration.
	Down(db *gorm.DB) error
}

// Entry is a named migration.
type Entry struct {
	Name string
	M    Migration
}

// record is the row stored in the tracking table.
type record struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (record) TableName() string { return "dosaspot_migrations" }

// ------------------- Registry -------------------

var registry []Entry

// Register adds a migration to the package registry. name should carry a
// timestamp prefix, e.g. "20240601000001_create_bookings_table"; pending
// migrations run in name order.
func Register(name string, m Migration) {
	registry = append(registry, Entry{Name: name, M: m})
}

// Registered returns a copy of the registry sorted by name.
func Registered() []Entry {
	out := append([]Entry(nil), registry...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ------------------- Runner -------------------

// Runner executes and tracks migrations.
type Runner struct {
	db         *gorm.DB
	out        io.Writer
	migrations []Entry
}

// New creates a Runner over the registered migrations. Progress lines go to out.
func New(db *gorm.DB, out io.Writer) *Runner {
	return NewWith(db, out, Registered()...)
}

// NewWith creates a Runner over an explicit migration set.
func NewWith(db *gorm.DB, out io.Writer, entries ...Entry) *Runner {
	if out == nil {
		out = io.Discard
	}
	sorted := append([]Entry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return &Runner{db: db, out: out, migrations: sorted}
}

// EnsureTable creates the tracking table if it does not exist.
func (r *Runner) EnsureTable() error {
	return r.db.AutoMigrate(&record{})
}

// Pending returns the migrations that have not yet been run, in name order.
func (r *Runner) Pending() ([]Entry, error) {
	ran, err := r.ran()
	if err != nil {
		return nil, err
	}

	var pending []Entry
	for _, e := range r.migrations {
		if _, ok := ran[e.Name]; !ok {
			pending = append(pending, e)
		}
	}
	return pending, nil
}

// Run executes all pending migrations in a single batch.
func (r *Runner) Run() error {
	if err := r.EnsureTable(); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}

	pending, err := r.Pending()
	if err != nil {
		return fmt.Errorf("migration: fetch pending: %w", err)
	}

	if len(pending) == 0 {
		fmt.Fprintln(r.out, "Nothing to migrate.")
		return nil
	}

	batch, err := r.lastBatch()
	if err != nil {
		return err
	}
	batch++

	for _, e := range pending {
		fmt.Fprintf(r.out, "  ▶ Migrating: %s\n", e.Name)

		if err := e.M.Up(r.db); err != nil {
			return fmt.Errorf("migration: %s up: %w", e.Name, err)
		}
		if err := r.db.Create(&record{Name: e.Name, Batch: batch}).Error; err != nil {
			return fmt.Errorf("migration: record %s: %w", e.Name, err)
		}

		fmt.Fprintf(r.out, "  ✅ Migrated:  %s\n", e.Name)
	}

	logger.Info("migration: done", "ran", len(pending), "batch", batch)
	return nil
}

// Rollback reverses all migrations from the most recent batch.
func (r *Runner) Rollback() error {
	if err := r.EnsureTable(); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}

	batch, err := r.lastBatch()
	if err != nil {
		return err
	}
	if batch == 0 {
		fmt.Fprintln(r.out, "Nothing to roll back.")
		return nil
	}

	var records []record
	if err := r.db.Where("batch = ?", batch).Order("id desc").Find(&records).Error; err != nil {
		return err
	}

	byName := make(map[string]Migration, len(r.migrations))
	for _, e := range r.migrations {
		byName[e.Name] = e.M
	}

	for _, rec := range records {
		m, ok := byName[rec.Name]
		if !ok {
			return fmt.Errorf("migration: cannot roll back %s: not registered", rec.Name)
		}

		fmt.Fprintf(r.out, "  ◀ Rolling back: %s\n", rec.Name)
		if err := m.Down(r.db); err != nil {
			return fmt.Errorf("migration: %s down: %w", rec.Name, err)
		}
		if err := r.db.Delete(&rec).Error; err != nil {
			return err
		}
		fmt.Fprintf(r.out, "  ✅ Rolled back:  %s\n", rec.Name)
	}

	logger.Info("migration: rolled back", "count", len(records), "batch", batch)
	return nil
}

// Status prints every known migration and whether it has been run.
func (r *Runner) Status() error {
	if err := r.EnsureTable(); err != nil {
		return err
	}
	ran, err := r.ran()
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "%-60s  %-8s  %s\n", "Migration", "Status", "Batch")
	fmt.Fprintln(r.out, strings.Repeat("-", 80))
	for _, e := range r.migrations {
		if rec, ok := ran[e.Name]; ok {
			fmt.Fprintf(r.out, "%-60s  %-8s  %d\n", e.Name, "Ran", rec.Batch)
		} else {
			fmt.Fprintf(r.out, "%-60s  %-8s  -\n", e.Name, "Pending")
		}
	}
	return nil
}

func (r *Runner) ran() (map[string]record, error) {
	var rows []record
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]record, len(rows))
	for _, rec := range rows {
		out[rec.Name] = rec
	}
	return out, nil
}

func (r *Runner) lastBatch() (int, error) {
	var max sql.NullInt64
	if err := r.db.Model(&record{}).Select("MAX(batch)").Row().Scan(&max); err != nil {
		return 0, fmt.Errorf("migration: read batch: %w", err)
	}
	return int(max.Int64), nil
}
