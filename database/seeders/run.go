// Package seeders fills an empty database with the starting menu and banners.
//
// Seeders register themselves from init():
//
//	func init() {
//	    seeders.Register("menu", SeedMenu)
//	}
//
// and run from `dosaspot seed` or on boot when SEED_ON_BOOT is set. Every
// seeder leaves a table alone once it has rows, so running twice is harmless.
package seeders

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"gorm.io/gorm"

	"github.com/thedosaspot/dosaspot/pkg/logger"
)

// SeederFunc seeds one concern. dataDir is where the JSON seed files live.
type SeederFunc func(db *gorm.DB, dataDir string) error

type seederEntry struct {
	name string
	fn   SeederFunc
}

var (
	mu      sync.Mutex
	entries []seederEntry
)

// Register adds a seeder to the global registry.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, seederEntry{name: name, fn: fn})
}

// RunAll executes every registered seeder in registration order. A failing
// seeder does not stop the ones after it; all failures are joined into the
// returned error.
func RunAll(db *gorm.DB, dataDir string, out io.Writer) error {
	mu.Lock()
	current := make([]seederEntry, len(entries))
	copy(current, entries)
	mu.Unlock()

	var errs []error
	for _, e := range current {
		fmt.Fprintf(out, "  • Running seeder: %s … ", e.name)
		if err := e.fn(db, dataDir); err != nil {
			fmt.Fprintln(out, "FAILED")
			errs = append(errs, fmt.Errorf("seeder %q: %w", e.name, err))
			continue
		}
		fmt.Fprintln(out, "done")
		logger.Debug("seeder finished", "seeder", e.name)
	}
	return errors.Join(errs...)
}
