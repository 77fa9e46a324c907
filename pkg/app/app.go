// Package app assembles the running service: configuration, the database,
// storage disks, the event bus and the services over them. Both binaries and
// every CLI command start from here.
//
//	a, err := app.Boot()
//	if err != nil { ... }
//	defer a.Close()
//	return a.Serve(ctx)
package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/thedosaspot/dosaspot/app/listeners"
	"github.com/thedosaspot/dosaspot/app/repositories"
	"github.com/thedosaspot/dosaspot/app/services"
	"github.com/thedosaspot/dosaspot/config"
	"github.com/thedosaspot/dosaspot/pkg/auth"
	"github.com/thedosaspot/dosaspot/pkg/database"
	"github.com/thedosaspot/dosaspot/pkg/event"
	"github.com/thedosaspot/dosaspot/pkg/logger"
	"github.com/thedosaspot/dosaspot/pkg/storage"

	// Register the schema migrations and seeders.
	_ "github.com/thedosaspot/dosaspot/database/migrations"
	_ "github.com/thedosaspot/dosaspot/database/seeders"
)

// Application is the wired service.
type Application struct {
	DB       *gorm.DB
	Store    *repositories.Store
	Events   *event.Bus
	Disks    *storage.Manager
	Services *services.Services

	closers []func()
}

// New wires an Application over an open database. disks may be nil.
func New(db *gorm.DB, disks *storage.Manager, adminPassword string) *Application {
	bus := event.New()
	listeners.Register(bus)

	store := repositories.NewStore(db)
	return &Application{
		DB:       db,
		Store:    store,
		Events:   bus,
		Disks:    disks,
		Services: services.New(store, auth.NewGate(adminPassword), bus, disks),
	}
}

// Boot loads the configuration and opens everything it names.
func Boot() (*Application, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	closeLog := logger.Setup()

	if config.AdminPassword() == "" {
		logger.Warn("ADMIN_PASSWORD is not set; every admin action will be refused")
	}

	db, err := database.Connect(config.DatabaseDriver(), config.DatabaseDSN())
	if err != nil {
		closeLog()
		return nil, err
	}

	disks, err := storage.NewManager(storage.OptionsFromConfig())
	if err != nil {
		database.Close(db) //nolint:errcheck
		closeLog()
		return nil, fmt.Errorf("storage: %w", err)
	}

	a := New(db, disks, config.AdminPassword())
	a.closers = append(a.closers, closeLog)
	return a, nil
}

// Close releases the database and the log sink.
func (a *Application) Close() error {
	var err error
	if a.DB != nil {
		err = database.Close(a.DB)
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	return err
}
