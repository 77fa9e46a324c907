// Package repositories holds the GORM-backed persistence for bookings, the
// menu and banners. Everything hangs off a Store built from an injected
// *gorm.DB; there is no package-level connection.
package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/thedosaspot/dosaspot/app/models"
	"github.com/thedosaspot/dosaspot/pkg/apperr"
	"github.com/thedosaspot/dosaspot/pkg/database"
)

// Store groups the repositories that share one database handle.
type Store struct {
	db *gorm.DB

	Bookings *BookingRepository
	Menu     *MenuRepository
	Banners  *BannerRepository
}

// NewStore wires every repository to db.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:       db,
		Bookings: &BookingRepository{db: db},
		Menu:     &MenuRepository{db: db},
		Banners:  &BannerRepository{db: db},
	}
}

// DB exposes the handle for migrations and seeders.
func (s *Store) DB() *gorm.DB { return s.db }

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error { return database.Ping(ctx, s.db) }

// AutoMigrate creates or updates every table the store uses. Tests call it on
// a fresh in-memory database; deployments use the versioned migrations.
func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(&models.Booking{}, &models.MenuCategory{}, &models.MenuItem{}, &models.Banner{})
}

// notFound turns gorm's record-not-found into the apperr kind callers map to 404.
func notFound(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(entity, id)
	}
	return err
}
