package migrations

import (
	"gorm.io/gorm"

	"github.com/thedosaspot/dosaspot/app/models"
	"github.com/thedosaspot/dosaspot/pkg/migration"
)

func init() {
	migration.Register("20240601000001_create_bookings_table", CreateBookingsTable{})
	migration.Register("20240601000002_create_menu_tables", CreateMenuTables{})
	migration.Register("20240601000003_create_banners_table", CreateBannersTable{})
}

// -------- 0001: bookings --------

type CreateBookingsTable struct{}

func (CreateBookingsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Booking{})
}

func (CreateBookingsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Booking{})
}

// -------- 0002: menu_categories, menu_items --------

type CreateMenuTables struct{}

func (CreateMenuTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.MenuCategory{}, &models.MenuItem{})
}

func (CreateMenuTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.MenuItem{}, &models.MenuCategory{})
}

// -------- 0003: banners --------

type CreateBannersTable struct{}

func (CreateBannersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Banner{})
}

func (CreateBannersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Banner{})
}
