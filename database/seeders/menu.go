package seeders

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/gorm"

	"github.com/thedosaspot/dosaspot/app/models"
	"github.com/thedosaspot/dosaspot/pkg/logger"
)

func init() {
	Register("menu", SeedMenu)
	Register("banners", SeedBanners)
}

type menuFile struct {
	Categories []struct {
		Name  string `json:"name"`
		Items []struct {
			Name        string  `json:"name"`
			Price       float64 `json:"price"`
			Description string  `json:"description"`
			Spicy       bool    `json:"spicy"`
			ImageURL    *string `json:"image_url"`
		} `json:"items"`
	} `json:"categories"`
}

type bannerFile []struct {
	Message string `json:"message"`
	Active  *bool  `json:"active"`
}

// SeedMenu loads dataDir/menu.json into an empty menu, or the built-in
// starter menu when the file is absent. A file with no categories seeds
// nothing.
func SeedMenu(db *gorm.DB, dataDir string) error {
	var n int64
	if err := db.Model(&models.MenuCategory{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	cats, src, err := loadMenu(filepath.Join(dataDir, "menu.json"))
	if err != nil {
		return err
	}
	if len(cats) == 0 {
		return nil
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for i := range cats {
			if err := tx.Create(&cats[i]).Error; err != nil {
				return fmt.Errorf("category %q: %w", cats[i].Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.Info("menu seeded", "source", src, "categories", len(cats))
	return nil
}

// SeedBanners loads dataDir/banners.json into an empty banners table, or the
// two default notices when the file is absent.
func SeedBanners(db *gorm.DB, dataDir string) error {
	var n int64
	if err := db.Model(&models.Banner{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	banners, src, err := loadBanners(filepath.Join(dataDir, "banners.json"))
	if err != nil {
		return err
	}
	if len(banners) == 0 {
		return nil
	}
	if err := db.Create(&banners).Error; err != nil {
		return err
	}
	logger.Info("banners seeded", "source", src, "banners", len(banners))
	return nil
}

func loadMenu(path string) ([]models.MenuCategory, string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return starterMenu(), "built-in", nil
	}
	if err != nil {
		return nil, "", err
	}

	var f menuFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, "", fmt.Errorf("parse %s: %w", path, err)
	}
	cats := make([]models.MenuCategory, 0, len(f.Categories))
	for _, c := range f.Categories {
		cat := models.MenuCategory{Name: c.Name}
		for _, it := range c.Items {
			cat.Items = append(cat.Items, models.MenuItem{
				Name:        it.Name,
				Price:       it.Price,
				Description: it.Description,
				Spicy:       it.Spicy,
				ImageURL:    it.ImageURL,
			})
		}
		cats = append(cats, cat)
	}
	return cats, path, nil
}

func loadBanners(path string) ([]models.Banner, string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.Banner{
			{Message: "website is in progress some functionality may not work", Active: true},
			{Message: "hours may differ due to weather, check store open status before coming", Active: true},
		}, "built-in", nil
	}
	if err != nil {
		return nil, "", err
	}

	var f bannerFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, "", fmt.Errorf("parse %s: %w", path, err)
	}
	out := make([]models.Banner, 0, len(f))
	for _, b := range f {
		out = append(out, models.Banner{Message: b.Message, Active: b.Active == nil || *b.Active})
	}
	return out, path, nil
}

func image(name string) *string {
	p := "/assets/images/" + name
	return &p
}

func starterMenu() []models.MenuCategory {
	return []models.MenuCategory{
		{Name: "Signature Dosas", Items: []models.MenuItem{
			{Name: "Masala Dosa", Price: 10.99, Description: "Crispy rice crepe filled with spiced potato mash.", ImageURL: image("masala-dosa.jpg")},
			{Name: "Mysore Masala Dosa", Price: 12.99, Description: "Spicy Mysore chutney spread inside a crisp dosa.", Spicy: true, ImageURL: image("mysore-dosa.jpg")},
			{Name: "Cheese Chili Dosa", Price: 13.99, Description: "Loaded with melted cheese and fresh green chilies.", Spicy: true, ImageURL: image("cheese-dosa.jpg")},
		}},
		{Name: "Idli & Vada", Items: []models.MenuItem{
			{Name: "Steamed Idli (2pcs)", Price: 6.99, Description: "Fluffy steamed rice cakes served with sambar and chutney.", ImageURL: image("idli.jpg")},
			{Name: "Medhu Vada (2pcs)", Price: 7.99, Description: "Savory fried lentil donuts.", ImageURL: image("vada.jpg")},
		}},
	}
}
