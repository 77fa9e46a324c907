package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/thedosaspot/dosaspot/app/models"
	"github.com/thedosaspot/dosaspot/pkg/apperr"
)

// ErrCategoryExists is returned when a category name is already taken.
var ErrCategoryExists = apperr.Field("name", "Category already exists")

// MenuRepository handles categories and their items.
type MenuRepository struct {
	db *gorm.DB
}

func orderedItems(db *gorm.DB) *gorm.DB { return db.Order("menu_items.id asc") }

// Categories returns every category with its items, both in id order.
func (r *MenuRepository) Categories(ctx context.Context) ([]models.MenuCategory, error) {
	categories := []models.MenuCategory{}
	err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Order("id asc").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("menu: list categories: %w", err)
	}
	for i := range categories {
		if categories[i].Items == nil {
			categories[i].Items = []models.MenuItem{}
		}
	}
	return categories, nil
}

// FindCategory returns one category with its items.
func (r *MenuRepository) FindCategory(ctx context.Context, id uint) (models.MenuCategory, error) {
	var c models.MenuCategory
	err := r.db.WithContext(ctx).Preload("Items", orderedItems).First(&c, id).Error
	if err != nil {
		return c, notFound(err, "category", id)
	}
	if c.Items == nil {
		c.Items = []models.MenuItem{}
	}
	return c, nil
}

// CategoryExists reports whether a category with id exists.
func (r *MenuRepository) CategoryExists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.MenuCategory{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// nameTaken reports whether another category already uses name.
func (r *MenuRepository) nameTaken(tx *gorm.DB, name string, exceptID uint) (bool, error) {
	var n int64
	q := tx.Model(&models.MenuCategory{}).Where("name = ?", name)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	err := q.Count(&n).Error
	return n > 0, err
}

// CreateCategory persists a new, empty category.
func (r *MenuRepository) CreateCategory(ctx context.Context, name string) (models.MenuCategory, error) {
	c := models.MenuCategory{Name: name, Items: []models.MenuItem{}}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := r.nameTaken(tx, name, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrCategoryExists
		}
		return tx.Create(&c).Error
	})
	return c, categoryWriteErr("create category", err)
}

// RenameCategory changes the name of category id.
func (r *MenuRepository) RenameCategory(ctx context.Context, id uint, name string) (models.MenuCategory, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.MenuCategory
		if err := tx.First(&current, id).Error; err != nil {
			return notFound(err, "category", id)
		}
		taken, err := r.nameTaken(tx, name, id)
		if err != nil {
			return err
		}
		if taken {
			return ErrCategoryExists
		}
		return tx.Model(&models.MenuCategory{}).Where("id = ?", id).Update("name", name).Error
	})
	if err != nil {
		return models.MenuCategory{}, categoryWriteErr("rename category", err)
	}
	return r.FindCategory(ctx, id)
}

// DeleteCategory removes category id and every item in it, in one
// transaction. It returns how many items went with it.
func (r *MenuRepository) DeleteCategory(ctx context.Context, id uint) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := tx.Where("category_id = ?", id).Delete(&models.MenuItem{})
		if items.Error != nil {
			return items.Error
		}
		removed = items.RowsAffected

		res := tx.Delete(&models.MenuCategory{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("category", id)
		}
		return nil
	})
	if err != nil {
		return 0, wrapUnlessApp("menu: delete category", err)
	}
	return removed, nil
}

// CountCategories returns the number of categories.
func (r *MenuRepository) CountCategories(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.MenuCategory{}).Count(&n).Error
	return n, err
}

// FindItem looks up a menu item by primary key.
func (r *MenuRepository) FindItem(ctx context.Context, id uint) (models.MenuItem, error) {
	var it models.MenuItem
	err := r.db.WithContext(ctx).First(&it, id).Error
	return it, notFound(err, "menu item", id)
}

// CreateItem persists it.
func (r *MenuRepository) CreateItem(ctx context.Context, it *models.MenuItem) error {
	if err := r.db.WithContext(ctx).Create(it).Error; err != nil {
		return fmt.Errorf("menu: create item: %w", err)
	}
	return nil
}

// SaveItem writes every column of an existing item.
func (r *MenuRepository) SaveItem(ctx context.Context, it *models.MenuItem) error {
	if err := r.db.WithContext(ctx).Save(it).Error; err != nil {
		return fmt.Errorf("menu: save item: %w", err)
	}
	return nil
}

// DeleteItem removes item id.
func (r *MenuRepository) DeleteItem(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.MenuItem{}, id)
	if res.Error != nil {
		return fmt.Errorf("menu: delete item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("menu item", id)
	}
	return nil
}

// categoryWriteErr maps a unique-index race to the same error as the
// pre-check, and wraps anything unexpected.
func categoryWriteErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrCategoryExists
	}
	return wrapUnlessApp("menu: "+op, err)
}

func wrapUnlessApp(op string, err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
