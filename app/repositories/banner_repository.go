package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/thedosaspot/dosaspot/app/models"
	"github.com/thedosaspot/dosaspot/pkg/apperr"
)

// BannerRepository handles database operations for Banner.
type BannerRepository struct {
	db *gorm.DB
}

// List returns banners in id order, optionally only the active ones.
func (r *BannerRepository) List(ctx context.Context, activeOnly bool) ([]models.Banner, error) {
	q := r.db.WithContext(ctx).Order("id asc")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	banners := []models.Banner{}
	if err := q.Find(&banners).Error; err != nil {
		return nil, fmt.Errorf("banners: list: %w", err)
	}
	return banners, nil
}

// FindByID looks up a banner by primary key.
func (r *BannerRepository) FindByID(ctx context.Context, id uint) (models.Banner, error) {
	var b models.Banner
	err := r.db.WithContext(ctx).First(&b, id).Error
	return b, notFound(err, "banner", id)
}

// Create persists b.
func (r *BannerRepository) Create(ctx context.Context, b *models.Banner) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("banners: create: %w", err)
	}
	return nil
}

// Save writes every column of an existing banner.
func (r *BannerRepository) Save(ctx context.Context, b *models.Banner) error {
	if err := r.db.WithContext(ctx).Save(b).Error; err != nil {
		return fmt.Errorf("banners: save: %w", err)
	}
	return nil
}

// Delete removes banner id.
func (r *BannerRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Banner{}, id)
	if res.Error != nil {
		return fmt.Errorf("banners: delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("banner", id)
	}
	return nil
}

// Count returns the number of banners.
func (r *BannerRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Banner{}).Count(&n).Error
	return n, err
}
