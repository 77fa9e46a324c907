package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/thedosaspot/dosaspot/app/models"
	"github.com/thedosaspot/dosaspot/app/repositories"
	"github.com/thedosaspot/dosaspot/pkg/apperr"
	"github.com/thedosaspot/dosaspot/pkg/auth"
	"github.com/thedosaspot/dosaspot/pkg/event"
	"github.com/thedosaspot/dosaspot/pkg/logger"
	"github.com/thedosaspot/dosaspot/pkg/storage"
)

// CategoryInput creates or renames a category.
type CategoryInput struct {
	Name string `json:"name" validate:"required,max=255"`
}

// ItemInput creates or fully replaces a menu item.
type ItemInput struct {
	Name        string   `json:"name"        validate:"required,max=255"`
	Price       *float64 `json:"price"       validate:"required,gte=0"`
	Description string   `json:"description" validate:"max=5000"`
	Spicy       bool     `json:"spicy"`
	ImageURL    *string  `json:"image_url"   validate:"nullable,url,max=1024"`
	CategoryID  uint     `json:"category_id" validate:"required"`
}

// Upload is an image file sent for a menu item.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// imageTypes are the accepted upload content types.
var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// ErrUploadsDisabled is returned when no storage disk is configured.
var ErrUploadsDisabled = errors.New("menu: image uploads are not configured")

// CatalogChange is the payload of catalog.changed.
type CatalogChange struct {
	Entity string // category | item | banner
	Op     string // create | update | delete
	ID     uint
	// Cascaded counts items removed along with a category.
	Cascaded int64
}

// MenuService administers categories and items.
type MenuService struct {
	menu   *repositories.MenuRepository
	gate   *auth.Gate
	events *event.Bus
	disks  *storage.Manager
}

func NewMenuService(store *repositories.Store, gate *auth.Gate, events *event.Bus, disks *storage.Manager) *MenuService {
	return &MenuService{menu: store.Menu, gate: gate, events: events, disks: disks}
}

// Menu returns every category with its items.
func (s *MenuService) Menu(ctx context.Context) ([]models.MenuCategory, error) {
	return s.menu.Categories(ctx)
}

// Category returns category id with its items.
func (s *MenuService) Category(ctx context.Context, id uint) (models.MenuCategory, error) {
	return s.menu.FindCategory(ctx, id)
}

// CreateCategory adds an empty category. Names are unique.
func (s *MenuService) CreateCategory(ctx context.Context, in CategoryInput, password string) (models.MenuCategory, error) {
	if err := s.gate.Check(password); err != nil {
		return models.MenuCategory{}, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := check(in); err != nil {
		return models.MenuCategory{}, err
	}

	c, err := s.menu.CreateCategory(ctx, in.Name)
	if err != nil {
		return models.MenuCategory{}, err
	}
	s.changed(ctx, CatalogChange{Entity: "category", Op: "create", ID: c.ID})
	return c, nil
}

// RenameCategory changes the name of category id.
func (s *MenuService) RenameCategory(ctx context.Context, id uint, in CategoryInput, password string) (models.MenuCategory, error) {
	if err := s.gate.Check(password); err != nil {
		return models.MenuCategory{}, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := check(in); err != nil {
		return models.MenuCategory{}, err
	}

	c, err := s.menu.RenameCategory(ctx, id, in.Name)
	if err != nil {
		return models.MenuCategory{}, err
	}
	s.changed(ctx, CatalogChange{Entity: "category", Op: "update", ID: id})
	return c, nil
}

// DeleteCategory removes category id together with all of its items.
func (s *MenuService) DeleteCategory(ctx context.Context, id uint, password string) error {
	if err := s.gate.Check(password); err != nil {
		return err
	}
	removed, err := s.menu.DeleteCategory(ctx, id)
	if err != nil {
		return err
	}
	s.changed(ctx, CatalogChange{Entity: "category", Op: "delete", ID: id, Cascaded: removed})
	return nil
}

// Item returns menu item id.
func (s *MenuService) Item(ctx context.Context, id uint) (models.MenuItem, error) {
	return s.menu.FindItem(ctx, id)
}

// CreateItem adds an item to an existing category.
func (s *MenuService) CreateItem(ctx context.Context, in ItemInput, password string) (models.MenuItem, error) {
	if err := s.gate.Check(password); err != nil {
		return models.MenuItem{}, err
	}
	it, err := s.itemFrom(ctx, in)
	if err != nil {
		return models.MenuItem{}, err
	}
	if err := s.menu.CreateItem(ctx, &it); err != nil {
		return models.MenuItem{}, err
	}
	s.changed(ctx, CatalogChange{Entity: "item", Op: "create", ID: it.ID})
	return it, nil
}

// UpdateItem replaces every field of item id.
func (s *MenuService) UpdateItem(ctx context.Context, id uint, in ItemInput, password string) (models.MenuItem, error) {
	if err := s.gate.Check(password); err != nil {
		return models.MenuItem{}, err
	}
	if _, err := s.menu.FindItem(ctx, id); err != nil {
		return models.MenuItem{}, err
	}
	it, err := s.itemFrom(ctx, in)
	if err != nil {
		return models.MenuItem{}, err
	}
	it.ID = id
	if err := s.menu.SaveItem(ctx, &it); err != nil {
		return models.MenuItem{}, err
	}
	s.changed(ctx, CatalogChange{Entity: "item", Op: "update", ID: id})
	return it, nil
}

// DeleteItem removes item id only.
func (s *MenuService) DeleteItem(ctx context.Context, id uint, password string) error {
	if err := s.gate.Check(password); err != nil {
		return err
	}
	if err := s.menu.DeleteItem(ctx, id); err != nil {
		return err
	}
	s.changed(ctx, CatalogChange{Entity: "item", Op: "delete", ID: id})
	return nil
}

// UploadItemImage stores an image on the default disk and points the item's
// image_url at it.
func (s *MenuService) UploadItemImage(ctx context.Context, id uint, password string, up Upload) (models.MenuItem, error) {
	if err := s.gate.Check(password); err != nil {
		return models.MenuItem{}, err
	}
	if s.disks == nil {
		return models.MenuItem{}, ErrUploadsDisabled
	}
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(up.ContentType, ";", 2)[0]))
	if !imageTypes[ct] {
		return models.MenuItem{}, apperr.Field("image", "The image must be a JPEG, PNG, WebP or GIF file.")
	}

	it, err := s.menu.FindItem(ctx, id)
	if err != nil {
		return models.MenuItem{}, err
	}

	disk := s.disks.Default()
	name := storage.ObjectName("menu", up.Filename)
	if err := disk.PutStream(ctx, name, up.Body, ct); err != nil {
		return models.MenuItem{}, fmt.Errorf("menu: store image: %w", err)
	}

	url := disk.URL(name)
	it.ImageURL = &url
	if err := s.menu.SaveItem(ctx, &it); err != nil {
		if derr := disk.Delete(ctx, name); derr != nil {
			logger.WithCtx(ctx).Warn("menu: orphaned upload", "path", name, "error", derr)
		}
		return models.MenuItem{}, err
	}
	s.changed(ctx, CatalogChange{Entity: "item", Op: "update", ID: id})
	return it, nil
}

// itemFrom validates in and checks its category exists.
func (s *MenuService) itemFrom(ctx context.Context, in ItemInput) (models.MenuItem, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.ImageURL != nil && strings.TrimSpace(*in.ImageURL) == "" {
		in.ImageURL = nil
	}
	if err := check(in); err != nil {
		return models.MenuItem{}, err
	}

	exists, err := s.menu.CategoryExists(ctx, in.CategoryID)
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("menu: check category: %w", err)
	}
	if !exists {
		return models.MenuItem{}, apperr.NotFound("category", in.CategoryID)
	}

	return models.MenuItem{
		Name:        in.Name,
		Price:       *in.Price,
		Description: in.Description,
		Spicy:       in.Spicy,
		ImageURL:    in.ImageURL,
		CategoryID:  in.CategoryID,
	}, nil
}

func (s *MenuService) changed(ctx context.Context, c CatalogChange) {
	s.events.Fire(ctx, EventCatalogChanged, c)
}
