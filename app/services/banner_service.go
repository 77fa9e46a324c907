package services

import (
	"context"
	"strings"

	"github.com/thedosaspot/dosaspot/app/models"
	"github.com/thedosaspot/dosaspot/app/repositories"
	"github.com/thedosaspot/dosaspot/pkg/auth"
	"github.com/thedosaspot/dosaspot/pkg/event"
)

// BannerInput creates or updates a banner. A nil Active means true on create
// and unchanged on update.
type BannerInput struct {
	Message string `json:"message" validate:"required,max=1000"`
	Active  *bool  `json:"active"`
}

// BannerService administers home page banners.
type BannerService struct {
	banners *repositories.BannerRepository
	gate    *auth.Gate
	events  *event.Bus
}

func NewBannerService(store *repositories.Store, gate *auth.Gate, events *event.Bus) *BannerService {
	return &BannerService{banners: store.Banners, gate: gate, events: events}
}

// List returns all banners, or only the active ones.
func (s *BannerService) List(ctx context.Context, activeOnly bool) ([]models.Banner, error) {
	return s.banners.List(ctx, activeOnly)
}

// Get returns banner id.
func (s *BannerService) Get(ctx context.Context, id uint) (models.Banner, error) {
	return s.banners.FindByID(ctx, id)
}

// Create adds a banner, active unless told otherwise.
func (s *BannerService) Create(ctx context.Context, in BannerInput, password string) (models.Banner, error) {
	if err := s.gate.Check(password); err != nil {
		return models.Banner{}, err
	}
	in.Message = strings.TrimSpace(in.Message)
	if err := check(in); err != nil {
		return models.Banner{}, err
	}

	b := models.Banner{Message: in.Message, Active: in.Active == nil || *in.Active}
	if err := s.banners.Create(ctx, &b); err != nil {
		return models.Banner{}, err
	}
	s.events.Fire(ctx, EventCatalogChanged, CatalogChange{Entity: "banner", Op: "create", ID: b.ID})
	return b, nil
}

// Update changes the message and, when given, the active flag of banner id.
func (s *BannerService) Update(ctx context.Context, id uint, in BannerInput, password string) (models.Banner, error) {
	if err := s.gate.Check(password); err != nil {
		return models.Banner{}, err
	}
	in.Message = strings.TrimSpace(in.Message)
	if err := check(in); err != nil {
		return models.Banner{}, err
	}

	b, err := s.banners.FindByID(ctx, id)
	if err != nil {
		return models.Banner{}, err
	}
	b.Message = in.Message
	if in.Active != nil {
		b.Active = *in.Active
	}
	if err := s.banners.Save(ctx, &b); err != nil {
		return models.Banner{}, err
	}
	s.events.Fire(ctx, EventCatalogChanged, CatalogChange{Entity: "banner", Op: "update", ID: id})
	return b, nil
}

// Delete removes banner id.
func (s *BannerService) Delete(ctx context.Context, id uint, password string) error {
	if err := s.gate.Check(password); err != nil {
		return err
	}
	if err := s.banners.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Fire(ctx, EventCatalogChanged, CatalogChange{Entity: "banner", Op: "delete", ID: id})
	return nil
}
