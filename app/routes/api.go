package routes

import (
	"fmt"
	"time"

	"github.com/thedosaspot/dosaspot/app/controllers"
	appgql "github.com/thedosaspot/dosaspot/app/graphql"
	"github.com/thedosaspot/dosaspot/app/repositories"
	"github.com/thedosaspot/dosaspot/app/services"
	"github.com/thedosaspot/dosaspot/pkg/ctx"
	"github.com/thedosaspot/dosaspot/pkg/graphql"
	"github.com/thedosaspot/dosaspot/pkg/middleware"
	"github.com/thedosaspot/dosaspot/pkg/router"
)

// Deps is what the API routes need.
type Deps struct {
	Store    *repositories.Store
	Services *services.Services
	// BookingsPerMinute caps POST /reservations per client IP; 0 disables it.
	BookingsPerMinute int
}

func RegisterAPI(r *router.Router, d Deps) error {
	home := controllers.NewHomeController(d.Store)
	authController := controllers.NewAuthController(d.Services.Auth)
	bookings := controllers.NewBookingController(d.Services.Bookings)
	menu := controllers.NewMenuController(d.Services.Menu)
	banners := controllers.NewBannerController(d.Services.Banners)

	r.Get("/", "home", ctx.Wrap(home.Index))
	r.Get("/health", "health", ctx.Wrap(home.Health))
	r.Post("/auth/login", "auth.login", ctx.Wrap(authController.Login))

	var intake []router.Middleware
	if d.BookingsPerMinute > 0 {
		intake = append(intake, middleware.NewRateLimiter(d.BookingsPerMinute, time.Minute).Middleware)
	}

	res := r.Group("/reservations")
	res.Post("/", "reservations.store", ctx.Wrap(bookings.Store), intake...)
	res.Get("/", "reservations.index", ctx.Wrap(bookings.Index))
	res.Get("/calendar", "reservations.calendar", ctx.Wrap(bookings.Calendar))
	res.Get("/{id}", "reservations.show", ctx.Wrap(bookings.Show))
	res.Put("/{id}", "reservations.update", ctx.Wrap(bookings.UpdateStatus))
	res.Delete("/{id}", "reservations.destroy", ctx.Wrap(bookings.Destroy))

	m := r.Group("/menu")
	m.Get("/", "menu.index", ctx.Wrap(menu.Index))
	m.Post("/categories", "menu.categories.store", ctx.Wrap(menu.StoreCategory))
	m.Get("/categories/{id}", "menu.categories.show", ctx.Wrap(menu.ShowCategory))
	m.Put("/categories/{id}", "menu.categories.update", ctx.Wrap(menu.UpdateCategory))
	m.Delete("/categories/{id}", "menu.categories.destroy", ctx.Wrap(menu.DestroyCategory))
	m.Post("/items", "menu.items.store", ctx.Wrap(menu.StoreItem))
	m.Get("/items/{id}", "menu.items.show", ctx.Wrap(menu.ShowItem))
	m.Put("/items/{id}", "menu.items.update", ctx.Wrap(menu.UpdateItem))
	m.Delete("/items/{id}", "menu.items.destroy", ctx.Wrap(menu.DestroyItem))
	m.Post("/items/{id}/image", "menu.items.image", ctx.Wrap(menu.UploadImage))

	b := r.Group("/banners")
	b.Get("/", "banners.index", ctx.Wrap(banners.Index))
	b.Post("/", "banners.store", ctx.Wrap(banners.Store))
	b.Get("/{id}", "banners.show", ctx.Wrap(banners.Show))
	b.Put("/{id}", "banners.update", ctx.Wrap(banners.Update))
	b.Delete("/{id}", "banners.destroy", ctx.Wrap(banners.Destroy))

	schema, err := appgql.NewSchema(d.Services)
	if err != nil {
		return fmt.Errorf("routes: graphql schema: %w", err)
	}
	r.Post("/graphql", "graphql", graphql.Handler(schema))

	return nil
}
