package app

import (
	"net/http"
	"strings"

	"github.com/thedosaspot/dosaspot/app/routes"
	"github.com/thedosaspot/dosaspot/config"
	"github.com/thedosaspot/dosaspot/pkg/metrics"
	"github.com/thedosaspot/dosaspot/pkg/middleware"
	"github.com/thedosaspot/dosaspot/pkg/reqid"
	"github.com/thedosaspot/dosaspot/pkg/response"
	"github.com/thedosaspot/dosaspot/pkg/router"
)

// Router builds the full route table behind the global middleware.
func (a *Application) Router() (*router.Router, error) {
	r := router.New()

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics, outermost for accurate total latency
	//  2. Recovery, catches panics before they kill the goroutine
	//  3. Request ID, injected before anything logs
	//  4. Logger, logs request_id from context
	//  5. CORS, answers preflight for the listed site origins
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions(config.CORSOrigins())))

	r.NotFound(response.NotFound)
	r.MethodNotAllowed(response.MethodNotAllowed)

	r.Get("/metrics", "metrics", metrics.Handler())

	if a.Disks != nil {
		// only a site-relative base URL can be served from here
		if local := a.Disks.Local(); local != nil && strings.HasPrefix(local.BaseURL(), "/") {
			files := http.StripPrefix(local.BaseURL(), http.FileServer(http.Dir(local.Root())))
			r.Mount(local.BaseURL(), "storage", files)
		}
	}

	err := routes.RegisterAPI(r, routes.Deps{
		Store:             a.Store,
		Services:          a.Services,
		BookingsPerMinute: config.BookingRateLimit(),
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Handler is Router as an http.Handler.
func (a *Application) Handler() (http.Handler, error) {
	r, err := a.Router()
	if err != nil {
		return nil, err
	}
	return r.Handler(), nil
}
