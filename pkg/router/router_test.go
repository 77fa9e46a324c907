package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thedosaspot/dosaspot/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestGroupsJoinPrefixesAndMiddleware(t *testing.T) {
	var order []string
	tag := func(name string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	menu := r.Group("/menu/", tag("group"))
	menu.Delete("/items/{id}", "menu.items.destroy", ok, tag("route"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/menu/items/3", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"group", "route"}, order)
}

func TestURLBuildsNamedRoutes(t *testing.T) {
	r := router.New()
	r.Group("/reservations").Put("/{id}", "reservations.update", ok)

	url, err := r.URL("reservations.update", map[string]string{"id": "12"})
	require.NoError(t, err)
	assert.Equal(t, "/reservations/12", url)

	_, err = r.URL("reservations.update", nil)
	assert.Error(t, err)

	_, err = r.URL("missing", nil)
	assert.Error(t, err)
}

func TestRoutesAreSorted(t *testing.T) {
	r := router.New()
	r.Post("/banners", "banners.store", ok)
	r.Get("/banners", "banners.index", ok)
	r.Get("/", "", ok)

	got := r.Routes()
	require.Len(t, got, 3)
	assert.Equal(t, router.RouteInfo{Method: "GET", Path: "/", Name: ""}, got[0])
	assert.Equal(t, "GET", got[1].Method)
	assert.Equal(t, "POST", got[2].Method)
}

func TestMountServesSubtree(t *testing.T) {
	r := router.New()
	r.Mount("/storage", "storage", http.StripPrefix("/storage", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(req.URL.Path)) //nolint:errcheck
	})))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/storage/menu/a.jpg", nil))
	assert.Equal(t, "/menu/a.jpg", rec.Body.String())

	infos := r.Routes()
	require.Len(t, infos, 1)
	assert.Equal(t, "/storage/*", infos[0].Path)
}
