package app_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	"github.com/thedosaspot/dosaspot/config"
	"github.com/thedosaspot/dosaspot/pkg/app"
	"github.com/thedosaspot/dosaspot/pkg/database"
	"github.com/thedosaspot/dosaspot/pkg/storage"
)

func newApp(t *testing.T) *app.Application {
	t.Helper()
	db, err := database.Open(sqlite.Open(":memory:"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	disks, err := storage.NewManager(storage.Options{LocalRoot: t.TempDir(), LocalURL: "/storage"})
	require.NoError(t, err)

	config.Set("DATA_DIR", t.TempDir())
	a := app.New(db, disks, "dosa123")
	t.Cleanup(func() { a.Close() })
	return a
}

func TestMigrateSeedAndServe(t *testing.T) {
	a := newApp(t)
	var out bytes.Buffer
	require.NoError(t, a.Migrate(&out))
	require.NoError(t, a.Seed(&out))

	h, err := a.Handler()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/menu", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Signature Dosas")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dosaspot_http_requests_total")
}

func TestPrepareSurvivesBadSeedFiles(t *testing.T) {
	a := newApp(t)
	config.Set("SEED_ON_BOOT", "true")
	dir := config.DataDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "menu.json"), []byte(`{"categories": [`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "banners.json"), []byte(`[]`), 0o644))

	var out bytes.Buffer
	require.NoError(t, a.Prepare(&out))
	assert.Contains(t, out.String(), "FAILED")

	h, err := a.Handler()
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/menu", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Signature Dosas")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/banners", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORSPreflightOnAPI(t *testing.T) {
	a := newApp(t)
	h, err := a.Handler()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodOptions, "/reservations", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUploadedFilesAreServed(t *testing.T) {
	a := newApp(t)
	local := a.Disks.Local()
	require.NoError(t, os.MkdirAll(filepath.Join(local.Root(), "menu"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(local.Root(), "menu", "x.png"), []byte("png"), 0o644))

	h, err := a.Handler()
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/storage/menu/x.png", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png", rec.Body.String())
}

func TestRouteList(t *testing.T) {
	a := newApp(t)
	var out bytes.Buffer
	require.NoError(t, a.RouteList(&out))
	assert.Contains(t, out.String(), "reservations.calendar")
	assert.Contains(t, out.String(), "/menu/items/{id}/image")
}
