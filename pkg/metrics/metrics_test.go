package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thedosaspot/dosaspot/pkg/metrics"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(metrics.Middleware())
	r.Get("/banners/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok")) //nolint:errcheck
	})

	before := testutil.ToFloat64(metrics.RequestTotal.WithLabelValues("GET", "/banners/{id}", "200"))
	for _, id := range []string{"1", "2", "3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/banners/"+id, nil))
	}

	after := testutil.ToFloat64(metrics.RequestTotal.WithLabelValues("GET", "/banners/{id}", "200"))
	assert.Equal(t, before+3, after)
}

func TestHandlerExposesDomainMetrics(t *testing.T) {
	metrics.BookingsCreated.WithLabelValues("catering").Inc()
	metrics.ObserveDBQuery("query", time.Now())

	rec := httptest.NewRecorder()
	metrics.Handler()(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `dosaspot_bookings_created_total{type="catering"}`)
	assert.Contains(t, string(body), "dosaspot_db_query_duration_seconds")
}
