package reqid_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thedosaspot/dosaspot/pkg/reqid"
)

func serve(t *testing.T, header string) (seen string, rec *httptest.ResponseRecorder) {
	t.Helper()
	h := reqid.Middleware()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = reqid.FromCtx(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(reqid.Header, header)
	}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return seen, rec
}

func TestGeneratesUUID(t *testing.T) {
	seen, rec := serve(t, "")

	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(reqid.Header))
}

func TestHonoursUpstreamID(t *testing.T) {
	seen, rec := serve(t, "edge-123")

	assert.Equal(t, "edge-123", seen)
	assert.Equal(t, "edge-123", rec.Header().Get(reqid.Header))
}

func TestRejectsOversizedID(t *testing.T) {
	seen, _ := serve(t, strings.Repeat("x", 500))

	assert.NotEqual(t, strings.Repeat("x", 500), seen)
	assert.Len(t, seen, 36)
}
