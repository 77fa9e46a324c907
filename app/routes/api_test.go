package routes_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thedosaspot/dosaspot/app/routes"
	"github.com/thedosaspot/dosaspot/app/services"
	"github.com/thedosaspot/dosaspot/internal/testdb"
	"github.com/thedosaspot/dosaspot/pkg/auth"
	"github.com/thedosaspot/dosaspot/pkg/event"
	"github.com/thedosaspot/dosaspot/pkg/response"
	"github.com/thedosaspot/dosaspot/pkg/router"
	"github.com/thedosaspot/dosaspot/pkg/storage"
	"github.com/thedosaspot/dosaspot/pkg/testkit"
)

const password = "dosa123"

func newHandler(t *testing.T, perMinute int) http.Handler {
	t.Helper()
	store := testdb.Store(t)
	disks, err := storage.NewManager(storage.Options{LocalRoot: t.TempDir(), LocalURL: "/storage"})
	require.NoError(t, err)

	r := router.New()
	r.NotFound(response.NotFound)
	r.MethodNotAllowed(response.MethodNotAllowed)
	require.NoError(t, routes.RegisterAPI(r, routes.Deps{
		Store:             store,
		Services:          services.New(store, auth.NewGate(password), event.New(), disks),
		BookingsPerMinute: perMinute,
	}))
	return r.Handler()
}

func TestSingleRequests(t *testing.T) {
	testkit.RunDir(t, newHandler(t, 0), "testdata/single")
}

func TestBookingFlow(t *testing.T) {
	testkit.RunFlow(t, newHandler(t, 0), "testdata/booking_flow.json")
}

func TestMenuCascadeFlow(t *testing.T) {
	testkit.RunFlow(t, newHandler(t, 0), "testdata/menu_flow.json")
}

func TestBannerFlow(t *testing.T) {
	testkit.RunFlow(t, newHandler(t, 0), "testdata/banner_flow.json")
}

func do(t *testing.T, h http.Handler, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec, body
}

func jsonReq(method, url, body string) *http.Request {
	req := httptest.NewRequest(method, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCalendarCellsAreSundayFirst(t *testing.T) {
	h := newHandler(t, 0)

	for _, date := range []string{"2024-06-01", "2024-06-01", "2024-06-30"} {
		rec, _ := do(t, h, jsonReq(http.MethodPost, "/reservations",
			`{"name":"A","email":"a@x.com","phone":"1","date":"`+date+`","time":"18:00","guests":2}`))
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	for _, id := range []string{"1", "2", "3"} {
		rec, _ := do(t, h, jsonReq(http.MethodPut, "/reservations/"+id, `{"status":"confirmed","password":"`+password+`"}`))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec, body := do(t, h, httptest.NewRequest(http.MethodGet, "/reservations/calendar?year=2024&month=6", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	cells := body["data"].(map[string]any)["cells"].([]any)
	require.Len(t, cells, 6+30)
	for i := 0; i < 6; i++ {
		assert.Nil(t, cells[i], "blank %d", i)
	}

	saturday := cells[6].(map[string]any)
	assert.Equal(t, "2024-06-01", saturday["date"])
	first := saturday["bookings"].([]any)
	require.Len(t, first, 2)
	assert.Equal(t, float64(1), first[0].(map[string]any)["id"])
	assert.Equal(t, float64(2), first[1].(map[string]any)["id"])

	last := cells[35].(map[string]any)
	assert.Equal(t, float64(30), last["day"])
	assert.Len(t, last["bookings"].([]any), 1)
}

func TestBookingRateLimit(t *testing.T) {
	h := newHandler(t, 1)
	form := `{"name":"A","email":"a@x.com","phone":"1","date":"2024-06-01","time":"18:00","guests":2}`

	rec, _ := do(t, h, jsonReq(http.MethodPost, "/reservations", form))
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = do(t, h, jsonReq(http.MethodPost, "/reservations", form))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec, _ = do(t, h, httptest.NewRequest(http.MethodGet, "/reservations", nil))
	assert.Equal(t, http.StatusOK, rec.Code, "reads are not limited")
}

func TestImageUpload(t *testing.T) {
	h := newHandler(t, 0)

	rec, _ := do(t, h, jsonReq(http.MethodPost, "/menu/categories", `{"name":"Dosas","password":"`+password+`"}`))
	require.Equal(t, http.StatusCreated, rec.Code)
	rec, _ = do(t, h, jsonReq(http.MethodPost, "/menu/items", `{"name":"Masala Dosa","price":10.99,"category_id":1,"password":"`+password+`"}`))
	require.Equal(t, http.StatusCreated, rec.Code)

	upload := func(pw string) *http.Request {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("password", pw))
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", `form-data; name="image"; filename="dosa.png"`)
		hdr.Set("Content-Type", "image/png")
		part, err := mw.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write([]byte("\x89PNG fake"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/menu/items/1/image", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		return req
	}

	rec, _ = do(t, h, upload("wrong"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, body := do(t, h, upload(password))
	require.Equal(t, http.StatusOK, rec.Code)
	url := body["data"].(map[string]any)["image_url"].(string)
	assert.Regexp(t, `^/storage/menu/[0-9a-f-]{36}\.png$`, url)
}

func TestGraphQLRoute(t *testing.T) {
	h := newHandler(t, 0)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, jsonReq(http.MethodPost, "/graphql", `{"query":"{ menu { name } }"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"menu":[]}}`, rec.Body.String())
}
