package graphql_test

import (
	"context"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appgql "github.com/thedosaspot/dosaspot/app/graphql"
	"github.com/thedosaspot/dosaspot/app/services"
	"github.com/thedosaspot/dosaspot/internal/testdb"
	"github.com/thedosaspot/dosaspot/pkg/auth"
	"github.com/thedosaspot/dosaspot/pkg/event"
)

func do(t *testing.T, schema graphql.Schema, query string) map[string]any {
	t.Helper()
	res := graphql.Do(graphql.Params{Schema: schema, RequestString: query, Context: context.Background()})
	require.Empty(t, res.Errors)
	data, ok := res.Data.(map[string]any)
	require.True(t, ok)
	return data
}

func TestReadSide(t *testing.T) {
	svc := services.New(testdb.Store(t), auth.NewGate("pw"), event.New(), nil)
	ctx := context.Background()

	cat, err := svc.Menu.CreateCategory(ctx, services.CategoryInput{Name: "Dosas"}, "pw")
	require.NoError(t, err)
	p := 10.99
	_, err = svc.Menu.CreateItem(ctx, services.ItemInput{Name: "Masala Dosa", Price: &p, CategoryID: cat.ID}, "pw")
	require.NoError(t, err)

	off := false
	_, err = svc.Banners.Create(ctx, services.BannerInput{Message: "shown"}, "pw")
	require.NoError(t, err)
	_, err = svc.Banners.Create(ctx, services.BannerInput{Message: "hidden", Active: &off}, "pw")
	require.NoError(t, err)

	b, err := svc.Bookings.Create(ctx, services.BookingRequest{
		Name: "A", Email: "a@x.com", Phone: "1", Date: "2024-06-01", Time: "18:00", Guests: 2,
	})
	require.NoError(t, err)
	_, err = svc.Bookings.UpdateStatus(ctx, b.ID, "confirmed", "pw")
	require.NoError(t, err)

	schema, err := appgql.NewSchema(svc)
	require.NoError(t, err)

	t.Run("menu", func(t *testing.T) {
		data := do(t, schema, `{ menu { name items { name price spicy } } }`)
		menu := data["menu"].([]any)
		require.Len(t, menu, 1)
		items := menu[0].(map[string]any)["items"].([]any)
		require.Len(t, items, 1)
		assert.Equal(t, "Masala Dosa", items[0].(map[string]any)["name"])
	})

	t.Run("active banners", func(t *testing.T) {
		data := do(t, schema, `{ banners(active: true) { message } }`)
		assert.Len(t, data["banners"].([]any), 1)

		data = do(t, schema, `{ banners { message } }`)
		assert.Len(t, data["banners"].([]any), 2)
	})

	t.Run("calendar", func(t *testing.T) {
		data := do(t, schema, `{ calendar(year: 2024, month: 6) { leading_blanks days_in_month days { day bookings { id status } } } }`)
		month := data["calendar"].(map[string]any)
		assert.Equal(t, 6, month["leading_blanks"])
		assert.Equal(t, 30, month["days_in_month"])

		first := month["days"].([]any)[0].(map[string]any)
		bookings := first["bookings"].([]any)
		require.Len(t, bookings, 1)
		assert.Equal(t, "confirmed", bookings[0].(map[string]any)["status"])
	})

	t.Run("bad month is an error", func(t *testing.T) {
		res := graphql.Do(graphql.Params{Schema: schema, RequestString: `{ calendar(year: 2024, month: 13) { name } }`, Context: ctx})
		assert.NotEmpty(t, res.Errors)
	})
}
