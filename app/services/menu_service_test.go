package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thedosaspot/dosaspot/app/services"
	"github.com/thedosaspot/dosaspot/pkg/apperr"
	"github.com/thedosaspot/dosaspot/pkg/storage"
)

func TestDrinksCascadeScenario(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	menu := f.svc.Menu

	drinks, err := menu.CreateCategory(ctx, services.CategoryInput{Name: "Drinks"}, adminPassword)
	require.NoError(t, err)
	assert.NotZero(t, drinks.ID)

	chai, err := menu.CreateItem(ctx, services.ItemInput{
		Name: "Chai", Price: price(3.5), CategoryID: drinks.ID,
	}, adminPassword)
	require.NoError(t, err)

	got, err := menu.Category(ctx, drinks.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Chai", got.Items[0].Name)

	require.NoError(t, menu.DeleteCategory(ctx, drinks.ID, adminPassword))

	_, err = menu.Item(ctx, chai.ID)
	assert.True(t, apperr.IsNotFound(err))
	_, err = menu.Category(ctx, drinks.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestMenuWritesNeedPassword(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	menu := f.svc.Menu

	_, err := menu.CreateCategory(ctx, services.CategoryInput{Name: "X"}, "bad")
	assert.True(t, apperr.IsAuthorization(err))
	_, err = menu.RenameCategory(ctx, 1, services.CategoryInput{Name: "X"}, "bad")
	assert.True(t, apperr.IsAuthorization(err))
	assert.True(t, apperr.IsAuthorization(menu.DeleteCategory(ctx, 1, "bad")))
	_, err = menu.CreateItem(ctx, services.ItemInput{}, "bad")
	assert.True(t, apperr.IsAuthorization(err))
	_, err = menu.UpdateItem(ctx, 1, services.ItemInput{}, "bad")
	assert.True(t, apperr.IsAuthorization(err))
	assert.True(t, apperr.IsAuthorization(menu.DeleteItem(ctx, 1, "bad")))

	cats, err := menu.Menu(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)
	assert.Empty(t, f.events)
}

func TestItemValidation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	menu := f.svc.Menu

	cat, err := menu.CreateCategory(ctx, services.CategoryInput{Name: "Dosas"}, adminPassword)
	require.NoError(t, err)

	_, err = menu.CreateItem(ctx, services.ItemInput{Name: "Dosa", Price: price(-1), CategoryID: cat.ID}, adminPassword)
	assert.True(t, apperr.IsValidation(err))

	_, err = menu.CreateItem(ctx, services.ItemInput{Name: "Dosa", CategoryID: cat.ID}, adminPassword)
	assert.True(t, apperr.IsValidation(err), "price is required")

	_, err = menu.CreateItem(ctx, services.ItemInput{Name: "Dosa", Price: price(5), CategoryID: 999}, adminPassword)
	assert.True(t, apperr.IsNotFound(err))

	free, err := menu.CreateItem(ctx, services.ItemInput{
		Name: "Water", Price: price(0), CategoryID: cat.ID, ImageURL: str(""),
	}, adminPassword)
	require.NoError(t, err, "zero price is allowed")
	assert.Nil(t, free.ImageURL, "blank image_url is stored as null")
}

func TestUpdateItemReplacesFields(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	menu := f.svc.Menu

	a, err := menu.CreateCategory(ctx, services.CategoryInput{Name: "A"}, adminPassword)
	require.NoError(t, err)
	b, err := menu.CreateCategory(ctx, services.CategoryInput{Name: "B"}, adminPassword)
	require.NoError(t, err)

	it, err := menu.CreateItem(ctx, services.ItemInput{
		Name: "Dosa", Price: price(10), Spicy: true, CategoryID: a.ID,
		ImageURL: str("/assets/images/dosa.jpg"),
	}, adminPassword)
	require.NoError(t, err)

	up, err := menu.UpdateItem(ctx, it.ID, services.ItemInput{
		Name: "Plain Dosa", Price: price(8.5), CategoryID: b.ID,
	}, adminPassword)
	require.NoError(t, err)
	assert.Equal(t, it.ID, up.ID)
	assert.False(t, up.Spicy)
	assert.Nil(t, up.ImageURL)

	moved, err := menu.Category(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, moved.Items, 1)
	assert.Equal(t, "Plain Dosa", moved.Items[0].Name)

	_, err = menu.UpdateItem(ctx, 999, services.ItemInput{Name: "X", Price: price(1), CategoryID: a.ID}, adminPassword)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDuplicateCategory(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.Menu.CreateCategory(ctx, services.CategoryInput{Name: "Drinks"}, adminPassword)
	require.NoError(t, err)
	_, err = f.svc.Menu.CreateCategory(ctx, services.CategoryInput{Name: " Drinks "}, adminPassword)
	require.Error(t, err)
	assert.Equal(t, "Category already exists", err.Error())
}

func TestUploadItemImage(t *testing.T) {
	disks, err := storage.NewManager(storage.Options{LocalRoot: t.TempDir(), LocalURL: "/storage"})
	require.NoError(t, err)
	f := newFixture(t, disks)
	ctx := context.Background()
	menu := f.svc.Menu

	cat, err := menu.CreateCategory(ctx, services.CategoryInput{Name: "Dosas"}, adminPassword)
	require.NoError(t, err)
	it, err := menu.CreateItem(ctx, services.ItemInput{Name: "Dosa", Price: price(10), CategoryID: cat.ID}, adminPassword)
	require.NoError(t, err)

	up := func(ct string) services.Upload {
		return services.Upload{Filename: "dosa.JPG", ContentType: ct, Body: strings.NewReader("jpeg bytes")}
	}

	_, err = menu.UploadItemImage(ctx, it.ID, "bad", up("image/jpeg"))
	assert.True(t, apperr.IsAuthorization(err))

	_, err = menu.UploadItemImage(ctx, it.ID, adminPassword, up("text/plain"))
	assert.True(t, apperr.IsValidation(err))

	_, err = menu.UploadItemImage(ctx, 999, adminPassword, up("image/jpeg"))
	assert.True(t, apperr.IsNotFound(err))

	got, err := menu.UploadItemImage(ctx, it.ID, adminPassword, up("image/jpeg; charset=binary"))
	require.NoError(t, err)
	require.NotNil(t, got.ImageURL)
	assert.True(t, strings.HasPrefix(*got.ImageURL, "/storage/menu/"))
	assert.True(t, strings.HasSuffix(*got.ImageURL, ".jpg"))

	name := strings.TrimPrefix(*got.ImageURL, "/storage/")
	assert.True(t, disks.Default().Exists(ctx, name))
}

func TestUploadWithoutDisks(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.svc.Menu.UploadItemImage(context.Background(), 1, adminPassword, services.Upload{ContentType: "image/png"})
	assert.ErrorIs(t, err, services.ErrUploadsDisabled)
}
