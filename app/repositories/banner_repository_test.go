package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thedosaspot/dosaspot/app/models"
	"github.com/thedosaspot/dosaspot/internal/testdb"
	"github.com/thedosaspot/dosaspot/pkg/apperr"
)

func TestBannersActiveFilter(t *testing.T) {
	store := testdb.Store(t)
	ctx := context.Background()

	on := &models.Banner{Message: "open late", Active: true}
	off := &models.Banner{Message: "closed monday", Active: false}
	require.NoError(t, store.Banners.Create(ctx, on))
	require.NoError(t, store.Banners.Create(ctx, off))

	all, err := store.Banners.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := store.Banners.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "open late", active[0].Message)

	got, err := store.Banners.FindByID(ctx, off.ID)
	require.NoError(t, err)
	assert.False(t, got.Active, "inactive banners are kept")
}

func TestBannerSaveAndDelete(t *testing.T) {
	store := testdb.Store(t)
	ctx := context.Background()

	b := &models.Banner{Message: "hi", Active: true}
	require.NoError(t, store.Banners.Create(ctx, b))

	b.Active = false
	require.NoError(t, store.Banners.Save(ctx, b))
	got, err := store.Banners.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	require.NoError(t, store.Banners.Delete(ctx, b.ID))
	assert.True(t, apperr.IsNotFound(store.Banners.Delete(ctx, b.ID)))

	_, err = store.Banners.FindByID(ctx, b.ID)
	assert.True(t, apperr.IsNotFound(err))
}
