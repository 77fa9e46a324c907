package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thedosaspot/dosaspot/app/services"
	"github.com/thedosaspot/dosaspot/pkg/apperr"
)

func TestBannerLifecycle(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	banners := f.svc.Banners

	on, err := banners.Create(ctx, services.BannerInput{Message: "Now open Sundays"}, adminPassword)
	require.NoError(t, err)
	assert.True(t, on.Active, "active defaults to true")
	assert.False(t, on.CreatedAt.IsZero())

	no := false
	off, err := banners.Create(ctx, services.BannerInput{Message: "Closed for Diwali", Active: &no}, adminPassword)
	require.NoError(t, err)
	assert.False(t, off.Active)

	public, err := banners.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, on.ID, public[0].ID)

	// update without active keeps the flag
	edited, err := banners.Update(ctx, off.ID, services.BannerInput{Message: "Closed Nov 1"}, adminPassword)
	require.NoError(t, err)
	assert.Equal(t, "Closed Nov 1", edited.Message)
	assert.False(t, edited.Active)

	yes := true
	edited, err = banners.Update(ctx, off.ID, services.BannerInput{Message: "Closed Nov 1", Active: &yes}, adminPassword)
	require.NoError(t, err)
	assert.True(t, edited.Active)

	require.NoError(t, banners.Delete(ctx, on.ID, adminPassword))
	all, err := banners.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestBannerErrors(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	banners := f.svc.Banners

	_, err := banners.Create(ctx, services.BannerInput{Message: "x"}, "wrong")
	assert.True(t, apperr.IsAuthorization(err))

	_, err = banners.Create(ctx, services.BannerInput{Message: "   "}, adminPassword)
	assert.True(t, apperr.IsValidation(err))

	_, err = banners.Update(ctx, 42, services.BannerInput{Message: "x"}, adminPassword)
	assert.True(t, apperr.IsNotFound(err))

	assert.True(t, apperr.IsNotFound(banners.Delete(ctx, 42, adminPassword)))
}

func TestLogin(t *testing.T) {
	f := newFixture(t, nil)

	ok := f.svc.Auth.Login(adminPassword)
	assert.True(t, ok.Success)

	bad := f.svc.Auth.Login("guess")
	assert.False(t, bad.Success)
	assert.NotEmpty(t, bad.Message)
}
