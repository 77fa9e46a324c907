package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thedosaspot/dosaspot/pkg/apperr"
	"github.com/thedosaspot/dosaspot/pkg/auth"
)

func TestPlainSecret(t *testing.T) {
	g := auth.NewGate("dosa123")

	assert.True(t, g.Verify("dosa123"))
	assert.False(t, g.Verify("dosa12"))
	assert.False(t, g.Verify(""))
	assert.NoError(t, g.Check("dosa123"))

	err := g.Check("wrong")
	assert.True(t, apperr.IsAuthorization(err))
	assert.Equal(t, "Invalid admin password", err.Error())
}

func TestBcryptSecret(t *testing.T) {
	hash, err := auth.HashPassword("dosa123")
	require.NoError(t, err)

	g := auth.NewGate(hash)
	assert.True(t, g.Verify("dosa123"))
	assert.False(t, g.Verify(hash), "the hash itself is not the password")
}

func TestEmptySecretRejectsEverything(t *testing.T) {
	g := auth.NewGate("")
	assert.False(t, g.Verify(""))
	assert.False(t, g.Verify("anything"))
}
