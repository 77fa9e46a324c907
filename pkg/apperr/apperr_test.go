package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thedosaspot/dosaspot/pkg/apperr"
)

func TestKindSurvivesWrapping(t *testing.T) {
	base := apperr.NotFound("booking", 7)
	wrapped := fmt.Errorf("services: approve: %w", base)

	assert.True(t, apperr.IsNotFound(wrapped))
	assert.False(t, apperr.IsValidation(wrapped))
	assert.Equal(t, "booking 7 not found", base.Error())
	assert.Equal(t, http.StatusNotFound, apperr.KindOf(wrapped).HTTPStatus())
}

func TestFieldError(t *testing.T) {
	err := apperr.Field("guests", "The guests must be at least 1.")

	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, map[string]string{"guests": "The guests must be at least 1."}, err.Fields)
	assert.Equal(t, http.StatusUnprocessableEntity, err.Kind.HTTPStatus())
}

func TestPlainErrorsHaveNoKind(t *testing.T) {
	err := errors.New("disk on fire")

	assert.Equal(t, apperr.Kind(0), apperr.KindOf(err))
	assert.Equal(t, http.StatusInternalServerError, apperr.KindOf(err).HTTPStatus())
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed")
	err := apperr.Field("name", "Category already exists").Wrap(cause)

	assert.ErrorIs(t, err, cause)
	assert.True(t, apperr.IsValidation(err))
	assert.True(t, apperr.IsAuthorization(apperr.Unauthorized("nope")))
}
