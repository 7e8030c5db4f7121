package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberfell/campaign-api/internal/errors"
)

func TestNew(t *testing.T) {
	err := errors.New(errors.CodeNotFound, "encounter not found")

	assert.Equal(t, errors.CodeNotFound, err.Code)
	assert.Equal(t, "encounter not found", err.Message)
	assert.Equal(t, "NOT_FOUND: encounter not found", err.Error())
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.CodeInvalidArgument, "damage amount %d must be >= 0", -5)

	assert.Equal(t, errors.CodeInvalidArgument, err.Code)
	assert.Equal(t, "damage amount -5 must be >= 0", err.Message)
}

func TestWrap(t *testing.T) {
	t.Run("preserves code of wrapped Error", func(t *testing.T) {
		inner := errors.NotFound("combatant not found")
		wrapped := errors.Wrap(inner, "failed to apply damage")

		assert.Equal(t, errors.CodeNotFound, wrapped.Code)
		assert.True(t, errors.IsNotFound(wrapped))
		assert.Contains(t, wrapped.Error(), "failed to apply damage")
		assert.Contains(t, wrapped.Error(), "combatant not found")
	})

	t.Run("plain errors become internal", func(t *testing.T) {
		wrapped := errors.Wrap(fmt.Errorf("connection refused"), "failed to persist encounter")

		assert.Equal(t, errors.CodeInternal, wrapped.Code)
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, "ignored"))
	})
}

func TestWrapWithCode(t *testing.T) {
	err := errors.WrapWithCode(fmt.Errorf("boom"), errors.CodeUnavailable, "redis down")

	assert.Equal(t, errors.CodeUnavailable, err.Code)
	assert.Equal(t, "redis down", err.Message)
	require.Error(t, err.Unwrap())
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errors.Code
	}{
		{"nil error", nil, errors.CodeOK},
		{"typed error", errors.FailedPrecondition("encounter already completed"), errors.CodeFailedPrecondition},
		{"wrapped typed error", errors.Wrap(errors.InvalidArgument("bad"), "context"), errors.CodeInvalidArgument},
		{"plain error", fmt.Errorf("plain"), errors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.GetCode(tt.err))
		})
	}
}

func TestWithMeta(t *testing.T) {
	err := errors.NotFound("combatant not found").
		WithMeta("combatant_id", "cmb_123")

	assert.Equal(t, "cmb_123", err.Meta["combatant_id"])
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.CodeNotFound, http.StatusNotFound},
		{errors.CodeInvalidArgument, http.StatusBadRequest},
		{errors.CodeFailedPrecondition, http.StatusBadRequest},
		{errors.CodeAlreadyExists, http.StatusConflict},
		{errors.CodePermissionDenied, http.StatusForbidden},
		{errors.CodeUnauthenticated, http.StatusUnauthorized},
		{errors.CodeInternal, http.StatusInternalServerError},
		{errors.Code("BOGUS"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}
