package errors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberfell/campaign-api/internal/errors"
)

func TestValidationBuilder_NoErrors(t *testing.T) {
	err := errors.NewValidationBuilder().Build()
	assert.NoError(t, err)
}

func TestValidationBuilder_CollectsFields(t *testing.T) {
	err := errors.NewValidationBuilder().
		RequiredField("Name").
		NonNegativeField("HP", -3).
		Fieldf("MaxHP", "must be >= HP, got %d", 2).
		Build()

	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))

	var typed *errors.Error
	require.True(t, errors.As(err, &typed))

	fields, ok := typed.Meta["validation_errors"].(map[string][]string)
	require.True(t, ok)
	assert.Equal(t, []string{"is required"}, fields["Name"])
	assert.Equal(t, []string{"must be >= 0, got -3"}, fields["HP"])
	assert.Len(t, fields, 3)
}

func TestValidationError_Message(t *testing.T) {
	v := errors.NewValidationError()
	v.AddFieldError("Initiative", "must be an integer")

	assert.Contains(t, v.Error(), "Initiative: must be an integer")
}
