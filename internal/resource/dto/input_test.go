package dto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePayload(t *testing.T) {
	rules := map[string]any{"name": "required,max=5", "percentage": "gte=0,lte=100"}

	require.NoError(t, ValidatePayload(map[string]any{"name": "Sale", "percentage": 15.0}, rules))
	require.NoError(t, ValidatePayload(map[string]any{"name": "Sale", "percentage": 0.0}, rules))

	err := ValidatePayload(map[string]any{"name": "Too long", "percentage": 120.0}, rules)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "failed max=5", verr.Fields["name"])
	assert.Equal(t, "failed lte=100", verr.Fields["percentage"])

	err = ValidatePayload(map[string]any{"percentage": 10.0}, rules)
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "name")

	assert.NoError(t, ValidatePayload(map[string]any{}, nil))
}
