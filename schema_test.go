package boruta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamSchema_Validate_MissingAndPattern(t *testing.T) {
	err := authorizeSchema.validate(map[string]string{
		"client_id":     "not-a-uuid",
		"response_type": "code",
	})
	if assert.NotNil(t, err) {
		assert.Equal(t, ErrInvalidRequest, err.Code)
		assert.Contains(t, err.Description, "#/client_id do match required pattern")
		assert.Contains(t, err.Description, "Required properties redirect_uri are missing at #.")
	}
}

func TestParamSchema_Validate_OK(t *testing.T) {
	err := authorizeSchema.validate(map[string]string{
		"client_id":     "123e4567-e89b-12d3-a456-426614174000",
		"redirect_uri":  "https://redirect.uri",
		"response_type": "code",
	})
	assert.Nil(t, err)
}
