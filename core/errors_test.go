package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(ErrSelfTransaction))
	assert.True(t, IsValidationError(ErrInvalidPhoneNumber))
	assert.True(t, IsValidationError(fmt.Errorf("failed to update contact: %w", ErrInvalidPhoneNumber)))

	assert.False(t, IsValidationError(nil))
	assert.False(t, IsValidationError(errors.New("connection refused")))
	assert.False(t, IsValidationError(ErrUnauthorized))
}
