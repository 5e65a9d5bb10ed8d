package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrappersMatchSentinels(t *testing.T) {
	err := NotFoundf("customer %d", 7)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "not found: customer 7", err.Error())

	err = InvalidInputf("quantity must be positive")
	assert.True(t, errors.Is(err, ErrInvalidInput))

	err = InvalidTransitionf("delivery %d is already %s", 3, "delivered")
	assert.True(t, errors.Is(err, ErrInvalidStateTransition))
	assert.False(t, errors.Is(err, ErrInvalidInput))
}
