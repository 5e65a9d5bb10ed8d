package services

import (
	"errors"
	"testing"

	"dairy-backend/internal/apperrors"
	"dairy-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateRecurrence(t *testing.T) {
	assert.NoError(t, validateRecurrence(500, 30, models.FrequencyDaily, nil))
	assert.NoError(t, validateRecurrence(500, 30, models.FrequencyAlternate, nil))
	assert.NoError(t, validateRecurrence(500, 30, models.FrequencyCustom, []int{0, 6}))

	cases := []struct {
		name       string
		quantity   float64
		price      float64
		frequency  string
		customDays []int
	}{
		{"zero quantity", 0, 30, models.FrequencyDaily, nil},
		{"negative price", 500, -1, models.FrequencyDaily, nil},
		{"custom without days", 500, 30, models.FrequencyCustom, nil},
		{"custom day out of range", 500, 30, models.FrequencyCustom, []int{7}},
		{"custom negative day", 500, 30, models.FrequencyCustom, []int{-1}},
		{"unknown frequency", 500, 30, "weekly", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateRecurrence(tc.quantity, tc.price, tc.frequency, tc.customDays)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
		})
	}
}
