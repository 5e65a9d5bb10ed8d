package services

import (
	"testing"
	"time"

	"dairy-backend/internal/timeutil"

	"github.com/stretchr/testify/assert"
)

func TestUntilNextRun(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, timeutil.IST)

	// Later the same day.
	assert.Equal(t, 4*time.Hour+30*time.Minute, untilNextRun(now, "14:30"))

	// Already past today, rolls to tomorrow.
	assert.Equal(t, 14*time.Hour+30*time.Minute, untilNextRun(now, "00:30"))

	// Exactly now still rolls a full day forward.
	assert.Equal(t, 24*time.Hour, untilNextRun(now, "10:00"))
}

func TestUntilNextRunMalformedFallsBack(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, timeutil.IST)
	assert.Equal(t, 30*time.Minute, untilNextRun(now, "half past midnight"))
}
