package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-15")
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 15, d.Day())
	assert.Equal(t, IST, d.Location())

	_, err = ParseDate("15/03/2025")
	assert.Error(t, err)
}

func TestSameDayAcrossUTCBoundary(t *testing.T) {
	// 20:00 UTC on the 14th is already 01:30 IST on the 15th.
	lateUTC := time.Date(2025, 3, 14, 20, 0, 0, 0, time.UTC)
	istMorning := time.Date(2025, 3, 15, 8, 0, 0, 0, IST)

	assert.True(t, SameDay(lateUTC, istMorning))

	utcSameDate := time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)
	assert.False(t, SameDay(lateUTC, utcSameDate))
}

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2025, 3, 14, 20, 0, 0, 0, time.UTC) // 15th, 01:30 IST
	start := StartOfDay(ts)

	assert.Equal(t, 15, start.Day())
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 0, start.Minute())
	assert.Equal(t, IST, start.Location())
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, 3, 10, 6, 0, 0, 0, IST)
	b := time.Date(2025, 3, 13, 23, 0, 0, 0, IST)

	assert.Equal(t, 3, DaysBetween(a, b))
	assert.Equal(t, -3, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))

	// Time-of-day never affects the count, only the calendar date.
	early := time.Date(2025, 3, 10, 23, 59, 0, 0, IST)
	late := time.Date(2025, 3, 11, 0, 1, 0, 0, IST)
	assert.Equal(t, 1, DaysBetween(early, late))
}
