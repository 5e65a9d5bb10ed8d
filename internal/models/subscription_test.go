package models

import (
	"testing"
	"time"

	"dairy-backend/internal/timeutil"

	"github.com/stretchr/testify/assert"
)

func istDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, timeutil.IST)
}

func TestIsDueOnBeforeStart(t *testing.T) {
	sub := &Subscription{
		Frequency: FrequencyDaily,
		StartDate: istDate(2025, 3, 10),
	}

	assert.False(t, sub.IsDueOn(istDate(2025, 3, 9)))
	assert.True(t, sub.IsDueOn(istDate(2025, 3, 10)))
}

func TestIsDueOnDaily(t *testing.T) {
	sub := &Subscription{
		Frequency: FrequencyDaily,
		StartDate: istDate(2025, 3, 1),
	}

	for day := 1; day <= 7; day++ {
		assert.True(t, sub.IsDueOn(istDate(2025, 3, day)), "day %d", day)
	}
}

func TestIsDueOnAlternate(t *testing.T) {
	sub := &Subscription{
		Frequency: FrequencyAlternate,
		StartDate: istDate(2025, 3, 1),
	}

	// Due on the start date and every second day after it.
	assert.True(t, sub.IsDueOn(istDate(2025, 3, 1)))
	assert.False(t, sub.IsDueOn(istDate(2025, 3, 2)))
	assert.True(t, sub.IsDueOn(istDate(2025, 3, 3)))
	assert.False(t, sub.IsDueOn(istDate(2025, 3, 4)))
	assert.True(t, sub.IsDueOn(istDate(2025, 3, 31)))
}

func TestIsDueOnCustomWeekdays(t *testing.T) {
	// 2025-03-03 is a Monday.
	sub := &Subscription{
		Frequency:  FrequencyCustom,
		StartDate:  istDate(2025, 3, 3),
		CustomDays: []int{1, 4}, // Monday, Thursday
	}

	assert.True(t, sub.IsDueOn(istDate(2025, 3, 3)))  // Mon
	assert.False(t, sub.IsDueOn(istDate(2025, 3, 4))) // Tue
	assert.True(t, sub.IsDueOn(istDate(2025, 3, 6)))  // Thu
	assert.False(t, sub.IsDueOn(istDate(2025, 3, 9))) // Sun
	assert.True(t, sub.IsDueOn(istDate(2025, 3, 10))) // next Mon
}

func TestIsDueOnCustomUsesISTWeekday(t *testing.T) {
	// 18:30 UTC Sunday is already Monday 00:00 in IST.
	sub := &Subscription{
		Frequency:  FrequencyCustom,
		StartDate:  istDate(2025, 3, 1),
		CustomDays: []int{1}, // Monday only
	}

	utcSundayEvening := time.Date(2025, 3, 2, 18, 30, 0, 0, time.UTC)
	assert.True(t, sub.IsDueOn(utcSundayEvening))
}

func TestIsDueOnUnknownFrequency(t *testing.T) {
	sub := &Subscription{
		Frequency: "weekly",
		StartDate: istDate(2025, 3, 1),
	}

	assert.False(t, sub.IsDueOn(istDate(2025, 3, 1)))
}
