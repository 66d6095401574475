package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	want := NewDay(2025, time.November, 10)
	for _, in := range []string{"10.11.2025", "2025-11-10", " 2025-11-10T15:04:05Z ", "2025-11-10 08:00:00"} {
		got, err := ParseDay(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
	}

	for _, in := range []string{"", "11/10/2025", "32.01.2025", "2025-13-01"} {
		_, err := ParseDay(in)
		assert.Error(t, err, in)
	}
}

func TestCalendarDay_Formats(t *testing.T) {
	d := NewDay(2026, time.January, 5)
	assert.Equal(t, "05.01.2026", d.Key())
	assert.Equal(t, "2026-01-05", d.ISO())
	assert.Equal(t, "05.01.2026", d.String())
	assert.Equal(t, time.Monday, d.Weekday())
}

func TestDayOf_IgnoresZone(t *testing.T) {
	east := time.FixedZone("UTC+10", 10*3600)
	late := time.Date(2025, time.November, 10, 23, 59, 0, 0, east)

	assert.Equal(t, "10.11.2025", DayOf(late).Key())
}

func TestCalendarDay_Arithmetic(t *testing.T) {
	d := NewDay(2025, time.December, 31)
	next := d.AddDays(1)

	assert.Equal(t, "01.01.2026", next.Key())
	assert.True(t, d.Before(next))
	assert.True(t, next.After(d))
	assert.True(t, next.AddDays(-1).Equal(d))
	assert.True(t, CalendarDay{}.IsZero())
	assert.False(t, d.IsZero())
}
