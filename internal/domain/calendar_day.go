package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateKeyLayout is the textual form of a day used to join aggregator groups
// with rendered day columns.
const DateKeyLayout = "02.01.2006"

// ISODateLayout is the layout of schedule dates as stored by the backend.
const ISODateLayout = "2006-01-02"

// CalendarDay is a calendar date without a time component. The zero value is
// not a valid day.
type CalendarDay struct {
	t time.Time
}

// NewDay builds a CalendarDay from year, month and day.
func NewDay(year int, month time.Month, day int) CalendarDay {
	return CalendarDay{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayOf strips the time of day from t, using t's own calendar fields so the
// result does not depend on the process time zone.
func DayOf(t time.Time) CalendarDay {
	y, m, d := t.Date()
	return NewDay(y, m, d)
}

// ParseDay accepts either "DD.MM.YYYY" or "YYYY-MM-DD", and also tolerates a
// trailing time component on the ISO form ("2025-11-10T00:00:00Z").
func ParseDay(s string) (CalendarDay, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateKeyLayout, s); err == nil {
		return DayOf(t), nil
	}
	if len(s) >= len(ISODateLayout) {
		if t, err := time.Parse(ISODateLayout, s[:len(ISODateLayout)]); err == nil {
			return DayOf(t), nil
		}
	}
	return CalendarDay{}, fmt.Errorf("invalid date %q: want DD.MM.YYYY or YYYY-MM-DD", s)
}

// Key returns the DD.MM.YYYY mapping key of the day.
func (d CalendarDay) Key() string {
	return d.t.Format(DateKeyLayout)
}

// ISO returns the day formatted as YYYY-MM-DD.
func (d CalendarDay) ISO() string {
	return d.t.Format(ISODateLayout)
}

// Time returns midnight UTC of the day.
func (d CalendarDay) Time() time.Time {
	return d.t
}

func (d CalendarDay) IsZero() bool {
	return d.t.IsZero()
}

// AddDays returns the day n calendar days later (earlier for negative n).
func (d CalendarDay) AddDays(n int) CalendarDay {
	return CalendarDay{t: d.t.AddDate(0, 0, n)}
}

func (d CalendarDay) Before(o CalendarDay) bool {
	return d.t.Before(o.t)
}

func (d CalendarDay) After(o CalendarDay) bool {
	return d.t.After(o.t)
}

func (d CalendarDay) Equal(o CalendarDay) bool {
	return d.t.Equal(o.t)
}

func (d CalendarDay) Weekday() time.Weekday {
	return d.t.Weekday()
}

func (d CalendarDay) String() string {
	return d.Key()
}
