// Package calendar generates the window of days shown on the board and
// handles week-wise navigation around a pivot date.
package calendar

import (
	"time"

	"github.com/alexanderramin/prodboard/internal/domain"
)

// WeekStep is how far forward/backward navigation shifts the pivot.
const WeekStep = 7

// GenerateDays returns daysBack+daysForward+1 consecutive days centered on
// pivot's calendar day, which sits at index daysBack. Weekends are included.
// Negative counts are treated as zero.
func GenerateDays(pivot time.Time, daysBack, daysForward int) []domain.CalendarDay {
	daysBack = max(daysBack, 0)
	daysForward = max(daysForward, 0)

	start := domain.DayOf(pivot).AddDays(-daysBack)
	days := make([]domain.CalendarDay, daysBack+daysForward+1)
	for i := range days {
		days[i] = start.AddDays(i)
	}
	return days
}

// Window is an inclusive range of days.
type Window struct {
	Start domain.CalendarDay
	End   domain.CalendarDay
}

// Contains reports whether day lies within the window.
func (w Window) Contains(day domain.CalendarDay) bool {
	return !day.Before(w.Start) && !day.After(w.End)
}

// Navigator tracks the board's pivot date.
type Navigator struct {
	pivot       domain.CalendarDay
	daysBack    int
	daysForward int
	clock       func() time.Time
}

// NewNavigator creates a Navigator pivoted on today. A nil clock uses time.Now.
func NewNavigator(daysBack, daysForward int, clock func() time.Time) *Navigator {
	if clock == nil {
		clock = time.Now
	}
	return &Navigator{
		pivot:       domain.DayOf(clock()),
		daysBack:    max(daysBack, 0),
		daysForward: max(daysForward, 0),
		clock:       clock,
	}
}

func (n *Navigator) Pivot() domain.CalendarDay { return n.pivot }

// Today returns the current day according to the navigator's clock.
func (n *Navigator) Today() domain.CalendarDay { return domain.DayOf(n.clock()) }

func (n *Navigator) GoForward()  { n.pivot = n.pivot.AddDays(WeekStep) }
func (n *Navigator) GoBackward() { n.pivot = n.pivot.AddDays(-WeekStep) }
func (n *Navigator) GoToday()    { n.pivot = n.Today() }

// SetPivot moves the pivot to an arbitrary day.
func (n *Navigator) SetPivot(day domain.CalendarDay) { n.pivot = day }

// Days returns the current window's days.
func (n *Navigator) Days() []domain.CalendarDay {
	return GenerateDays(n.pivot.Time(), n.daysBack, n.daysForward)
}

// Window returns the inclusive bounds of the current window.
func (n *Navigator) Window() Window {
	return Window{
		Start: n.pivot.AddDays(-n.daysBack),
		End:   n.pivot.AddDays(n.daysForward),
	}
}
