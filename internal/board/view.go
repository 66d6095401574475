package board

import (
	"github.com/alexanderramin/prodboard/internal/domain"
	"github.com/alexanderramin/prodboard/internal/layout"
	"github.com/alexanderramin/prodboard/internal/schedule"
	"github.com/shopspring/decimal"
)

// DayColumn is one rendered day of the board.
type DayColumn struct {
	Day       domain.CalendarDay
	Key       string
	Orders    []domain.ScheduledOrder
	TotalArea decimal.Decimal
	AllIssued bool
	Today     bool
	Weekend   bool
}

// View is everything a renderer needs to draw the board once.
type View struct {
	Columns []DayColumn
	Rows    [][]DayColumn
	Layout  layout.Result
	Mode    domain.ViewMode
	Scale   float64
	Query   string
	// Warnings lists degraded lookups of the last refresh.
	Warnings []string
}

// Project builds the day columns for days from orders. query, when set,
// narrows the orders by fuzzy keyword match before grouping.
func Project(days []domain.CalendarDay, orders []domain.ScheduledOrder, today domain.CalendarDay, issued, query string) []DayColumn {
	if query != "" {
		orders = schedule.Filter(orders, query)
	}
	groups := schedule.DayGroups(days, schedule.GroupByDate(orders))

	cols := make([]DayColumn, len(groups))
	for i, g := range groups {
		wd := g.Day.Weekday()
		cols[i] = DayColumn{
			Day:       g.Day,
			Key:       g.Key,
			Orders:    g.Orders,
			TotalArea: schedule.TotalArea(g.Orders),
			AllIssued: schedule.AllIssued(g.Orders, issued),
			Today:     g.Day.Equal(today),
			Weekend:   wd == 0 || wd == 6,
		}
	}
	return cols
}

// Rows splits columns into grid rows of perRow columns.
func Rows(cols []DayColumn, perRow int) [][]DayColumn {
	perRow = max(perRow, 1)
	var rows [][]DayColumn
	for start := 0; start < len(cols); start += perRow {
		end := min(start+perRow, len(cols))
		rows = append(rows, cols[start:end:end])
	}
	return rows
}
