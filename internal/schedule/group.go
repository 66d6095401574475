// Package schedule projects denormalized orders onto board days: grouping
// by date key, per-day aggregates, card tones and keyword search.
package schedule

import (
	"strings"

	"github.com/alexanderramin/prodboard/internal/domain"
)

// Groups maps a DD.MM.YYYY day key to the orders scheduled that day, in
// source order. Keys lists the populated keys in first-seen order.
type Groups struct {
	ByKey map[string][]domain.ScheduledOrder
	Keys  []string
}

// Get returns the orders of one day key (nil for an empty day).
func (g Groups) Get(key string) []domain.ScheduledOrder {
	return g.ByKey[key]
}

// Len returns the number of orders across all groups.
func (g Groups) Len() int {
	n := 0
	for _, orders := range g.ByKey {
		n += len(orders)
	}
	return n
}

// GroupByDate partitions orders by their schedule date key. Orders without
// a schedule date are left out.
func GroupByDate(orders []domain.ScheduledOrder) Groups {
	g := Groups{ByKey: make(map[string][]domain.ScheduledOrder)}
	for _, o := range orders {
		if o.ScheduleDate == nil || o.ScheduleDate.IsZero() {
			continue
		}
		key := o.ScheduleDate.Key()
		if _, seen := g.ByKey[key]; !seen {
			g.Keys = append(g.Keys, key)
		}
		g.ByKey[key] = append(g.ByKey[key], o)
	}
	return g
}

// DayGroups lays groups onto the given days, producing one DayGroup per day
// (empty days included).
func DayGroups(days []domain.CalendarDay, g Groups) []domain.DayGroup {
	out := make([]domain.DayGroup, len(days))
	for i, d := range days {
		out[i] = domain.DayGroup{Key: d.Key(), Day: d, Orders: g.Get(d.Key())}
	}
	return out
}

// AllIssued reports whether a non-empty group consists only of orders whose
// order status equals issued, compared case-insensitively.
func AllIssued(orders []domain.ScheduledOrder, issued string) bool {
	if len(orders) == 0 {
		return false
	}
	for _, o := range orders {
		if !IsIssued(o, issued) {
			return false
		}
	}
	return true
}

// IsIssued reports whether one order has been handed over to the client.
func IsIssued(o domain.ScheduledOrder, issued string) bool {
	return issued != "" && strings.EqualFold(strings.TrimSpace(o.OrderStatus), strings.TrimSpace(issued))
}
