package schedule

import (
	"sort"
	"strings"

	"github.com/alexanderramin/prodboard/internal/domain"
	"github.com/sahilm/fuzzy"
)

// SearchString is the text an order is matched against by Filter.
func SearchString(o domain.ScheduledOrder) string {
	parts := []string{
		o.Name,
		o.ClientName,
		o.OrderStatus,
		o.PaymentStatus,
		o.ProductionLabel(),
		domain.DerefStr(o.LinkedOrderName),
	}
	for _, d := range o.Details {
		parts = append(parts, d.MillingTypeName, d.MaterialName)
	}
	return strings.Join(parts, " ")
}

// Filter keeps the orders fuzzily matching query, preserving their original
// order. An empty query returns orders unchanged.
func Filter(orders []domain.ScheduledOrder, query string) []domain.ScheduledOrder {
	query = strings.TrimSpace(query)
	if query == "" {
		return orders
	}
	names := make([]string, len(orders))
	for i, o := range orders {
		names[i] = SearchString(o)
	}
	matches := fuzzy.Find(query, names)
	idx := make([]int, len(matches))
	for i, m := range matches {
		idx[i] = m.Index
	}
	sort.Ints(idx)

	out := make([]domain.ScheduledOrder, len(idx))
	for i, j := range idx {
		out[i] = orders[j]
	}
	return out
}
