package testutil

import (
	"fmt"

	"github.com/alexanderramin/prodboard/internal/domain"
)

// OrderOption customizes a ScheduledOrder built by NewTestOrder.
type OrderOption func(*domain.ScheduledOrder)

// WithDate sets the schedule date from "YYYY-MM-DD" or "DD.MM.YYYY".
// It panics on a malformed date since fixtures are static.
func WithDate(s string) OrderOption {
	return func(o *domain.ScheduledOrder) {
		d, err := domain.ParseDay(s)
		if err != nil {
			panic(err)
		}
		o.ScheduleDate = &d
	}
}

func WithoutDate() OrderOption {
	return func(o *domain.ScheduledOrder) {
		o.ScheduleDate = nil
	}
}

func WithArea(v any) OrderOption {
	return func(o *domain.ScheduledOrder) {
		o.Area = v
	}
}

func WithOrderStatus(s string) OrderOption {
	return func(o *domain.ScheduledOrder) {
		o.OrderStatus = s
	}
}

func WithClient(name string) OrderOption {
	return func(o *domain.ScheduledOrder) {
		o.ClientName = name
	}
}

func WithStages(codes ...domain.StageCode) OrderOption {
	return func(o *domain.ScheduledOrder) {
		o.PassedStages = codes
	}
}

func WithLinkedOrder(name string) OrderOption {
	return func(o *domain.ScheduledOrder) {
		o.LinkedOrderName = &name
	}
}

func WithProductionStatus(s string) OrderOption {
	return func(o *domain.ScheduledOrder) {
		o.ProductionStatus = s
	}
}

// NewTestOrder builds a ScheduledOrder named "F-<id>" scheduled on
// 2025-11-10 with area 1.
func NewTestOrder(id int64, opts ...OrderOption) domain.ScheduledOrder {
	day := domain.NewDay(2025, 11, 10)
	o := domain.ScheduledOrder{
		ID:           id,
		Name:         fmt.Sprintf("F-%d", id),
		ScheduleDate: &day,
		Area:         1.0,
		OrderStatus:  "In work",
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// IDs returns the ids of orders in order.
func IDs(orders []domain.ScheduledOrder) []int64 {
	out := make([]int64, len(orders))
	for i, o := range orders {
		out[i] = o.ID
	}
	return out
}
