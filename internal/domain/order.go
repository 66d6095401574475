package domain

import "github.com/google/uuid"

// ScheduledOrder is the denormalized, display-ready projection of an order.
// It is rebuilt in full on every board refresh.
type ScheduledOrder struct {
	ID           int64
	Name         string
	ScheduleDate *CalendarDay
	// Area is kept as fetched; projection code coerces it.
	Area any

	ClientName       string
	ManagerName      string
	OrderStatus      string
	PaymentStatus    string
	ProductionStatus string
	// ProductionKeywords holds the lower-cased detail-level production
	// status names when the order carries no production status of its own.
	ProductionKeywords   string
	ProductionStatusAuto bool
	Comment              string

	Details         []DetailSummary
	LinkedOrderName *string
	PassedStages    []StageCode
}

// HasStage reports whether the order has passed the given production stage.
func (o ScheduledOrder) HasStage(code StageCode) bool {
	for _, c := range o.PassedStages {
		if c == code {
			return true
		}
	}
	return false
}

// ProductionLabel returns the production status to display, falling back to
// the keyword surface.
func (o ScheduledOrder) ProductionLabel() string {
	return CoalesceStr(o.ProductionStatus, o.ProductionKeywords)
}

// DetailSummary is one production detail line with foreign keys resolved to
// display names.
type DetailSummary struct {
	ID                  int64
	OrderID             int64
	MillingTypeName     string
	MaterialName        string
	ProductionStageName string
	Area                any
	Quantity            int
	Note                string
}

// DayGroup is the ordered list of orders scheduled on one day.
type DayGroup struct {
	Key    string
	Day    CalendarDay
	Orders []ScheduledOrder
}

// DragPayload describes one in-progress drag gesture. It is never persisted.
type DragPayload struct {
	GestureID uuid.UUID
	Order     ScheduledOrder
	SourceKey string
}

// NewDragPayload starts a drag gesture for the order sitting in the given day
// column.
func NewDragPayload(order ScheduledOrder, sourceKey string) DragPayload {
	return DragPayload{
		GestureID: uuid.New(),
		Order:     order,
		SourceKey: sourceKey,
	}
}
