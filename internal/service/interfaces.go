package service

import (
	"context"

	"github.com/alexanderramin/prodboard/internal/domain"
)

// MoveService reschedules orders to another day.
type MoveService interface {
	MoveOrder(ctx context.Context, order domain.ScheduledOrder, sourceKey string, target domain.CalendarDay) (MoveState, error)
	IsMoving(orderID int64) bool
}

// StatusService changes one of the three status fields of an order.
type StatusService interface {
	UpdateStatus(ctx context.Context, order domain.ScheduledOrder, field domain.StatusField, statusID int64, statusName string) error
	IsUpdating(orderID int64) bool
}

// OrderWriter is the slice of the record provider the coordinators write
// through.
type OrderWriter interface {
	Update(ctx context.Context, resource string, id int64, fields map[string]any) error
	Create(ctx context.Context, resource string, fields map[string]any) error
}
