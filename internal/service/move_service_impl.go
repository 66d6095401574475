package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/prodboard/internal/domain"
	"github.com/alexanderramin/prodboard/internal/provider"
)

// MoveState is the outcome of one move attempt.
type MoveState string

const (
	MoveIdle       MoveState = "idle"
	MovePersisting MoveState = "persisting"
	MoveSucceeded  MoveState = "succeeded"
	MoveFailed     MoveState = "failed"
)

// ErrMoveInProgress is returned when the order is already being moved.
var ErrMoveInProgress = errors.New("order is already being moved")

type moveService struct {
	writer      OrderWriter
	invalidator provider.Invalidator
	notifier    Notifier
	observer    MutationObserver
	moving      *inFlight
}

func NewMoveService(writer OrderWriter, invalidator provider.Invalidator, notifier Notifier, observers ...MutationObserver) MoveService {
	if notifier == nil {
		notifier = NotifierFunc(func(Notice) {})
	}
	return &moveService{
		writer:      writer,
		invalidator: invalidator,
		notifier:    notifier,
		observer:    firstObserver(observers),
		moving:      newInFlight(),
	}
}

// MoveOrder persists a new schedule date for order. Dropping an order back
// onto its own day is a no-op returning MoveIdle. On success the orders
// resource is invalidated before MoveOrder returns.
func (s *moveService) MoveOrder(ctx context.Context, order domain.ScheduledOrder, sourceKey string, target domain.CalendarDay) (MoveState, error) {
	if target.IsZero() {
		return MoveIdle, fmt.Errorf("move order %d: target day is required", order.ID)
	}
	if sourceKey == target.Key() {
		return MoveIdle, nil
	}
	if !s.moving.acquire(order.ID) {
		return MoveIdle, ErrMoveInProgress
	}
	defer s.moving.release(order.ID)

	start := time.Now()
	err := s.writer.Update(ctx, provider.ResourceOrders, order.ID, map[string]any{
		"schedule_date": target.ISO(),
	})
	s.observer.ObserveMutation(ctx, MutationEvent{
		Kind:    MutationMove,
		Gesture: GestureFrom(ctx),
		OrderID: order.ID,
		From:    sourceKey,
		To:      target.Key(),
		Took:    time.Since(start),
		Err:     err,
	})
	if err != nil {
		s.notifier.Notify(Notice{
			Level:   NoticeError,
			Message: fmt.Sprintf("Could not move order %s: %s", order.Name, provider.Message(err)),
		})
		return MoveFailed, fmt.Errorf("moving order %d to %s: %w", order.ID, target.Key(), err)
	}

	s.notifier.Notify(Notice{
		Level:   NoticeSuccess,
		Message: fmt.Sprintf("Order %s moved to %s", order.Name, target.Key()),
	})
	if s.invalidator != nil {
		s.invalidator.Invalidate(provider.ResourceOrders)
	}
	return MoveSucceeded, nil
}

func (s *moveService) IsMoving(orderID int64) bool {
	return s.moving.has(orderID)
}
