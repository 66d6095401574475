package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/prodboard/internal/domain"
	"github.com/alexanderramin/prodboard/internal/provider"
)

var (
	// ErrUnknownStatusField is returned for a field kind outside
	// domain.ValidStatusFields. No backend call is made.
	ErrUnknownStatusField = errors.New("unknown status field")
	// ErrStatusInProgress is returned while a status update of the same
	// order is running.
	ErrStatusInProgress = errors.New("order status is already being updated")
)

// statusColumns maps a status field kind to the order column it writes.
var statusColumns = map[domain.StatusField]string{
	domain.FieldOrderStatus:      "order_status_id",
	domain.FieldPaymentStatus:    "payment_status_id",
	domain.FieldProductionStatus: "production_status_id",
}

// StatusColumn returns the order column backing field.
func StatusColumn(field domain.StatusField) (string, error) {
	col, ok := statusColumns[field]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatusField, field)
	}
	return col, nil
}

type statusService struct {
	writer      OrderWriter
	invalidator provider.Invalidator
	notifier    Notifier
	logger      *slog.Logger
	observer    MutationObserver
	updating    *inFlight
}

func NewStatusService(writer OrderWriter, invalidator provider.Invalidator, notifier Notifier, logger *slog.Logger, observers ...MutationObserver) StatusService {
	if notifier == nil {
		notifier = NotifierFunc(func(Notice) {})
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &statusService{
		writer:      writer,
		invalidator: invalidator,
		notifier:    notifier,
		logger:      logger,
		observer:    firstObserver(observers),
		updating:    newInFlight(),
	}
}

// UpdateStatus sets one status field of order to statusID. A manual
// production status also switches off the derived production status and is
// recorded in the production event log.
func (s *statusService) UpdateStatus(ctx context.Context, order domain.ScheduledOrder, field domain.StatusField, statusID int64, statusName string) error {
	col, err := StatusColumn(field)
	if err != nil {
		s.notifier.Notify(Notice{Level: NoticeError, Message: err.Error()})
		return err
	}
	if !s.updating.acquire(order.ID) {
		return ErrStatusInProgress
	}
	defer s.updating.release(order.ID)

	fields := map[string]any{col: statusID}
	if field == domain.FieldProductionStatus {
		fields["production_status_auto"] = false
	}

	start := time.Now()
	err = s.writer.Update(ctx, provider.ResourceOrders, order.ID, fields)
	s.observer.ObserveMutation(ctx, MutationEvent{
		Kind:     MutationStatus,
		Gesture:  GestureFrom(ctx),
		OrderID:  order.ID,
		Field:    string(field),
		StatusID: statusID,
		Took:     time.Since(start),
		Err:      err,
	})
	if err != nil {
		s.notifier.Notify(Notice{
			Level:   NoticeError,
			Message: fmt.Sprintf("Could not update %s of order %s: %s", field.Label(), order.Name, provider.Message(err)),
		})
		return fmt.Errorf("updating %s of order %d: %w", field, order.ID, err)
	}

	if field == domain.FieldProductionStatus {
		s.recordProductionEvent(ctx, order.ID, statusID)
	}

	s.notifier.Notify(Notice{
		Level:   NoticeSuccess,
		Message: fmt.Sprintf("Order %s: %s set to %s", order.Name, field.Label(), statusName),
	})
	if s.invalidator != nil {
		s.invalidator.Invalidate(provider.ResourceOrders)
	}
	return nil
}

// recordProductionEvent appends to the event log. The status change has
// already been persisted, so failures here are only logged.
func (s *statusService) recordProductionEvent(ctx context.Context, orderID, statusID int64) {
	err := s.writer.Create(ctx, provider.ResourceProductionEvents, map[string]any{
		"order_id":             orderID,
		"detail_id":            nil,
		"production_status_id": statusID,
		"payload":              "{}",
	})
	switch {
	case err == nil:
		if s.invalidator != nil {
			s.invalidator.Invalidate(provider.ResourceProductionEvents)
		}
	case provider.IsDuplicate(err):
		s.logger.DebugContext(ctx, "production event already recorded", "order_id", orderID, "status_id", statusID)
	default:
		s.logger.WarnContext(ctx, "recording production event failed", "order_id", orderID, "status_id", statusID, "error", err)
	}
}

func (s *statusService) IsUpdating(orderID int64) bool {
	return s.updating.has(orderID)
}
