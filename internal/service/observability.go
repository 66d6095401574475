package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// MutationKind names the board action that wrote to the backend.
type MutationKind string

const (
	MutationMove   MutationKind = "move"
	MutationStatus MutationKind = "status"
)

type gestureKey struct{}

// WithGesture tags ctx with the id of the user gesture that triggers a
// mutation, so its log records can be correlated.
func WithGesture(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, gestureKey{}, id)
}

// GestureFrom returns the gesture id carried by ctx, or uuid.Nil.
func GestureFrom(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(gestureKey{}).(uuid.UUID)
	return id
}

// MutationEvent describes one finished backend write made on behalf of the
// board. From and To hold day keys for moves and are empty for status
// changes, where Field and StatusID are set instead.
type MutationEvent struct {
	Kind     MutationKind
	Gesture  uuid.UUID
	OrderID  int64
	From     string
	To       string
	Field    string
	StatusID int64
	Took     time.Duration
	Err      error
}

// MutationObserver is told about every move and status write.
type MutationObserver interface {
	ObserveMutation(ctx context.Context, event MutationEvent)
}

type nopMutationObserver struct{}

func (nopMutationObserver) ObserveMutation(context.Context, MutationEvent) {}

type logMutationObserver struct {
	logger *slog.Logger
}

// NewLogMutationObserver writes one record per mutation to logger, at error
// level when the write failed.
func NewLogMutationObserver(logger *slog.Logger) MutationObserver {
	if logger == nil {
		return nopMutationObserver{}
	}
	return &logMutationObserver{logger: logger}
}

func (o *logMutationObserver) ObserveMutation(ctx context.Context, e MutationEvent) {
	attrs := []any{
		"kind", string(e.Kind),
		"order_id", e.OrderID,
		"took_ms", e.Took.Milliseconds(),
	}
	if e.Gesture != uuid.Nil {
		attrs = append(attrs, "gesture", e.Gesture.String())
	}
	switch e.Kind {
	case MutationMove:
		attrs = append(attrs, "from", e.From, "to", e.To)
	case MutationStatus:
		attrs = append(attrs, "field", e.Field, "status_id", e.StatusID)
	}
	if e.Err != nil {
		o.logger.ErrorContext(ctx, "order mutation failed", append(attrs, "error", e.Err.Error())...)
		return
	}
	o.logger.InfoContext(ctx, "order mutation", attrs...)
}

func firstObserver(observers []MutationObserver) MutationObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return nopMutationObserver{}
}
