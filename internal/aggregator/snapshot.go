package aggregator

import (
	"time"

	"github.com/alexanderramin/prodboard/internal/calendar"
	"github.com/alexanderramin/prodboard/internal/domain"
)

// Snapshot is the result of one refresh: the denormalized orders of a
// window and the lookup maps they were resolved with. A Snapshot is a value;
// every refresh builds a new one.
type Snapshot struct {
	Seq       uint64
	Window    calendar.Window
	FetchedAt time.Time

	// Orders are sorted by schedule date then id.
	Orders         []domain.ScheduledOrder
	DetailsByOrder map[int64][]domain.DetailSummary

	millingTypes       map[int64]string
	materials          map[int64]string
	productionStatuses map[int64]string
	stageCodes         map[int64]domain.StageCode
	passedStages       map[int64][]domain.StageCode
	linkedNames        map[int64]string

	// Warnings lists the lookups that degraded during the refresh.
	Warnings []string
}

func emptySnapshot(w calendar.Window, now time.Time) *Snapshot {
	return &Snapshot{
		Window:             w,
		FetchedAt:          now,
		DetailsByOrder:     map[int64][]domain.DetailSummary{},
		millingTypes:       map[int64]string{},
		materials:          map[int64]string{},
		productionStatuses: map[int64]string{},
		stageCodes:         map[int64]domain.StageCode{},
		passedStages:       map[int64][]domain.StageCode{},
		linkedNames:        map[int64]string{},
	}
}

// MillingTypeName resolves a milling type id; unknown ids yield "".
func (s *Snapshot) MillingTypeName(id int64) string { return s.millingTypes[id] }

// MaterialName resolves a material id; unknown ids yield "".
func (s *Snapshot) MaterialName(id int64) string { return s.materials[id] }

// ProductionStatusName resolves a production status id; unknown ids yield "".
func (s *Snapshot) ProductionStatusName(id int64) string { return s.productionStatuses[id] }

// PassedStageCodes returns the distinct stage codes recorded for an order in
// first-occurrence order.
func (s *Snapshot) PassedStageCodes(orderID int64) []domain.StageCode {
	return s.passedStages[orderID]
}

// LinkedSecondaryOrderName returns the name of the order's most recent
// secondary-order link. ok is false when the order has no link.
func (s *Snapshot) LinkedSecondaryOrderName(orderID int64) (name string, ok bool) {
	name, ok = s.linkedNames[orderID]
	return name, ok
}

// Degraded reports whether any lookup failed during the refresh.
func (s *Snapshot) Degraded() bool {
	return len(s.Warnings) > 0
}

// Order returns the order with the given id.
func (s *Snapshot) Order(id int64) (domain.ScheduledOrder, bool) {
	for _, o := range s.Orders {
		if o.ID == id {
			return o, true
		}
	}
	return domain.ScheduledOrder{}, false
}
