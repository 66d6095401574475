// Package aggregator folds the independently fetched order, detail, event,
// link and lookup records of a date window into denormalized orders.
package aggregator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/prodboard/internal/calendar"
	"github.com/alexanderramin/prodboard/internal/domain"
	"github.com/alexanderramin/prodboard/internal/provider"
	"github.com/alexanderramin/prodboard/internal/repository"
	"golang.org/x/sync/errgroup"
)

// ErrRefreshFailed marks a refresh that could not produce a snapshot because
// the order or detail fetch failed. It is retryable.
var ErrRefreshFailed = errors.New("board refresh failed")

// Aggregator builds Snapshots from a record provider.
type Aggregator struct {
	records *repository.Records
	logger  *slog.Logger
	now     func() time.Time
}

// New creates an Aggregator reading through f. A nil logger discards output.
func New(f provider.Fetcher, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Aggregator{
		records: repository.NewRecords(f),
		logger:  logger,
		now:     time.Now,
	}
}

// lookups holds the results of the fan-out fetches of one refresh.
type lookups struct {
	details            []domain.DetailRecord
	millingTypes       []domain.LookupRecord
	materials          []domain.LookupRecord
	productionStatuses []domain.ProductionStatusRecord
	events             []domain.ProductionEventRecord
	links              []domain.OrderLinkRecord
	employees          []domain.EmployeeRecord
}

// Refresh fetches and folds the orders of window w.
//
// The order fetch runs first; the remaining fetches are keyed by the
// resulting id set and run concurrently. Only the order and detail fetches
// are fatal. Any other failure degrades its field to empty and is logged.
func (a *Aggregator) Refresh(ctx context.Context, w calendar.Window) (*Snapshot, error) {
	orders, err := a.records.OrdersInWindow(ctx, w.Start, w.End)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}

	snap := emptySnapshot(w, a.now())
	if len(orders) == 0 {
		snap.Orders = []domain.ScheduledOrder{}
		return snap, nil
	}
	// Sorting here keeps grouping reproducible even if a backend ignores sort.
	sortOrderRecords(orders)

	ids := make([]int64, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	managerIDs := distinctManagerIDs(orders)

	var lk lookups
	var warnings warningSet
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		details, err := a.records.DetailsForOrders(gctx, ids)
		if err != nil {
			return err
		}
		lk.details = details
		return nil
	})
	g.Go(func() error {
		lk.millingTypes = degrade(gctx, a, &warnings, "milling types", a.records.MillingTypes)
		return nil
	})
	g.Go(func() error {
		lk.materials = degrade(gctx, a, &warnings, "materials", a.records.Materials)
		return nil
	})
	g.Go(func() error {
		lk.productionStatuses = degrade(gctx, a, &warnings, "production statuses", a.records.ProductionStatuses)
		return nil
	})
	g.Go(func() error {
		lk.events = degrade(gctx, a, &warnings, "production events", func(ctx context.Context) ([]domain.ProductionEventRecord, error) {
			return a.records.EventsForOrders(ctx, ids)
		})
		return nil
	})
	g.Go(func() error {
		lk.links = degrade(gctx, a, &warnings, "secondary order links", func(ctx context.Context) ([]domain.OrderLinkRecord, error) {
			return a.records.LinksForOrders(ctx, ids)
		})
		return nil
	})
	g.Go(func() error {
		lk.employees = degrade(gctx, a, &warnings, "employees", func(ctx context.Context) ([]domain.EmployeeRecord, error) {
			return a.records.EmployeesByID(ctx, managerIDs)
		})
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}

	fold(snap, orders, lk)
	snap.Warnings = warnings.list()
	return snap, nil
}

// degrade runs a non-critical fetch. On failure it logs a warning, records
// it, and returns nil so the dependent field resolves to empty.
func degrade[T any](ctx context.Context, a *Aggregator, ws *warningSet, what string, fetch func(context.Context) ([]T, error)) []T {
	rows, err := fetch(ctx)
	if err == nil {
		return rows
	}
	// A fatal sibling cancelled the group; the refresh fails anyway.
	if ctx.Err() != nil {
		return nil
	}
	a.logger.WarnContext(ctx, "board lookup degraded", "lookup", what, "error", err)
	ws.add(fmt.Sprintf("%s unavailable: %s", what, provider.Message(err)))
	return nil
}

// fold joins the fetched rows into snap. It never fails: empty inputs give
// empty maps.
func fold(snap *Snapshot, orders []domain.OrderRecord, lk lookups) {
	for _, m := range lk.millingTypes {
		snap.millingTypes[m.ID] = m.Name
	}
	for _, m := range lk.materials {
		snap.materials[m.ID] = m.Name
	}
	for _, s := range lk.productionStatuses {
		snap.productionStatuses[s.ID] = s.Name
		snap.stageCodes[s.ID] = s.Code
	}
	employees := make(map[int64]string, len(lk.employees))
	for _, e := range lk.employees {
		employees[e.ID] = e.FullName
	}

	known := make(map[int64]bool, len(orders))
	for _, o := range orders {
		known[o.ID] = true
	}

	detailStatusNames := make(map[int64][]string)
	for _, d := range lk.details {
		if !known[d.OrderID] {
			continue
		}
		summary := domain.DetailSummary{
			ID:       d.ID,
			OrderID:  d.OrderID,
			Area:     d.Area,
			Quantity: d.Quantity,
			Note:     d.Note,
		}
		if d.MillingTypeID != nil {
			summary.MillingTypeName = snap.millingTypes[*d.MillingTypeID]
		}
		if d.MaterialID != nil {
			summary.MaterialName = snap.materials[*d.MaterialID]
		}
		if d.ProductionStatusID != nil {
			summary.ProductionStageName = snap.productionStatuses[*d.ProductionStatusID]
			if summary.ProductionStageName != "" {
				detailStatusNames[d.OrderID] = appendDistinct(detailStatusNames[d.OrderID], summary.ProductionStageName)
			}
		}
		snap.DetailsByOrder[d.OrderID] = append(snap.DetailsByOrder[d.OrderID], summary)
	}

	for _, e := range lk.events {
		if !known[e.OrderID] {
			continue
		}
		code, ok := snap.stageCodes[e.ProductionStatusID]
		if !ok || code == "" {
			continue
		}
		snap.passedStages[e.OrderID] = appendDistinctCode(snap.passedStages[e.OrderID], code)
	}

	// The numerically largest link id is taken as the most recently created
	// link; the rows carry no timestamp.
	bestLink := make(map[int64]int64)
	for _, l := range lk.links {
		if !known[l.OrderID] {
			continue
		}
		if cur, ok := bestLink[l.OrderID]; !ok || l.ID > cur {
			bestLink[l.OrderID] = l.ID
			snap.linkedNames[l.OrderID] = l.SecondaryOrderName
		}
	}

	snap.Orders = make([]domain.ScheduledOrder, len(orders))
	for i, o := range orders {
		so := domain.ScheduledOrder{
			ID:                   o.ID,
			Name:                 o.Name,
			ScheduleDate:         o.ScheduleDate,
			Area:                 o.Area,
			ClientName:           o.ClientName,
			OrderStatus:          o.OrderStatusName,
			PaymentStatus:        o.PaymentStatusName,
			ProductionStatus:     o.ProductionStatusName,
			ProductionStatusAuto: o.ProductionStatusAuto,
			Comment:              o.Comment,
			Details:              snap.DetailsByOrder[o.ID],
			PassedStages:         snap.passedStages[o.ID],
		}
		if so.ProductionStatus == "" && len(detailStatusNames[o.ID]) > 0 {
			so.ProductionKeywords = strings.ToLower(strings.Join(detailStatusNames[o.ID], " "))
		}
		if name, ok := snap.linkedNames[o.ID]; ok {
			so.LinkedOrderName = &name
		}
		if o.ManagerID != nil {
			so.ManagerName = employees[*o.ManagerID]
		}
		snap.Orders[i] = so
	}
}

func sortOrderRecords(orders []domain.OrderRecord) {
	sort.SliceStable(orders, func(i, j int) bool {
		di, dj := orders[i].ScheduleDate, orders[j].ScheduleDate
		if (di == nil) != (dj == nil) {
			return di != nil
		}
		if di != nil && dj != nil && !di.Equal(*dj) {
			return di.Before(*dj)
		}
		return orders[i].ID < orders[j].ID
	})
}

func distinctManagerIDs(orders []domain.OrderRecord) []int64 {
	seen := make(map[int64]bool)
	var ids []int64
	for _, o := range orders {
		if o.ManagerID != nil && !seen[*o.ManagerID] {
			seen[*o.ManagerID] = true
			ids = append(ids, *o.ManagerID)
		}
	}
	return ids
}

func appendDistinct(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}

func appendDistinctCode(list []domain.StageCode, c domain.StageCode) []domain.StageCode {
	for _, v := range list {
		if v == c {
			return list
		}
	}
	return append(list, c)
}
