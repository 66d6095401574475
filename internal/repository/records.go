// Package repository exposes typed, per-resource record sources over a
// provider.Fetcher. Rows are decoded into the explicit schemas of the domain
// package so a missing field shows up here instead of deep in the board.
package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/prodboard/internal/domain"
	"github.com/alexanderramin/prodboard/internal/provider"
)

// Records reads board resources through a Fetcher.
type Records struct {
	fetcher provider.Fetcher
}

// NewRecords creates a Records source.
func NewRecords(f provider.Fetcher) *Records {
	return &Records{fetcher: f}
}

// fetchAll pages through resource with the largest page size until every
// matching row has been read.
func (r *Records) fetchAll(ctx context.Context, resource string, filters []provider.Filter, sorts []provider.Sort) ([]provider.Record, error) {
	var all []provider.Record
	for page := 0; ; page++ {
		q := provider.Query{
			Filters:    filters,
			Sort:       sorts,
			Pagination: provider.Pagination{Index: page, Size: provider.MaxPageSize},
		}
		res, err := r.fetcher.Fetch(ctx, resource, q)
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", resource, err)
		}
		all = append(all, res.Records...)
		if len(res.Records) < provider.MaxPageSize || len(all) >= res.Total {
			return all, nil
		}
	}
}

// OrdersInWindow returns orders scheduled within [start, end], sorted by
// schedule date then id.
func (r *Records) OrdersInWindow(ctx context.Context, start, end domain.CalendarDay) ([]domain.OrderRecord, error) {
	rows, err := r.fetchAll(ctx, provider.ResourceOrders,
		[]provider.Filter{
			provider.Gte("schedule_date", start.ISO()),
			provider.Lte("schedule_date", end.ISO()),
		},
		[]provider.Sort{provider.SortAsc("schedule_date"), provider.SortAsc("id")},
	)
	if err != nil {
		return nil, err
	}
	out := make([]domain.OrderRecord, len(rows))
	for i, row := range rows {
		out[i] = decodeOrder(row)
	}
	return out, nil
}

// OrderByID returns one order.
func (r *Records) OrderByID(ctx context.Context, id int64) (domain.OrderRecord, error) {
	res, err := r.fetcher.Fetch(ctx, provider.ResourceOrders, provider.Query{
		Filters:    []provider.Filter{provider.Eq("id", id)},
		Pagination: provider.Pagination{Size: 1},
	})
	if err != nil {
		return domain.OrderRecord{}, fmt.Errorf("fetching order %d: %w", id, err)
	}
	if len(res.Records) == 0 {
		return domain.OrderRecord{}, fmt.Errorf("order %d: %w", id, provider.ErrNotFound)
	}
	return decodeOrder(res.Records[0]), nil
}

// DetailsForOrders returns the non-deleted detail rows of the given orders.
func (r *Records) DetailsForOrders(ctx context.Context, orderIDs []int64) ([]domain.DetailRecord, error) {
	rows, err := r.fetchAll(ctx, provider.ResourceOrderDetails,
		[]provider.Filter{
			provider.Eq("deleted", false),
			provider.In("order_id", orderIDs),
		},
		[]provider.Sort{provider.SortAsc("order_id"), provider.SortAsc("id")},
	)
	if err != nil {
		return nil, err
	}
	out := make([]domain.DetailRecord, 0, len(rows))
	for _, row := range rows {
		d := decodeDetail(row)
		if d.Deleted {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *Records) lookup(ctx context.Context, resource string) ([]domain.LookupRecord, error) {
	rows, err := r.fetchAll(ctx, resource, nil, []provider.Sort{provider.SortAsc("id")})
	if err != nil {
		return nil, err
	}
	out := make([]domain.LookupRecord, len(rows))
	for i, row := range rows {
		out[i] = decodeLookup(row)
	}
	return out, nil
}

// MillingTypes returns the milling type lookup used to name detail lines.
func (r *Records) MillingTypes(ctx context.Context) ([]domain.LookupRecord, error) {
	return r.lookup(ctx, provider.ResourceMillingTypes)
}

// Materials returns the material lookup used to name detail lines.
func (r *Records) Materials(ctx context.Context) ([]domain.LookupRecord, error) {
	return r.lookup(ctx, provider.ResourceMaterials)
}

// OrderStatuses returns the order status options.
func (r *Records) OrderStatuses(ctx context.Context) ([]domain.LookupRecord, error) {
	return r.lookup(ctx, provider.ResourceOrderStatuses)
}

// PaymentStatuses returns the payment status options.
func (r *Records) PaymentStatuses(ctx context.Context) ([]domain.LookupRecord, error) {
	return r.lookup(ctx, provider.ResourcePaymentStatuses)
}

// ProductionStatuses returns the production status lookup including stage codes.
func (r *Records) ProductionStatuses(ctx context.Context) ([]domain.ProductionStatusRecord, error) {
	rows, err := r.fetchAll(ctx, provider.ResourceProductionStatuses, nil, []provider.Sort{provider.SortAsc("id")})
	if err != nil {
		return nil, err
	}
	out := make([]domain.ProductionStatusRecord, len(rows))
	for i, row := range rows {
		out[i] = decodeProductionStatus(row)
	}
	return out, nil
}

// EventsForOrders returns production events of the given orders in
// insertion order.
func (r *Records) EventsForOrders(ctx context.Context, orderIDs []int64) ([]domain.ProductionEventRecord, error) {
	rows, err := r.fetchAll(ctx, provider.ResourceProductionEvents,
		[]provider.Filter{provider.In("order_id", orderIDs)},
		[]provider.Sort{provider.SortAsc("id")},
	)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ProductionEventRecord, len(rows))
	for i, row := range rows {
		out[i] = decodeEvent(row)
	}
	return out, nil
}

// LinksForOrders returns secondary-order link rows of the given orders.
func (r *Records) LinksForOrders(ctx context.Context, orderIDs []int64) ([]domain.OrderLinkRecord, error) {
	rows, err := r.fetchAll(ctx, provider.ResourceOrderLinks,
		[]provider.Filter{provider.In("order_id", orderIDs)},
		[]provider.Sort{provider.SortAsc("id")},
	)
	if err != nil {
		return nil, err
	}
	out := make([]domain.OrderLinkRecord, len(rows))
	for i, row := range rows {
		out[i] = decodeLink(row)
	}
	return out, nil
}

// EmployeesByID returns the employees with the given ids.
func (r *Records) EmployeesByID(ctx context.Context, ids []int64) ([]domain.EmployeeRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.fetchAll(ctx, provider.ResourceEmployees,
		[]provider.Filter{provider.In("id", ids)},
		[]provider.Sort{provider.SortAsc("id")},
	)
	if err != nil {
		return nil, err
	}
	out := make([]domain.EmployeeRecord, len(rows))
	for i, row := range rows {
		out[i] = decodeEmployee(row)
	}
	return out, nil
}

// StatusOptions lists the statuses selectable for a status field.
func (r *Records) StatusOptions(ctx context.Context, field domain.StatusField) ([]domain.LookupRecord, error) {
	res := field.LookupResource()
	if res == "" {
		return nil, fmt.Errorf("no status lookup for field %q", field)
	}
	return r.lookup(ctx, res)
}
