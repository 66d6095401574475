package provider_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/prodboard/internal/db"
	"github.com/alexanderramin/prodboard/internal/provider"
	"github.com/alexanderramin/prodboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seedDay = time.Date(2025, time.November, 10, 12, 0, 0, 0, time.UTC)

func seededProvider(t *testing.T) *provider.SQLProvider {
	t.Helper()
	return provider.NewSQLProvider(testutil.NewSeededDB(t, seedDay), db.DriverSQLite)
}

func TestSQLFetch_FiltersAndSorts(t *testing.T) {
	p := seededProvider(t)

	page, err := p.Fetch(context.Background(), provider.ResourceOrders, provider.Query{
		Filters: []provider.Filter{
			provider.Gte("schedule_date", "2025-11-09"),
			provider.Lte("schedule_date", "2025-11-11"),
		},
		Sort: []provider.Sort{provider.SortDesc("schedule_date")},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Records, 3)
	assert.Equal(t, "2025-11-11", page.Records[0]["schedule_date"])
	assert.Equal(t, "2025-11-09", page.Records[2]["schedule_date"])
	assert.Equal(t, "In work", page.Records[0]["order_status_name"])
}

func TestSQLFetch_InFilter(t *testing.T) {
	p := seededProvider(t)
	ctx := context.Background()

	page, err := p.Fetch(ctx, provider.ResourceOrderDetails, provider.Query{
		Filters: []provider.Filter{provider.In("order_id", []int64{1, 2})},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)

	empty, err := p.Fetch(ctx, provider.ResourceOrderDetails, provider.Query{
		Filters: []provider.Filter{provider.In("order_id", []int64{})},
	})
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
	assert.Empty(t, empty.Records)
}

func TestSQLFetch_EqBoolAndNull(t *testing.T) {
	p := seededProvider(t)
	ctx := context.Background()

	active, err := p.Fetch(ctx, provider.ResourceOrderDetails, provider.Query{
		Filters: []provider.Filter{provider.Eq("deleted", false)},
	})
	require.NoError(t, err)
	assert.Positive(t, active.Total)

	unset, err := p.Fetch(ctx, provider.ResourceOrders, provider.Query{
		Filters: []provider.Filter{provider.Eq("production_status_id", nil)},
	})
	require.NoError(t, err)
	assert.Equal(t, 12, unset.Total)
}

func TestSQLFetch_Pagination(t *testing.T) {
	p := seededProvider(t)
	ctx := context.Background()

	q := provider.Query{
		Sort:       []provider.Sort{provider.SortAsc("id")},
		Pagination: provider.Pagination{Index: 1, Size: 5},
	}
	page, err := p.Fetch(ctx, provider.ResourceOrders, q)
	require.NoError(t, err)
	assert.Equal(t, 12, page.Total)
	require.Len(t, page.Records, 5)
	assert.Equal(t, int64(6), page.Records[0]["id"])

	_, err = p.Fetch(ctx, provider.ResourceOrders, provider.Query{Pagination: provider.Pagination{Size: provider.MaxPageSize + 1}})
	assert.Error(t, err)

	def, err := p.Fetch(ctx, provider.ResourceOrders, provider.Query{})
	require.NoError(t, err)
	assert.Len(t, def.Records, 12, "default page size covers the seed")
}

func TestSQLFetch_RejectsUnknownNames(t *testing.T) {
	p := seededProvider(t)
	ctx := context.Background()

	_, err := p.Fetch(ctx, "invoices", provider.Query{})
	assert.ErrorIs(t, err, provider.ErrUnknownResource)

	_, err = p.Fetch(ctx, provider.ResourceOrders, provider.Query{
		Filters: []provider.Filter{provider.Eq("1=1; DROP TABLE orders; --", 1)},
	})
	assert.ErrorIs(t, err, provider.ErrUnknownField)

	_, err = p.Fetch(ctx, provider.ResourceOrders, provider.Query{
		Sort: []provider.Sort{{Field: "name", Dir: "sideways"}},
	})
	assert.Error(t, err)
}

func TestSQLUpdate_PartialFields(t *testing.T) {
	p := seededProvider(t)
	ctx := context.Background()

	require.NoError(t, p.Update(ctx, provider.ResourceOrders, 3, map[string]any{"schedule_date": "2025-12-01"}))

	page, err := p.Fetch(ctx, provider.ResourceOrders, provider.Query{Filters: []provider.Filter{provider.Eq("id", 3)}})
	require.NoError(t, err)
	require.Len(t, page.Records, 1)
	assert.Equal(t, "2025-12-01", page.Records[0]["schedule_date"])
	assert.Equal(t, "F-102", page.Records[0]["name"], "untouched fields survive")
}

func TestSQLUpdate_Errors(t *testing.T) {
	p := seededProvider(t)
	ctx := context.Background()

	err := p.Update(ctx, provider.ResourceOrders, 999, map[string]any{"comment": "x"})
	assert.ErrorIs(t, err, provider.ErrNotFound)
	assert.Equal(t, "orders 999 not found", provider.Message(err))

	err = p.Update(ctx, provider.ResourceOrders, 1, map[string]any{"order_status_name": "Issued"})
	assert.ErrorIs(t, err, provider.ErrUnknownField)

	err = p.Update(ctx, provider.ResourceOrders, 1, map[string]any{})
	assert.Error(t, err)
}

func TestSQLCreate_DuplicateEvent(t *testing.T) {
	p := seededProvider(t)
	ctx := context.Background()
	fields := map[string]any{
		"order_id":             int64(1),
		"detail_id":            nil,
		"production_status_id": int64(5),
		"payload":              "{}",
	}

	require.NoError(t, p.Create(ctx, provider.ResourceProductionEvents, fields))
	err := p.Create(ctx, provider.ResourceProductionEvents, fields)
	require.Error(t, err)
	assert.True(t, provider.IsDuplicate(err))

	var be *provider.BackendError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "create", be.Op)
}
