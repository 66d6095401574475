package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/prodboard/internal/db"
	"github.com/alexanderramin/prodboard/internal/domain"
	"github.com/alexanderramin/prodboard/internal/provider"
	"github.com/alexanderramin/prodboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStatus(t *testing.T) (*testutil.FakeProvider, *testutil.RecordingInvalidator, *Inbox, StatusService) {
	t.Helper()
	fp := testutil.NewFakeProvider()
	inv := &testutil.RecordingInvalidator{}
	inbox := &Inbox{}
	return fp, inv, inbox, NewStatusService(fp, inv, inbox, nil)
}

func TestStatus_FieldColumns(t *testing.T) {
	tests := []struct {
		field  domain.StatusField
		column string
	}{
		{domain.FieldOrderStatus, "order_status_id"},
		{domain.FieldPaymentStatus, "payment_status_id"},
		{domain.FieldProductionStatus, "production_status_id"},
	}
	for _, tt := range tests {
		t.Run(string(tt.field), func(t *testing.T) {
			fp, inv, _, svc := setupStatus(t)

			require.NoError(t, svc.UpdateStatus(context.Background(), testutil.NewTestOrder(4), tt.field, 2, "Ready"))

			updates := fp.Calls("update")
			require.Len(t, updates, 1)
			assert.Equal(t, int64(4), updates[0].ID)
			assert.Equal(t, int64(2), updates[0].Fields[tt.column])
			assert.Contains(t, inv.Resource, provider.ResourceOrders)
		})
	}
}

func TestStatus_OrderStatusDoesNotTouchAutoFlagOrEvents(t *testing.T) {
	fp, _, _, svc := setupStatus(t)

	require.NoError(t, svc.UpdateStatus(context.Background(), testutil.NewTestOrder(1), domain.FieldOrderStatus, 4, "Issued"))

	updates := fp.Calls("update")
	require.Len(t, updates, 1)
	assert.Equal(t, map[string]any{"order_status_id": int64(4)}, updates[0].Fields)
	assert.Empty(t, fp.Calls("create"))
}

func TestStatus_ProductionStatusClearsAutoAndAppendsEvent(t *testing.T) {
	fp, inv, inbox, svc := setupStatus(t)

	require.NoError(t, svc.UpdateStatus(context.Background(), testutil.NewTestOrder(9), domain.FieldProductionStatus, 3, "Grinding"))

	updates := fp.Calls("update")
	require.Len(t, updates, 1)
	assert.Equal(t, false, updates[0].Fields["production_status_auto"])

	creates := fp.Calls("create")
	require.Len(t, creates, 1)
	assert.Equal(t, provider.ResourceProductionEvents, creates[0].Resource)
	assert.Equal(t, map[string]any{
		"order_id":             int64(9),
		"detail_id":            nil,
		"production_status_id": int64(3),
		"payload":              "{}",
	}, creates[0].Fields)

	assert.Equal(t, []string{provider.ResourceProductionEvents, provider.ResourceOrders}, inv.Resource)
	notices := inbox.Drain()
	require.Len(t, notices, 1)
	assert.Equal(t, NoticeSuccess, notices[0].Level)
	assert.Contains(t, notices[0].Message, "Grinding")
}

func TestStatus_DuplicateEventStillSucceeds(t *testing.T) {
	fp, inv, inbox, svc := setupStatus(t)
	fp.CreateErr = testutil.BackendFailure(provider.ResourceProductionEvents, "create", "duplicate key value violates unique constraint")

	err := svc.UpdateStatus(context.Background(), testutil.NewTestOrder(2), domain.FieldProductionStatus, 2, "Cutting")
	require.NoError(t, err)
	assert.Equal(t, []string{provider.ResourceOrders}, inv.Resource)
	notices := inbox.Drain()
	require.Len(t, notices, 1)
	assert.Equal(t, NoticeSuccess, notices[0].Level)
}

func TestStatus_OtherEventFailureStillSucceeds(t *testing.T) {
	fp, inv, _, svc := setupStatus(t)
	fp.CreateErr = testutil.BackendFailure(provider.ResourceProductionEvents, "create", "connection reset")

	require.NoError(t, svc.UpdateStatus(context.Background(), testutil.NewTestOrder(2), domain.FieldProductionStatus, 2, "Cutting"))
	assert.Equal(t, 1, inv.Count())
}

func TestStatus_UnknownFieldMakesNoCall(t *testing.T) {
	fp, inv, inbox, svc := setupStatus(t)

	err := svc.UpdateStatus(context.Background(), testutil.NewTestOrder(1), domain.StatusField("delivery_status"), 1, "Shipped")
	assert.ErrorIs(t, err, ErrUnknownStatusField)
	assert.Empty(t, fp.Calls(""))
	assert.Zero(t, inv.Count())
	notices := inbox.Drain()
	require.Len(t, notices, 1)
	assert.Equal(t, NoticeError, notices[0].Level)
}

func TestStatus_PrimaryFailureRejects(t *testing.T) {
	fp, inv, inbox, svc := setupStatus(t)
	fp.UpdateErr = testutil.BackendFailure(provider.ResourceOrders, "update", "row is locked")

	err := svc.UpdateStatus(context.Background(), testutil.NewTestOrder(1), domain.FieldProductionStatus, 1, "Film purchase")
	require.Error(t, err)
	assert.Empty(t, fp.Calls("create"), "no event for a failed update")
	assert.Zero(t, inv.Count())
	notices := inbox.Drain()
	require.Len(t, notices, 1)
	assert.Contains(t, notices[0].Message, "row is locked")
	assert.False(t, svc.IsUpdating(1))
}

func TestStatus_SQLiteRoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	testutil.MustExec(t, database, `INSERT INTO production_statuses (name, code) VALUES ('Cutting', 'cutting')`)
	testutil.MustExec(t, database, `INSERT INTO orders (name, schedule_date) VALUES ('F-1', '2025-11-10')`)
	p := provider.NewSQLProvider(database, db.DriverSQLite)
	bus := provider.NewBus()
	svc := NewStatusService(p, bus, nil, nil)
	ctx := context.Background()
	order := testutil.NewTestOrder(1)

	require.NoError(t, svc.UpdateStatus(ctx, order, domain.FieldProductionStatus, 1, "Cutting"))
	// A second identical pick hits the unique event index and is absorbed.
	require.NoError(t, svc.UpdateStatus(ctx, order, domain.FieldProductionStatus, 1, "Cutting"))

	var statusID, auto int
	require.NoError(t, database.QueryRow(`SELECT production_status_id, production_status_auto FROM orders WHERE id = 1`).Scan(&statusID, &auto))
	assert.Equal(t, 1, statusID)
	assert.Equal(t, 0, auto)

	var events int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM order_production_events WHERE order_id = 1`).Scan(&events))
	assert.Equal(t, 1, events)
}
