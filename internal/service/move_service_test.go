package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/prodboard/internal/domain"
	"github.com/alexanderramin/prodboard/internal/provider"
	"github.com/alexanderramin/prodboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMove(t *testing.T) (*testutil.FakeProvider, *testutil.RecordingInvalidator, *Inbox, MoveService) {
	t.Helper()
	fp := testutil.NewFakeProvider()
	inv := &testutil.RecordingInvalidator{}
	inbox := &Inbox{}
	return fp, inv, inbox, NewMoveService(fp, inv, inbox)
}

func TestMove_PersistsAndInvalidates(t *testing.T) {
	fp, inv, inbox, svc := setupMove(t)
	order := testutil.NewTestOrder(7, testutil.WithDate("2025-11-10"))
	target := domain.NewDay(2025, time.November, 12)

	state, err := svc.MoveOrder(context.Background(), order, "10.11.2025", target)
	require.NoError(t, err)
	assert.Equal(t, MoveSucceeded, state)

	updates := fp.Calls("update")
	require.Len(t, updates, 1)
	assert.Equal(t, provider.ResourceOrders, updates[0].Resource)
	assert.Equal(t, int64(7), updates[0].ID)
	assert.Equal(t, map[string]any{"schedule_date": "2025-11-12"}, updates[0].Fields)

	assert.Equal(t, []string{provider.ResourceOrders}, inv.Resource)

	notices := inbox.Drain()
	require.Len(t, notices, 1)
	assert.Equal(t, NoticeSuccess, notices[0].Level)
	assert.Contains(t, notices[0].Message, "F-7")
	assert.Contains(t, notices[0].Message, "12.11.2025")
}

func TestMove_SameDayIsNoop(t *testing.T) {
	fp, inv, inbox, svc := setupMove(t)
	order := testutil.NewTestOrder(1, testutil.WithDate("2025-11-10"))

	state, err := svc.MoveOrder(context.Background(), order, "10.11.2025", domain.NewDay(2025, time.November, 10))
	require.NoError(t, err)
	assert.Equal(t, MoveIdle, state)
	assert.Empty(t, fp.Calls(""))
	assert.Zero(t, inv.Count())
	assert.Empty(t, inbox.Drain())
}

func TestMove_FailureReportsBackendMessage(t *testing.T) {
	fp, inv, inbox, svc := setupMove(t)
	fp.UpdateErr = testutil.BackendFailure(provider.ResourceOrders, "update", "permission denied for table orders")
	order := testutil.NewTestOrder(3)

	state, err := svc.MoveOrder(context.Background(), order, "10.11.2025", domain.NewDay(2025, time.November, 14))
	assert.Equal(t, MoveFailed, state)
	require.Error(t, err)
	var be *provider.BackendError
	assert.True(t, errors.As(err, &be))

	assert.Zero(t, inv.Count(), "failed move must not invalidate")
	notices := inbox.Drain()
	require.Len(t, notices, 1)
	assert.Equal(t, NoticeError, notices[0].Level)
	assert.Contains(t, notices[0].Message, "permission denied for table orders")
	assert.False(t, svc.IsMoving(3))
}

func TestMove_RejectsZeroTarget(t *testing.T) {
	fp, _, _, svc := setupMove(t)

	_, err := svc.MoveOrder(context.Background(), testutil.NewTestOrder(1), "10.11.2025", domain.CalendarDay{})
	assert.Error(t, err)
	assert.Empty(t, fp.Calls(""))
}

func TestMove_SameOrderWhilePersisting(t *testing.T) {
	fp, _, _, svc := setupMove(t)
	fp.Block = make(chan struct{})
	order := testutil.NewTestOrder(5)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := svc.MoveOrder(ctx, order, "10.11.2025", domain.NewDay(2025, time.November, 11))
		done <- err
	}()

	require.Eventually(t, func() bool { return svc.IsMoving(5) }, time.Second, 5*time.Millisecond)

	state, err := svc.MoveOrder(ctx, order, "10.11.2025", domain.NewDay(2025, time.November, 12))
	assert.ErrorIs(t, err, ErrMoveInProgress)
	assert.Equal(t, MoveIdle, state)
	assert.Len(t, fp.Calls("update"), 1, "second move must not reach the backend")

	close(fp.Block)
	require.NoError(t, <-done)
	assert.False(t, svc.IsMoving(5))
}

func TestMove_DifferentOrdersAreIndependent(t *testing.T) {
	fp, _, _, svc := setupMove(t)
	fp.Block = make(chan struct{})
	ctx := context.Background()

	done := make(chan error, 2)
	for _, id := range []int64{1, 2} {
		order := testutil.NewTestOrder(id)
		go func() {
			_, err := svc.MoveOrder(ctx, order, "10.11.2025", domain.NewDay(2025, time.November, 11))
			done <- err
		}()
	}

	require.Eventually(t, func() bool { return svc.IsMoving(1) && svc.IsMoving(2) }, time.Second, 5*time.Millisecond)
	close(fp.Block)
	require.NoError(t, <-done)
	require.NoError(t, <-done)
	assert.Len(t, fp.Calls("update"), 2)
}
