package schedule

import (
	"testing"

	"github.com/alexanderramin/prodboard/internal/domain"
	"github.com/alexanderramin/prodboard/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestFilter_MatchesAcrossFields(t *testing.T) {
	orders := []domain.ScheduledOrder{
		testutil.NewTestOrder(1, testutil.WithClient("Kuhni Sever")),
		testutil.NewTestOrder(2, testutil.WithClient("Interior Lab"), testutil.WithLinkedOrder("Doweling D-101")),
		testutil.NewTestOrder(3, testutil.WithClient("Mebel-Profi")),
	}

	assert.Equal(t, []int64{1}, testutil.IDs(Filter(orders, "sever")))
	assert.Equal(t, []int64{2}, testutil.IDs(Filter(orders, "D-101")))
}

func TestFilter_KeepsSourceOrder(t *testing.T) {
	orders := []domain.ScheduledOrder{
		testutil.NewTestOrder(7, testutil.WithClient("Studio Dvor")),
		testutil.NewTestOrder(3, testutil.WithClient("Studio")),
	}

	assert.Equal(t, []int64{7, 3}, testutil.IDs(Filter(orders, "studio")))
}

func TestFilter_ProductionKeywordsFallback(t *testing.T) {
	o := testutil.NewTestOrder(1)
	o.ProductionKeywords = "cutting grinding"

	assert.Len(t, Filter([]domain.ScheduledOrder{o}, "grind"), 1)
}

func TestFilter_EmptyQuery(t *testing.T) {
	orders := []domain.ScheduledOrder{testutil.NewTestOrder(1), testutil.NewTestOrder(2)}
	assert.Equal(t, orders, Filter(orders, "  "))
}
