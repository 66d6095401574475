package layout

import (
	"testing"
	"time"

	"github.com/alexanderramin/prodboard/internal/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_WideColumnWidthIgnoresScale(t *testing.T) {
	a := Compute(1200, false, 0.72)
	b := Compute(1200, false, 1.0)

	assert.Equal(t, WideBaseWidth, a.ColumnWidth)
	assert.Equal(t, a.ColumnWidth, b.ColumnWidth)
	// available = 1168; (1168+12)/(260+12) = 4.33; (1168+12)/(187.2+12) = 5.92
	assert.Equal(t, 4, b.ColumnsPerRow)
	assert.Equal(t, 5, a.ColumnsPerRow)
}

func TestCompute_WideAtLeastOneColumn(t *testing.T) {
	r := Compute(100, false, 1.5)
	assert.Equal(t, 1, r.ColumnsPerRow)
}

func TestCompute_NarrowForcesTwoColumnsWhenTight(t *testing.T) {
	// available = 300 - 32 = 268 < 2*150+12
	r := Compute(300, true, 1.0)
	assert.Equal(t, 2, r.ColumnsPerRow)
	assert.Equal(t, NarrowMinWidth, r.ColumnWidth, "width never drops below scaled minimum")
}

func TestCompute_NarrowClampsToThree(t *testing.T) {
	r := Compute(1000, true, 1.0)
	assert.Equal(t, 3, r.ColumnsPerRow)
	assert.Equal(t, NarrowMaxWidth, r.ColumnWidth, "width capped at scaled maximum")
}

func TestCompute_NarrowSplitsEvenly(t *testing.T) {
	// available = 400 - 32 = 368; floor(368/162) = 2; (368-12)/2 = 178
	r := Compute(400, true, 1.0)
	assert.Equal(t, 2, r.ColumnsPerRow)
	assert.InDelta(t, 178.0, r.ColumnWidth, 1e-9)
}

func TestCompute_NarrowColumnsAlwaysInRange(t *testing.T) {
	for w := 0.0; w <= 2000; w += 37 {
		for _, s := range []float64{0.5, 0.72, 1.0, 1.3, 1.5} {
			r := Compute(w, true, s)
			assert.GreaterOrEqual(t, r.ColumnsPerRow, 2, "width=%v scale=%v", w, s)
			assert.LessOrEqual(t, r.ColumnsPerRow, 3, "width=%v scale=%v", w, s)
		}
	}
}

func TestCompute_Deterministic(t *testing.T) {
	for _, narrow := range []bool{true, false} {
		first := Compute(873, narrow, 0.9)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, Compute(873, narrow, 0.9))
		}
	}
}

func TestCompute_InvalidScaleFallsBackToOne(t *testing.T) {
	assert.Equal(t, Compute(1200, false, 1), Compute(1200, false, 0))
	assert.Equal(t, Compute(500, true, 1), Compute(500, true, -2))
}

func TestPartitionIntoRows(t *testing.T) {
	days := calendar.GenerateDays(time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC), 0, 9)

	rows := PartitionIntoRows(days, 4)
	require.Len(t, rows, 3)
	assert.Len(t, rows[0], 4)
	assert.Len(t, rows[1], 4)
	assert.Len(t, rows[2], 2)
	assert.Equal(t, "10.11.2025", rows[0][0].Key())
	assert.Equal(t, "19.11.2025", rows[2][1].Key())

	assert.Equal(t, rows, PartitionIntoRows(days, 4), "must be stable across invocations")
}

func TestPartitionIntoRows_EdgeCases(t *testing.T) {
	assert.Empty(t, PartitionIntoRows(nil, 3))

	days := calendar.GenerateDays(time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC), 0, 2)
	rows := PartitionIntoRows(days, 0)
	assert.Len(t, rows, 3, "non-positive columns fall back to one per row")
}
