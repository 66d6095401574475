package formatter

import (
	"strings"
	"testing"

	"github.com/alexanderramin/prodboard/internal/board"
	"github.com/alexanderramin/prodboard/internal/domain"
	"github.com/alexanderramin/prodboard/internal/layout"
	"github.com/alexanderramin/prodboard/internal/testutil"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"fits", "Kuhni", 10, "Kuhni"},
		{"exact", "Kuhni", 5, "Kuhni"},
		{"cut", "Kuhni Sever", 6, "Kuhni…"},
		{"one", "Kuhni", 1, "…"},
		{"zero", "Kuhni", 0, ""},
		{"runes", "Кухни Север", 4, "Кух…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.n))
		})
	}
}

func TestStageBarPlain(t *testing.T) {
	o := testutil.NewTestOrder(1, testutil.WithStages(domain.StageFilmPurchase, domain.StageGrinding))
	assert.Equal(t, "■□■□□", StageBarPlain(o))
	assert.Equal(t, "□□□□□", StageBarPlain(testutil.NewTestOrder(2)))
}

func TestRenderCard_Modes(t *testing.T) {
	o := testutil.NewTestOrder(7,
		testutil.WithClient("Studio Dvor"),
		testutil.WithArea("2.5"),
		testutil.WithLinkedOrder("Doweling D-101"),
		testutil.WithProductionStatus("Cutting"),
	)
	o.Details = []domain.DetailSummary{{ID: 1, MillingTypeName: "Classic", MaterialName: "MDF 16", Area: 0.4, Quantity: 2}}

	detailed := RenderCard(o, domain.ViewDetailed, 40, CardState{Tone: domain.TonePlanned})
	assert.Contains(t, detailed, "F-7")
	assert.Contains(t, detailed, "Doweling D-101")
	assert.Contains(t, detailed, "Studio Dvor")
	assert.Contains(t, detailed, "Cutting")
	assert.Contains(t, detailed, "2.50 m²")
	assert.Contains(t, detailed, "Classic MDF 16 0.40×2")
	assert.NotContains(t, detailed, "Σ details", "a single line needs no total")

	o.Details = append(o.Details, domain.DetailSummary{ID: 2, MillingTypeName: "Shaker", MaterialName: "MDF 19", Area: "0.35", Quantity: 1})
	detailed = RenderCard(o, domain.ViewDetailed, 40, CardState{Tone: domain.TonePlanned})
	assert.Contains(t, detailed, "Σ details 0.75 m²")

	compact := RenderCard(o, domain.ViewCompact, 40, CardState{})
	assert.Contains(t, compact, "Studio Dvor")
	assert.NotContains(t, compact, "Classic")
	assert.NotContains(t, compact, "Doweling")

	brief := RenderCard(o, domain.ViewBrief, 40, CardState{})
	assert.Equal(t, 1, lipgloss.Height(brief))
	assert.Contains(t, brief, "2.50")
}

func TestRenderCard_Decorations(t *testing.T) {
	o := testutil.NewTestOrder(3)
	out := RenderCard(o, domain.ViewBrief, 30, CardState{Picked: true, Busy: true})
	assert.Contains(t, out, "⇄ F-3 …")
}

func TestRenderGrid(t *testing.T) {
	today := domain.NewDay(2025, 11, 10)
	days := []domain.CalendarDay{today, today.AddDays(1), today.AddDays(2)}
	orders := []domain.ScheduledOrder{
		testutil.NewTestOrder(1, testutil.WithOrderStatus("Issued"), testutil.WithArea(1.25)),
		testutil.NewTestOrder(2, testutil.WithDate("2025-11-11")),
	}
	cols := board.Project(days, orders, today, "Issued", "")
	v := board.View{
		Columns: cols,
		Rows:    board.Rows(cols, 2),
		Layout:  layout.Result{ColumnWidth: 200, ColumnsPerRow: 2},
		Mode:    domain.ViewBrief,
		Scale:   1,
	}

	out := RenderGrid(v, GridOptions{Today: today, Issued: "Issued", Cursor: &Cursor{Day: 1, Card: 0}})
	require.NotEmpty(t, out)
	assert.Contains(t, out, "Mon 10.11")
	assert.Contains(t, out, "Wed 12.11")
	assert.Contains(t, out, "Σ 1.25 m²")
	assert.Contains(t, out, "✓", "issued day is flagged")
	assert.Equal(t, 2, strings.Count(out, "Σ 0.00 m²")+strings.Count(out, "Σ 1.00 m²"))
	assert.Equal(t, 25, ColumnCells(v))
}

func TestColumnCells_Minimum(t *testing.T) {
	v := board.View{Layout: layout.Result{ColumnWidth: 40}, Scale: 1}
	assert.Equal(t, MinColumnCells, ColumnCells(v))
}

func TestRenderTable_OrderRows(t *testing.T) {
	o := testutil.NewTestOrder(4, testutil.WithClient("Interior Lab"), testutil.WithArea(3))
	out := RenderTable(OrderHeaders, OrderRows([]domain.ScheduledOrder{o, testutil.NewTestOrder(5, testutil.WithoutDate())}))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "PRODUCTION")
	assert.Contains(t, lines[2], "10.11.2025")
	assert.Contains(t, lines[2], "Interior Lab")
	assert.Contains(t, lines[2], "3.00")
	assert.Empty(t, RenderTable(nil, nil))
}
