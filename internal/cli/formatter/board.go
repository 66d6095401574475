package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/prodboard/internal/board"
	"github.com/alexanderramin/prodboard/internal/domain"
	"github.com/alexanderramin/prodboard/internal/schedule"
	"github.com/charmbracelet/lipgloss"
)

// PixelsPerCell converts layout pixels into terminal cells.
const PixelsPerCell = 8

// MinColumnCells is the narrowest day column the grid renders.
const MinColumnCells = 18

// Cursor points at a card (or the day header when Card is -1) in the grid.
type Cursor struct {
	Day  int
	Card int
}

// GridOptions carries the interactive state the renderer highlights.
type GridOptions struct {
	Today  domain.CalendarDay
	Issued string
	Cursor *Cursor
	// Picked is the id of the order being dragged, zero when none.
	Picked int64
	Busy   func(orderID int64) bool
}

// ColumnCells is the width of one day column in terminal cells.
func ColumnCells(v board.View) int {
	return max(int(v.Layout.ColumnWidth*v.Scale)/PixelsPerCell, MinColumnCells)
}

// RenderGrid draws the board rows side by side.
func RenderGrid(v board.View, opts GridOptions) string {
	width := ColumnCells(v)
	var rows []string
	idx := 0
	for _, row := range v.Rows {
		cols := make([]string, len(row))
		for i, col := range row {
			cols[i] = RenderDay(col, idx, v.Mode, width, opts)
			idx++
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	}
	return strings.Join(rows, "\n")
}

// RenderDay draws one day column: header, total area and the cards.
func RenderDay(col board.DayColumn, idx int, mode domain.ViewMode, width int, opts GridOptions) string {
	focusedDay := opts.Cursor != nil && opts.Cursor.Day == idx

	head := col.Day.Time().Format("Mon 02.01")
	headStyle := StyleBold
	switch {
	case col.Today:
		headStyle = StyleHeader
	case col.Weekend:
		headStyle = StyleDim
	}
	header := headStyle.Render(head)
	if col.AllIssued {
		header += " " + StyleGreen.Render("✓")
	}
	if focusedDay && opts.Cursor.Card < 0 {
		header = StylePurple.Render("▸ ") + header
	}

	lines := []string{header, Dim(fmt.Sprintf("Σ %s m²", col.TotalArea.StringFixed(2)))}
	for i, o := range col.Orders {
		focused := focusedDay && opts.Cursor.Card == i
		busy := opts.Busy != nil && opts.Busy(o.ID)
		lines = append(lines, RenderCard(o, mode, width-2, CardState{
			Tone:    schedule.CardTone(o, opts.Today, opts.Issued),
			Focused: focused,
			Picked:  opts.Picked == o.ID,
			Busy:    busy,
		}))
	}
	if len(col.Orders) == 0 {
		lines = append(lines, Dim("—"))
	}

	border := ColorDim
	if focusedDay {
		border = ColorPurple
	}
	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Render(strings.Join(lines, "\n"))
}

// CardState is the per-card decoration.
type CardState struct {
	Tone    domain.CardTone
	Focused bool
	Picked  bool
	Busy    bool
}

// RenderCard draws an order card at the density of mode.
func RenderCard(o domain.ScheduledOrder, mode domain.ViewMode, width int, st CardState) string {
	title := o.Name
	if st.Picked {
		title = "⇄ " + title
	}
	if st.Busy {
		title += " …"
	}
	titleStyle := lipgloss.NewStyle().Foreground(ToneColor(st.Tone)).Bold(true)
	if st.Focused {
		titleStyle = titleStyle.Reverse(true)
	}
	area := schedule.Area(o.Area).StringFixed(2)

	var lines []string
	switch mode {
	case domain.ViewBrief:
		lines = append(lines, titleStyle.Render(Truncate(title, width-7))+" "+Dim(area))
	case domain.ViewCompact:
		lines = append(lines,
			titleStyle.Render(Truncate(title, width)),
			Truncate(o.ClientName, width),
			StageBar(o)+" "+Dim(area+" m²"),
		)
	default:
		lines = append(lines, titleStyle.Render(Truncate(title, width)))
		if o.LinkedOrderName != nil {
			lines = append(lines, StylePurple.Render(Truncate("↳ "+*o.LinkedOrderName, width)))
		}
		lines = append(lines, Truncate(o.ClientName, width))
		if o.ManagerName != "" {
			lines = append(lines, Dim(Truncate(o.ManagerName, width)))
		}
		status := strings.Join(nonEmpty(o.OrderStatus, o.PaymentStatus), " · ")
		if status != "" {
			lines = append(lines, Dim(Truncate(status, width)))
		}
		if p := o.ProductionLabel(); p != "" {
			lines = append(lines, StyleYellow.Render(Truncate(p, width)))
		}
		lines = append(lines, StageBar(o)+" "+Dim(area+" m²"))
		for _, d := range o.Details {
			line := fmt.Sprintf("%s %s %s×%d", d.MillingTypeName, d.MaterialName, schedule.Area(d.Area).StringFixed(2), d.Quantity)
			lines = append(lines, Dim(Truncate(strings.TrimSpace(line), width)))
		}
		if len(o.Details) > 1 {
			lines = append(lines, Dim(Truncate("Σ details "+schedule.DetailArea(o.Details).StringFixed(2)+" m²", width)))
		}
	}
	return strings.Join(lines, "\n")
}

// Truncate shortens s to at most n visible runes, marking the cut with "…".
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

func nonEmpty(ss ...string) []string {
	var out []string
	for _, s := range ss {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
