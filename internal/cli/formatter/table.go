package formatter

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/prodboard/internal/domain"
	"github.com/alexanderramin/prodboard/internal/schedule"
	"github.com/charmbracelet/lipgloss"
)

// RenderTable renders an aligned table with a header separator line.
// Column widths are measured on visible width so styled cells align.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	cols := len(headers)

	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	const colGap = 2
	var b strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := max(widths[i]-lipgloss.Width(cell), 0)
			b.WriteString(style(cell))
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", pad+colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return StyleHeader.Render(s) })
	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
	for _, row := range rows {
		writeRow(row, func(s string) string { return s })
	}
	return b.String()
}

// OrderRows lists orders as table rows: id, date, name, client, status,
// production, stages and area.
func OrderRows(orders []domain.ScheduledOrder) [][]string {
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		date := ""
		if o.ScheduleDate != nil {
			date = o.ScheduleDate.Key()
		}
		rows = append(rows, []string{
			strconv.FormatInt(o.ID, 10),
			date,
			o.Name,
			o.ClientName,
			o.OrderStatus,
			o.ProductionLabel(),
			StageBarPlain(o),
			schedule.Area(o.Area).StringFixed(2),
		})
	}
	return rows
}

// OrderHeaders are the column titles matching OrderRows.
var OrderHeaders = []string{"ID", "DATE", "ORDER", "CLIENT", "STATUS", "PRODUCTION", "STAGES", "AREA"}
