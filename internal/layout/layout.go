// Package layout computes the board grid: column width and columns per row
// for a container width, viewport class and card scale.
package layout

import (
	"math"

	"github.com/alexanderramin/prodboard/internal/domain"
)

// Grid constants in pixels.
const (
	Padding        = 32.0
	Gap            = 12.0
	NarrowMinWidth = 150.0
	NarrowMaxWidth = 260.0
	WideBaseWidth  = 260.0

	NarrowMinColumns = 2
	NarrowMaxColumns = 3
)

// Result is the computed grid geometry.
type Result struct {
	ColumnWidth   float64
	ColumnsPerRow int
}

// Compute returns the grid geometry. It is a pure function of its inputs.
//
// In a narrow viewport columns shrink with the scale and 2 or 3 columns are
// shown. In a wide viewport the column keeps its base width (cards are
// scaled visually) and only the number of columns per row follows the scale.
func Compute(containerWidth float64, narrow bool, scale float64) Result {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 1
	}
	available := math.Max(containerWidth-Padding, 0)

	if narrow {
		return computeNarrow(available, scale)
	}
	return computeWide(available, scale)
}

func computeNarrow(available, scale float64) Result {
	minWidth := NarrowMinWidth * scale
	maxWidth := NarrowMaxWidth * scale

	if available < 2*minWidth+Gap {
		return Result{
			ColumnWidth:   math.Max(minWidth, (available-Gap)/2),
			ColumnsPerRow: NarrowMinColumns,
		}
	}

	cols := int(math.Floor(available / (minWidth + Gap)))
	cols = min(max(cols, NarrowMinColumns), NarrowMaxColumns)

	width := (available - Gap*float64(cols-1)) / float64(cols)
	return Result{
		ColumnWidth:   math.Min(width, maxWidth),
		ColumnsPerRow: cols,
	}
}

func computeWide(available, scale float64) Result {
	cols := int(math.Floor((available + Gap) / (WideBaseWidth*scale + Gap)))
	return Result{
		ColumnWidth:   WideBaseWidth,
		ColumnsPerRow: max(cols, 1),
	}
}

// PartitionIntoRows slices days into consecutive rows of columnsPerRow; the
// last row may be shorter. The input slice is not modified.
func PartitionIntoRows(days []domain.CalendarDay, columnsPerRow int) [][]domain.CalendarDay {
	columnsPerRow = max(columnsPerRow, 1)
	rows := make([][]domain.CalendarDay, 0, (len(days)+columnsPerRow-1)/columnsPerRow)
	for start := 0; start < len(days); start += columnsPerRow {
		end := min(start+columnsPerRow, len(days))
		row := make([]domain.CalendarDay, end-start)
		copy(row, days[start:end])
		rows = append(rows, row)
	}
	return rows
}
