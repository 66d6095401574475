package schedule

import (
	"math"
	"strings"

	"github.com/alexanderramin/prodboard/internal/domain"
	"github.com/shopspring/decimal"
)

// Area converts a raw area value to a decimal. Missing, non-numeric,
// NaN and infinite values count as zero.
func Area(v any) decimal.Decimal {
	switch n := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return n
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(n)
	case float32:
		f := float64(n)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat32(n)
	case int64:
		return decimal.NewFromInt(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case int32:
		return decimal.NewFromInt32(n)
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(strings.ReplaceAll(n, ",", ".")))
		if err != nil {
			return decimal.Zero
		}
		return d
	case []byte:
		return Area(string(n))
	}
	return decimal.Zero
}

// TotalArea sums the area of every order in the group.
func TotalArea(orders []domain.ScheduledOrder) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(Area(o.Area))
	}
	return total
}

// TotalAreaFloat is TotalArea as a float64. It never returns NaN.
func TotalAreaFloat(orders []domain.ScheduledOrder) float64 {
	f, _ := TotalArea(orders).Float64()
	return f
}

// DetailArea sums the area of an order's detail lines.
func DetailArea(details []domain.DetailSummary) decimal.Decimal {
	total := decimal.Zero
	for _, d := range details {
		total = total.Add(Area(d.Area))
	}
	return total
}
