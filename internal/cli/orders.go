package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alexanderramin/prodboard/internal/domain"
)

func parseOrderID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid order id %q", s)
	}
	return id, nil
}

// loadOrder reads one order with its status names resolved.
func (a *App) loadOrder(ctx context.Context, id int64) (domain.ScheduledOrder, error) {
	rec, err := a.Records.OrderByID(ctx, id)
	if err != nil {
		return domain.ScheduledOrder{}, err
	}
	return domain.ScheduledOrder{
		ID:               rec.ID,
		Name:             rec.Name,
		ScheduleDate:     rec.ScheduleDate,
		Area:             rec.Area,
		ClientName:       rec.ClientName,
		OrderStatus:      rec.OrderStatusName,
		PaymentStatus:    rec.PaymentStatusName,
		ProductionStatus: rec.ProductionStatusName,
	}, nil
}
