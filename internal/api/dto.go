package api

import (
	"github.com/alexanderramin/prodboard/internal/board"
	"github.com/alexanderramin/prodboard/internal/domain"
	"github.com/alexanderramin/prodboard/internal/schedule"
	"github.com/shopspring/decimal"
)

// BoardResponse is the body of GET /api/board.
type BoardResponse struct {
	Pivot    string     `json:"pivot"`
	Today    string     `json:"today"`
	Start    string     `json:"start"`
	End      string     `json:"end"`
	Mode     string     `json:"mode"`
	Layout   LayoutDTO  `json:"layout"`
	Rows     [][]DayDTO `json:"rows"`
	Warnings []string   `json:"warnings"`
}

type LayoutDTO struct {
	ColumnWidth   float64 `json:"column_width"`
	ColumnsPerRow int     `json:"columns_per_row"`
	Scale         float64 `json:"scale"`
}

type DayDTO struct {
	Key       string          `json:"key"`
	Date      string          `json:"date"`
	Today     bool            `json:"today"`
	Weekend   bool            `json:"weekend"`
	TotalArea decimal.Decimal `json:"total_area"`
	AllIssued bool            `json:"all_issued"`
	Orders    []OrderDTO      `json:"orders"`
}

type OrderDTO struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	ScheduleDate     string          `json:"schedule_date"`
	Area             decimal.Decimal `json:"area"`
	Client           string          `json:"client,omitempty"`
	Manager          string          `json:"manager,omitempty"`
	OrderStatus      string          `json:"order_status,omitempty"`
	PaymentStatus    string          `json:"payment_status,omitempty"`
	ProductionStatus string          `json:"production_status,omitempty"`
	LinkedOrder      *string         `json:"linked_order,omitempty"`
	Tone             domain.CardTone `json:"tone"`
	Stages           []StageDTO      `json:"stages"`
	Details          []DetailDTO     `json:"details,omitempty"`
}

type StageDTO struct {
	Code   domain.StageCode `json:"code"`
	Passed bool             `json:"passed"`
}

type DetailDTO struct {
	ID          int64           `json:"id"`
	MillingType string          `json:"milling_type,omitempty"`
	Material    string          `json:"material,omitempty"`
	Stage       string          `json:"stage,omitempty"`
	Area        decimal.Decimal `json:"area"`
	Quantity    int             `json:"quantity"`
}

func toDayDTO(c board.DayColumn, today domain.CalendarDay, issued string, withDetails bool) DayDTO {
	orders := make([]OrderDTO, len(c.Orders))
	for i, o := range c.Orders {
		orders[i] = toOrderDTO(o, today, issued, withDetails)
	}
	return DayDTO{
		Key:       c.Key,
		Date:      c.Day.ISO(),
		Today:     c.Today,
		Weekend:   c.Weekend,
		TotalArea: c.TotalArea,
		AllIssued: c.AllIssued,
		Orders:    orders,
	}
}

func toOrderDTO(o domain.ScheduledOrder, today domain.CalendarDay, issued string, withDetails bool) OrderDTO {
	dto := OrderDTO{
		ID:               o.ID,
		Name:             o.Name,
		Area:             schedule.Area(o.Area),
		Client:           o.ClientName,
		Manager:          o.ManagerName,
		OrderStatus:      o.OrderStatus,
		PaymentStatus:    o.PaymentStatus,
		ProductionStatus: o.ProductionLabel(),
		LinkedOrder:      o.LinkedOrderName,
		Tone:             schedule.CardTone(o, today, issued),
	}
	if o.ScheduleDate != nil {
		dto.ScheduleDate = o.ScheduleDate.ISO()
	}
	for _, s := range schedule.StageProgress(o) {
		dto.Stages = append(dto.Stages, StageDTO{Code: s.Code, Passed: s.Passed})
	}
	if withDetails {
		for _, d := range o.Details {
			dto.Details = append(dto.Details, DetailDTO{
				ID:          d.ID,
				MillingType: d.MillingTypeName,
				Material:    d.MaterialName,
				Stage:       d.ProductionStageName,
				Area:        schedule.Area(d.Area),
				Quantity:    d.Quantity,
			})
		}
	}
	return dto
}
