package repository

import (
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/prodboard/internal/domain"
	"github.com/alexanderramin/prodboard/internal/provider"
)

// asInt64 converts a driver value to int64. Reports false for NULL and for
// values that are not integral.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		if n != float64(int64(n)) {
			return 0, false
		}
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	}
	return 0, false
}

// nullableInt64 returns a pointer to the integer value of v, or nil.
func nullableInt64(v any) *int64 {
	n, ok := asInt64(v)
	if !ok {
		return nil
	}
	return &n
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	case []byte:
		return string(s)
	case time.Time:
		return s.Format(time.RFC3339)
	}
	return ""
}

// asBool accepts native booleans and SQLite's 0/1 integers.
func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case int64:
		return b != 0
	case int:
		return b != 0
	case string:
		parsed, err := strconv.ParseBool(b)
		return err == nil && parsed
	}
	return false
}

// asDay converts a stored schedule date. Unparseable values yield nil.
func asDay(v any) *domain.CalendarDay {
	switch d := v.(type) {
	case time.Time:
		day := domain.DayOf(d)
		return &day
	case string:
		if d == "" {
			return nil
		}
		day, err := domain.ParseDay(d)
		if err != nil {
			return nil
		}
		return &day
	}
	return nil
}

func decodeOrder(r provider.Record) domain.OrderRecord {
	id, _ := asInt64(r["id"])
	return domain.OrderRecord{
		ID:                   id,
		Name:                 asString(r["name"]),
		ScheduleDate:         asDay(r["schedule_date"]),
		Area:                 r["area"],
		ClientName:           asString(r["client_name"]),
		ManagerID:            nullableInt64(r["manager_id"]),
		OrderStatusID:        nullableInt64(r["order_status_id"]),
		OrderStatusName:      asString(r["order_status_name"]),
		PaymentStatusID:      nullableInt64(r["payment_status_id"]),
		PaymentStatusName:    asString(r["payment_status_name"]),
		ProductionStatusID:   nullableInt64(r["production_status_id"]),
		ProductionStatusName: asString(r["production_status_name"]),
		ProductionStatusAuto: asBool(r["production_status_auto"]),
		Comment:              asString(r["comment"]),
	}
}

func decodeDetail(r provider.Record) domain.DetailRecord {
	id, _ := asInt64(r["id"])
	orderID, _ := asInt64(r["order_id"])
	qty, _ := asInt64(r["quantity"])
	return domain.DetailRecord{
		ID:                 id,
		OrderID:            orderID,
		MillingTypeID:      nullableInt64(r["milling_type_id"]),
		MaterialID:         nullableInt64(r["material_id"]),
		ProductionStatusID: nullableInt64(r["production_status_id"]),
		Area:               r["area"],
		Quantity:           int(qty),
		Note:               asString(r["note"]),
		Deleted:            asBool(r["deleted"]),
	}
}

func decodeLookup(r provider.Record) domain.LookupRecord {
	id, _ := asInt64(r["id"])
	return domain.LookupRecord{ID: id, Name: asString(r["name"])}
}

func decodeProductionStatus(r provider.Record) domain.ProductionStatusRecord {
	id, _ := asInt64(r["id"])
	return domain.ProductionStatusRecord{
		ID:   id,
		Name: asString(r["name"]),
		Code: domain.StageCode(asString(r["code"])),
	}
}

func decodeEvent(r provider.Record) domain.ProductionEventRecord {
	id, _ := asInt64(r["id"])
	orderID, _ := asInt64(r["order_id"])
	statusID, _ := asInt64(r["production_status_id"])
	return domain.ProductionEventRecord{
		ID:                 id,
		OrderID:            orderID,
		DetailID:           nullableInt64(r["detail_id"]),
		ProductionStatusID: statusID,
		Payload:            asString(r["payload"]),
	}
}

func decodeLink(r provider.Record) domain.OrderLinkRecord {
	id, _ := asInt64(r["id"])
	orderID, _ := asInt64(r["order_id"])
	secID, _ := asInt64(r["secondary_order_id"])
	return domain.OrderLinkRecord{
		ID:                 id,
		OrderID:            orderID,
		SecondaryOrderID:   secID,
		SecondaryOrderName: asString(r["secondary_order_name"]),
	}
}

func decodeEmployee(r provider.Record) domain.EmployeeRecord {
	id, _ := asInt64(r["id"])
	return domain.EmployeeRecord{ID: id, FullName: asString(r["full_name"])}
}
