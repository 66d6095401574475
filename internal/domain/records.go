package domain

// Record schemas as read from the record provider. Each struct lists the
// fields the board reads from one resource; the repository package decodes
// provider rows into them.

// OrderRecord is a row of the orders_view resource.
type OrderRecord struct {
	ID                   int64
	Name                 string
	ScheduleDate         *CalendarDay
	Area                 any
	ClientName           string
	ManagerID            *int64
	OrderStatusID        *int64
	OrderStatusName      string
	PaymentStatusID      *int64
	PaymentStatusName    string
	ProductionStatusID   *int64
	ProductionStatusName string
	ProductionStatusAuto bool
	Comment              string
}

// DetailRecord is a row of the order_details resource.
type DetailRecord struct {
	ID                 int64
	OrderID            int64
	MillingTypeID      *int64
	MaterialID         *int64
	ProductionStatusID *int64
	Area               any
	Quantity           int
	Note               string
	Deleted            bool
}

// LookupRecord is a row of a small id/name reference table.
type LookupRecord struct {
	ID   int64
	Name string
}

// ProductionStatusRecord is a row of the production_statuses resource.
type ProductionStatusRecord struct {
	ID   int64
	Name string
	Code StageCode
}

// ProductionEventRecord is a row of the append-only order_production_events
// resource.
type ProductionEventRecord struct {
	ID                 int64
	OrderID            int64
	DetailID           *int64
	ProductionStatusID int64
	Payload            string
}

// OrderLinkRecord links a primary order to a secondary (fitting) order.
type OrderLinkRecord struct {
	ID                 int64
	OrderID            int64
	SecondaryOrderID   int64
	SecondaryOrderName string
}

// EmployeeRecord is a row of the employees resource.
type EmployeeRecord struct {
	ID       int64
	FullName string
}
