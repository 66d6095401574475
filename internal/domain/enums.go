package domain

// StatusField names which of an order's three status columns a change targets.
type StatusField string

const (
	FieldOrderStatus      StatusField = "order_status"
	FieldPaymentStatus    StatusField = "payment_status"
	FieldProductionStatus StatusField = "production_status"
)

// ValidStatusFields is the canonical set of accepted status field kinds.
var ValidStatusFields = map[StatusField]bool{
	FieldOrderStatus:      true,
	FieldPaymentStatus:    true,
	FieldProductionStatus: true,
}

// Label is the human-readable name of the field.
func (f StatusField) Label() string {
	switch f {
	case FieldOrderStatus:
		return "order status"
	case FieldPaymentStatus:
		return "payment status"
	case FieldProductionStatus:
		return "production status"
	}
	return string(f)
}

// LookupResource is the reference resource listing the field's statuses.
func (f StatusField) LookupResource() string {
	switch f {
	case FieldOrderStatus:
		return "order_statuses"
	case FieldPaymentStatus:
		return "payment_statuses"
	case FieldProductionStatus:
		return "production_statuses"
	}
	return ""
}

// StageCode is the short identifier of a production step, as stored on the
// production status lookup table.
type StageCode string

const (
	StageFilmPurchase StageCode = "film_purchase"
	StageCutting      StageCode = "cutting"
	StageGrinding     StageCode = "grinding"
	StageFilming      StageCode = "filming"
	StagePackaging    StageCode = "packaging"
)

// StageSequence is the order in which a facade passes through the shop.
var StageSequence = []StageCode{
	StageFilmPurchase,
	StageCutting,
	StageGrinding,
	StageFilming,
	StagePackaging,
}

// ViewMode is one of the board's three rendering densities.
type ViewMode string

const (
	ViewDetailed ViewMode = "detailed"
	ViewCompact  ViewMode = "compact"
	ViewBrief    ViewMode = "brief"
)

// ValidViewModes is the canonical set of accepted view mode strings.
var ValidViewModes = map[string]bool{
	"detailed": true, "compact": true, "brief": true,
}

// Scalable reports whether card zoom has any effect in this mode.
func (m ViewMode) Scalable() bool {
	return m == ViewDetailed || m == ViewCompact
}

// CardTone is the derived color class of an order card.
type CardTone string

const (
	ToneIssued       CardTone = "issued"
	ToneOverdue      CardTone = "overdue"
	ToneInProduction CardTone = "in_production"
	TonePlanned      CardTone = "planned"
)
