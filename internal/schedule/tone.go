package schedule

import (
	"github.com/alexanderramin/prodboard/internal/domain"
)

// CardTone derives the color class of an order card. Issued orders win;
// an order scheduled before today that is not issued is overdue; any passed
// stage marks it as in production.
func CardTone(o domain.ScheduledOrder, today domain.CalendarDay, issued string) domain.CardTone {
	if IsIssued(o, issued) {
		return domain.ToneIssued
	}
	if o.ScheduleDate != nil && o.ScheduleDate.Before(today) {
		return domain.ToneOverdue
	}
	if len(o.PassedStages) > 0 {
		return domain.ToneInProduction
	}
	return domain.TonePlanned
}

// Stage is one step of the canonical production sequence and whether the
// order has passed it.
type Stage struct {
	Code   domain.StageCode
	Passed bool
}

// StageProgress lists the canonical stages with their passed flags.
func StageProgress(o domain.ScheduledOrder) []Stage {
	out := make([]Stage, len(domain.StageSequence))
	for i, code := range domain.StageSequence {
		out[i] = Stage{Code: code, Passed: o.HasStage(code)}
	}
	return out
}

// StagesDone counts canonical stages the order has passed.
func StagesDone(o domain.ScheduledOrder) int {
	n := 0
	for _, s := range StageProgress(o) {
		if s.Passed {
			n++
		}
	}
	return n
}
