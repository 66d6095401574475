package formatter

import (
	"strings"

	"github.com/alexanderramin/prodboard/internal/domain"
	"github.com/alexanderramin/prodboard/internal/schedule"
)

const (
	passedBlock  = "■"
	pendingBlock = "□"
)

// StageBar renders one block per canonical production stage, filled for
// stages the order has passed, e.g. ■■□□□.
func StageBar(o domain.ScheduledOrder) string {
	var b strings.Builder
	for _, s := range schedule.StageProgress(o) {
		if s.Passed {
			b.WriteString(StyleGreen.Render(passedBlock))
		} else {
			b.WriteString(StyleDim.Render(pendingBlock))
		}
	}
	return b.String()
}

// StageBarPlain is StageBar without color, for logs and tests.
func StageBarPlain(o domain.ScheduledOrder) string {
	var b strings.Builder
	for _, s := range schedule.StageProgress(o) {
		if s.Passed {
			b.WriteString(passedBlock)
		} else {
			b.WriteString(pendingBlock)
		}
	}
	return b.String()
}
