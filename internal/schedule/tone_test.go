package schedule

import (
	"testing"

	"github.com/alexanderramin/prodboard/internal/domain"
	"github.com/alexanderramin/prodboard/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCardTone(t *testing.T) {
	today := domain.NewDay(2025, 11, 10)

	tests := []struct {
		name  string
		order domain.ScheduledOrder
		want  domain.CardTone
	}{
		{"issued wins over overdue", testutil.NewTestOrder(1, testutil.WithDate("2025-11-01"), testutil.WithOrderStatus("Issued")), domain.ToneIssued},
		{"past and not issued", testutil.NewTestOrder(2, testutil.WithDate("2025-11-09")), domain.ToneOverdue},
		{"stage passed", testutil.NewTestOrder(3, testutil.WithStages(domain.StageCutting)), domain.ToneInProduction},
		{"nothing yet", testutil.NewTestOrder(4, testutil.WithDate("2025-11-12")), domain.TonePlanned},
		{"undated", testutil.NewTestOrder(5, testutil.WithoutDate()), domain.TonePlanned},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CardTone(tc.order, today, "Issued"))
		})
	}
}

func TestStageProgress(t *testing.T) {
	o := testutil.NewTestOrder(1, testutil.WithStages(domain.StageGrinding, domain.StageFilmPurchase, "custom"))

	progress := StageProgress(o)

	assert.Len(t, progress, len(domain.StageSequence))
	assert.Equal(t, Stage{Code: domain.StageFilmPurchase, Passed: true}, progress[0])
	assert.Equal(t, Stage{Code: domain.StageCutting, Passed: false}, progress[1])
	assert.Equal(t, Stage{Code: domain.StageGrinding, Passed: true}, progress[2])
	assert.Equal(t, 2, StagesDone(o), "codes outside the canonical sequence are not counted")
}
