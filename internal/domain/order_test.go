package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScheduledOrder_ProductionLabel(t *testing.T) {
	assert.Equal(t, "Packaging", ScheduledOrder{ProductionStatus: "Packaging", ProductionKeywords: "cutting"}.ProductionLabel())
	assert.Equal(t, "cutting grinding", ScheduledOrder{ProductionKeywords: "cutting grinding"}.ProductionLabel())
	assert.Empty(t, ScheduledOrder{}.ProductionLabel())
}

func TestScheduledOrder_HasStage(t *testing.T) {
	o := ScheduledOrder{PassedStages: []StageCode{StageCutting}}
	assert.True(t, o.HasStage(StageCutting))
	assert.False(t, o.HasStage(StagePackaging))
}

func TestNewDragPayload_UniqueGestures(t *testing.T) {
	o := ScheduledOrder{ID: 1}
	a := NewDragPayload(o, "10.11.2025")
	b := NewDragPayload(o, "10.11.2025")

	assert.NotEqual(t, a.GestureID, b.GestureID)
	assert.Equal(t, "10.11.2025", a.SourceKey)
}

func TestStatusField_Label(t *testing.T) {
	assert.Equal(t, "payment status", FieldPaymentStatus.Label())
	assert.Equal(t, "production_statuses", FieldProductionStatus.LookupResource())
	assert.Empty(t, StatusField("x").LookupResource())
	assert.False(t, ValidStatusFields[StatusField("x")])
}

func TestViewMode_Scalable(t *testing.T) {
	assert.True(t, ViewDetailed.Scalable())
	assert.True(t, ViewCompact.Scalable())
	assert.False(t, ViewBrief.Scalable())
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", CoalesceStr("", "b", "c"))
	assert.Nil(t, StrPtr(""))
	assert.Equal(t, "x", DerefStr(StrPtr("x")))
	assert.Empty(t, DerefStr(nil))
}
