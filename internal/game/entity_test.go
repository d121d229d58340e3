package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppearance(t *testing.T) {
	camo := NewCamouflaged(0, 0, 5)
	boss := NewBoss(1, 0, 2)
	blk := NewBlock(2, 0)

	tests := []struct {
		elapsed time.Duration
		camo    Appearance
		boss    Appearance
	}{
		{0, AppearanceNormal, AppearanceNormal},
		{1 * time.Second, AppearanceDisguised, AppearanceAltFrame},
		{2400 * time.Millisecond, AppearanceDisguised, AppearanceNormal},
		{2500 * time.Millisecond, AppearanceDisguised, AppearanceNormal}, // rounds half to even
		{4600 * time.Millisecond, AppearanceNormal, AppearanceAltFrame},
		{10 * time.Second, AppearanceNormal, AppearanceNormal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.camo, camo.Appearance(tt.elapsed), "camouflaged at %v", tt.elapsed)
		assert.Equal(t, tt.boss, boss.Appearance(tt.elapsed), "boss at %v", tt.elapsed)
		assert.Equal(t, AppearanceNormal, blk.Appearance(tt.elapsed))
	}
}

func TestNewEntityDefaults(t *testing.T) {
	p := NewPatrol(1, 2, 0)
	assert.Equal(t, 1, p.Period(), "period is clamped to 1")
	dx, dy := p.Heading()
	assert.Equal(t, [2]int{1, 1}, [2]int{dx, dy})
	assert.True(t, p.Alive)

	w := NewWanderer(0, 0, 4)
	dx, dy = w.Heading()
	assert.Equal(t, [2]int{0, 0}, [2]int{dx, dy})
	assert.NotEqual(t, p.ID, w.ID)

	requireContractPanic(t, func() { p.SetHeading(0, 2) })
}

func TestIntentDelta(t *testing.T) {
	seen := map[[2]int]bool{}
	for i := IntentUp; i <= IntentDownRight; i++ {
		dx, dy := i.Delta()
		assert.False(t, dx == 0 && dy == 0, "intent %d has no displacement", i)
		seen[[2]int{dx, dy}] = true
	}
	assert.Len(t, seen, 8)
	dx, dy := IntentNone.Delta()
	assert.Equal(t, [2]int{0, 0}, [2]int{dx, dy})
}
