package game

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Populate fills an empty board with a level.
//
// Placement rules:
//   - Agent and patrols go to their fixed cells; a clash there is an error
//   - Wanderer, camouflaged, boss, ripper, barrier and sticky placements each
//     get one random cell and are skipped if it is taken
//   - Plain blocks keep drawing cells until the requested count is placed or
//     the board has no empty cell left
func (b *Board) Populate(l Layout) error {
	if err := b.Add(NewAgent(l.Agent.X, l.Agent.Y)); err != nil {
		return fmt.Errorf("populate: %w", err)
	}
	for _, s := range l.Patrols {
		if err := b.Add(NewPatrol(s.X, s.Y, s.Period)); err != nil {
			return fmt.Errorf("populate patrol: %w", err)
		}
	}

	skipped := 0
	scatter := func(n int, spawn func(x, y int) *Entity) {
		for i := 0; i < n; i++ {
			pos := b.randomCell()
			if _, taken := b.grid.Occupant(pos); taken {
				skipped++
				continue
			}
			if err := b.Add(spawn(pos.X, pos.Y)); err != nil {
				contractViolation("Populate", "%v", err)
			}
		}
	}

	scatter(b.between(l.WanderersMin, l.WanderersMax), func(x, y int) *Entity {
		return NewWanderer(x, y, l.WandererPeriod)
	})
	scatter(b.between(l.CamouflagedMin, l.CamouflagedMax), func(x, y int) *Entity {
		return NewCamouflaged(x, y, l.CamouflagedPeriod)
	})
	scatter(l.Bosses, func(x, y int) *Entity { return NewBoss(x, y, l.BossPeriod) })
	scatter(l.Rippers, func(x, y int) *Entity { return NewRipper(x, y, l.RipperPeriod) })
	scatter(l.Barriers, NewBarrier)
	scatter(l.StickyBlocks, NewStickyBlock)

	placed := 0
	for placed < l.Blocks && b.grid.Len() < b.Width()*b.Height() {
		pos := b.randomCell()
		if _, taken := b.grid.Occupant(pos); taken {
			continue
		}
		if err := b.Add(NewBlock(pos.X, pos.Y)); err != nil {
			contractViolation("Populate", "%v", err)
		}
		placed++
	}

	b.log.WithFields(logrus.Fields{
		"entities": len(b.entities),
		"hostiles": len(b.hostiles),
		"blocks":   placed,
		"skipped":  skipped,
	}).Info("board populated")
	return nil
}

func (b *Board) randomCell() Position {
	return Position{X: b.rng.Intn(b.Width()), Y: b.rng.Intn(b.Height())}
}

// between returns a random int in [lo, hi].
func (b *Board) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + b.rng.Intn(hi-lo+1)
}
