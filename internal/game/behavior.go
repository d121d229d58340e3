package game

import "github.com/sirupsen/logrus"

// IsDead reports whether h is encircled: no in-bounds neighbour, cardinal or
// diagonal, is empty or holds the agent. Off-board neighbours neither help
// nor hurt.
func (b *Board) IsDead(h *Entity) bool {
	for _, offsets := range [][4]Position{cardinalOffsets, diagonalOffsets} {
		for _, o := range offsets {
			pos := h.Pos.Add(o.X, o.Y)
			if !b.grid.InBounds(pos) {
				continue
			}
			occupant, ok := b.grid.Occupant(pos)
			if !ok || occupant.Kind == KindAgent {
				return false
			}
		}
	}
	return true
}

// IsImmobilized reports whether a sticky block touches h on a cardinal side.
// Bosses shrug it off.
func (b *Board) IsImmobilized(h *Entity) bool {
	if h.Kind == KindBoss {
		return false
	}
	for _, o := range cardinalOffsets {
		if occupant, ok := b.grid.Occupant(h.Pos.Add(o.X, o.Y)); ok && occupant.Kind == KindStickyBlock {
			return true
		}
	}
	return false
}

func (b *Board) stepEntity(e *Entity) {
	switch e.Kind.Class() {
	case ClassAgent:
		b.stepAgent(e)
	case ClassHostile:
		b.stepHostile(e)
	}
}

// stepAgent consumes the pending intent. Only the latest intent counts.
func (b *Board) stepAgent(a *Entity) {
	intent := a.intent
	a.intent = IntentNone
	if !a.Alive || intent == IntentNone {
		return
	}
	dx, dy := intent.Delta()
	result := b.RequestMove(a, a, dx, dy)
	b.log.WithFields(logrus.Fields{"pos": a.Pos, "result": result}).Debug("agent step")
}

// stepHostile runs the throttled hostile state machine: dead, then held,
// then free to move.
func (b *Board) stepHostile(h *Entity) {
	if !h.throttle() {
		return
	}
	if b.IsDead(h) {
		b.killHostile(h)
		return
	}
	if b.IsImmobilized(h) {
		return
	}
	if h.Kind.Wanders() {
		b.wander(h)
		return
	}
	b.RequestMove(h, h, h.heading.X, h.heading.Y)
}

// wander samples directions until one works or the attempts run out.
func (b *Board) wander(h *Entity) MoveResult {
	for i := 0; i < b.wanderAttempts; i++ {
		dx, dy := b.rng.Intn(3)-1, b.rng.Intn(3)-1
		switch result := b.RequestMove(h, h, dx, dy); result {
		case Moved, Killed:
			return result
		}
	}
	return Bounced
}

func (b *Board) killHostile(h *Entity) {
	pos := h.Pos
	if err := b.Remove(h); err != nil {
		contractViolation("killHostile", "%v", err)
	}
	b.emit(Event{Type: EventHostileKilled, ID: h.ID, Kind: h.Kind, Pos: pos})
	b.log.WithFields(logrus.Fields{"kind": h.Kind, "pos": pos, "left": len(b.hostiles)}).Info("hostile killed")

	if h.Kind == KindRipper {
		b.shatterStickyBlocks(h)
	}
}

// shatterStickyBlocks removes every sticky block on the board.
func (b *Board) shatterStickyBlocks(by *Entity) {
	n := 0
	for _, e := range b.Entities() {
		if e.Kind != KindStickyBlock {
			continue
		}
		if err := b.Remove(e); err != nil {
			contractViolation("shatterStickyBlocks", "%v", err)
		}
		n++
	}
	b.emit(Event{Type: EventBlocksShattered, ID: by.ID, Kind: by.Kind, Pos: by.Pos, Count: n})
	b.log.WithFields(logrus.Fields{"pos": by.Pos, "count": n}).Info("sticky blocks shattered")
}

func (b *Board) killAgent(agent, by *Entity) {
	if !agent.Alive {
		return
	}
	agent.Alive = false
	b.emit(Event{Type: EventAgentKilled, ID: by.ID, Kind: by.Kind, Pos: agent.Pos})
	b.log.WithFields(logrus.Fields{"pos": agent.Pos, "by": by.Kind}).Info("agent killed")
}
