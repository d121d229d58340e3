package game

// RequestMove asks mover to shift by (dx, dy) on behalf of requester. A
// self-initiated move passes mover as requester. The board must own mover.
func (b *Board) RequestMove(mover, requester *Entity, dx, dy int) MoveResult {
	checkDelta("RequestMove", dx, dy)
	b.mustResident("RequestMove", mover)
	return b.resolve(mover, requester, Position{X: dx, Y: dy}, 0)
}

// resolve dispatches on the mover's class. depth counts delegations in the
// current push chain; a chain runs in a straight line so it can never be
// longer than the board.
func (b *Board) resolve(mover, requester *Entity, d Position, depth int) MoveResult {
	if depth > b.maxChain() {
		contractViolation("resolve", "push chain exceeded %d links at %v", b.maxChain(), mover.Pos)
	}
	if d == (Position{}) {
		return Blocked
	}

	switch mover.Kind.Class() {
	case ClassBarrier:
		return Blocked
	case ClassHostile:
		// Hostiles can't be pushed.
		if requester != mover {
			return Blocked
		}
		return b.hostileMove(mover, d)
	default:
		return b.pushMove(mover, d, depth)
	}
}

// pushMove is the agent and block algorithm: step into an empty cell, or ask
// the occupant to make room first.
func (b *Board) pushMove(mover *Entity, d Position, depth int) MoveResult {
	target := mover.Pos.Add(d.X, d.Y)
	if !b.grid.InBounds(target) {
		return Blocked
	}

	occupant, ok := b.grid.Occupant(target)
	if !ok {
		b.grid.relocate(mover, target)
		return Moved
	}

	switch Interact(mover.Kind, occupant.Kind) {
	case InteractPush:
		b.resolve(occupant, mover, d, depth+1)
		if _, still := b.grid.Occupant(target); still {
			return Blocked
		}
		b.grid.relocate(mover, target)
		return Moved
	case InteractKillMover:
		b.killAgent(mover, occupant)
		return Killed
	default:
		return Blocked
	}
}

// hostileMove is the self-initiated hostile algorithm. Out-of-bounds axes
// and occupied cells reverse the patrol heading; nothing relocates unless
// the target is free. A patrol that runs off the board on one axis only
// flips that axis and stays put this tick; it moves on its next activation.
func (b *Board) hostileMove(h *Entity, d Position) MoveResult {
	target := h.Pos.Add(d.X, d.Y)

	bounced := false
	if target.X < 0 || target.X >= b.grid.Width() {
		b.turn(h, -d.X, d.Y)
		d.X = -d.X
		bounced = true
	}
	if target.Y < 0 || target.Y >= b.grid.Height() {
		b.turn(h, d.X, -d.Y)
		bounced = true
	}
	if bounced {
		return Bounced
	}

	occupant, ok := b.grid.Occupant(target)
	if !ok {
		b.grid.relocate(h, target)
		return Moved
	}

	switch Interact(h.Kind, occupant.Kind) {
	case InteractKillOccupant:
		b.turn(h, -d.X, -d.Y)
		b.killAgent(occupant, h)
		return Killed
	default:
		b.turn(h, -d.X, -d.Y)
		return Bounced
	}
}

// turn stores a new heading for entities that keep one.
func (b *Board) turn(h *Entity, dx, dy int) {
	if h.Kind == KindPatrol {
		h.heading = Position{X: dx, Y: dy}
	}
}

func (b *Board) maxChain() int {
	return max(b.grid.Width(), b.grid.Height())
}

func (b *Board) mustResident(op string, e *Entity) {
	if occupant, ok := b.grid.Occupant(e.Pos); !ok || occupant != e {
		contractViolation(op, "no %s resident at %v", e.Kind, e.Pos)
	}
}
