package game

// Grid is the single-occupancy index from cell to entity.
type Grid struct {
	width, height int
	cells         map[Position]*Entity
}

// NewGrid creates an empty grid of the given size.
func NewGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		cells:  make(map[Position]*Entity),
	}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// InBounds reports whether pos lies on the grid.
func (g *Grid) InBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < g.width && pos.Y >= 0 && pos.Y < g.height
}

// Occupant returns the entity at pos, if any.
func (g *Grid) Occupant(pos Position) (*Entity, bool) {
	e, ok := g.cells[pos]
	return e, ok
}

// Len returns the number of occupied cells.
func (g *Grid) Len() int { return len(g.cells) }

func (g *Grid) place(e *Entity) {
	if !g.InBounds(e.Pos) {
		contractViolation("place", "%s at %v is out of bounds", e.Kind, e.Pos)
	}
	if other, ok := g.cells[e.Pos]; ok {
		contractViolation("place", "%s and %s both claim %v", other.Kind, e.Kind, e.Pos)
	}
	g.cells[e.Pos] = e
}

func (g *Grid) vacate(e *Entity) {
	if g.cells[e.Pos] != e {
		contractViolation("vacate", "%s is not resident at %v", e.Kind, e.Pos)
	}
	delete(g.cells, e.Pos)
}

// relocate moves e to dst, keeping the index and e.Pos in step.
func (g *Grid) relocate(e *Entity, dst Position) {
	if g.cells[e.Pos] != e {
		contractViolation("relocate", "%s is not resident at %v", e.Kind, e.Pos)
	}
	if !g.InBounds(dst) {
		contractViolation("relocate", "%s target %v is out of bounds", e.Kind, dst)
	}
	if other, ok := g.cells[dst]; ok {
		contractViolation("relocate", "%s cannot enter %v held by %s", e.Kind, dst, other.Kind)
	}
	delete(g.cells, e.Pos)
	e.Pos = dst
	g.cells[dst] = e
}

func (g *Grid) clear() {
	g.cells = make(map[Position]*Entity)
}
