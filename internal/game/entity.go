package game

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Entity is anything that occupies a cell. Entities never hold a reference
// to the board; every operation that needs the board receives it explicitly.
type Entity struct {
	ID    uuid.UUID
	Kind  Kind
	Pos   Position
	Alive bool // Only meaningful for the agent

	period int // Ticks between activations, 1 means every tick
	count  int

	heading Position // Patrol travel direction
	intent  Intent   // Agent's pending request, consumed by its next step

	onBoard bool
}

// NewEntity creates an entity of the given kind. Periods below 1 are treated as 1.
func NewEntity(kind Kind, x, y, period int) *Entity {
	if period < 1 {
		period = 1
	}
	e := &Entity{
		ID:     uuid.New(),
		Kind:   kind,
		Pos:    Position{X: x, Y: y},
		Alive:  true,
		period: period,
	}
	if kind == KindPatrol {
		e.heading = Position{X: 1, Y: 1}
	}
	return e
}

func NewAgent(x, y int) *Entity { return NewEntity(KindAgent, x, y, 1) }
func NewBlock(x, y int) *Entity { return NewEntity(KindBlock, x, y, 1) }
func NewStickyBlock(x, y int) *Entity { return NewEntity(KindStickyBlock, x, y, 1) }
func NewBarrier(x, y int) *Entity { return NewEntity(KindBarrier, x, y, 1) }
func NewPatrol(x, y, period int) *Entity { return NewEntity(KindPatrol, x, y, period) }
func NewWanderer(x, y, period int) *Entity { return NewEntity(KindWanderer, x, y, period) }
func NewRipper(x, y, period int) *Entity { return NewEntity(KindRipper, x, y, period) }
func NewBoss(x, y, period int) *Entity { return NewEntity(KindBoss, x, y, period) }

func NewCamouflaged(x, y, period int) *Entity {
	return NewEntity(KindCamouflaged, x, y, period)
}

// Period returns the number of ticks between activations.
func (e *Entity) Period() int { return e.period }

// Heading returns the patrol travel direction; zero for other kinds.
func (e *Entity) Heading() (dx, dy int) { return e.heading.X, e.heading.Y }

// SetHeading overrides the patrol travel direction.
func (e *Entity) SetHeading(dx, dy int) {
	checkDelta("SetHeading", dx, dy)
	e.heading = Position{X: dx, Y: dy}
}

// OnBoard reports whether the entity is currently registered with a board.
func (e *Entity) OnBoard() bool { return e.onBoard }

// throttle advances the activation counter and reports whether this call
// is an activation.
func (e *Entity) throttle() bool {
	e.count = (e.count + 1) % e.period
	return e.count == 0
}

// Appearance is the cosmetic frame a renderer should draw for an entity.
type Appearance uint8

const (
	AppearanceNormal    Appearance = iota
	AppearanceDisguised            // Camouflaged hostile drawn as a block
	AppearanceAltFrame             // Boss second animation frame
)

// Appearance derives the cosmetic frame from time elapsed since the session
// started. It never affects movement.
func (e *Entity) Appearance(elapsed time.Duration) Appearance {
	sec := int64(math.RoundToEven(elapsed.Seconds()))
	switch e.Kind {
	case KindCamouflaged:
		if sec%5 != 0 {
			return AppearanceDisguised
		}
	case KindBoss:
		if sec%2 != 0 {
			return AppearanceAltFrame
		}
	}
	return AppearanceNormal
}

func checkDelta(op string, dx, dy int) {
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
		contractViolation(op, "displacement (%d,%d) outside {-1,0,1}", dx, dy)
	}
}
