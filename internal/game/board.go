package game

import (
	"fmt"
	"io"
	"math/rand"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// EventType classifies something notable that happened during a tick.
type EventType int

const (
	EventHostileKilled   EventType = iota // A hostile was encircled and removed
	EventBlocksShattered                  // A ripper's death removed every sticky block
	EventAgentKilled                      // The agent ran into, or was hit by, a hostile
)

// Event records one notable outcome of a tick.
type Event struct {
	Tick  int       `json:"tick"`
	Type  EventType `json:"type"`
	ID    uuid.UUID `json:"id"`    // Entity that caused it
	Kind  Kind      `json:"kind"`  // Kind of the entity that caused it
	Pos   Position  `json:"pos"`   // Where it happened
	Count int       `json:"count"` // Blocks removed, for EventBlocksShattered
}

// Board owns the grid and every live entity. All mutation happens through
// its methods, one tick at a time.
type Board struct {
	grid     *Grid
	entities []*Entity // Insertion order, which is also step order
	byID     map[uuid.UUID]*Entity
	hostiles []*Entity
	agent    *Entity

	rng            *rand.Rand
	wanderAttempts int
	log            logrus.FieldLogger

	tick   int
	events []Event
}

// Option customises a Board.
type Option func(*Board)

// WithRand sets the random source used by wandering hostiles and Populate.
func WithRand(r *rand.Rand) Option {
	return func(b *Board) { b.rng = r }
}

// WithLogger sets the board's logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(b *Board) { b.log = l }
}

// WithWanderAttempts caps how many directions a wanderer samples per step.
func WithWanderAttempts(n int) Option {
	return func(b *Board) {
		if n > 0 {
			b.wanderAttempts = n
		}
	}
}

// NewBoard creates an empty board.
func NewBoard(width, height int, opts ...Option) *Board {
	b := &Board{
		grid:           NewGrid(width, height),
		byID:           make(map[uuid.UUID]*Entity),
		wanderAttempts: DefaultConfig().WanderAttempts,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if b.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		b.log = l
	}
	return b
}

func (b *Board) Width() int  { return b.grid.Width() }
func (b *Board) Height() int { return b.grid.Height() }

// Grid exposes the occupancy index for read-only queries.
func (b *Board) Grid() *Grid { return b.grid }

// Agent returns the player entity, or nil if none was added.
func (b *Board) Agent() *Entity { return b.agent }

// Entities returns the live entities in step order.
func (b *Board) Entities() []*Entity { return slices.Clone(b.entities) }

// Lookup returns the live entity with the given ID.
func (b *Board) Lookup(id uuid.UUID) (*Entity, bool) {
	e, ok := b.byID[id]
	return e, ok
}

// HostileCount returns how many hostiles are still alive.
func (b *Board) HostileCount() int { return len(b.hostiles) }

// Add places e on the board.
func (b *Board) Add(e *Entity) error {
	if e.onBoard {
		return fmt.Errorf("add %s: already on a board", e.Kind)
	}
	if _, dup := b.byID[e.ID]; dup {
		return fmt.Errorf("add %s: id %s already in use", e.Kind, e.ID)
	}
	if !b.grid.InBounds(e.Pos) {
		return fmt.Errorf("add %s at %v: %w", e.Kind, e.Pos, ErrOutOfBounds)
	}
	if other, ok := b.grid.Occupant(e.Pos); ok {
		return fmt.Errorf("add %s at %v held by %s: %w", e.Kind, e.Pos, other.Kind, ErrOccupied)
	}
	if e.Kind == KindAgent && b.agent != nil {
		return fmt.Errorf("add agent at %v: %w", e.Pos, ErrAgentExists)
	}

	b.grid.place(e)
	b.entities = append(b.entities, e)
	b.byID[e.ID] = e
	if e.Kind.IsHostile() {
		b.hostiles = append(b.hostiles, e)
	}
	if e.Kind == KindAgent {
		b.agent = e
	}
	e.onBoard = true
	return nil
}

// Remove takes e off the board.
func (b *Board) Remove(e *Entity) error {
	if owned, ok := b.byID[e.ID]; !ok || owned != e {
		return fmt.Errorf("remove %s at %v: %w", e.Kind, e.Pos, ErrNotOnBoard)
	}
	b.grid.vacate(e)
	delete(b.byID, e.ID)
	b.entities = slices.DeleteFunc(b.entities, func(o *Entity) bool { return o == e })
	b.hostiles = slices.DeleteFunc(b.hostiles, func(o *Entity) bool { return o == e })
	if b.agent == e {
		b.agent = nil
	}
	e.onBoard = false
	return nil
}

// Clear removes every entity.
func (b *Board) Clear() {
	for _, e := range b.entities {
		e.onBoard = false
	}
	b.grid.clear()
	b.entities = nil
	clear(b.byID)
	b.hostiles = nil
	b.agent = nil
	b.events = nil
	b.tick = 0
}

// SetIntent records the agent's next move. Later calls before a Step win.
func (b *Board) SetIntent(i Intent) {
	if b.agent != nil {
		b.agent.intent = i
	}
}

// Step runs one tick: every live entity steps once, in insertion order.
// Entities removed earlier in the same tick are skipped. Step returns the
// events raised during the tick.
func (b *Board) Step() []Event {
	b.tick++
	b.events = nil
	for _, e := range b.Entities() {
		if !e.onBoard {
			continue
		}
		b.stepEntity(e)
	}
	return slices.Clone(b.events)
}

// Tick returns how many steps have run since the board was created or cleared.
func (b *Board) Tick() int { return b.tick }

// Victory reports whether every hostile is dead.
func (b *Board) Victory() bool { return len(b.hostiles) == 0 }

// Defeat reports whether the agent is dead.
func (b *Board) Defeat() bool { return b.agent != nil && !b.agent.Alive }

func (b *Board) emit(ev Event) {
	ev.Tick = b.tick
	b.events = append(b.events, ev)
}
