package game

import (
	"fmt"
	"time"
)

// Kind identifies the concrete variant of an entity on the board.
type Kind uint8

const (
	KindAgent       Kind = iota // Player-controlled
	KindBlock                   // Pushable box
	KindStickyBlock             // Pushable box that holds adjacent hostiles
	KindBarrier                 // Immovable
	KindPatrol                  // Diagonal bouncer
	KindWanderer                // Random walker
	KindCamouflaged             // Random walker that disguises itself as a box
	KindBoss                    // Fast walker, immune to sticky blocks
	KindRipper                  // Random walker that shatters sticky blocks on death
)

var kindNames = map[Kind]string{
	KindAgent:       "agent",
	KindBlock:       "block",
	KindStickyBlock: "sticky-block",
	KindBarrier:     "barrier",
	KindPatrol:      "patrol",
	KindWanderer:    "wanderer",
	KindCamouflaged: "camouflaged",
	KindBoss:        "boss",
	KindRipper:      "ripper",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsHostile reports whether entities of this kind count towards victory.
func (k Kind) IsHostile() bool {
	return k.Class() == ClassHostile
}

// Wanders reports whether the kind picks a fresh random direction every step.
func (k Kind) Wanders() bool {
	switch k {
	case KindWanderer, KindCamouflaged, KindBoss, KindRipper:
		return true
	}
	return false
}

// Class groups kinds by how they take part in a collision.
type Class uint8

const (
	ClassAgent Class = iota
	ClassBlock
	ClassBarrier
	ClassHostile
)

var classNames = [...]string{"agent", "block", "barrier", "hostile"}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "unknown"
}

// Class returns the collision class of the kind.
func (k Kind) Class() Class {
	switch k {
	case KindAgent:
		return ClassAgent
	case KindBlock, KindStickyBlock:
		return ClassBlock
	case KindBarrier:
		return ClassBarrier
	default:
		return ClassHostile
	}
}

// MoveResult is the outcome of a move request.
type MoveResult uint8

const (
	Blocked MoveResult = iota // No state change
	Moved                     // Mover relocated
	Bounced                   // Hostile reversed its own travel direction
	Killed                    // A liveness flag was cleared
)

var moveResultNames = [...]string{"blocked", "moved", "bounced", "killed"}

func (r MoveResult) String() string {
	if int(r) < len(moveResultNames) {
		return moveResultNames[r]
	}
	return "unknown"
}

// Intent is a directional request fed to the agent before a tick.
type Intent uint8

const (
	IntentNone Intent = iota
	IntentUp
	IntentDown
	IntentLeft
	IntentRight
	IntentUpLeft
	IntentUpRight
	IntentDownLeft
	IntentDownRight
)

// Delta returns the displacement for the intent. Up decreases Y.
func (i Intent) Delta() (dx, dy int) {
	switch i {
	case IntentUp:
		return 0, -1
	case IntentDown:
		return 0, 1
	case IntentLeft:
		return -1, 0
	case IntentRight:
		return 1, 0
	case IntentUpLeft:
		return -1, -1
	case IntentUpRight:
		return 1, -1
	case IntentDownLeft:
		return -1, 1
	case IntentDownRight:
		return 1, 1
	default:
		return 0, 0
	}
}

// Position represents a coordinate on the board.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p shifted by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// neighbours in the order they are probed by the encirclement check.
var (
	cardinalOffsets = [4]Position{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}
	diagonalOffsets = [4]Position{{X: 1, Y: 1}, {X: -1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: -1}}
)

// GameStatus represents the current session phase.
type GameStatus int

const (
	StatusMenu    GameStatus = iota // Main menu, board idle
	StatusRunning                   // Ticks advance the board
	StatusWon                       // Every hostile is dead
	StatusLost                      // The agent is dead
)

var statusNames = [...]string{"menu", "running", "won", "lost"}

func (s GameStatus) String() string {
	if int(s) >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// Spawn places one entity of a fixed kind at a fixed cell.
type Spawn struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Period int `json:"period"`
}

// Layout describes how Populate fills a fresh board.
type Layout struct {
	Agent          Position `json:"agent"`
	Patrols        []Spawn  `json:"patrols"`
	WanderersMin   int      `json:"wanderers_min"`
	WanderersMax   int      `json:"wanderers_max"`
	CamouflagedMin int      `json:"camouflaged_min"`
	CamouflagedMax int      `json:"camouflaged_max"`
	Bosses         int      `json:"bosses"`
	Rippers        int      `json:"rippers"`
	Barriers       int      `json:"barriers"`
	StickyBlocks   int      `json:"sticky_blocks"`
	Blocks         int      `json:"blocks"`

	WandererPeriod    int `json:"wanderer_period"`
	CamouflagedPeriod int `json:"camouflaged_period"`
	BossPeriod        int `json:"boss_period"`
	RipperPeriod      int `json:"ripper_period"`
}

// GameConfig holds configurable parameters for a game session.
type GameConfig struct {
	Width          int           `json:"width"`
	Height         int           `json:"height"`
	TickInterval   time.Duration `json:"tick_interval"`
	Seed           int64         `json:"seed"`            // 0 means seed from the clock
	WanderAttempts int           `json:"wander_attempts"` // Direction samples per wanderer step
	Layout         Layout        `json:"layout"`
}

// DefaultConfig returns the classic 20x20 warehouse level.
func DefaultConfig() GameConfig {
	return GameConfig{
		Width:          20,
		Height:         20,
		TickInterval:   100 * time.Millisecond,
		WanderAttempts: 8,
		Layout: Layout{
			Agent: Position{X: 0, Y: 0},
			Patrols: []Spawn{
				{X: 7, Y: 4, Period: 5},
				{X: 4, Y: 10, Period: 3},
				{X: 5, Y: 19, Period: 2},
			},
			WanderersMin:      1,
			WanderersMax:      2,
			CamouflagedMin:    1,
			CamouflagedMax:    2,
			Bosses:            1,
			Rippers:           3,
			Barriers:          25,
			StickyBlocks:      5,
			Blocks:            100,
			WandererPeriod:    5,
			CamouflagedPeriod: 5,
			BossPeriod:        2,
			RipperPeriod:      8,
		},
	}
}

// Validate checks the config for values the board cannot work with.
func (c GameConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("board size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.WanderAttempts <= 0 {
		return fmt.Errorf("wander attempts must be positive, got %d", c.WanderAttempts)
	}
	l := c.Layout
	for _, p := range []int{l.WandererPeriod, l.CamouflagedPeriod, l.BossPeriod, l.RipperPeriod} {
		if p <= 0 {
			return fmt.Errorf("update period must be positive, got %d", p)
		}
	}
	inBounds := func(p Position) bool { return p.X >= 0 && p.X < c.Width && p.Y >= 0 && p.Y < c.Height }
	if !inBounds(l.Agent) {
		return fmt.Errorf("agent spawn %v: %w", l.Agent, ErrOutOfBounds)
	}
	fixed := map[Position]bool{l.Agent: true}
	for _, s := range l.Patrols {
		pos := Position{X: s.X, Y: s.Y}
		if s.Period <= 0 {
			return fmt.Errorf("patrol at %v: update period must be positive, got %d", pos, s.Period)
		}
		if !inBounds(pos) {
			return fmt.Errorf("patrol spawn %v: %w", pos, ErrOutOfBounds)
		}
		if fixed[pos] {
			return fmt.Errorf("patrol spawn %v: %w", pos, ErrOccupied)
		}
		fixed[pos] = true
	}
	if l.WanderersMin > l.WanderersMax || l.CamouflagedMin > l.CamouflagedMax {
		return fmt.Errorf("layout minimum counts exceed maximums")
	}
	free := c.Width*c.Height - 1
	if l.Blocks > free {
		return fmt.Errorf("layout wants %d blocks but the board has %d free cells", l.Blocks, free)
	}
	return nil
}
