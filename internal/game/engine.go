package game

import (
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// EntityView is a renderer's copy of one entity.
type EntityView struct {
	ID         uuid.UUID  `json:"id"`
	Kind       Kind       `json:"kind"`
	Pos        Position   `json:"pos"`
	Alive      bool       `json:"alive"`
	Appearance Appearance `json:"appearance"`
}

// State is an immutable snapshot of a session, safe to hand to other goroutines.
type State struct {
	Width        int          `json:"width"`
	Height       int          `json:"height"`
	Status       GameStatus   `json:"status"`
	Tick         int          `json:"tick"`
	Entities     []EntityView `json:"entities"`
	HostilesLeft int          `json:"hostiles_left"`
	Kills        int          `json:"kills"`
	Events       []Event      `json:"events,omitempty"` // Raised by the latest tick
}

// Engine runs a game session: status, pending input and the board.
type Engine struct {
	Board  *Board
	Config GameConfig
	Status GameStatus

	intents chan Intent
	done    chan struct{}
	stop    sync.Once
	mu      sync.Mutex
	onTick  func(State) // Callback after each tick with a COPY of state

	log     logrus.FieldLogger
	now     func() time.Time
	started time.Time
	kills   int
	events  []Event
}

// EngineOption customises an Engine.
type EngineOption func(*Engine)

// WithEngineLogger sets the logger shared by the engine and its board.
func WithEngineLogger(l logrus.FieldLogger) EngineOption {
	return func(e *Engine) { e.log = l }
}

// WithClock replaces time.Now for cosmetic timers.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// NewEngine validates config and builds a populated board waiting at the menu.
func NewEngine(config GameConfig, opts ...EngineOption) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		Config:  config,
		Status:  StatusMenu,
		intents: make(chan Intent, 64),
		done:    make(chan struct{}),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		e.log = l
	}
	e.started = e.now()

	seed := config.Seed
	if seed == 0 {
		seed = e.started.UnixNano()
	}
	e.log.WithField("seed", seed).Info("engine created")

	e.Board = NewBoard(config.Width, config.Height,
		WithRand(rand.New(rand.NewSource(seed))),
		WithLogger(e.log),
		WithWanderAttempts(config.WanderAttempts),
	)
	if err := e.Board.Populate(config.Layout); err != nil {
		return nil, err
	}
	return e, nil
}

// OnTick sets a callback that is invoked after every tick with a copy of the state.
func (e *Engine) OnTick(fn func(State)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onTick = fn
}

// Run ticks the engine at the configured interval until Stop is called.
func (e *Engine) Run() {
	ticker := time.NewTicker(e.Config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.done:
			return
		case <-ticker.C:
			e.Tick()
		}
	}
}

// Stop halts Run. Calling it more than once is harmless.
func (e *Engine) Stop() {
	e.stop.Do(func() { close(e.done) })
}

// EnqueueIntent queues a directional request for the next tick.
func (e *Engine) EnqueueIntent(i Intent) {
	select {
	case e.intents <- i:
	default:
		// Drop when full; only the latest intent matters anyway
	}
}

// Start leaves the main menu.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.Status != StatusMenu {
		return fmt.Errorf("cannot start from %s", e.Status)
	}
	e.setStatusLocked(StatusRunning)
	return nil
}

// Restart rebuilds the board and resumes play.
func (e *Engine) Restart() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.resetLocked(); err != nil {
		return err
	}
	e.setStatusLocked(StatusRunning)
	return nil
}

// Menu rebuilds the board and returns to the main menu.
func (e *Engine) Menu() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.resetLocked(); err != nil {
		return err
	}
	e.setStatusLocked(StatusMenu)
	return nil
}

// Tick advances the session by one step and returns the resulting state.
// Only the most recent queued intent is applied.
func (e *Engine) Tick() State {
	e.mu.Lock()

	intent := e.drainIntents()
	e.events = nil
	if e.Status == StatusRunning {
		e.Board.SetIntent(intent)
		e.events = e.Board.Step()
		for _, ev := range e.events {
			if ev.Type == EventHostileKilled {
				e.kills++
			}
		}
		e.checkOutcome()
	}

	stateCopy := e.copyStateLocked()
	onTick := e.onTick
	e.mu.Unlock()

	if onTick != nil {
		onTick(stateCopy)
	}
	return stateCopy
}

// drainIntents empties the queue and returns the last intent seen.
func (e *Engine) drainIntents() Intent {
	last := IntentNone
	for {
		select {
		case i := <-e.intents:
			last = i
		default:
			return last
		}
	}
}

// checkOutcome moves the session to a terminal status. Defeat wins a tie.
func (e *Engine) checkOutcome() {
	switch {
	case e.Board.Defeat():
		e.setStatusLocked(StatusLost)
	case e.Board.Victory():
		e.setStatusLocked(StatusWon)
	}
}

func (e *Engine) resetLocked() error {
	e.drainIntents()
	e.Board.Clear()
	e.kills = 0
	e.events = nil
	if err := e.Board.Populate(e.Config.Layout); err != nil {
		return fmt.Errorf("restart: %w", err)
	}
	return nil
}

func (e *Engine) setStatusLocked(s GameStatus) {
	if e.Status == s {
		return
	}
	e.log.WithFields(logrus.Fields{"from": e.Status, "to": s, "tick": e.Board.Tick()}).Info("status changed")
	e.Status = s
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.copyStateLocked()
}

// copyStateLocked creates a deep copy of the session state.
// MUST be called while e.mu is held.
func (e *Engine) copyStateLocked() State {
	elapsed := e.now().Sub(e.started)

	entities := e.Board.Entities()
	views := make([]EntityView, len(entities))
	for i, ent := range entities {
		views[i] = EntityView{
			ID:         ent.ID,
			Kind:       ent.Kind,
			Pos:        ent.Pos,
			Alive:      ent.Alive,
			Appearance: ent.Appearance(elapsed),
		}
	}

	events := make([]Event, len(e.events))
	copy(events, e.events)

	return State{
		Width:        e.Board.Width(),
		Height:       e.Board.Height(),
		Status:       e.Status,
		Tick:         e.Board.Tick(),
		Entities:     views,
		HostilesLeft: e.Board.HostileCount(),
		Kills:        e.kills,
		Events:       events,
	}
}
