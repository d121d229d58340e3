package game

import (
	"errors"
	"testing"
	"time"
)

func testConfig() GameConfig {
	config := DefaultConfig()
	config.Seed = 42
	config.TickInterval = time.Millisecond
	return config
}

// newArenaEngine returns a running engine whose board holds only an agent at
// (0,0) and whatever the caller adds.
func newArenaEngine(t *testing.T, extra ...*Entity) (*Engine, *Entity) {
	t.Helper()
	engine, err := NewEngine(testConfig())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	engine.Board.Clear()
	agent := NewAgent(0, 0)
	for _, e := range append([]*Entity{agent}, extra...) {
		if err := engine.Board.Add(e); err != nil {
			t.Fatalf("add %s: %v", e.Kind, err)
		}
	}
	if err := engine.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	return engine, agent
}

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine(testConfig())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if engine.Status != StatusMenu {
		t.Errorf("expected menu status, got %s", engine.Status)
	}
	if engine.Board.Agent() == nil {
		t.Fatal("board should have an agent")
	}

	// Ticks at the menu do not advance the board
	state := engine.Tick()
	if state.Tick != 0 {
		t.Errorf("menu tick advanced the board to %d", state.Tick)
	}

	config := testConfig()
	config.Height = -1
	if _, err := NewEngine(config); err == nil {
		t.Error("invalid config should fail")
	}
}

func TestEngineStart(t *testing.T) {
	engine, err := NewEngine(testConfig())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if err := engine.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if engine.Status != StatusRunning {
		t.Errorf("expected running, got %s", engine.Status)
	}
	if err := engine.Start(); err == nil {
		t.Error("starting twice should fail")
	}
}

func TestEngineAppliesLatestIntent(t *testing.T) {
	engine, agent := newArenaEngine(t, NewPatrol(10, 10, 1000))

	engine.EnqueueIntent(IntentRight)
	engine.EnqueueIntent(IntentDown)
	state := engine.Tick()

	if agent.Pos != (Position{X: 0, Y: 1}) {
		t.Errorf("expected agent at (0,1), got %v", agent.Pos)
	}
	if state.Status != StatusRunning {
		t.Errorf("expected running, got %s", state.Status)
	}
	if state.Tick != 1 {
		t.Errorf("expected tick 1, got %d", state.Tick)
	}

	engine.Tick()
	if agent.Pos != (Position{X: 0, Y: 1}) {
		t.Errorf("agent should idle without input, got %v", agent.Pos)
	}
}

func TestEngineDefeat(t *testing.T) {
	engine, agent := newArenaEngine(t, NewPatrol(1, 0, 1000))

	engine.EnqueueIntent(IntentRight)
	state := engine.Tick()

	if agent.Alive {
		t.Fatal("agent should die walking into a patrol")
	}
	if state.Status != StatusLost {
		t.Errorf("expected lost, got %s", state.Status)
	}
	if len(state.Events) != 1 || state.Events[0].Type != EventAgentKilled {
		t.Fatalf("expected one agent-killed event, got %+v", state.Events)
	}
	if killer, ok := engine.Board.Lookup(state.Events[0].ID); !ok || killer.Kind != KindPatrol {
		t.Errorf("event should name the patrol, got %v", state.Events[0].ID)
	}

	// A finished game ignores further ticks
	engine.EnqueueIntent(IntentDown)
	if next := engine.Tick(); next.Tick != state.Tick {
		t.Errorf("lost game advanced to tick %d", next.Tick)
	}
}

func TestEngineVictory(t *testing.T) {
	engine, _ := newArenaEngine(t,
		NewWanderer(9, 9, 1),
		NewBlock(8, 8), NewBlock(9, 8), NewBlock(10, 8),
		NewBlock(8, 9), NewBarrier(10, 9),
		NewBlock(8, 10), NewBlock(9, 10), NewBlock(10, 10),
	)

	state := engine.Tick()
	if state.Status != StatusWon {
		t.Fatalf("expected won, got %s", state.Status)
	}
	if state.Kills != 1 || state.HostilesLeft != 0 {
		t.Errorf("expected 1 kill and no hostiles, got %d kills and %d left", state.Kills, state.HostilesLeft)
	}
}

func TestEngineRestartAndMenu(t *testing.T) {
	engine, _ := newArenaEngine(t, NewPatrol(1, 0, 1000))
	engine.EnqueueIntent(IntentRight)
	engine.Tick()
	if engine.Status != StatusLost {
		t.Fatalf("expected lost, got %s", engine.Status)
	}

	if err := engine.Restart(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	state := engine.Snapshot()
	if state.Status != StatusRunning {
		t.Errorf("expected running after restart, got %s", state.Status)
	}
	if state.Tick != 0 || state.Kills != 0 {
		t.Errorf("restart should reset counters, got tick %d kills %d", state.Tick, state.Kills)
	}
	agent := engine.Board.Agent()
	if agent == nil || !agent.Alive {
		t.Fatal("restart should spawn a live agent")
	}
	if len(state.Entities) < 100 {
		t.Errorf("restart should repopulate the board, got %d entities", len(state.Entities))
	}

	if err := engine.Menu(); err != nil {
		t.Fatalf("menu: %v", err)
	}
	if engine.Status != StatusMenu {
		t.Errorf("expected menu, got %s", engine.Status)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	engine, agent := newArenaEngine(t, NewPatrol(10, 10, 1000))

	state := engine.Snapshot()
	state.Entities[0].Pos = Position{X: 7, Y: 7}
	state.Entities = state.Entities[:0]

	again := engine.Snapshot()
	if len(again.Entities) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(again.Entities))
	}
	if again.Entities[0].Pos != agent.Pos {
		t.Errorf("snapshot mutation leaked into engine: %v", again.Entities[0].Pos)
	}
}

func TestSnapshotAppearance(t *testing.T) {
	now := time.Unix(1000, 0)
	engine, err := NewEngine(testConfig(), WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	engine.Board.Clear()
	if err := engine.Board.Add(NewCamouflaged(3, 3, 5)); err != nil {
		t.Fatalf("add: %v", err)
	}

	if got := engine.Snapshot().Entities[0].Appearance; got != AppearanceNormal {
		t.Errorf("at start expected normal, got %d", got)
	}
	now = now.Add(time.Second)
	if got := engine.Snapshot().Entities[0].Appearance; got != AppearanceDisguised {
		t.Errorf("after 1s expected disguised, got %d", got)
	}
}

func TestRunInvokesOnTick(t *testing.T) {
	engine, _ := newArenaEngine(t, NewPatrol(10, 10, 1000))

	ticks := make(chan State, 16)
	engine.OnTick(func(s State) {
		select {
		case ticks <- s:
		default:
		}
	})
	go engine.Run()
	defer engine.Stop()

	select {
	case s := <-ticks:
		if s.Tick < 1 {
			t.Errorf("expected a tick, got %d", s.Tick)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run never invoked OnTick")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	engine, _ := newArenaEngine(t, NewPatrol(10, 10, 1000))

	finished := make(chan struct{})
	go func() {
		engine.Run()
		close(finished)
	}()
	engine.Stop()
	engine.Stop()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
}

func TestOnTickCanBeSetWhileRunning(t *testing.T) {
	engine, _ := newArenaEngine(t, NewPatrol(10, 10, 1000))
	go engine.Run()
	defer engine.Stop()

	ticks := make(chan State, 1)
	engine.OnTick(func(s State) {
		select {
		case ticks <- s:
		default:
		}
	})

	select {
	case <-ticks:
	case <-time.After(2 * time.Second):
		t.Fatal("callback set after Run was never invoked")
	}
}

func TestNewEngineRejectsBadSpawns(t *testing.T) {
	config := testConfig()
	config.Layout.Patrols = append(config.Layout.Patrols, Spawn{X: 3, Y: config.Height, Period: 1})
	if _, err := NewEngine(config); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected out-of-bounds error, got %v", err)
	}
}
