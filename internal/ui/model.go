package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/amalg/go-warehouse/internal/game"
)

// noticeTicks is how long an event message stays on the HUD.
const noticeTicks = 10

// tickMsg asks the model to advance the engine by one step.
type tickMsg time.Time

// Model is the Bubbletea model for the game.
type Model struct {
	engine   *game.Engine
	log      logrus.FieldLogger
	state    *game.State
	notice   string
	noticeAt int
	culprit  uuid.UUID // Hostile that caught the agent
	err      error
	quitting bool
}

// NewModel creates a TUI model driving the given engine.
func NewModel(engine *game.Engine, log logrus.FieldLogger) Model {
	state := engine.Snapshot()
	return Model{
		engine: engine,
		log:    log,
		state:  &state,
	}
}

// Init schedules the first tick.
func (m Model) Init() tea.Cmd {
	return m.scheduleTick()
}

// Update handles incoming messages (key presses, ticks).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		state := m.engine.Tick()
		m.state = &state
		for _, ev := range state.Events {
			if ev.Type == game.EventAgentKilled {
				m.culprit = ev.ID
			}
		}
		if notice := noticeFor(state.Events); notice != "" {
			m.notice, m.noticeAt = notice, state.Tick
		} else if state.Tick-m.noticeAt > noticeTicks {
			m.notice = ""
		}
		return m, m.scheduleTick()
	}

	return m, nil
}

// View renders the current game state.
func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	if m.err != nil {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff4444")).
			Render("Error: "+m.err.Error()) + "\n"
	}

	left := RenderBoard(m.state, m.culprit)
	if overlay := RenderOverlay(m.state); overlay != "" {
		left = lipgloss.Place(
			lipgloss.Width(left), lipgloss.Height(left),
			lipgloss.Center, lipgloss.Center,
			overlay,
		)
	}

	// Layout: board on the left, HUD on the right
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		left,
		"  ",
		RenderHUD(m.state, m.notice),
	) + "\n"
}

var keyIntents = map[string]game.Intent{
	"up":    game.IntentUp,
	"down":  game.IntentDown,
	"left":  game.IntentLeft,
	"right": game.IntentRight,
	"y":     game.IntentUpLeft,
	"u":     game.IntentUpRight,
	"b":     game.IntentDownLeft,
	"n":     game.IntentDownRight,
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if intent, ok := keyIntents[key]; ok {
		m.engine.EnqueueIntent(intent)
		return m, nil
	}

	var err error
	switch key {
	case "x", "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "s", "enter":
		if m.engine.Snapshot().Status == game.StatusMenu {
			err = m.engine.Start()
		}
	case "t":
		err = m.engine.Restart()
	case "m":
		err = m.engine.Menu()
	default:
		return m, nil
	}

	if err != nil {
		m.log.WithError(err).WithField("key", key).Error("command failed")
		m.err = err
		return m, tea.Quit
	}
	state := m.engine.Snapshot()
	m.state = &state
	m.notice = ""
	m.culprit = uuid.Nil
	return m, nil
}

func (m Model) scheduleTick() tea.Cmd {
	return tea.Tick(m.engine.Config.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
