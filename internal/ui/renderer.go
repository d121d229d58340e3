package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/amalg/go-warehouse/internal/game"
)

// Color palette
var (
	floorBg = lipgloss.Color("#f4f1ea")

	emptyStyle = lipgloss.NewStyle().
			Background(floorBg).
			Foreground(floorBg)

	agentStyle = lipgloss.NewStyle().
			Background(floorBg).
			Foreground(lipgloss.Color("#1f6feb")).
			Bold(true)

	deadAgentStyle = lipgloss.NewStyle().
			Background(floorBg).
			Foreground(lipgloss.Color("#666666")).
			Strikethrough(true)

	blockStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#8B6914")).
			Foreground(lipgloss.Color("#A0772B"))

	stickyStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#b03a8c")).
			Foreground(lipgloss.Color("#f0c0e0")).
			Bold(true)

	barrierStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#2d5a27")).
			Foreground(lipgloss.Color("#3f7a37"))

	hostileStyle = lipgloss.NewStyle().
			Background(floorBg).
			Foreground(lipgloss.Color("#d73a49")).
			Bold(true)

	bossStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#d73a49")).
			Foreground(lipgloss.Color("#ffffff")).
			Bold(true)

	culpritStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#ffdd00")).
			Foreground(lipgloss.Color("#d73a49")).
			Bold(true)

	// HUD styles
	hudBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff8844")).
			Bold(true)

	alertStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff4444")).
			Bold(true)

	winnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00aa66")).
			Bold(true).
			Blink(true)

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// glyphs are two characters wide for a square-ish cell.
var glyphs = map[game.Kind]string{
	game.KindAgent:       "@@",
	game.KindBlock:       "[]",
	game.KindStickyBlock: "<>",
	game.KindBarrier:     "##",
	game.KindPatrol:      "MM",
	game.KindWanderer:    "JJ",
	game.KindCamouflaged: "SK",
	game.KindBoss:        "BB",
	game.KindRipper:      "RR",
}

// RenderBoard converts the game state into a styled terminal string. The
// entity whose ID matches highlight, if any, is drawn in the culprit style.
func RenderBoard(state *game.State, highlight uuid.UUID) string {
	if state == nil || state.Width == 0 {
		return "Waiting for game state..."
	}

	byPos := make(map[game.Position]game.EntityView, len(state.Entities))
	for _, e := range state.Entities {
		byPos[e.Pos] = e
	}

	rows := make([]string, 0, state.Height)
	for y := 0; y < state.Height; y++ {
		cells := make([]string, 0, state.Width)
		for x := 0; x < state.Width; x++ {
			e, ok := byPos[game.Position{X: x, Y: y}]
			if !ok {
				cells = append(cells, emptyStyle.Render("  "))
				continue
			}
			if highlight != uuid.Nil && e.ID == highlight {
				cells = append(cells, culpritStyle.Render(glyphs[e.Kind]))
				continue
			}
			cells = append(cells, renderEntity(e))
		}
		rows = append(rows, strings.Join(cells, ""))
	}
	return strings.Join(rows, "\n")
}

// renderEntity renders one occupied cell. Disguised hostiles are drawn
// exactly like a block.
func renderEntity(e game.EntityView) string {
	glyph := glyphs[e.Kind]
	switch {
	case e.Kind == game.KindAgent && !e.Alive:
		return deadAgentStyle.Render("xx")
	case e.Kind == game.KindAgent:
		return agentStyle.Render(glyph)
	case e.Appearance == game.AppearanceDisguised:
		return blockStyle.Render(glyphs[game.KindBlock])
	case e.Kind == game.KindBoss && e.Appearance == game.AppearanceAltFrame:
		return bossStyle.Render("bb")
	case e.Kind == game.KindBoss:
		return bossStyle.Render(glyph)
	case e.Kind.IsHostile():
		return hostileStyle.Render(glyph)
	case e.Kind == game.KindStickyBlock:
		return stickyStyle.Render(glyph)
	case e.Kind == game.KindBarrier:
		return barrierStyle.Render(glyph)
	default:
		return blockStyle.Render(glyph)
	}
}

// RenderOverlay returns the centred message for non-running states, or "".
func RenderOverlay(state *game.State) string {
	if state == nil {
		return ""
	}
	var lines []string
	switch state.Status {
	case game.StatusMenu:
		lines = []string{
			titleStyle.Render("Welcome to the warehouse!"),
			"Push boxes to surround monsters.",
			"Sticky boxes <> freeze monsters.",
			"",
			"Press S to start the game!",
		}
	case game.StatusLost:
		lines = []string{
			alertStyle.Render("Game Over!"),
			"Press T to try again",
			"Press X to quit the game",
			"Press M for the main menu",
		}
	case game.StatusWon:
		lines = []string{
			winnerStyle.Render("You won!"),
			"Press T to play again",
			"Press X to quit the game",
		}
	default:
		return ""
	}
	return hudBorderStyle.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

// RenderHUD renders the side panel: status, counters and the latest notice.
func RenderHUD(state *game.State, notice string) string {
	if state == nil {
		return ""
	}

	var parts []string
	parts = append(parts, titleStyle.Render("WAREHOUSE"))
	parts = append(parts, "")

	switch state.Status {
	case game.StatusRunning:
		parts = append(parts, alertStyle.Render("Monsters are loose"))
	case game.StatusWon:
		parts = append(parts, winnerStyle.Render("All monsters dead"))
	case game.StatusLost:
		parts = append(parts, helpStyle.Render("You were caught"))
	default:
		parts = append(parts, helpStyle.Render("Main menu"))
	}
	parts = append(parts, "")
	parts = append(parts, fmt.Sprintf("Tick:     %d", state.Tick))
	parts = append(parts, fmt.Sprintf("Monsters: %d", state.HostilesLeft))
	parts = append(parts, fmt.Sprintf("Killed:   %d", state.Kills))
	parts = append(parts, "")
	if notice != "" {
		parts = append(parts, alertStyle.Render(notice))
	} else {
		parts = append(parts, "")
	}
	parts = append(parts, "")
	parts = append(parts, helpStyle.Render("Arrows: Move | y u b n: Diagonal"))
	parts = append(parts, helpStyle.Render("S: Start | T: Restart | M: Menu | X: Quit"))

	return hudBorderStyle.Render(strings.Join(parts, "\n"))
}

// noticeFor turns a tick's events into a one-line message.
func noticeFor(events []game.Event) string {
	notice := ""
	for _, ev := range events {
		switch ev.Type {
		case game.EventHostileKilled:
			notice = "You killed a monster!"
		case game.EventBlocksShattered:
			return fmt.Sprintf("The ripper shattered %d sticky boxes!", ev.Count)
		case game.EventAgentKilled:
			return fmt.Sprintf("Caught by a %s!", ev.Kind)
		}
	}
	return notice
}
