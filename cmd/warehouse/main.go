package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amalg/go-warehouse/internal/game"
	"github.com/amalg/go-warehouse/internal/logger"
	"github.com/amalg/go-warehouse/internal/ui"
)

func main() {
	config := game.DefaultConfig()
	width := flag.Int("width", config.Width, "Board width")
	height := flag.Int("height", config.Height, "Board height")
	seed := flag.Int64("seed", 0, "Level seed (0 for random)")
	tickInterval := flag.Duration("tick", config.TickInterval, "Time between ticks")
	logFile := flag.String("log", "", "Log file path (default: discard logs)")
	logLevel := flag.String("log-level", "", "Log level (default: $LOG_LEVEL or info)")
	flag.Parse()

	config.Width = *width
	config.Height = *height
	config.Seed = *seed
	config.TickInterval = *tickInterval

	// Logs never go to stderr here: any stderr output corrupts Bubbletea's
	// terminal rendering.
	log, closer, err := logger.New(logger.Options{Level: *logLevel, Path: *logFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	engine, err := game.NewEngine(config, game.WithEngineLogger(log))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build the level: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(ui.NewModel(engine, log), tea.WithAltScreen())

	// Handle OS signals for clean shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM)
	go func() {
		<-sigCh
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		log.WithError(err).Error("tui exited")
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
