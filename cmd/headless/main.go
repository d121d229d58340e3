// Command headless plays the default level without a terminal UI. The agent
// follows random intents; the run ends on victory, defeat or the tick limit.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/amalg/go-warehouse/internal/game"
	"github.com/amalg/go-warehouse/internal/logger"
)

func main() {
	config := game.DefaultConfig()
	seed := flag.Int64("seed", 1, "Level seed (0 for random)")
	ticks := flag.Int("ticks", 2000, "Maximum ticks to run")
	tickInterval := flag.Duration("tick", time.Millisecond, "Time between ticks")
	logFile := flag.String("log", "-", `Log file path ("-" for stderr, "" to discard)`)
	logFormat := flag.String("log-format", "", "Log format: text or json")
	flag.Parse()

	config.Seed = *seed
	config.TickInterval = *tickInterval

	log, closer, err := logger.New(logger.Options{Format: *logFormat, Path: *logFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	engine, err := game.NewEngine(config, game.WithEngineLogger(log))
	if err != nil {
		log.WithError(err).Fatal("build level")
	}
	if err := engine.Start(); err != nil {
		log.WithError(err).Fatal("start")
	}

	final := run(engine, *ticks, rand.New(rand.NewSource(*seed)))

	log.WithFields(logrus.Fields{
		"status":   final.Status,
		"tick":     final.Tick,
		"kills":    final.Kills,
		"hostiles": final.HostilesLeft,
	}).Info("run finished")
	fmt.Printf("status=%s ticks=%d kills=%d hostiles_left=%d\n",
		final.Status, final.Tick, final.Kills, final.HostilesLeft)
}

// run drives the engine's own loop, feeding a random intent after each tick,
// and returns the state it stopped on.
func run(engine *game.Engine, limit int, rng *rand.Rand) game.State {
	done := make(chan game.State, 1)
	var once sync.Once

	engine.OnTick(func(s game.State) {
		if s.Status != game.StatusRunning || s.Tick >= limit {
			once.Do(func() { done <- s })
			return
		}
		engine.EnqueueIntent(game.Intent(rng.Intn(int(game.IntentDownRight) + 1)))
	})

	go engine.Run()
	final := <-done
	engine.Stop()
	return final
}
