package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cardsharp/drainvault/internal/config"
	"github.com/cardsharp/drainvault/internal/session"
	"github.com/cardsharp/drainvault/internal/simulator"
)

type SimulateCmd struct {
	Rounds     int    `default:"1000" help:"Rounds per session"`
	Sessions   int    `default:"8" help:"Independent sessions to run in parallel"`
	Strategy   string `default:"best" help:"Calling strategy: higher, lower, random, best"`
	Seed       int64  `default:"0" help:"RNG seed (0 for random)"`
	Config     string `default:"drainvault.hcl" help:"Path to the tuning config (missing file uses defaults)"`
	OddsLevel  int    `default:"0" help:"Simulated odds upgrade level"`
	BetLevel   int    `default:"0" help:"Simulated bet upgrade level"`
	JokerLevel int    `default:"0" help:"Simulated joker upgrade level"`
	Verbose    bool   `short:"V" help:"Verbose logging"`
}

func (c *SimulateCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var logger *log.Logger
	if c.Verbose {
		logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.DebugLevel})
	} else {
		logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})
	}

	fmt.Printf("Starting simulation: %d sessions x %d rounds, %s strategy (seed: %d)\n",
		c.Sessions, c.Rounds, c.Strategy, seed)

	sim := simulator.New(simulator.Config{
		Rounds:   c.Rounds,
		Sessions: c.Sessions,
		Strategy: c.Strategy,
		Seed:     seed,
		Game:     cfg.Game,
		Upgrades: session.Upgrades{
			OddsLevel:  c.OddsLevel,
			BetLevel:   c.BetLevel,
			JokerLevel: c.JokerLevel,
		},
		Logger: logger,
	})

	startTime := time.Now()
	stats, err := sim.Run()
	if err != nil {
		return err
	}
	duration := time.Since(startTime)

	simulator.PrintSummary(stats, c.Strategy)
	fmt.Printf("\n%d rounds in %v (%.0f rounds/sec)\n",
		stats.Rounds, duration.Round(time.Millisecond),
		float64(stats.Rounds)/duration.Seconds())
	return nil
}
