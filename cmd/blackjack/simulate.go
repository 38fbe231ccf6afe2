package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/simulator"
)

// SimulateCmd plays unattended rounds between bot strategies
type SimulateCmd struct {
	Rounds  int      `short:"n" default:"10000" help:"Number of rounds to play"`
	Bots    []string `help:"Strategy per seat (dealer, random, cautious, basic); defaults to game.bots"`
	Seed    *int64   `help:"Deterministic seed"`
	Workers int      `default:"0" help:"Parallel tables (0 = number of CPUs)"`
	Record  bool     `help:"Record results on the leaderboard"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, logger, err := g.load(nil)
	if err != nil {
		return err
	}
	bots := cfg.Game.Bots
	if len(c.Bots) > 0 {
		bots = c.Bots
	}
	if c.Seed != nil {
		cfg.Game.Seed = c.Seed
	}
	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ctx, stop := shared.SetupSignalHandler(logger)
	defer stop()

	clock := quartz.NewReal()
	seed, _ := randutil.Seed(cfg.Game.Seed, clock)

	var recorder game.Recorder
	if c.Record {
		board, s, err := shared.OpenBoard(ctx, cfg, clock, logger)
		if err != nil {
			return err
		}
		defer s.Close()
		recorder = board
	}

	logger.Info("Starting simulation", "rounds", c.Rounds, "bots", bots, "seed", seed, "workers", workers)
	start := time.Now()
	stats, err := simulator.New(simulator.Config{
		Rounds:   c.Rounds,
		Bots:     bots,
		Seed:     seed,
		Workers:  workers,
		Logger:   logger,
		Recorder: recorder,
	}).Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	simulator.PrintSummary(os.Stdout, stats, bots)
	fmt.Printf("\nSeed: %d, elapsed: %s\n", seed, time.Since(start).Round(time.Millisecond))
	return nil
}
