package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/tui"
)

// PlayCmd runs the terminal UI
type PlayCmd struct {
	Players []string `arg:"" optional:"" help:"Player names to prefill (2-4)"`
	Seed    *int64   `help:"Deterministic shuffle seed"`
	PaceMs  *int     `name:"pace-ms" help:"Delay between dealer draws in milliseconds"`
	NoColor bool     `help:"Disable colour output"`
	LogFile string   `type:"path" help:"Write logs to this file (the UI owns the terminal)"`
}

func (c *PlayCmd) Run(g *Globals) error {
	var logOut io.Writer = io.Discard
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}

	cfg, logger, err := g.load(logOut)
	if err != nil {
		return err
	}
	if c.Seed != nil {
		cfg.Game.Seed = c.Seed
	}
	if c.PaceMs != nil {
		cfg.Dealer.PaceMS = *c.PaceMs
	}
	names := cfg.Game.Players
	if len(c.Players) > 0 {
		names = c.Players
	}
	tui.SetColor(!c.NoColor)

	ctx, stop := shared.SetupSignalHandler(logger)
	defer stop()

	clock := quartz.NewReal()
	board, s, err := shared.OpenBoard(ctx, cfg, clock, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	opts, _ := shared.GameOptions(cfg, clock, logger)
	opts = append(opts, game.WithRecorder(board))

	model := tui.NewModel(game.New(opts...),
		tui.WithBoard(board),
		tui.WithLogger(logger),
		tui.WithPace(time.Duration(cfg.Dealer.PaceMS)*time.Millisecond),
		tui.WithNames(names...),
	)
	if err := tui.Run(ctx, model); err != nil {
		return err
	}

	if stats := model.Statistics(); stats.Rounds > 0 {
		fmt.Printf("Played %d rounds. Wins %d, losses %d, ties %d (%.1f%% won)\n",
			stats.Rounds, stats.Wins, stats.Losses, stats.Ties, stats.WinRate()*100)
	}
	return nil
}
