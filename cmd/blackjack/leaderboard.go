package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/coder/quartz"
	"github.com/lox/blackjack/cmd/blackjack/shared"
)

// LeaderboardCmd groups the leaderboard subcommands
type LeaderboardCmd struct {
	List  LeaderboardListCmd  `cmd:"" default:"1" help:"Print the leaderboard"`
	Clear LeaderboardClearCmd `cmd:"" help:"Delete every leaderboard entry"`
}

// LeaderboardListCmd prints the ranking
type LeaderboardListCmd struct {
	JSON bool `help:"Print the stored JSON"`
}

func (c *LeaderboardListCmd) Run(g *Globals) error {
	cfg, logger, err := g.load(nil)
	if err != nil {
		return err
	}
	ctx := context.Background()
	board, s, err := shared.OpenBoard(ctx, cfg, quartz.NewReal(), logger)
	if err != nil {
		return err
	}
	defer s.Close()

	entries := board.List(ctx)
	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	fmt.Print(shared.FormatEntries(entries))
	return nil
}

// LeaderboardClearCmd removes the stored ranking
type LeaderboardClearCmd struct {
	Yes bool `short:"y" help:"Do not ask for confirmation"`
}

func (c *LeaderboardClearCmd) Run(g *Globals) error {
	cfg, logger, err := g.load(nil)
	if err != nil {
		return err
	}
	if !c.Yes {
		fmt.Print("Clear the leaderboard? [y/N] ")
		var answer string
		_, _ = fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted")
			return nil
		}
	}

	ctx := context.Background()
	board, s, err := shared.OpenBoard(ctx, cfg, quartz.NewReal(), logger)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := board.Clear(ctx); err != nil {
		return fmt.Errorf("clear leaderboard: %w", err)
	}
	fmt.Println("Leaderboard cleared")
	return nil
}
