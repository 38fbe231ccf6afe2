package main

import (
	"github.com/coder/quartz"
	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/server"
)

// ServeCmd runs the HTTP and WebSocket server
type ServeCmd struct {
	Addr   string `help:"Listen address (overrides server.address)"`
	Seed   *int64 `help:"Deterministic shuffle seed"`
	PaceMs *int   `name:"pace-ms" help:"Delay between dealer draws in milliseconds"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, logger, err := g.load(nil)
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.Server.Address = c.Addr
	}
	if c.Seed != nil {
		cfg.Game.Seed = c.Seed
	}
	if c.PaceMs != nil {
		cfg.Dealer.PaceMS = *c.PaceMs
	}

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

	srv := server.New(game.New(opts...), board,
		server.WithClock(clock),
		server.WithPace(cfg.DealerPace()),
		server.WithLogger(logger),
	)

	logger.Info("Starting blackjack server",
		"address", cfg.Server.Address,
		"backend", cfg.Leaderboard.Backend,
		"pace", cfg.DealerPace())
	return srv.Run(ctx, cfg.Server.Address)
}
