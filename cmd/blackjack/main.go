package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version     kong.VersionFlag `short:"v" help:"Show version"`
	Play        PlayCmd          `cmd:"" default:"withargs" help:"Play at a local table in the terminal"`
	Serve       ServeCmd         `cmd:"" help:"Serve a table over HTTP and WebSocket"`
	Simulate    SimulateCmd      `cmd:"" help:"Play many rounds with bots and report statistics"`
	Leaderboard LeaderboardCmd   `cmd:"" help:"Show or clear the leaderboard"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Multiplayer blackjack for 2-4 players against the dealer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
