package shared

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/gameid"
	"github.com/lox/blackjack/internal/leaderboard"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/store"
)

// OpenBoard opens the configured store and wraps it in a leaderboard. The
// caller closes the returned store.
func OpenBoard(ctx context.Context, cfg *config.Config, clock quartz.Clock, logger *log.Logger) (*leaderboard.Board, store.Store, error) {
	s, err := store.Open(ctx, cfg.StoreConfig(), logger)
	if err != nil {
		return nil, nil, err
	}
	board := leaderboard.New(s,
		leaderboard.WithClock(clock),
		leaderboard.WithLogger(logger),
		leaderboard.WithKey(cfg.Leaderboard.Key),
		leaderboard.WithLimit(cfg.Leaderboard.Limit),
	)
	return board, s, nil
}

// GameOptions builds the engine options for the configured table. The seed
// is logged so any run can be replayed.
func GameOptions(cfg *config.Config, clock quartz.Clock, logger *log.Logger) ([]game.Option, int64) {
	seed, explicit := randutil.Seed(cfg.Game.Seed, clock)
	logger.Info("Seeding shuffle", "seed", seed, "explicit", explicit)

	rng := randutil.New(seed)
	opts := []game.Option{
		game.WithRNG(rng),
		game.WithIDs(gameid.NewGenerator(randutil.Split(rng))),
		game.WithLogger(logger),
	}
	if d, ok := cfg.StackedDeck(); ok {
		logger.Info("Using stacked deck", "cards", d.Len())
		opts = append(opts, game.WithDeck(d))
	}
	return opts, seed
}

// FormatEntries renders leaderboard entries as an aligned table.
func FormatEntries(entries []leaderboard.Entry) string {
	if len(entries) == 0 {
		return "No games recorded yet\n"
	}
	out := fmt.Sprintf("%-3s %-*s %5s %6s %5s %7s  %s\n", "#", game.MaxNameLength, "Name", "Wins", "Losses", "Ties", "Win %", "Last played")
	for i, e := range entries {
		out += fmt.Sprintf("%-3d %-*s %5d %6d %5d %6.1f%%  %s\n",
			i+1, game.MaxNameLength, e.Name, e.Wins, e.Losses, e.Ties, e.WinRate*100,
			e.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	return out
}
