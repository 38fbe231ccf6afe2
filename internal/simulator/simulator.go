// Package simulator plays many unattended rounds with bot strategies and
// collects outcome statistics.
package simulator

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/gameid"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds   int
	Bots     []string // Strategy per seat, 2-4 entries
	Seed     int64
	Workers  int
	Logger   *log.Logger
	Recorder game.Recorder // Optional; receives every finished round
}

// Simulator runs blackjack round simulations
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config}
}

// SeatNames returns the player name used for each bot seat
func SeatNames(bots []string) []string {
	names := make([]string, len(bots))
	for i, b := range bots {
		names[i] = fmt.Sprintf("%s %d", b, i+1)
	}
	return names
}

// Run plays the configured rounds split across workers. With one worker the
// results are fully determined by the seed.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Rounds < 1 {
		return nil, fmt.Errorf("rounds must be positive, got %d", s.config.Rounds)
	}
	names := SeatNames(s.config.Bots)
	if _, err := game.ValidateNames(names); err != nil {
		return nil, err
	}
	for _, b := range s.config.Bots {
		if _, err := bot.Lookup(b, nil); err != nil {
			return nil, err
		}
	}

	workers := min(s.config.Workers, s.config.Rounds)
	root := randutil.New(s.config.Seed)
	results := make([]*statistics.Statistics, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		rounds := s.config.Rounds / workers
		if w < s.config.Rounds%workers {
			rounds++
		}
		rng := randutil.Split(root)
		g.Go(func() error {
			stats, err := s.runWorker(ctx, w, rounds, names, rng)
			results[w] = stats
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := statistics.New()
	for _, stats := range results {
		total.Merge(stats)
	}
	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return total, nil
}

func (s *Simulator) runWorker(ctx context.Context, worker, rounds int, names []string, rng *rand.Rand) (*statistics.Statistics, error) {
	logger := s.config.Logger.With("worker", worker)

	seats := make([]bot.Strategy, len(s.config.Bots))
	for i, name := range s.config.Bots {
		strategy, err := bot.Lookup(name, randutil.Split(rng))
		if err != nil {
			return nil, err
		}
		seats[i] = strategy
	}

	opts := []game.Option{
		game.WithRNG(rng),
		game.WithIDs(gameid.NewGenerator(randutil.Split(rng))),
		game.WithLogger(logger),
	}
	if s.config.Recorder != nil {
		opts = append(opts, game.WithRecorder(s.config.Recorder))
	}
	table := game.New(opts...)
	if _, err := table.Start(names); err != nil {
		return nil, err
	}

	stats := statistics.New()
	for round := range rounds {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		bot.PlayTurns(table, seats, logger)
		state := table.PlayDealer()
		if state.Phase != game.PhaseGameOver {
			return stats, fmt.Errorf("round %d ended in phase %s", round+1, state.Phase)
		}
		stats.AddRound(state.Results)
		table.NewGame()
	}
	logger.Debug("Worker finished", "rounds", rounds)
	return stats, nil
}

// PrintSummary writes a summary of simulation results
func PrintSummary(w io.Writer, stats *statistics.Statistics, bots []string) {
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== FINAL RESULTS (%s) ===\n", strings.Join(bots, ", "))
	fmt.Fprintf(w, "Rounds played: %d\n", stats.Rounds)
	fmt.Fprintf(w, "Hands played: %d\n", stats.Hands)

	fmt.Fprintf(w, "\n=== OUTCOMES ===\n")
	fmt.Fprintf(w, "Wins: %d (%.1f%%)\n", stats.Wins, pct(stats.Wins, stats.Hands))
	fmt.Fprintf(w, "Losses: %d (%.1f%%)\n", stats.Losses, pct(stats.Losses, stats.Hands))
	fmt.Fprintf(w, "Ties: %d (%.1f%%)\n", stats.Ties, pct(stats.Ties, stats.Hands))
	fmt.Fprintf(w, "Player blackjacks: %d, player busts: %d\n", stats.Blackjacks, stats.PlayerBusts)
	fmt.Fprintf(w, "Dealer busts: %d (%.1f%% of rounds), dealer blackjacks: %d\n",
		stats.DealerBusts, stats.DealerBustRate()*100, stats.DealerBlackjacks)

	fmt.Fprintf(w, "\n=== STATISTICAL RESULTS ===\n")
	fmt.Fprintf(w, "Mean: %.4f units/hand\n", stats.Mean())
	fmt.Fprintf(w, "Std Dev: %.4f units\n", stats.StdDev())
	fmt.Fprintf(w, "Std Error: %.4f units\n", stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f] units/hand\n", low, high)

	fmt.Fprintf(w, "\n=== PLAYER ANALYSIS ===\n")
	for _, name := range stats.PlayerNames() {
		p := stats.Players[name]
		fmt.Fprintf(w, "%-12s %d hands, %.1f%% won, %.3f units/hand\n",
			name, p.Hands, p.WinRate()*100, p.Units/float64(p.Hands))
	}
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
