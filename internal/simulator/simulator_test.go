package simulator

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/lox/blackjack/internal/game"
)

func TestNew_Defaults(t *testing.T) {
	sim := New(Config{Rounds: 10, Bots: []string{"basic", "dealer"}})
	if sim.config.Workers != 1 {
		t.Errorf("Expected 1 worker by default, got %d", sim.config.Workers)
	}
	if sim.config.Logger == nil {
		t.Error("Expected a default logger")
	}
}

func TestSeatNames(t *testing.T) {
	names := SeatNames([]string{"basic", "basic", "cautious"})
	want := []string{"basic 1", "basic 2", "cautious 3"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Seat %d: expected %q, got %q", i, want[i], names[i])
		}
	}
	if _, err := game.ValidateNames(names); err != nil {
		t.Errorf("Seat names should be a valid roster: %v", err)
	}
}

func TestSimulator_Run(t *testing.T) {
	sim := New(Config{Rounds: 200, Bots: []string{"basic", "cautious", "random"}, Seed: 7})
	stats, err := sim.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if stats.Rounds != 200 || stats.Hands != 600 {
		t.Fatalf("Expected 200 rounds of 3 hands, got %d/%d", stats.Rounds, stats.Hands)
	}
	if len(stats.Players) != 3 {
		t.Errorf("Expected 3 players, got %v", stats.PlayerNames())
	}
	if stats.Players["cautious 2"].Hands != 200 {
		t.Errorf("Expected 200 hands for the cautious seat, got %d", stats.Players["cautious 2"].Hands)
	}
}

func TestSimulator_Deterministic(t *testing.T) {
	run := func() float64 {
		stats, err := New(Config{Rounds: 100, Bots: []string{"basic", "random"}, Seed: 99}).Run(context.Background())
		if err != nil {
			t.Fatalf("Run() failed: %v", err)
		}
		return stats.SumUnits
	}
	if a, b := run(), run(); a != b {
		t.Errorf("Same seed produced different results: %v vs %v", a, b)
	}
}

func TestSimulator_Workers(t *testing.T) {
	var (
		mu     sync.Mutex
		rounds int
	)
	rec := game.RecorderFunc(func(_ context.Context, results []game.Result) {
		mu.Lock()
		rounds++
		mu.Unlock()
	})

	sim := New(Config{Rounds: 101, Bots: []string{"dealer", "basic"}, Seed: 1, Workers: 4, Recorder: rec})
	stats, err := sim.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if stats.Rounds != 101 {
		t.Errorf("Expected 101 rounds across workers, got %d", stats.Rounds)
	}
	if rounds != 101 {
		t.Errorf("Expected recorder to see 101 rounds, got %d", rounds)
	}
}

func TestSimulator_Errors(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{"no rounds", Config{Rounds: 0, Bots: []string{"basic", "basic"}}},
		{"one seat", Config{Rounds: 1, Bots: []string{"basic"}}},
		{"five seats", Config{Rounds: 1, Bots: []string{"basic", "basic", "basic", "basic", "basic"}}},
		{"unknown bot", Config{Rounds: 1, Bots: []string{"basic", "martingale"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.config).Run(context.Background()); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestSimulator_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(Config{Rounds: 10, Bots: []string{"basic", "basic"}}).Run(ctx); err == nil {
		t.Error("Expected cancellation error")
	}
}

func TestPrintSummary(t *testing.T) {
	stats, err := New(Config{Rounds: 20, Bots: []string{"basic", "dealer"}, Seed: 3}).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	PrintSummary(&buf, stats, []string{"basic", "dealer"})
	for _, want := range []string{"Rounds played: 20", "Hands played: 40", "basic 1", "dealer 2", "95% CI"} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Errorf("Summary missing %q:\n%s", want, buf.String())
		}
	}
}
