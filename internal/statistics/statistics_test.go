package statistics

import (
	"math"
	"testing"

	"github.com/lox/blackjack/internal/game"
)

func TestStatistics_Empty(t *testing.T) {
	stats := New()

	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty stats, got %f", stats.StdError())
	}
	if stats.WinRate() != 0 || stats.DealerBustRate() != 0 {
		t.Error("Expected zero rates for empty stats")
	}
	if err := stats.Validate(); err == nil {
		t.Error("Expected validation error for empty stats")
	}
}

func TestPayout(t *testing.T) {
	tests := []struct {
		result game.Result
		want   float64
	}{
		{game.Result{Outcome: game.Win, PlayerBlackjack: true}, 1.5},
		{game.Result{Outcome: game.Win}, 1},
		{game.Result{Outcome: game.Tie, PlayerBlackjack: true}, 0},
		{game.Result{Outcome: game.Loss}, -1},
	}
	for _, tt := range tests {
		if got := Payout(tt.result); got != tt.want {
			t.Errorf("Payout(%+v) = %v, want %v", tt.result, got, tt.want)
		}
	}
}

func TestStatistics_AddRound(t *testing.T) {
	stats := New()
	stats.AddRound([]game.Result{
		{PlayerName: "Alice", Outcome: game.Win, PlayerScore: 21, PlayerBlackjack: true, DealerScore: 17},
		{PlayerName: "Bob", Outcome: game.Tie, PlayerScore: 17, DealerScore: 17},
	})
	stats.AddRound([]game.Result{
		{PlayerName: "Alice", Outcome: game.Loss, PlayerScore: 24, DealerScore: 25},
		{PlayerName: "Bob", Outcome: game.Win, PlayerScore: 18, DealerScore: 25},
	})

	if stats.Rounds != 2 || stats.Hands != 4 {
		t.Fatalf("Expected 2 rounds and 4 hands, got %d/%d", stats.Rounds, stats.Hands)
	}
	if stats.Wins != 2 || stats.Losses != 1 || stats.Ties != 1 {
		t.Errorf("Unexpected outcome counts: %+v", stats)
	}
	if stats.Blackjacks != 1 || stats.PlayerBusts != 1 || stats.DealerBusts != 1 {
		t.Errorf("Unexpected event counts: bj=%d busts=%d dealer=%d", stats.Blackjacks, stats.PlayerBusts, stats.DealerBusts)
	}
	if math.Abs(stats.Mean()-0.375) > 1e-9 {
		t.Errorf("Expected mean of 0.375, got %f", stats.Mean())
	}
	if stats.DealerBustRate() != 0.5 {
		t.Errorf("Expected dealer bust rate 0.5, got %f", stats.DealerBustRate())
	}

	alice := stats.Players["Alice"]
	if alice.Hands != 2 || alice.Wins != 1 || alice.Losses != 1 || alice.Units != 0.5 {
		t.Errorf("Unexpected Alice tally: %+v", alice)
	}
	if stats.Seats[1].Hands != 2 || stats.Seats[1].Units != 1 {
		t.Errorf("Unexpected seat 2 tally: %+v", stats.Seats[1])
	}
	if names := stats.PlayerNames(); names[0] != "Alice" || names[1] != "Bob" {
		t.Errorf("Expected Alice before Bob on name tie-break, got %v", names)
	}

	if err := stats.Validate(); err != nil {
		t.Errorf("Expected valid stats, got %v", err)
	}
}

func TestStatistics_ConfidenceInterval(t *testing.T) {
	stats := New()
	for i := 0; i < 50; i++ {
		stats.AddRound([]game.Result{
			{PlayerName: "A", Outcome: game.Win, DealerScore: 18},
			{PlayerName: "B", Outcome: game.Loss, DealerScore: 18},
		})
	}

	low, high := stats.ConfidenceInterval95()
	if low >= 0 || high <= 0 {
		t.Errorf("Expected interval around 0, got [%f, %f]", low, high)
	}
	if math.Abs(stats.Variance()-100.0/99.0) > 1e-9 {
		t.Errorf("Expected variance 100/99, got %f", stats.Variance())
	}
}

func TestStatistics_ValidateDetectsDrift(t *testing.T) {
	stats := New()
	stats.AddRound([]game.Result{{PlayerName: "A", Outcome: game.Win}, {PlayerName: "B", Outcome: game.Loss}})

	stats.Wins++
	if err := stats.Validate(); err == nil {
		t.Error("Expected outcome mismatch")
	}
	stats.Wins--

	stats.Seats[0].Units += 3
	if err := stats.Validate(); err == nil {
		t.Error("Expected ledger mismatch")
	}
}

func TestStatistics_FromEngine(t *testing.T) {
	stats := New()
	g := game.NewTestGame()
	game.MustStart(g, "Alice", "Bob", "Carol")

	for i := 0; i < 100; i++ {
		for {
			if _, ok := g.Stand(); !ok {
				break
			}
		}
		state := g.PlayDealer()
		stats.AddRound(state.Results)
		g.NewGame()
	}

	if stats.Rounds != 100 || stats.Hands != 300 {
		t.Fatalf("Expected 100 rounds of 3 hands, got %d/%d", stats.Rounds, stats.Hands)
	}
	if stats.PlayerBusts != 0 {
		t.Errorf("Players who always stand cannot bust, got %d", stats.PlayerBusts)
	}
	if err := stats.Validate(); err != nil {
		t.Error(err)
	}
}

func TestStatistics_Merge(t *testing.T) {
	a, b := New(), New()
	a.AddRound([]game.Result{
		{PlayerName: "Alice", Outcome: game.Win, DealerScore: 23},
		{PlayerName: "Bob", Outcome: game.Loss, DealerScore: 23},
	})
	b.AddRound([]game.Result{
		{PlayerName: "Alice", Outcome: game.Tie, DealerScore: 19},
		{PlayerName: "Carol", Outcome: game.Win, PlayerBlackjack: true, DealerScore: 19},
	})

	a.Merge(b)
	a.Merge(nil)

	if a.Rounds != 2 || a.Hands != 4 || a.DealerBusts != 1 {
		t.Fatalf("Unexpected totals: rounds=%d hands=%d busts=%d", a.Rounds, a.Hands, a.DealerBusts)
	}
	if got := a.Players["Alice"]; got.Hands != 2 || got.Wins != 1 || got.Ties != 1 {
		t.Errorf("Unexpected Alice tally: %+v", got)
	}
	if got := a.Players["Carol"]; got.Units != 1.5 {
		t.Errorf("Expected Carol to hold 1.5 units, got %v", got.Units)
	}
	if a.Seats[1].Hands != 2 {
		t.Errorf("Expected 2 hands at seat 2, got %d", a.Seats[1].Hands)
	}
	if err := a.Validate(); err != nil {
		t.Error(err)
	}
}
