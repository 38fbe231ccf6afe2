package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/blackjack/internal/game"
)

// Payout returns the net result of a hand in betting units: a natural pays
// 3:2, any other win 1:1, a tie pushes.
func Payout(r game.Result) float64 {
	switch r.Outcome {
	case game.Win:
		if r.PlayerBlackjack {
			return 1.5
		}
		return 1
	case game.Loss:
		return -1
	default:
		return 0
	}
}

// Tally counts outcomes for one player or one seat
type Tally struct {
	Hands  int
	Wins   int
	Losses int
	Ties   int
	Units  float64
}

func (t *Tally) add(r game.Result) {
	t.Hands++
	t.Units += Payout(r)
	switch r.Outcome {
	case game.Win:
		t.Wins++
	case game.Loss:
		t.Losses++
	default:
		t.Ties++
	}
}

// WinRate returns wins over hands played
func (t Tally) WinRate() float64 {
	if t.Hands == 0 {
		return 0
	}
	return float64(t.Wins) / float64(t.Hands)
}

// Statistics accumulates resolved rounds for a session or simulation
type Statistics struct {
	Rounds int
	Hands  int

	SumUnits  float64
	SumUnits2 float64 // Sum of squares for variance calculation

	Wins   int
	Losses int
	Ties   int

	Blackjacks       int // Player naturals
	PlayerBusts      int
	DealerBusts      int // Rounds where the dealer busted
	DealerBlackjacks int // Rounds where the dealer had a natural

	Seats   [game.MaxPlayers]Tally // Index is the seat at the table
	Players map[string]*Tally
}

// New returns empty statistics
func New() *Statistics {
	return &Statistics{Players: make(map[string]*Tally)}
}

// AddRound incorporates every result of one finished round. Results are in
// seat order.
func (s *Statistics) AddRound(results []game.Result) {
	if len(results) == 0 {
		return
	}
	if s.Players == nil {
		s.Players = make(map[string]*Tally)
	}

	s.Rounds++
	first := results[0]
	if first.DealerScore > game.BlackjackTotal {
		s.DealerBusts++
	}
	if first.DealerBlackjack {
		s.DealerBlackjacks++
	}

	for seat, r := range results {
		units := Payout(r)
		s.Hands++
		s.SumUnits += units
		s.SumUnits2 += units * units

		switch r.Outcome {
		case game.Win:
			s.Wins++
		case game.Loss:
			s.Losses++
		default:
			s.Ties++
		}
		if r.PlayerBlackjack {
			s.Blackjacks++
		}
		if r.PlayerScore > game.BlackjackTotal {
			s.PlayerBusts++
		}

		if seat < len(s.Seats) {
			s.Seats[seat].add(r)
		}
		p, ok := s.Players[r.PlayerName]
		if !ok {
			p = &Tally{}
			s.Players[r.PlayerName] = p
		}
		p.add(r)
	}
}

// WinRate returns wins over all hands
func (s *Statistics) WinRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Hands)
}

// Mean returns the average net units per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumUnits / float64(s.Hands)
}

// Variance returns the sample variance of per-hand results
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	v := (s.SumUnits2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
	return math.Max(v, 0)
}

// StdDev returns the sample standard deviation
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// DealerBustRate returns the share of rounds the dealer busted
func (s *Statistics) DealerBustRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.DealerBusts) / float64(s.Rounds)
}

// PlayerNames returns every player seen, best win rate first.
func (s *Statistics) PlayerNames() []string {
	names := make([]string, 0, len(s.Players))
	for name := range s.Players {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := s.Players[names[i]], s.Players[names[j]]
		if a.WinRate() != b.WinRate() {
			return a.WinRate() > b.WinRate()
		}
		return names[i] < names[j]
	})
	return names
}

// Validate checks that every breakdown adds up to the totals
func (s *Statistics) Validate() error {
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if got := s.Wins + s.Losses + s.Ties; got != s.Hands {
		return fmt.Errorf("outcomes total (%d) does not match hands (%d)", got, s.Hands)
	}
	if s.Rounds > s.Hands {
		return fmt.Errorf("rounds (%d) exceed hands (%d)", s.Rounds, s.Hands)
	}
	if s.DealerBusts > s.Rounds {
		return fmt.Errorf("dealer busts (%d) exceed rounds (%d)", s.DealerBusts, s.Rounds)
	}

	seatHands := 0
	seatUnits := 0.0
	for _, seat := range s.Seats {
		seatHands += seat.Hands
		seatUnits += seat.Units
	}
	if seatHands != s.Hands {
		return fmt.Errorf("seat hands total (%d) does not match hands (%d)", seatHands, s.Hands)
	}
	if math.Abs(seatUnits-s.SumUnits) > 1e-6 {
		return fmt.Errorf("ledger mismatch: seats=%.6f total=%.6f", seatUnits, s.SumUnits)
	}

	playerHands := 0
	for _, p := range s.Players {
		playerHands += p.Hands
	}
	if playerHands != s.Hands {
		return fmt.Errorf("player hands total (%d) does not match hands (%d)", playerHands, s.Hands)
	}
	return nil
}

// Merge folds other into s. Used to combine per-worker results.
func (s *Statistics) Merge(other *Statistics) {
	if other == nil {
		return
	}
	if s.Players == nil {
		s.Players = make(map[string]*Tally)
	}
	s.Rounds += other.Rounds
	s.Hands += other.Hands
	s.SumUnits += other.SumUnits
	s.SumUnits2 += other.SumUnits2
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Ties += other.Ties
	s.Blackjacks += other.Blackjacks
	s.PlayerBusts += other.PlayerBusts
	s.DealerBusts += other.DealerBusts
	s.DealerBlackjacks += other.DealerBlackjacks

	for i := range s.Seats {
		s.Seats[i].merge(other.Seats[i])
	}
	for name, t := range other.Players {
		p, ok := s.Players[name]
		if !ok {
			p = &Tally{}
			s.Players[name] = p
		}
		p.merge(*t)
	}
}

func (t *Tally) merge(o Tally) {
	t.Hands += o.Hands
	t.Wins += o.Wins
	t.Losses += o.Losses
	t.Ties += o.Ties
	t.Units += o.Units
}
