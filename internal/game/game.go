package game

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/deck"
)

// Game is the engine for a single table. It is not safe for concurrent use;
// callers that share a Game across goroutines must serialise access.
type Game struct {
	cfg    *config
	logger *log.Logger
	state  State
}

// New creates a game in the setup phase.
func New(opts ...Option) *Game {
	cfg := newConfig(opts)
	return &Game{
		cfg:    cfg,
		logger: cfg.logger.WithPrefix("game"),
		state:  State{Phase: PhaseSetup, CurrentPlayerIndex: NoActivePlayer},
	}
}

// State returns the current snapshot.
func (g *Game) State() State {
	return g.state.clone()
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.state.Phase
}

// Results returns the results of the finished round, or nil before game-over.
func (g *Game) Results() []Result {
	return g.state.clone().Results
}

// Start seats a roster and deals the first round. Names are validated first;
// on failure the returned error is a *ValidationError and the game stays in
// setup. Start only works from setup; use Reset to change the roster later.
func (g *Game) Start(names []string) (State, error) {
	if g.state.Phase != PhaseSetup {
		return g.State(), ErrNotInSetup
	}

	roster, err := ValidateNames(names)
	if err != nil {
		g.logger.Debug("Rejected roster", "names", names, "error", err)
		return g.State(), err
	}

	return g.deal(roster, 1), nil
}

// NewGame deals a fresh round for the same roster with a new deck. It only
// applies once the current round is over.
func (g *Game) NewGame() (State, bool) {
	if g.state.Phase != PhaseGameOver {
		return g.State(), false
	}
	return g.deal(g.state.PlayerNames(), g.state.Round+1), true
}

// Reset drops the roster and returns to setup.
func (g *Game) Reset() State {
	g.logger.Debug("Reset to setup")
	return g.commit(State{Phase: PhaseSetup, CurrentPlayerIndex: NoActivePlayer})
}

// Hit draws a card for the active player. A bust stands the player
// automatically and passes the turn. Returns false if nothing happened.
func (g *Game) Hit() (State, bool) {
	p, ok := g.state.ActivePlayer()
	if !ok || p.Standing || p.Busted {
		return g.State(), false
	}

	next := g.state.clone()
	current := &next.Players[next.CurrentPlayerIndex]
	current.Hand = current.Hand.With(next.draw())
	current.refresh()

	g.logger.Debug("Player hit",
		"player", current.Name,
		"hand", current.Hand,
		"score", current.Score,
		"busted", current.Busted)

	if current.Busted {
		current.Standing = true
		next.advanceTurn()
	}
	return g.commit(next), true
}

// Stand ends the active player's turn. Returns false if nothing happened.
func (g *Game) Stand() (State, bool) {
	p, ok := g.state.ActivePlayer()
	if !ok || p.Standing || p.Busted {
		return g.State(), false
	}

	next := g.state.clone()
	next.Players[next.CurrentPlayerIndex].Standing = true
	g.logger.Debug("Player stood", "player", p.Name, "score", p.Score)

	next.advanceTurn()
	return g.commit(next), true
}

// AdvanceDealer performs one step of the dealer's turn: either draw one card
// or, once the dealer stands or busts, finish the round. Callers decide the
// pacing between steps. Returns false outside the dealer turn.
func (g *Game) AdvanceDealer() (State, bool) {
	if g.state.Phase != PhaseDealerTurn {
		return g.State(), false
	}

	next := g.state.clone()
	if next.Dealer.ShouldHit() {
		next.Dealer.Hand = next.Dealer.Hand.With(next.draw())
		next.Dealer.refresh()
		g.logger.Debug("Dealer hit", "hand", next.Dealer.Hand, "score", next.Dealer.Score)
		return g.commit(next), true
	}

	next.Phase = PhaseGameOver
	next.Results = resolveAll(next)
	state := g.commit(next)

	g.logger.Info("Round complete",
		"round", state.Round,
		"dealer", state.Dealer.Score,
		"dealerBusted", state.Dealer.Busted,
		"results", len(state.Results))

	if g.cfg.recorder != nil {
		g.cfg.recorder.Record(context.Background(), state.Results)
	}
	return state, true
}

// PlayDealer runs dealer steps until the round is over. It is a no-op
// outside the dealer turn.
func (g *Game) PlayDealer() State {
	for g.state.Phase == PhaseDealerTurn {
		g.AdvanceDealer()
	}
	return g.State()
}

func (g *Game) deal(names []string, round int) State {
	next := State{
		RoundID:            g.cfg.ids.Generate(),
		Round:              round,
		Phase:              PhaseDealing,
		Players:            make([]Player, len(names)),
		Deck:               g.cfg.deckFn(),
		CurrentPlayerIndex: NoActivePlayer,
	}
	for i, name := range names {
		next.Players[i] = Player{ID: g.cfg.ids.Generate(), Name: name}
	}
	g.commit(next)

	next = next.clone()
	for pass := 0; pass < 2; pass++ {
		for i := range next.Players {
			p := &next.Players[i]
			p.Hand = p.Hand.With(next.draw())
			p.refresh()
		}
		next.Dealer.Hand = next.Dealer.Hand.With(next.draw())
		next.Dealer.refresh()
	}

	next.Phase = PhasePlaying
	next.setActive(0)

	g.logger.Info("Round dealt",
		"round", next.Round,
		"roundID", next.RoundID,
		"players", names,
		"deck", next.Deck.Len())
	return g.commit(next)
}

// commit installs next as the live state and notifies listeners. next must
// not be modified afterwards.
func (g *Game) commit(next State) State {
	g.state = next
	for _, l := range g.cfg.listeners {
		l(next.clone())
	}
	return next.clone()
}

// draw takes the top card. Running out of cards cannot happen with at most
// four players and is treated as a broken invariant.
func (s *State) draw() deck.Card {
	card, rest, err := s.Deck.Draw()
	if err != nil {
		panic(fmt.Errorf("round %d: %w", s.Round, err))
	}
	s.Deck = rest
	return card
}

func (s *State) setActive(index int) {
	s.CurrentPlayerIndex = index
	for i := range s.Players {
		s.Players[i].Active = i == index
	}
}

// advanceTurn moves to the next seat, or to the dealer after the last one.
func (s *State) advanceTurn() {
	next := s.CurrentPlayerIndex + 1
	if next < len(s.Players) {
		s.setActive(next)
		return
	}
	s.setActive(NoActivePlayer)
	s.Phase = PhaseDealerTurn
	s.Dealer.Revealed = true
}

func resolveAll(s State) []Result {
	results := make([]Result, len(s.Players))
	for i, p := range s.Players {
		results[i] = Result{
			PlayerID:        p.ID,
			PlayerName:      p.Name,
			Outcome:         Resolve(p.Score, s.Dealer.Score, p.Blackjack, s.Dealer.Blackjack),
			PlayerScore:     p.Score,
			DealerScore:     s.Dealer.Score,
			PlayerBlackjack: p.Blackjack,
			DealerBlackjack: s.Dealer.Blackjack,
		}
	}
	return results
}
