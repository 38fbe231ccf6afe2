package game

import (
	"context"
	"errors"
	"testing"

	"github.com/lox/blackjack/internal/deck"
)

func TestStartDealsTwoCardsEach(t *testing.T) {
	g := NewTestGame()
	state := MustStart(g, "Alice", "Bob", "Carol")

	if state.Phase != PhasePlaying {
		t.Fatalf("expected playing, got %s", state.Phase)
	}
	for _, p := range state.Players {
		if len(p.Hand) != 2 {
			t.Errorf("%s has %d cards, want 2", p.Name, len(p.Hand))
		}
		if p.Score != p.Hand.Score() {
			t.Errorf("%s score %d does not match hand %s", p.Name, p.Score, p.Hand)
		}
	}
	if len(state.Dealer.Hand) != 2 {
		t.Errorf("dealer has %d cards, want 2", len(state.Dealer.Hand))
	}
	if state.Dealer.Revealed {
		t.Error("dealer hole card should be hidden while players act")
	}
	if state.Deck.Len() != deck.Size-8 {
		t.Errorf("deck has %d cards, want %d", state.Deck.Len(), deck.Size-8)
	}
	if state.Round != 1 {
		t.Errorf("round = %d, want 1", state.Round)
	}

	active, ok := state.ActivePlayer()
	if !ok || active.Name != "Alice" || state.CurrentPlayerIndex != 0 {
		t.Errorf("expected Alice active at index 0, got %+v (ok=%v)", active, ok)
	}
	for i, p := range state.Players {
		if p.Active != (i == 0) {
			t.Errorf("player %d active = %v", i, p.Active)
		}
	}
}

func TestStartInterleavesDeal(t *testing.T) {
	g := NewTestGame(WithDeck(RiggedDeck([]string{"As Kh", "9c 8d"}, "Ts 7h", "")))
	state := MustStart(g, "Alice", "Bob")

	if got := state.Players[0].Hand.String(); got != "A♠ K♥" {
		t.Errorf("Alice hand = %s", got)
	}
	if got := state.Players[1].Hand.String(); got != "9♣ 8♦" {
		t.Errorf("Bob hand = %s", got)
	}
	if got := state.Dealer.Hand.String(); got != "10♠ 7♥" {
		t.Errorf("dealer hand = %s", got)
	}
	if !state.Players[0].Blackjack {
		t.Error("Alice should hold a natural")
	}
}

func TestStartValidation(t *testing.T) {
	g := NewTestGame()
	state, err := g.Start([]string{"Al", "al"})

	if !errors.Is(err, ErrInvalidPlayers) {
		t.Fatalf("expected ErrInvalidPlayers, got %v", err)
	}
	if state.Phase != PhaseSetup || g.Phase() != PhaseSetup {
		t.Errorf("validation failure must not transition, phase = %s", g.Phase())
	}
}

func TestStartTwice(t *testing.T) {
	g := NewTestGame()
	MustStart(g, "Alice", "Bob")

	if _, err := g.Start([]string{"Carol", "Dave"}); !errors.Is(err, ErrNotInSetup) {
		t.Errorf("expected ErrNotInSetup, got %v", err)
	}

	g.Reset()
	state := MustStart(g, "Carol", "Dave")
	if state.Players[0].Name != "Carol" {
		t.Errorf("expected new roster after reset, got %v", state.PlayerNames())
	}
}

func TestStandAdvancesTurn(t *testing.T) {
	g := NewTestGame(WithDeck(RiggedDeck([]string{"Ts 7h", "9c 8d", "Tc 9d"}, "Td 7c", "")))
	MustStart(g, "Alice", "Bob", "Carol")

	state, ok := g.Stand()
	if !ok {
		t.Fatal("stand should apply")
	}
	if state.CurrentPlayerIndex != 1 || !state.Players[0].Standing {
		t.Errorf("expected Alice standing and index 1, got index %d", state.CurrentPlayerIndex)
	}

	state, _ = g.Stand()
	if state.CurrentPlayerIndex != 2 {
		t.Errorf("expected index 2, got %d", state.CurrentPlayerIndex)
	}

	state, _ = g.Stand()
	if state.Phase != PhaseDealerTurn {
		t.Fatalf("expected dealer-turn after last stand, got %s", state.Phase)
	}
	if !state.Dealer.Revealed {
		t.Error("dealer should be revealed in dealer-turn")
	}
	if _, ok := state.ActivePlayer(); ok || state.CurrentPlayerIndex != NoActivePlayer {
		t.Error("no player may be active during dealer-turn")
	}
}

func TestHitBustAdvancesTurn(t *testing.T) {
	g := NewTestGame(WithDeck(RiggedDeck([]string{"Ts 6h", "9c 8d"}, "Td 7c", "Kd")))
	MustStart(g, "Alice", "Bob")

	state, ok := g.Hit()
	if !ok {
		t.Fatal("hit should apply")
	}
	alice := state.Players[0]
	if alice.Score != 26 || !alice.Busted || !alice.Standing {
		t.Errorf("expected Alice busted and standing on 26, got %+v", alice)
	}
	if state.CurrentPlayerIndex != 1 {
		t.Errorf("expected turn to pass to Bob, index %d", state.CurrentPlayerIndex)
	}
}

func TestActionsIgnoredOutsidePlaying(t *testing.T) {
	g := NewTestGame(WithDeck(RiggedDeck([]string{"Ts 6h", "9c 8d"}, "Td 7c", "Kd Kh")))

	if _, ok := g.Hit(); ok {
		t.Error("hit in setup should be a no-op")
	}
	if _, ok := g.AdvanceDealer(); ok {
		t.Error("dealer step in setup should be a no-op")
	}

	MustStart(g, "Alice", "Bob")
	g.Stand()
	before, ok := g.Hit() // Bob draws Kd and busts on 27
	if !ok || before.Phase != PhaseDealerTurn {
		t.Fatalf("expected Bob to bust into dealer-turn, got %s", before.Phase)
	}

	after, ok := g.Hit()
	if ok {
		t.Error("hit for a busted player should be a no-op")
	}
	if after.Deck.Len() != before.Deck.Len() {
		t.Error("ignored hit drew a card")
	}
	if _, ok := g.Stand(); ok {
		t.Error("stand during dealer-turn should be a no-op")
	}
	if _, ok := g.NewGame(); ok {
		t.Error("new game before game-over should be a no-op")
	}
}

func TestDealerDrawsToSeventeen(t *testing.T) {
	g := NewTestGame(WithDeck(RiggedDeck([]string{"Ts 8h", "9c 8d"}, "Td 6c", "2h 3s 9c")))
	MustStart(g, "Alice", "Bob")
	g.Stand()
	g.Stand()

	steps := 0
	state := g.State()
	for state.Phase == PhaseDealerTurn {
		state, _ = g.AdvanceDealer()
		steps++
		if state.Phase == PhaseDealerTurn && !state.Dealer.ShouldHit() && steps > 10 {
			t.Fatal("dealer turn did not terminate")
		}
	}

	// 16 -> 18 after 2h; the next step stands and resolves.
	if state.Dealer.Score != 18 {
		t.Errorf("dealer finished on %d, want 18", state.Dealer.Score)
	}
	if steps != 2 {
		t.Errorf("expected 2 dealer steps, got %d", steps)
	}
	if state.Phase != PhaseGameOver {
		t.Errorf("expected game-over, got %s", state.Phase)
	}
}

func TestDealerStandsOnSoftSeventeen(t *testing.T) {
	g := NewTestGame(WithDeck(RiggedDeck([]string{"Ts 8h", "9c 8d"}, "Ad 6c", "5h")))
	MustStart(g, "Alice", "Bob")
	g.Stand()
	g.Stand()

	state := g.PlayDealer()
	if len(state.Dealer.Hand) != 2 || state.Dealer.Score != 17 {
		t.Errorf("dealer should stand on soft 17, got %s (%d)", state.Dealer.Hand, state.Dealer.Score)
	}
}

func TestHitOnNaturalIsPlainHand(t *testing.T) {
	g := NewTestGame(WithDeck(RiggedDeck([]string{"As Kh", "9c 8d"}, "Ts 7h", "5d")))
	MustStart(g, "Alice", "Bob")

	state, ok := g.Hit()
	if !ok {
		t.Fatal("a natural may still hit")
	}
	alice := state.Players[0]
	if alice.Blackjack || alice.Score != 16 || alice.Busted {
		t.Fatalf("expected Alice on a plain 16 after hitting, got %+v", alice)
	}
	if state.CurrentPlayerIndex != 0 {
		t.Errorf("turn should stay with Alice, index %d", state.CurrentPlayerIndex)
	}

	g.Stand()
	g.Stand()
	state = g.PlayDealer()

	result, _ := state.ResultFor("Alice")
	if result.PlayerBlackjack || result.PlayerScore != 16 || result.Outcome != Loss {
		t.Errorf("Alice = %+v, want plain 16 losing to 17", result)
	}
}

func TestEndToEndBlackjackScenario(t *testing.T) {
	var recorded [][]Result
	recorder := RecorderFunc(func(_ context.Context, results []Result) {
		recorded = append(recorded, results)
	})

	g := NewTestGame(
		WithDeck(RiggedDeck([]string{"As Kh", "9c 8d"}, "Ts 7h", "")),
		WithRecorder(recorder),
	)
	MustStart(g, "Alice", "Bob")
	g.Stand()
	g.Stand()

	state, ok := g.AdvanceDealer()
	if !ok {
		t.Fatal("dealer step should apply")
	}
	if state.Phase != PhaseGameOver {
		t.Fatalf("dealer on 17 should stand immediately, phase = %s", state.Phase)
	}
	if len(state.Dealer.Hand) != 2 {
		t.Errorf("dealer drew unexpectedly: %s", state.Dealer.Hand)
	}

	alice, _ := state.ResultFor("Alice")
	bob, _ := state.ResultFor("Bob")
	if alice.Outcome != Win || !alice.PlayerBlackjack {
		t.Errorf("Alice = %+v, want blackjack win", alice)
	}
	if bob.Outcome != Tie || bob.PlayerScore != 17 || bob.DealerScore != 17 {
		t.Errorf("Bob = %+v, want tie on 17", bob)
	}

	if len(recorded) != 1 || len(recorded[0]) != 2 {
		t.Fatalf("expected one recorded batch of 2 results, got %v", recorded)
	}
}

func TestNewGameKeepsRoster(t *testing.T) {
	g := NewTestGame()
	first := MustStart(g, "Alice", "Bob")
	for _, ok := g.Stand(); ok; _, ok = g.Stand() {
	}
	g.PlayDealer()

	state, ok := g.NewGame()
	if !ok {
		t.Fatal("new game should apply after game-over")
	}
	if state.Round != 2 || state.Phase != PhasePlaying {
		t.Errorf("expected round 2 playing, got round %d %s", state.Round, state.Phase)
	}
	if state.Players[0].Name != "Alice" || state.Players[1].Name != "Bob" {
		t.Errorf("roster changed: %v", state.PlayerNames())
	}
	if state.Players[0].ID == first.Players[0].ID {
		t.Error("player ids should be fresh each round")
	}
	if state.RoundID == first.RoundID {
		t.Error("round id should change")
	}
	if state.Deck.Len() != deck.Size-6 || state.Results != nil {
		t.Errorf("expected fresh deck and no results, deck=%d results=%v", state.Deck.Len(), state.Results)
	}
}

func TestSnapshotsAreNotMutated(t *testing.T) {
	g := NewTestGame(WithDeck(RiggedDeck([]string{"Ts 2h", "9c 8d"}, "Td 7c", "3d 4s")))
	before := MustStart(g, "Alice", "Bob")

	g.Hit()
	g.Hit()

	if len(before.Players[0].Hand) != 2 || before.Players[0].Score != 12 {
		t.Errorf("earlier snapshot changed: %+v", before.Players[0])
	}
	if before.Deck.Len() != 2 {
		t.Errorf("earlier snapshot deck changed: %d", before.Deck.Len())
	}

	// Mutating a returned snapshot must not leak into the engine.
	current := g.State()
	current.Players[0].Hand[0] = deck.NewCard(deck.Hearts, deck.Ace)
	if g.State().Players[0].Hand[0].Rank != deck.Ten {
		t.Error("caller mutation leaked into engine state")
	}
}

func TestListenerSeesDealingPhase(t *testing.T) {
	var phases []Phase
	g := NewTestGame(WithListener(func(s State) { phases = append(phases, s.Phase) }))
	MustStart(g, "Alice", "Bob")

	if len(phases) != 2 || phases[0] != PhaseDealing || phases[1] != PhasePlaying {
		t.Errorf("expected [dealing playing], got %v", phases)
	}
}

func TestEmptyDeckPanics(t *testing.T) {
	g := NewTestGame(WithDeck(deck.Stack(deck.MustParseCards("As Kh 9c")...)))

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, deck.ErrEmptyDeck) {
			t.Errorf("expected panic wrapping ErrEmptyDeck, got %v", r)
		}
	}()
	g.Start([]string{"Alice", "Bob"})
}

// TestRandomRoundsKeepInvariants plays many seeded rounds with a simple
// stand-on-17 policy and checks conservation and termination rules.
func TestRandomRoundsKeepInvariants(t *testing.T) {
	g := NewTestGame()
	MustStart(g, "Alice", "Bob", "Carol", "Dave")

	for round := 0; round < 200; round++ {
		state := g.State()
		for state.Phase == PhasePlaying {
			p, _ := state.ActivePlayer()
			if p.Score < 17 {
				state, _ = g.Hit()
			} else {
				state, _ = g.Stand()
			}
		}
		state = g.PlayDealer()

		if state.Dealer.Score < 17 {
			t.Fatalf("round %d: dealer stopped on %d", state.Round, state.Dealer.Score)
		}

		seen := make(map[string]bool)
		total := state.Deck.Len()
		for _, p := range state.Players {
			total += len(p.Hand)
			for _, c := range p.Hand {
				if seen[c.ID] {
					t.Fatalf("round %d: card %s dealt twice", state.Round, c.ID)
				}
				seen[c.ID] = true
			}
			if p.Busted != (p.Score > 21) {
				t.Fatalf("round %d: %s busted flag out of sync", state.Round, p.Name)
			}
		}
		total += len(state.Dealer.Hand)
		if total != deck.Size {
			t.Fatalf("round %d: %d cards accounted for, want %d", state.Round, total, deck.Size)
		}
		if len(state.Results) != 4 {
			t.Fatalf("round %d: %d results", state.Round, len(state.Results))
		}
		for i, r := range state.Results {
			p := state.Players[i]
			if want := Resolve(p.Score, state.Dealer.Score, p.Blackjack, state.Dealer.Blackjack); r.Outcome != want {
				t.Fatalf("round %d: %s outcome %s, want %s", state.Round, p.Name, r.Outcome, want)
			}
		}

		g.NewGame()
	}
}
