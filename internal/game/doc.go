// Package game implements the blackjack round engine.
//
// The main type is Game, which owns one round at a time: the deck, the
// players, the dealer and the phase. Every transition produces a fresh State
// snapshot; snapshots handed out earlier are never modified.
//
// # Basic Usage
//
//	g := game.New(game.WithRNG(randutil.New(42)))
//	state, err := g.Start([]string{"Alice", "Bob"})
//	if err != nil {
//	    // err is a *ValidationError with one message per bad name
//	}
//	state, _ = g.Hit()   // active player draws
//	state, _ = g.Stand() // active player stands, turn advances
//	for state.Phase == game.PhaseDealerTurn {
//	    state, _ = g.AdvanceDealer() // one dealer step per call
//	}
//	results := state.Results
//
// # Phases
//
//	setup -> dealing -> playing -> dealer-turn -> game-over
//	game-over -> dealing (NewGame, same roster, fresh deck)
//
// Actions that arrive in the wrong phase, or for a player who already stood
// or busted, are ignored: the operation returns the current state and false.
//
// # Deterministic Testing
//
// Inject a seeded RNG, or a stacked deck for complete control:
//
//	g := game.New(game.WithDeck(deck.Stack(deck.MustParseCards("As 9h Td Kc 8s 7d")...)))
//
// # Architecture
//
// Game delegates the pure rules to small functions that are easy to test on
// their own:
//   - Score and IsBlackjack: hand totals with soft/hard ace handling
//   - Resolve: outcome precedence between one player and the dealer
//   - MustHit: the dealer policy (hit below 17, soft 17 stands)
//   - ValidateNames: roster validation at the setup boundary
package game
