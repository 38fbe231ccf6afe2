package game

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
)

// RiggedDeck builds a deck that deals the given opening hands and then the
// extra draws in order. Hands use deck.ParseCards notation, e.g. "As Kh".
// Opening cards are interleaved the way the table deals them: one to each
// player then the dealer, twice.
func RiggedDeck(playerHands []string, dealerHand string, draws string) deck.Deck {
	parse := func(s string) []deck.Card {
		cards := deck.MustParseCards(s)
		if len(cards) != 2 {
			panic(fmt.Sprintf("opening hand %q must have two cards", s))
		}
		return cards
	}

	players := make([][]deck.Card, len(playerHands))
	for i, h := range playerHands {
		players[i] = parse(h)
	}
	dealer := parse(dealerHand)

	var order []deck.Card
	for pass := 0; pass < 2; pass++ {
		for _, hand := range players {
			order = append(order, hand[pass])
		}
		order = append(order, dealer[pass])
	}
	order = append(order, deck.MustParseCards(draws)...)
	return deck.Stack(order...)
}

// NewTestGame creates a quiet game with a fixed seed. Extra options are
// applied after the defaults.
func NewTestGame(opts ...Option) *Game {
	rng := randutil.New(42)
	defaults := []Option{
		WithRNG(rng),
		WithLogger(log.New(io.Discard)),
	}
	return New(append(defaults, opts...)...)
}

// MustStart starts a game and panics on a validation error.
func MustStart(g *Game, names ...string) State {
	state, err := g.Start(names)
	if err != nil {
		panic(err)
	}
	return state
}
