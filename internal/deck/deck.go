// Package deck builds, shuffles and deals the 52-card deck used by a round.
//
// A Deck is a value: Shuffle and Draw return a new Deck and leave the
// receiver untouched, so snapshots holding an older deck stay valid.
package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/blackjack/internal/gameid"
)

// Size is the number of cards in a standard deck.
const Size = 52

// ErrEmptyDeck is returned when drawing from an exhausted deck.
var ErrEmptyDeck = errors.New("deck is empty")

// IDGenerator supplies unique card ids.
type IDGenerator interface {
	Generate() string
}

// Deck is an ordered stack of cards. The last element is the top.
type Deck struct {
	cards []Card
}

// Standard builds an unshuffled 52-card deck, suit by suit, with every card
// tagged with a fresh id.
func Standard(ids IDGenerator) Deck {
	if ids == nil {
		ids = gameid.NewGenerator(nil)
	}
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			card := NewCard(suit, rank)
			card.ID = fmt.Sprintf("%s-%s-%s", suit.Name(), rank, ids.Generate())
			cards = append(cards, card)
		}
	}
	return Deck{cards: cards}
}

// New creates a fresh deck shuffled with rng.
func New(rng *rand.Rand, ids IDGenerator) Deck {
	return Standard(ids).Shuffle(rng)
}

// Stack returns a deck that deals the given cards in order: the first
// argument is the first card drawn. Cards without an id get a positional one.
func Stack(dealOrder ...Card) Deck {
	cards := make([]Card, len(dealOrder))
	for i, card := range dealOrder {
		if card.ID == "" {
			card.ID = fmt.Sprintf("%s-%s-stacked-%d", card.Suit.Name(), card.Rank, i)
		}
		cards[len(dealOrder)-1-i] = card
	}
	return Deck{cards: cards}
}

// Shuffle returns a uniformly shuffled copy using Fisher-Yates.
func (d Deck) Shuffle(rng *rand.Rand) Deck {
	cards := d.Cards()
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
	return Deck{cards: cards}
}

// Draw removes the top card and returns it with the remaining deck.
func (d Deck) Draw() (Card, Deck, error) {
	n := len(d.cards)
	if n == 0 {
		return Card{}, d, ErrEmptyDeck
	}
	// Cap the capacity so appends on the remainder can never reach the card
	// we just handed out.
	return d.cards[n-1], Deck{cards: d.cards[: n-1 : n-1]}, nil
}

// Peek returns the top card without removing it.
func (d Deck) Peek() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	return d.cards[len(d.cards)-1], true
}

// Len returns the number of cards left.
func (d Deck) Len() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Cards returns a copy of the cards, bottom first.
func (d Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Contains reports whether a card with the given id is still in the deck.
func (d Deck) Contains(id string) bool {
	for _, c := range d.cards {
		if c.ID == id {
			return true
		}
	}
	return false
}
