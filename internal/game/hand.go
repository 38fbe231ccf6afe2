package game

import (
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

// Hand is the ordered set of cards held by a player or the dealer. All
// derived values are computed from the cards on every call.
type Hand []deck.Card

// With returns a new hand with card appended. The receiver is not modified.
func (h Hand) With(card deck.Card) Hand {
	next := make(Hand, len(h), len(h)+1)
	copy(next, h)
	return append(next, card)
}

// Score returns the best total for the hand
func (h Hand) Score() int { return Score(h) }

// IsBlackjack reports a two-card 21
func (h Hand) IsBlackjack() bool { return IsBlackjack(h) }

// IsBust reports a total over 21
func (h Hand) IsBust() bool { return IsBust(h) }

// IsSoft reports whether an ace is still counted as 11
func (h Hand) IsSoft() bool { return IsSoft(h) }

// String renders the hand as "A♠ K♥"
func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func (h Hand) clone() Hand {
	if h == nil {
		return nil
	}
	out := make(Hand, len(h))
	copy(out, h)
	return out
}
