package game

import "github.com/lox/blackjack/internal/deck"

const (
	// BlackjackTotal is the best possible hand total.
	BlackjackTotal = 21

	aceDemotion = 10
)

// Score returns the best total for a set of cards. Every ace starts at 11 and
// is demoted to 1, one at a time, while the total is over 21.
func Score(cards []deck.Card) int {
	total, _ := evaluate(cards)
	return total
}

// IsSoft reports whether at least one ace is still counted as 11.
func IsSoft(cards []deck.Card) bool {
	_, softAces := evaluate(cards)
	return softAces > 0
}

// IsBlackjack reports a natural: exactly two cards totalling 21. A 21 reached
// by hitting is an ordinary 21.
func IsBlackjack(cards []deck.Card) bool {
	return len(cards) == 2 && Score(cards) == BlackjackTotal
}

// IsBust reports a total over 21.
func IsBust(cards []deck.Card) bool {
	return Score(cards) > BlackjackTotal
}

func evaluate(cards []deck.Card) (total, softAces int) {
	for _, c := range cards {
		total += c.Value()
		if c.IsAce() {
			softAces++
		}
	}

	for total > BlackjackTotal && softAces > 0 {
		total -= aceDemotion
		softAces--
	}

	return total, softAces
}
