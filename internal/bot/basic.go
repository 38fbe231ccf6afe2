package bot

import (
	"fmt"

	"github.com/lox/blackjack/internal/game"
)

// Basic plays hit/stand basic strategy against the dealer's up card. There
// are no doubles or splits at this table, so only the stand chart applies.
type Basic struct{}

func (Basic) Decide(view game.State, player game.Player) Decision {
	up := dealerUpValue(view)
	score := player.Score

	if player.Hand.IsSoft() {
		switch {
		case score >= 19:
			return Decision{Action: Stand, Reasoning: fmt.Sprintf("soft %d", score)}
		case score == 18 && up >= 9:
			return Decision{Action: Hit, Reasoning: fmt.Sprintf("soft 18 against %d", up)}
		case score == 18:
			return Decision{Action: Stand, Reasoning: fmt.Sprintf("soft 18 against %d", up)}
		default:
			return Decision{Action: Hit, Reasoning: fmt.Sprintf("soft %d", score)}
		}
	}

	weakDealer := up >= 2 && up <= 6
	switch {
	case score >= 17:
		return Decision{Action: Stand, Reasoning: fmt.Sprintf("hard %d", score)}
	case score >= 13 && weakDealer:
		return Decision{Action: Stand, Reasoning: fmt.Sprintf("hard %d, dealer shows %d", score, up)}
	case score == 12 && up >= 4 && up <= 6:
		return Decision{Action: Stand, Reasoning: fmt.Sprintf("hard 12, dealer shows %d", up)}
	default:
		return Decision{Action: Hit, Reasoning: fmt.Sprintf("hard %d, dealer shows %d", score, up)}
	}
}
