package bot

import "github.com/lox/blackjack/internal/game"

// Cautious never risks a bust on a hard hand: it stands on hard 12 or more
// and hits soft hands below 18.
type Cautious struct{}

func (Cautious) Decide(_ game.State, player game.Player) Decision {
	if player.Hand.IsSoft() {
		if player.Score < 18 {
			return Decision{Action: Hit, Reasoning: "soft hand cannot bust"}
		}
		return Decision{Action: Stand, Reasoning: "good soft total"}
	}
	if player.Score < 12 {
		return Decision{Action: Hit, Reasoning: "hard total cannot bust"}
	}
	return Decision{Action: Stand, Reasoning: "avoid bust"}
}
