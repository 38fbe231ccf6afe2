package bot

import (
	"fmt"

	"github.com/lox/blackjack/internal/game"
)

// Threshold hits below a fixed total and stands otherwise. With 17 it plays
// exactly like the dealer.
type Threshold struct {
	StandOn int
}

// NewThreshold creates a Threshold bot
func NewThreshold(standOn int) Threshold {
	return Threshold{StandOn: standOn}
}

func (t Threshold) Decide(_ game.State, player game.Player) Decision {
	if player.Score < t.StandOn {
		return Decision{Action: Hit, Reasoning: fmt.Sprintf("%d is below %d", player.Score, t.StandOn)}
	}
	return Decision{Action: Stand, Reasoning: fmt.Sprintf("%d reaches %d", player.Score, t.StandOn)}
}
