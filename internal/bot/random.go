package bot

import (
	"math/rand/v2"

	"github.com/lox/blackjack/internal/game"
)

// Random hits or stands with equal odds but never hits 21
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a Random bot
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (r *Random) Decide(_ game.State, player game.Player) Decision {
	if player.Score >= game.BlackjackTotal {
		return Decision{Action: Stand, Reasoning: "random-bot holding 21"}
	}
	if r.rng.IntN(2) == 0 {
		return Decision{Action: Hit, Reasoning: "random-bot coin flip"}
	}
	return Decision{Action: Stand, Reasoning: "random-bot coin flip"}
}
