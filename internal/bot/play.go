package bot

import (
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/game"
)

// PlayTurns drives the playing phase, asking seats[i] to act for player i
// until the dealer's turn. Seats without a strategy stand.
func PlayTurns(g *game.Game, seats []Strategy, logger *log.Logger) game.State {
	state := g.State()
	for state.Phase == game.PhasePlaying {
		player, ok := state.ActivePlayer()
		if !ok {
			break
		}

		decision := Decision{Action: Stand, Reasoning: "empty seat"}
		if idx := state.CurrentPlayerIndex; idx < len(seats) && seats[idx] != nil {
			decision = seats[idx].Decide(state, player)
		}
		if logger != nil {
			logger.Debug("Bot decision",
				"player", player.Name,
				"hand", player.Hand,
				"score", player.Score,
				"action", decision.Action,
				"reasoning", decision.Reasoning)
		}

		var applied bool
		if decision.Action == Hit {
			state, applied = g.Hit()
		} else {
			state, applied = g.Stand()
		}
		if !applied {
			// The engine refused; standing always advances the turn.
			state, _ = g.Stand()
		}
	}
	return state
}
