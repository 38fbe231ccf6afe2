// Package bot provides automated players for simulations and for filling
// empty seats. Strategies only read snapshots; the engine applies their
// decisions.
package bot

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/lox/blackjack/internal/game"
)

// Action is a player decision
type Action int

const (
	Stand Action = iota
	Hit
)

// String returns the action name
func (a Action) String() string {
	if a == Hit {
		return "hit"
	}
	return "stand"
}

// Decision is an action and a short explanation for logs
type Decision struct {
	Action    Action
	Reasoning string
}

// Strategy decides for the active player. view is the snapshot the player
// would see, with the dealer's hole card still hidden.
type Strategy interface {
	Decide(view game.State, player game.Player) Decision
}

// StrategyFunc adapts a function to Strategy
type StrategyFunc func(view game.State, player game.Player) Decision

func (f StrategyFunc) Decide(view game.State, player game.Player) Decision {
	return f(view, player)
}

var registry = map[string]func(rng *rand.Rand) Strategy{
	"dealer":   func(*rand.Rand) Strategy { return NewThreshold(game.DealerStandsOn) },
	"random":   func(rng *rand.Rand) Strategy { return NewRandom(rng) },
	"cautious": func(*rand.Rand) Strategy { return Cautious{} },
	"basic":    func(*rand.Rand) Strategy { return Basic{} },
}

// Names lists the registered strategies
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns a strategy by name. rng is only used by strategies that
// need randomness.
func Lookup(name string, rng *rand.Rand) (Strategy, error) {
	factory, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (want one of %s)", name, strings.Join(Names(), ", "))
	}
	return factory(rng), nil
}

// dealerUpValue returns the nominal value of the dealer's face-up card, or
// 0 if nothing is showing.
func dealerUpValue(view game.State) int {
	visible := view.Dealer.Visible()
	if len(visible) == 0 {
		return 0
	}
	return visible[0].Value()
}
