package game

import (
	"encoding/json"

	"github.com/lox/blackjack/internal/deck"
)

// NoActivePlayer is the CurrentPlayerIndex outside the playing phase.
const NoActivePlayer = -1

// State is an immutable snapshot of the round. The engine builds a new State
// on every transition, so a State obtained from Game can be kept around.
type State struct {
	RoundID            string
	Round              int
	Phase              Phase
	Players            []Player
	Dealer             Dealer
	Deck               deck.Deck
	CurrentPlayerIndex int
	Results            []Result
}

// ActivePlayer returns the player whose turn it is. The second value is false
// outside the playing phase.
func (s State) ActivePlayer() (Player, bool) {
	if s.Phase != PhasePlaying || s.CurrentPlayerIndex < 0 || s.CurrentPlayerIndex >= len(s.Players) {
		return Player{}, false
	}
	return s.Players[s.CurrentPlayerIndex], true
}

// PlayerNames returns the roster in seat order.
func (s State) PlayerNames() []string {
	names := make([]string, len(s.Players))
	for i, p := range s.Players {
		names[i] = p.Name
	}
	return names
}

// ResultFor returns the result recorded for a player name.
func (s State) ResultFor(name string) (Result, bool) {
	for _, r := range s.Results {
		if r.PlayerName == name {
			return r, true
		}
	}
	return Result{}, false
}

func (s State) clone() State {
	next := s
	if s.Players != nil {
		next.Players = make([]Player, len(s.Players))
		for i, p := range s.Players {
			next.Players[i] = p.clone()
		}
	}
	next.Dealer = s.Dealer.clone()
	if s.Results != nil {
		next.Results = make([]Result, len(s.Results))
		copy(next.Results, s.Results)
	}
	return next
}

type dealerView struct {
	Hand      Hand `json:"hand"`
	Hidden    int  `json:"hiddenCards"`
	Score     *int `json:"score"`
	Revealed  bool `json:"isRevealed"`
	Busted    bool `json:"isBusted"`
	Blackjack bool `json:"hasBlackjack"`
}

type stateView struct {
	RoundID            string     `json:"roundId"`
	Round              int        `json:"round"`
	Phase              Phase      `json:"gamePhase"`
	Players            []Player   `json:"players"`
	Dealer             dealerView `json:"dealer"`
	DeckRemaining      int        `json:"deckRemaining"`
	CurrentPlayerIndex int        `json:"currentPlayerIndex"`
	Results            []Result   `json:"results,omitempty"`
}

// MarshalJSON renders the snapshot for clients. The deck is reduced to a
// count and the dealer's hole card is withheld until it is revealed.
func (s State) MarshalJSON() ([]byte, error) {
	dv := dealerView{
		Revealed: s.Dealer.Revealed,
	}
	if s.Dealer.Revealed {
		dv.Hand = s.Dealer.Hand
		score := s.Dealer.Score
		dv.Score = &score
		dv.Busted = s.Dealer.Busted
		dv.Blackjack = s.Dealer.Blackjack
	} else {
		dv.Hand = s.Dealer.Visible()
		dv.Hidden = len(s.Dealer.Hand) - len(dv.Hand)
	}
	if dv.Hand == nil {
		dv.Hand = Hand{}
	}

	players := s.Players
	if players == nil {
		players = []Player{}
	}

	return json.Marshal(stateView{
		RoundID:            s.RoundID,
		Round:              s.Round,
		Phase:              s.Phase,
		Players:            players,
		Dealer:             dv,
		DeckRemaining:      s.Deck.Len(),
		CurrentPlayerIndex: s.CurrentPlayerIndex,
		Results:            s.Results,
	})
}
