package game

// Outcome is the result of one player's hand against the dealer.
type Outcome string

const (
	Win  Outcome = "win"
	Loss Outcome = "loss"
	Tie  Outcome = "tie"
)

// String returns the outcome name
func (o Outcome) String() string {
	return string(o)
}

// Label returns the short banner shown at the end of a round.
func (o Outcome) Label() string {
	switch o {
	case Win:
		return "WON"
	case Loss:
		return "LOST"
	case Tie:
		return "TIE"
	default:
		return "?"
	}
}

// Resolve decides a player's outcome. The checks run in a fixed order and
// the first match wins: naturals first, then the player bust, then the
// dealer bust, then the plain comparison. A player bust loses even when the
// dealer also busts.
func Resolve(playerScore, dealerScore int, playerBlackjack, dealerBlackjack bool) Outcome {
	switch {
	case playerBlackjack && dealerBlackjack:
		return Tie
	case playerBlackjack:
		return Win
	case dealerBlackjack:
		return Loss
	case playerScore > BlackjackTotal:
		return Loss
	case dealerScore > BlackjackTotal:
		return Win
	case playerScore > dealerScore:
		return Win
	case playerScore < dealerScore:
		return Loss
	default:
		return Tie
	}
}

// Result is the resolved outcome for one player at the end of a round.
type Result struct {
	PlayerID        string  `json:"playerId"`
	PlayerName      string  `json:"playerName"`
	Outcome         Outcome `json:"result"`
	PlayerScore     int     `json:"playerScore"`
	DealerScore     int     `json:"dealerScore"`
	PlayerBlackjack bool    `json:"playerBlackjack"`
	DealerBlackjack bool    `json:"dealerBlackjack"`
}
