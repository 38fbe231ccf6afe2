package game

// Player is one seat at the table for the current round.
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Hand      Hand   `json:"hand"`
	Score     int    `json:"score"`
	Standing  bool   `json:"isStanding"`
	Busted    bool   `json:"isBusted"`
	Blackjack bool   `json:"hasBlackjack"`
	Active    bool   `json:"isActive"`
}

// CanAct returns true if the player may still hit or stand
func (p Player) CanAct() bool {
	return p.Active && !p.Standing && !p.Busted
}

// refresh recomputes every derived field from the hand.
func (p *Player) refresh() {
	p.Score = p.Hand.Score()
	p.Busted = p.Score > BlackjackTotal
	p.Blackjack = p.Hand.IsBlackjack()
}

func (p Player) clone() Player {
	p.Hand = p.Hand.clone()
	return p
}
