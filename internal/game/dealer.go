package game

// DealerStandsOn is the total at which the dealer stops drawing.
const DealerStandsOn = 17

// MustHit is the dealer policy: draw while the total is below 17. A soft 17
// stands like a hard one.
func MustHit(score int) bool {
	return score < DealerStandsOn
}

// Dealer is the house hand. The second card dealt is the hole card and stays
// hidden until Revealed is set.
type Dealer struct {
	Hand      Hand `json:"hand"`
	Score     int  `json:"score"`
	Revealed  bool `json:"isRevealed"`
	Busted    bool `json:"isBusted"`
	Blackjack bool `json:"hasBlackjack"`
}

// ShouldHit applies the dealer policy to the current hand.
func (d Dealer) ShouldHit() bool {
	return !d.Busted && MustHit(d.Score)
}

// Visible returns the cards a player may see: everything once revealed,
// otherwise every card but the hole card.
func (d Dealer) Visible() Hand {
	if d.Revealed || len(d.Hand) < 2 {
		return d.Hand.clone()
	}
	visible := make(Hand, 0, len(d.Hand)-1)
	visible = append(visible, d.Hand[0])
	return append(visible, d.Hand[2:]...)
}

// VisibleScore scores only the visible cards.
func (d Dealer) VisibleScore() int {
	return Score(d.Visible())
}

func (d *Dealer) refresh() {
	d.Score = d.Hand.Score()
	d.Busted = d.Score > BlackjackTotal
	d.Blackjack = d.Hand.IsBlackjack()
}

func (d Dealer) clone() Dealer {
	d.Hand = d.Hand.clone()
	return d
}
