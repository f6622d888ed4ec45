package game

import "github.com/lox/blackjack/internal/deck"

// DealerStandScore is the total at which the dealer stops drawing. The
// dealer stands on every 17, soft or hard.
const DealerStandScore = 17

// Dealer is the house: one hand, no wagers, no decisions
type Dealer struct {
	hand *Hand
}

// NewDealer creates a dealer with an empty hand
func NewDealer() *Dealer {
	return &Dealer{hand: NewHand()}
}

// Reset clears the dealer's hand for a new round
func (d *Dealer) Reset() {
	d.hand = NewHand()
}

// Hand returns the dealer's hand
func (d *Dealer) Hand() *Hand {
	return d.hand
}

// UpCard returns the first card dealt to the dealer
func (d *Dealer) UpCard() deck.Card {
	if len(d.hand.Cards) == 0 {
		return deck.Card{}
	}
	return d.hand.Cards[0]
}

// AddCard gives the dealer a card
func (d *Dealer) AddCard(c deck.Card) {
	d.hand.AddCard(c)
}

// ShouldHit reports whether house rules require another card
func (d *Dealer) ShouldHit() bool {
	return d.hand.Score() < DealerStandScore
}
