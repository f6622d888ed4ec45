package game

import (
	"fmt"

	"github.com/lox/blackjack/internal/deck"
)

// CardsPerHand bounds the cards a hand can hold before it must stand or
// bust: A A A A 2 2 2 2 3 3 3 is the longest 21
const CardsPerHand = 11

// Rules are the table rules a simulation runs under
type Rules struct {
	Decks              int
	ReshuffleThreshold float64 // reshuffle before a round once the remaining fraction drops below this
	DoubleAfterSplit   bool
}

// DefaultRules returns a six-deck shoe reshuffled at 25% with double after
// split allowed
func DefaultRules() Rules {
	return Rules{
		Decks:              6,
		ReshuffleThreshold: 0.25,
		DoubleAfterSplit:   true,
	}
}

// Validate checks the rules are playable
func (r Rules) Validate() error {
	if r.Decks < 1 {
		return fmt.Errorf("deck count must be positive, got %d", r.Decks)
	}
	if r.ReshuffleThreshold <= 0 || r.ReshuffleThreshold >= 1 {
		return fmt.Errorf("reshuffle threshold must be between 0 and 1 exclusive, got %g", r.ReshuffleThreshold)
	}
	return nil
}

// RoundReserve is the number of cards that must be left in the shoe when a
// round starts for seats players and the dealer
func RoundReserve(seats int) int {
	return (seats + 1) * CardsPerHand
}

// ValidateSeats checks that a full shoe can hold the round reserve for
// seats players
func (r Rules) ValidateSeats(seats int) error {
	total := r.Decks * deck.CardsPerDeck
	if need := RoundReserve(seats); need > total {
		return fmt.Errorf("%d players need %d cards per round but %d decks hold %d: %w",
			seats, need, r.Decks, total, ErrShoeTooSmall)
	}
	return nil
}

// ForSeats returns the rules with the reshuffle threshold raised so the
// shoe is reshuffled before it drops below the round reserve for seats
// players. The second result reports whether the threshold was raised.
func (r Rules) ForSeats(seats int) (Rules, bool) {
	total := r.Decks * deck.CardsPerDeck
	if total <= 0 {
		return r, false
	}
	need := float64(RoundReserve(seats)) / float64(total)
	if need <= r.ReshuffleThreshold {
		return r, false
	}
	if need > 1 {
		need = 1
	}
	r.ReshuffleThreshold = need
	return r, true
}
