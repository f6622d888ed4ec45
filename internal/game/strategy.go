package game

import (
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

// Decision is a strategy's choice for the hand in play
type Decision uint8

const (
	Stand Decision = iota
	Hit
	Double
	Split
)

// String returns the decision name
func (d Decision) String() string {
	switch d {
	case Stand:
		return "stand"
	case Hit:
		return "hit"
	case Double:
		return "double"
	case Split:
		return "split"
	default:
		return "unknown"
	}
}

// ParseDecision maps a decision name to a Decision. Unrecognised input is
// treated as Stand and reported with ok=false.
func ParseDecision(s string) (d Decision, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stand", "s":
		return Stand, true
	case "hit", "h":
		return Hit, true
	case "double", "double down", "d":
		return Double, true
	case "split", "p":
		return Split, true
	default:
		return Stand, false
	}
}

// Strategy sizes bets and plays hands for a player. Implementations must
// be pure functions of their arguments (and their own state); the engine
// calls them synchronously.
type Strategy interface {
	// PlaceBet is called once per round before the deal
	PlaceBet(player PlayerView, trueCount float64) int64

	// PlayTurn is called repeatedly while the hand is active. hand is a
	// copy; mutating it has no effect on the round.
	PlayTurn(hand *Hand, dealerUp deck.Card, trueCount float64) Decision
}
