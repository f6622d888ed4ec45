// Package strategy provides the named betting and playing policies a
// simulation can seat at the table.
//
// Every policy is a Composite of a Bettor, which sizes the opening wager,
// and a Player, which makes the per-hand decisions. Both halves are pure
// functions of what the engine passes in, so one value can be shared by
// several seats.
package strategy

import (
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// Bettor sizes the opening wager for a round
type Bettor interface {
	PlaceBet(player game.PlayerView, trueCount float64) int64
}

// Player decides how to play a hand
type Player interface {
	PlayTurn(hand *game.Hand, dealerUp deck.Card, trueCount float64) game.Decision
}

// Composite joins a Bettor and a Player into a game.Strategy
type Composite struct {
	Bettor Bettor
	Player Player
}

func (c Composite) PlaceBet(player game.PlayerView, trueCount float64) int64 {
	return c.Bettor.PlaceBet(player, trueCount)
}

func (c Composite) PlayTurn(hand *game.Hand, dealerUp deck.Card, trueCount float64) game.Decision {
	return c.Player.PlayTurn(hand, dealerUp, trueCount)
}

// BetFunc adapts a function to Bettor
type BetFunc func(player game.PlayerView, trueCount float64) int64

func (f BetFunc) PlaceBet(player game.PlayerView, trueCount float64) int64 {
	return f(player, trueCount)
}

// PlayFunc adapts a function to Player
type PlayFunc func(hand *game.Hand, dealerUp deck.Card, trueCount float64) game.Decision

func (f PlayFunc) PlayTurn(hand *game.Hand, dealerUp deck.Card, trueCount float64) game.Decision {
	return f(hand, dealerUp, trueCount)
}
