package strategy

import "github.com/lox/blackjack/internal/game"

// DefaultUnit is the flat wager progression bettors return to
const DefaultUnit = 10

// Percent bets a fixed share of the current balance, never less than one
// unit of currency. The engine clamps and seats the player out once the
// balance is gone.
type Percent struct {
	Percent int64
}

func (p Percent) PlaceBet(player game.PlayerView, _ float64) int64 {
	return max(player.Balance*p.Percent/100, 1)
}

// Martingale doubles the previous wager after every loss and returns to
// Unit after a win
type Martingale struct {
	Unit int64
}

func (m Martingale) PlaceBet(player game.PlayerView, _ float64) int64 {
	if player.LossStreak == 0 || player.LastBet == 0 {
		return m.Unit
	}
	return min(player.LastBet*2, player.Balance)
}

// Paroli doubles the previous wager after every win and returns to Unit
// after a loss
type Paroli struct {
	Unit int64
}

func (p Paroli) PlaceBet(player game.PlayerView, _ float64) int64 {
	if player.WinStreak == 0 || player.LastBet == 0 {
		return p.Unit
	}
	return min(player.LastBet*2, player.Balance)
}

// CountSpread bets High percent of the balance once the true count reaches
// Threshold and Low percent otherwise
type CountSpread struct {
	Threshold float64
	Low       int64
	High      int64
}

func (c CountSpread) PlaceBet(player game.PlayerView, trueCount float64) int64 {
	pct := c.Low
	if trueCount >= c.Threshold {
		pct = c.High
	}
	return Percent{Percent: pct}.PlaceBet(player, trueCount)
}

// CountRamp raises the wager by Step percent of the balance for every whole
// point of true count above zero, capped at Max percent
type CountRamp struct {
	Step int64
	Max  int64
}

func (c CountRamp) PlaceBet(player game.PlayerView, trueCount float64) int64 {
	pct := int64(1)
	if trueCount >= 1 {
		pct = min(int64(trueCount)*c.Step, c.Max)
	}
	return Percent{Percent: pct}.PlaceBet(player, trueCount)
}
