package strategy

import (
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// Simple splits aces and eights, doubles anything under 12 and hits
// anything under 17
type Simple struct{}

func (Simple) PlayTurn(hand *game.Hand, dealerUp deck.Card, trueCount float64) game.Decision {
	return simpleDecision(hand, 17)
}

func simpleDecision(hand *game.Hand, hitBelow int) game.Decision {
	score := hand.Score()
	switch {
	case hand.CanSplit() && (hand.Cards[0].Rank == deck.Ace || hand.Cards[0].Rank == deck.Eight):
		return game.Split
	case score < 12:
		return game.Double
	case score < hitBelow:
		return game.Hit
	default:
		return game.Stand
	}
}

// HitUnder hits while the score is below Threshold and never doubles or
// splits
type HitUnder struct {
	Threshold int
}

func (h HitUnder) PlayTurn(hand *game.Hand, _ deck.Card, _ float64) game.Decision {
	if hand.Score() < h.Threshold {
		return game.Hit
	}
	return game.Stand
}

// HiLo plays like Simple but stands on 16 once the true count reaches
// Threshold, when the remaining shoe is rich in tens
type HiLo struct {
	Threshold float64
}

func (h HiLo) PlayTurn(hand *game.Hand, _ deck.Card, trueCount float64) game.Decision {
	if trueCount >= h.Threshold {
		return simpleDecision(hand, 16)
	}
	return simpleDecision(hand, 17)
}

// HiLoAggressive follows HiLo and additionally doubles soft 13 to 18
// against a weak dealer up card, and stands on hard 15 at a high count
type HiLoAggressive struct {
	Threshold float64
}

func (h HiLoAggressive) PlayTurn(hand *game.Hand, dealerUp deck.Card, trueCount float64) game.Decision {
	up := dealerUp.Value()
	score := hand.Score()

	if len(hand.Cards) == 2 && hand.IsSoft() && score >= 13 && score <= 18 && up >= 4 && up <= 6 && trueCount >= 1 {
		return game.Double
	}
	if !hand.IsSoft() && score == 15 && trueCount >= h.Threshold+1 {
		return game.Stand
	}
	return HiLo{Threshold: h.Threshold}.PlayTurn(hand, dealerUp, trueCount)
}
