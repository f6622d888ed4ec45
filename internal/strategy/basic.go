package strategy

import (
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// Chart actions. Each chart row is indexed by dealer up card, 2 through ace.
const (
	actHit           = 'H'
	actStand         = 'S'
	actSplit         = 'P'
	actDoubleOrHit   = 'D'
	actDoubleOrStand = 'T'
)

// hardChart covers hard totals 4 through 21
var hardChart = [...]string{
	4:  "HHHHHHHHHH",
	5:  "HHHHHHHHHH",
	6:  "HHHHHHHHHH",
	7:  "HHHHHHHHHH",
	8:  "HHHHHHHHHH",
	9:  "HDDDDHHHHH",
	10: "DDDDDDDDHH",
	11: "DDDDDDDDDH",
	12: "HHSSSHHHHH",
	13: "SSSSSHHHHH",
	14: "SSSSSHHHHH",
	15: "SSSSSHHHHH",
	16: "SSSSSHHHHH",
	17: "SSSSSSSSSS",
	18: "SSSSSSSSSS",
	19: "SSSSSSSSSS",
	20: "SSSSSSSSSS",
	21: "SSSSSSSSSS",
}

// softChart covers soft totals 12 (A,A played without splitting) through 21
var softChart = [...]string{
	12: "HHHHHHHHHH",
	13: "HHHDDHHHHH",
	14: "HHHDDHHHHH",
	15: "HHDDDHHHHH",
	16: "HHDDDHHHHH",
	17: "HDDDDHHHHH",
	18: "STTTTSSHHH",
	19: "SSSSSSSSSS",
	20: "SSSSSSSSSS",
	21: "SSSSSSSSSS",
}

// pairChart is indexed by the value of one card of the pair. Fives are
// played as hard ten and tens always stand, so neither has a row.
var pairChart = [...]string{
	2:  "PPPPPPHHHH",
	3:  "PPPPPPHHHH",
	4:  "HHHPPHHHHH",
	6:  "PPPPPHHHHH",
	7:  "PPPPPPHHHH",
	8:  "PPPPPPPPPP",
	9:  "PPPPPSPPSS",
	11: "PPPPPPPPPP",
}

// Basic plays the multi-deck basic strategy for a dealer standing on all
// 17s with double after split allowed
type Basic struct{}

func (Basic) PlayTurn(hand *game.Hand, dealerUp deck.Card, _ float64) game.Decision {
	col := dealerUp.Value() - 2
	if col < 0 || col > 9 {
		return HitUnder{Threshold: 17}.PlayTurn(hand, dealerUp, 0)
	}
	twoCards := len(hand.Cards) == 2

	if hand.CanSplit() {
		v := hand.Cards[0].Value()
		if v < len(pairChart) && pairChart[v] != "" && pairChart[v][col] == actSplit {
			return game.Split
		}
	}

	score := hand.Score()
	var row string
	switch {
	case score > 21:
		return game.Stand
	case score < 4, hand.IsSoft() && score < 12:
		return game.Hit
	case hand.IsSoft():
		row = softChart[score]
	default:
		row = hardChart[score]
	}

	switch row[col] {
	case actHit:
		return game.Hit
	case actDoubleOrHit:
		if twoCards {
			return game.Double
		}
		return game.Hit
	case actDoubleOrStand:
		if twoCards {
			return game.Double
		}
		return game.Stand
	default:
		return game.Stand
	}
}
