package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

func handOf(cards string) *game.Hand {
	h := game.NewHand()
	for _, c := range deck.MustParseCards(cards) {
		h.AddCard(c)
	}
	return h
}

func up(card string) deck.Card {
	return deck.MustParseCards(card)[0]
}

func TestPercent(t *testing.T) {
	b := Percent{Percent: 1}
	assert.Equal(t, int64(10), b.PlaceBet(game.PlayerView{Balance: 1000}, 0))
	assert.Equal(t, int64(1), b.PlaceBet(game.PlayerView{Balance: 50}, 0), "never below one unit")
}

func TestMartingale(t *testing.T) {
	b := Martingale{Unit: 10}

	tests := []struct {
		name string
		view game.PlayerView
		want int64
	}{
		{"first round", game.PlayerView{Balance: 1000}, 10},
		{"after win", game.PlayerView{Balance: 1000, WinStreak: 1, LastBet: 40}, 10},
		{"after loss", game.PlayerView{Balance: 1000, LossStreak: 1, LastBet: 10}, 20},
		{"after three losses", game.PlayerView{Balance: 1000, LossStreak: 3, LastBet: 40}, 80},
		{"capped at balance", game.PlayerView{Balance: 50, LossStreak: 4, LastBet: 80}, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.PlaceBet(tt.view, 0))
		})
	}
}

func TestParoli(t *testing.T) {
	b := Paroli{Unit: 10}
	assert.Equal(t, int64(10), b.PlaceBet(game.PlayerView{Balance: 1000}, 0))
	assert.Equal(t, int64(10), b.PlaceBet(game.PlayerView{Balance: 1000, LossStreak: 2, LastBet: 10}, 0))
	assert.Equal(t, int64(40), b.PlaceBet(game.PlayerView{Balance: 1000, WinStreak: 2, LastBet: 20}, 0))
	assert.Equal(t, int64(30), b.PlaceBet(game.PlayerView{Balance: 30, WinStreak: 2, LastBet: 20}, 0))
}

func TestCountBettors(t *testing.T) {
	view := game.PlayerView{Balance: 1000}

	spread := CountSpread{Threshold: 2, Low: 1, High: 5}
	assert.Equal(t, int64(10), spread.PlaceBet(view, 1.9))
	assert.Equal(t, int64(50), spread.PlaceBet(view, 2))

	ramp := CountRamp{Step: 2, Max: 10}
	assert.Equal(t, int64(10), ramp.PlaceBet(view, -3))
	assert.Equal(t, int64(10), ramp.PlaceBet(view, 0.5))
	assert.Equal(t, int64(40), ramp.PlaceBet(view, 2.7))
	assert.Equal(t, int64(100), ramp.PlaceBet(view, 9))
}

func TestSimple(t *testing.T) {
	tests := []struct {
		hand string
		want game.Decision
	}{
		{"As Ad", game.Split},
		{"8s 8d", game.Split},
		{"9s 9d", game.Stand},
		{"5s 6d", game.Double},
		{"2s 3d 4h", game.Double},
		{"Ts 6d", game.Hit},
		{"Ts 7d", game.Stand},
		{"As 5d", game.Hit},
	}
	for _, tt := range tests {
		t.Run(tt.hand, func(t *testing.T) {
			assert.Equal(t, tt.want, Simple{}.PlayTurn(handOf(tt.hand), up("Th"), 0))
		})
	}
}

func TestHitUnder(t *testing.T) {
	p := HitUnder{Threshold: 19}
	assert.Equal(t, game.Hit, p.PlayTurn(handOf("Ts 8d"), up("5h"), 0))
	assert.Equal(t, game.Stand, p.PlayTurn(handOf("Ts 9d"), up("5h"), 0))
	assert.Equal(t, game.Hit, p.PlayTurn(handOf("8s 8d"), up("5h"), 0), "never splits")
	assert.Equal(t, game.Hit, p.PlayTurn(handOf("5s 6d"), up("5h"), 0), "never doubles")
}

func TestHiLo(t *testing.T) {
	p := HiLo{Threshold: 2}
	assert.Equal(t, game.Hit, p.PlayTurn(handOf("Ts 6d"), up("9h"), 1))
	assert.Equal(t, game.Stand, p.PlayTurn(handOf("Ts 6d"), up("9h"), 2))
	assert.Equal(t, game.Hit, p.PlayTurn(handOf("Ts 5d"), up("9h"), 2))
}

func TestHiLoAggressive(t *testing.T) {
	p := HiLoAggressive{Threshold: 2}
	assert.Equal(t, game.Double, p.PlayTurn(handOf("As 6d"), up("5h"), 1))
	assert.Equal(t, game.Stand, p.PlayTurn(handOf("As 6d"), up("5h"), 0))
	assert.Equal(t, game.Stand, p.PlayTurn(handOf("As 6d"), up("9h"), 1))
	assert.Equal(t, game.Double, p.PlayTurn(handOf("As 2d"), up("4h"), 1))
	assert.Equal(t, game.Stand, p.PlayTurn(handOf("Ts 5d"), up("9h"), 3))
	assert.Equal(t, game.Hit, p.PlayTurn(handOf("Ts 5d"), up("9h"), 2))
}

func TestComposite(t *testing.T) {
	var calls int
	s := Composite{
		Bettor: BetFunc(func(game.PlayerView, float64) int64 { return 7 }),
		Player: PlayFunc(func(*game.Hand, deck.Card, float64) game.Decision {
			calls++
			return game.Hit
		}),
	}

	var _ game.Strategy = s
	assert.Equal(t, int64(7), s.PlaceBet(game.PlayerView{}, 0))
	assert.Equal(t, game.Hit, s.PlayTurn(handOf("2s 3s"), up("Ah"), 0))
	assert.Equal(t, 1, calls)
}
