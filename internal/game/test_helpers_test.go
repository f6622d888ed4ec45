package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
)

// scriptedStrategy bets a fixed amount and replays decisions in order,
// standing once the script runs out
type scriptedStrategy struct {
	bet       int64
	decisions []Decision
	calls     int
	seen      []*Hand
}

func script(bet int64, decisions ...Decision) *scriptedStrategy {
	return &scriptedStrategy{bet: bet, decisions: decisions}
}

func (s *scriptedStrategy) PlaceBet(PlayerView, float64) int64 {
	return s.bet
}

func (s *scriptedStrategy) PlayTurn(hand *Hand, _ deck.Card, _ float64) Decision {
	s.seen = append(s.seen, hand)
	if s.calls >= len(s.decisions) {
		return Stand
	}
	d := s.decisions[s.calls]
	s.calls++
	return d
}

// hitUnder17 is a minimal policy for long randomized runs
type hitUnder17 struct{ bet int64 }

func (h hitUnder17) PlaceBet(PlayerView, float64) int64 { return h.bet }

func (h hitUnder17) PlayTurn(hand *Hand, _ deck.Card, _ float64) Decision {
	switch {
	case hand.CanSplit() && hand.Cards[0].Rank == deck.Eight:
		return Split
	case len(hand.Cards) == 2 && hand.Score() == 11:
		return Double
	case hand.Score() < 17:
		return Hit
	default:
		return Stand
	}
}

// TestEngineOption configures test engine creation
type TestEngineOption func(*testEngineBuilder)

type testEngineBuilder struct {
	seed    int64
	rules   Rules
	cards   []deck.Card
	players []*Player
}

// WithCards stacks the shoe so the round deals exactly these cards
func WithCards(cards string) TestEngineOption {
	return func(b *testEngineBuilder) { b.cards = deck.MustParseCards(cards) }
}

func WithRules(rules Rules) TestEngineOption {
	return func(b *testEngineBuilder) { b.rules = rules }
}

func WithSeed(seed int64) TestEngineOption {
	return func(b *testEngineBuilder) { b.seed = seed }
}

func WithPlayer(p *Player) TestEngineOption {
	return func(b *testEngineBuilder) { b.players = append(b.players, p) }
}

// newTestEngine builds an engine whose rows land in the returned table
func newTestEngine(t *testing.T, opts ...TestEngineOption) (*Engine, *statistics.Table) {
	t.Helper()
	b := &testEngineBuilder{seed: 1, rules: DefaultRules()}
	for _, opt := range opts {
		opt(b)
	}

	rng := randutil.New(b.seed)
	var shoe *deck.Shoe
	if b.cards != nil {
		shoe = deck.NewShoeFromCards(b.cards, rng)
	} else {
		shoe = deck.NewShoe(b.rules.Decks, rng)
	}

	table := &statistics.Table{}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	return NewEngine(b.rules, shoe, b.players, table, logger), table
}

func newTestPlayer(t *testing.T, name string, balance int64, s Strategy) *Player {
	t.Helper()
	p, err := NewPlayer(name, balance, s)
	require.NoError(t, err)
	return p
}

func handOf(cards string) *Hand {
	h := NewHand()
	for _, c := range deck.MustParseCards(cards) {
		h.AddCard(c)
	}
	return h
}
