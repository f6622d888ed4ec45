package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesValidate(t *testing.T) {
	assert.NoError(t, DefaultRules().Validate())

	tests := []struct {
		name  string
		rules Rules
	}{
		{"no decks", Rules{Decks: 0, ReshuffleThreshold: 0.25}},
		{"zero threshold", Rules{Decks: 6, ReshuffleThreshold: 0}},
		{"full threshold", Rules{Decks: 6, ReshuffleThreshold: 1}},
		{"negative threshold", Rules{Decks: 6, ReshuffleThreshold: -0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.rules.Validate())
		})
	}
}

func TestParseDecision(t *testing.T) {
	tests := []struct {
		in   string
		want Decision
		ok   bool
	}{
		{"hit", Hit, true},
		{"Stand", Stand, true},
		{"double down", Double, true},
		{"split", Split, true},
		{"surrender", Stand, false},
	}
	for _, tt := range tests {
		got, ok := ParseDecision(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
	assert.Equal(t, "double", Double.String())
}

func TestRoundReserve(t *testing.T) {
	assert.Equal(t, 22, RoundReserve(1))
	assert.Equal(t, 99, RoundReserve(8))
}

func TestRulesValidateSeats(t *testing.T) {
	single := Rules{Decks: 1, ReshuffleThreshold: 0.25}
	assert.NoError(t, single.ValidateSeats(3))
	assert.ErrorIs(t, single.ValidateSeats(4), ErrShoeTooSmall)
	assert.ErrorIs(t, single.ValidateSeats(8), ErrShoeTooSmall)
	assert.NoError(t, DefaultRules().ValidateSeats(8))
}

func TestRulesForSeats(t *testing.T) {
	t.Run("threshold already covers the round", func(t *testing.T) {
		rules, raised := DefaultRules().ForSeats(2)
		assert.False(t, raised)
		assert.Equal(t, DefaultRules(), rules)
	})

	t.Run("threshold raised to the reserve", func(t *testing.T) {
		rules, raised := DefaultRules().ForSeats(8)
		require.True(t, raised)
		assert.InDelta(t, 99.0/312.0, rules.ReshuffleThreshold, 1e-9)
		assert.Equal(t, 6, rules.Decks)
		assert.True(t, rules.DoubleAfterSplit)
	})

	t.Run("single deck", func(t *testing.T) {
		rules, raised := Rules{Decks: 1, ReshuffleThreshold: 0.25}.ForSeats(3)
		require.True(t, raised)
		assert.InDelta(t, 44.0/52.0, rules.ReshuffleThreshold, 1e-9)
	})
}

func TestEngineNeverExhaustsRaisedShoe(t *testing.T) {
	rules, _ := Rules{Decks: 1, ReshuffleThreshold: 0.25, DoubleAfterSplit: true}.ForSeats(3)
	opts := []TestEngineOption{WithRules(rules), WithSeed(7)}
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		opts = append(opts, WithPlayer(newTestPlayer(t, name, 1_000_000, hitUnder17{bet: 10})))
	}
	e, _ := newTestEngine(t, opts...)

	for range 3000 {
		require.NoError(t, e.PlayRound(), "round %d", e.Round())
	}
}
