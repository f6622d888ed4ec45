package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryAggregatesPerPlayer(t *testing.T) {
	s := NewSummary(map[string]int64{"Alice": 100, "Bob": 100})

	rows := []Row{
		{Round: 1, Player: "Alice", Balance: 110, Bet: 10, Win: true, Payout: 20, Net: 10},
		{Round: 1, Player: "Bob", Balance: 90, Bet: 10, Loss: true, Bust: true, Net: -10},
		{Round: 2, Player: "Alice", Balance: 125, Bet: 10, Win: true, Blackjack: true, Payout: 25, Net: 15},
		{Round: 2, Player: "Bob", Balance: 90, Bet: 10, Push: true, Payout: 10, Net: 0},
		// Bob splits in round 3: two hands, one balance after the round
		{Round: 3, Player: "Bob", Balance: 90, HandSlot: 0, Bet: 10, Split: true, Win: true, Payout: 20, Net: 10},
		{Round: 3, Player: "Bob", Balance: 90, HandSlot: 1, Bet: 10, Split: true, Loss: true, Net: -10},
	}
	for _, r := range rows {
		require.NoError(t, s.Record(r))
	}
	require.NoError(t, s.Validate())

	alice, ok := s.Player("Alice")
	require.True(t, ok)
	assert.Equal(t, 2, alice.Rounds)
	assert.Equal(t, 2, alice.Hands)
	assert.Equal(t, 2, alice.Wins)
	assert.Equal(t, 1, alice.Blackjacks)
	assert.Equal(t, int64(25), alice.NetUnits)
	assert.Equal(t, int64(20), alice.Wagered)
	assert.Equal(t, int64(125), alice.FinalBalance)
	assert.InDelta(t, 1.25, alice.ReturnOnWagered(), 1e-9)
	assert.InDelta(t, 12.5, alice.Net.Mean(), 1e-9)

	bob, ok := s.Player("Bob")
	require.True(t, ok)
	assert.Equal(t, 3, bob.Rounds)
	assert.Equal(t, 4, bob.Hands)
	assert.Equal(t, 1, bob.Wins)
	assert.Equal(t, 2, bob.Losses)
	assert.Equal(t, 1, bob.Pushes)
	assert.Equal(t, 2, bob.SplitHands)
	assert.Equal(t, 1, bob.Busts)
	assert.Equal(t, int64(10), bob.MaxDrawdown)
	assert.InDelta(t, 0.25, bob.BustRate(), 1e-9)

	names := []string{}
	for _, p := range s.Players() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Alice", "Bob"}, names)
}

func TestSummaryRejectsConflictingFlags(t *testing.T) {
	s := NewSummary(nil)
	err := s.Record(Row{Round: 1, Player: "Alice", Win: true, Loss: true})
	assert.Error(t, err)
}

func TestSummaryLedgerMismatch(t *testing.T) {
	s := NewSummary(map[string]int64{"Alice": 100})
	require.NoError(t, s.Record(Row{Round: 1, Player: "Alice", Balance: 150, Bet: 10, Win: true, Payout: 20, Net: 10}))
	assert.Error(t, s.Validate())
}

func TestSummaryUnseededPlayer(t *testing.T) {
	s := NewSummary(nil)
	require.NoError(t, s.Record(Row{Round: 1, Player: "Carol", Balance: 90, Bet: 10, Loss: true, Net: -10}))
	carol, ok := s.Player("Carol")
	require.True(t, ok)
	assert.Equal(t, int64(100), carol.StartBalance)
	assert.NoError(t, s.Validate())
}

func TestSummaryUnseededPlayerSplitFirstRound(t *testing.T) {
	s := NewSummary(nil)
	require.NoError(t, s.Record(Row{Round: 1, Player: "Dan", Balance: 1020, HandSlot: 0, Bet: 10, Loss: true, Split: true, Net: -10}))
	require.NoError(t, s.Record(Row{Round: 1, Player: "Dan", Balance: 1020, HandSlot: 1, Bet: 20, Doubled: true, Win: true, Split: true, Payout: 50, Net: 30}))
	require.NoError(t, s.Record(Row{Round: 2, Player: "Dan", Balance: 1010, Bet: 10, Loss: true, Net: -10}))

	dan, ok := s.Player("Dan")
	require.True(t, ok)
	assert.Equal(t, int64(1000), dan.StartBalance)
	assert.Equal(t, int64(1020), dan.PeakBalance)
	assert.Equal(t, int64(10), dan.MaxDrawdown)
	assert.Equal(t, int64(1010), dan.FinalBalance)
	assert.Equal(t, dan.StartBalance+dan.NetUnits, dan.FinalBalance)
	assert.Equal(t, 2, dan.Rounds)
	assert.NoError(t, s.Validate())
}
