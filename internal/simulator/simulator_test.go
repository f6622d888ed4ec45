package simulator

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/statistics"
	"github.com/lox/blackjack/internal/strategy"
)

// flatStand bets a fixed amount and never draws
type flatStand struct{ bet int64 }

func (f flatStand) PlaceBet(game.PlayerView, float64) int64 { return f.bet }

func (flatStand) PlayTurn(*game.Hand, deck.Card, float64) game.Decision { return game.Stand }

func testConfig(t *testing.T) Config {
	t.Helper()
	basic, err := strategy.New("basic", strategy.Options{})
	require.NoError(t, err)
	return Config{
		Name:   "test",
		Rules:  game.DefaultRules(),
		Rounds: 500,
		Seed:   12345,
		Seats: []Seat{
			{Name: "Basic", Strategy: basic, Balance: 1000},
			{Name: "Flat", Strategy: flatStand{bet: 10}, Balance: 1000},
		},
		Logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
}

func TestRun(t *testing.T) {
	cfg := testConfig(t)
	table := &statistics.Table{}
	cfg.Recorder = table

	result, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 500, result.RoundsPlayed)
	assert.Equal(t, int64(12345), result.Seed)
	require.Len(t, result.Summary.Players(), 2)

	for _, ps := range result.Summary.Players() {
		rows := table.ForPlayer(ps.Name)
		assert.Equal(t, len(rows), ps.Hands, ps.Name)
		if len(rows) > 0 {
			assert.Equal(t, rows[len(rows)-1].Balance, ps.FinalBalance, ps.Name)
		}
		assert.Equal(t, ps.StartBalance+ps.NetUnits, ps.FinalBalance, ps.Name)
	}
}

func TestRunDeterministic(t *testing.T) {
	run := func(seed int64) []statistics.Row {
		cfg := testConfig(t)
		cfg.Seed = seed
		table := &statistics.Table{}
		cfg.Recorder = table
		_, err := New(cfg).Run(context.Background())
		require.NoError(t, err)
		return table.Rows
	}

	first := run(7)
	assert.Equal(t, first, run(7), "same seed replays the same rounds")
	assert.NotEqual(t, first, run(8))
}

func TestRunValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no rounds", func(c *Config) { c.Rounds = 0 }},
		{"no players", func(c *Config) { c.Seats = nil }},
		{"bad rules", func(c *Config) { c.Rules.Decks = 0 }},
		{"duplicate names", func(c *Config) { c.Seats[1].Name = c.Seats[0].Name }},
		{"missing strategy", func(c *Config) { c.Seats[0].Strategy = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(&cfg)
			_, err := New(cfg).Run(context.Background())
			assert.Error(t, err)
		})
	}

	t.Run("shoe too small for the table", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Rules.Decks = 1
		for _, name := range []string{"C", "D", "E"} {
			cfg.Seats = append(cfg.Seats, Seat{Name: name, Strategy: flatStand{bet: 10}, Balance: 1000})
		}
		_, err := New(cfg).Run(context.Background())
		assert.ErrorIs(t, err, game.ErrShoeTooSmall)
	})

	t.Run("reserved name", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Seats[0].Name = "dealer"
		_, err := New(cfg).Run(context.Background())
		assert.ErrorIs(t, err, game.ErrReservedName)
	})
}

func TestRunRaisesThresholdForSmallShoe(t *testing.T) {
	cfg := testConfig(t)
	cfg.Rules.Decks = 1
	cfg.Rounds = 2000
	cfg.Seats = append(cfg.Seats, Seat{Name: "Third", Strategy: flatStand{bet: 10}, Balance: 1000})

	result, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2000, result.RoundsPlayed)
	assert.InDelta(t, 44.0/52.0, result.Rules.ReshuffleThreshold, 1e-9)
	assert.Equal(t, 0.25, cfg.Rules.ReshuffleThreshold)
}

func TestRunInterruptedBetweenRounds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := testConfig(t)
	cfg.Seats = cfg.Seats[1:]
	cfg.Recorder = statistics.RecorderFunc(func(row statistics.Row) error {
		if row.Round == 3 {
			cancel()
		}
		return nil
	})

	result, err := New(cfg).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)
	assert.Equal(t, 3, result.RoundsPlayed, "the round in progress completes")
	ps, ok := result.Summary.Player("Flat")
	require.True(t, ok)
	assert.Equal(t, 3, ps.Rounds)
}

func TestRunRecorderFailure(t *testing.T) {
	boom := errors.New("disk full")
	cfg := testConfig(t)
	cfg.Recorder = statistics.RecorderFunc(func(row statistics.Row) error {
		if row.Round == 2 {
			return boom
		}
		return nil
	})

	result, err := New(cfg).Run(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, result.RoundsPlayed)
}

func TestRunProgressWithMockClock(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mClock := quartz.NewMock(t)
	cfg := testConfig(t)
	cfg.Seats = cfg.Seats[1:]
	cfg.Rounds = 50
	cfg.Clock = mClock
	cfg.ProgressInterval = time.Second
	// Each round takes 100ms of simulated time
	cfg.Recorder = statistics.RecorderFunc(func(statistics.Row) error {
		mClock.Advance(100 * time.Millisecond).MustWait(ctx)
		return nil
	})

	var reports []Progress
	cfg.OnProgress = func(p Progress) { reports = append(reports, p) }

	result, err := New(cfg).Run(ctx)
	require.NoError(t, err)

	require.Len(t, reports, 5)
	for i, p := range reports {
		assert.Equal(t, (i+1)*10, p.Round)
		assert.Equal(t, 50, p.Rounds)
		assert.Equal(t, time.Duration(i+1)*time.Second, p.Elapsed)
	}
	assert.InDelta(t, 1.0, reports[4].Fraction(), 1e-9)
	assert.Equal(t, 5*time.Second, result.Duration)
	assert.InDelta(t, 10.0, result.RoundsPerSecond(), 1e-9)
}
