package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
)

// DefaultProgressInterval is how often Run reports progress when no
// interval is configured
const DefaultProgressInterval = 250 * time.Millisecond

// Seat is a player to create for a run
type Seat struct {
	Name     string
	Strategy game.Strategy
	Balance  int64
}

// Progress is a snapshot passed to Config.OnProgress
type Progress struct {
	Name    string
	Round   int
	Rounds  int
	Elapsed time.Duration
}

// Fraction returns the share of rounds completed
func (p Progress) Fraction() float64 {
	if p.Rounds == 0 {
		return 0
	}
	return float64(p.Round) / float64(p.Rounds)
}

// Config holds configuration for one simulation run
type Config struct {
	Name   string // label used in logs and sweep reports
	Rules  game.Rules
	Seats  []Seat
	Rounds int
	Seed   int64

	Logger *log.Logger
	Clock  quartz.Clock

	// Recorder receives every row in addition to the run's summary. It is
	// called from the goroutine running the simulation.
	Recorder statistics.Recorder

	ProgressInterval time.Duration
	OnProgress       func(Progress)
}

// Validate checks that the run can start
func (c Config) Validate() error {
	if err := c.Rules.Validate(); err != nil {
		return err
	}
	if c.Rounds <= 0 {
		return fmt.Errorf("rounds must be positive, got %d", c.Rounds)
	}
	if len(c.Seats) == 0 {
		return errors.New("at least one player is required")
	}
	if err := c.Rules.ValidateSeats(len(c.Seats)); err != nil {
		return err
	}
	seen := make(map[string]bool, len(c.Seats))
	for _, s := range c.Seats {
		if s.Strategy == nil {
			return fmt.Errorf("player %s: no strategy", s.Name)
		}
		if seen[s.Name] {
			return fmt.Errorf("player %s: duplicate name", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

// Result is the outcome of a run
type Result struct {
	Name string
	Seed int64
	// Rules the run was played under, with the reshuffle threshold raised
	// to cover a full round when the configured one was too low
	Rules        game.Rules
	RoundsPlayed int
	Duration     time.Duration
	Summary      *statistics.Summary
}

// RoundsPerSecond returns the simulation throughput
func (r *Result) RoundsPerSecond() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.RoundsPlayed) / r.Duration.Seconds()
}

// Simulator runs blackjack simulations
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.ProgressInterval <= 0 {
		config.ProgressInterval = DefaultProgressInterval
	}
	return &Simulator{config: config}
}

// Run plays the configured number of rounds. It stops early between rounds
// when ctx is cancelled, returning the partial result alongside ctx's
// error.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	cfg := s.config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation %q: %w", cfg.Name, err)
	}
	logger := cfg.Logger
	if cfg.Name != "" {
		logger = logger.WithPrefix(cfg.Name)
	}

	players := make([]*game.Player, 0, len(cfg.Seats))
	balances := make(map[string]int64, len(cfg.Seats))
	for _, seat := range cfg.Seats {
		p, err := game.NewPlayer(seat.Name, seat.Balance, seat.Strategy)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
		balances[seat.Name] = seat.Balance
	}

	rules, raised := cfg.Rules.ForSeats(len(players))
	if raised {
		logger.Info("Raised reshuffle threshold to cover a full round",
			"players", len(players),
			"configured", cfg.Rules.ReshuffleThreshold,
			"threshold", fmt.Sprintf("%.3f", rules.ReshuffleThreshold))
	}

	summary := statistics.NewSummary(balances)
	recorder := statistics.NewMultiRecorder(summary, cfg.Recorder)
	shoe := deck.NewShoe(rules.Decks, randutil.New(cfg.Seed))
	engine := game.NewEngine(rules, shoe, players, recorder, logger)

	result := &Result{Name: cfg.Name, Seed: cfg.Seed, Rules: rules, Summary: summary}
	start := cfg.Clock.Now()
	lastReport := start

	logger.Info("Starting simulation",
		"rounds", cfg.Rounds,
		"players", len(players),
		"decks", cfg.Rules.Decks,
		"seed", cfg.Seed)

	for round := 1; round <= cfg.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			result.Duration = cfg.Clock.Since(start)
			logger.Warn("Simulation interrupted", "played", result.RoundsPlayed, "rounds", cfg.Rounds)
			return result, err
		}

		if err := engine.PlayRound(); err != nil {
			result.Duration = cfg.Clock.Since(start)
			logger.Error("Simulation aborted", "round", round, "error", err)
			return result, err
		}
		result.RoundsPlayed = round

		if cfg.OnProgress != nil {
			now := cfg.Clock.Now()
			if now.Sub(lastReport) >= cfg.ProgressInterval || round == cfg.Rounds {
				lastReport = now
				cfg.OnProgress(Progress{Name: cfg.Name, Round: round, Rounds: cfg.Rounds, Elapsed: now.Sub(start)})
			}
		}
	}

	result.Duration = cfg.Clock.Since(start)

	if err := summary.Validate(); err != nil {
		return result, fmt.Errorf("statistics validation failed: %w", err)
	}

	logger.Info("Simulation complete",
		"rounds", result.RoundsPlayed,
		"duration", result.Duration,
		"roundsPerSec", fmt.Sprintf("%.0f", result.RoundsPerSecond()))
	return result, nil
}
