// Package config loads simulation settings from an HCL file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/simulator"
	"github.com/lox/blackjack/internal/strategy"
)

const (
	DefaultRounds  = 1000
	DefaultBalance = 1000
)

// Config represents the complete simulation configuration
type Config struct {
	Table      *TableConfig      `hcl:"table,block"`
	Simulation *SimulationConfig `hcl:"simulation,block"`
	Players    []PlayerConfig    `hcl:"player,block"`
	Sweeps     []SweepConfig     `hcl:"sweep,block"`
}

// TableConfig holds the house rules
type TableConfig struct {
	Decks              int     `hcl:"decks,optional"`
	ReshuffleThreshold float64 `hcl:"reshuffle_threshold,optional"`
	DoubleAfterSplit   *bool   `hcl:"double_after_split,optional"`
}

// SimulationConfig controls the length and seed of a run
type SimulationConfig struct {
	Rounds int   `hcl:"rounds,optional"`
	Seed   int64 `hcl:"seed,optional"`
}

// PlayerConfig seats one player
type PlayerConfig struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy"`
	Balance  int64  `hcl:"balance,optional"`
	Unit     int64  `hcl:"unit,optional"`
	HitUnder int    `hcl:"hit_under,optional"`
}

// SweepConfig is a table-rule variant run alongside the others in sweep
// mode. Unset fields inherit from the table block.
type SweepConfig struct {
	Name               string  `hcl:"name,label"`
	Decks              int     `hcl:"decks,optional"`
	ReshuffleThreshold float64 `hcl:"reshuffle_threshold,optional"`
	DoubleAfterSplit   *bool   `hcl:"double_after_split,optional"`
	Rounds             int     `hcl:"rounds,optional"`
}

// DefaultPlayers is the line-up used when the configuration seats nobody
func DefaultPlayers() []PlayerConfig {
	return []PlayerConfig{
		{Name: "HiLo", Strategy: "hilo", Balance: DefaultBalance},
		{Name: "Basic Tables", Strategy: "basic", Balance: DefaultBalance},
		{Name: "HiLo Aggressive", Strategy: "hilo-aggressive", Balance: DefaultBalance},
		{Name: "Paroli", Strategy: "paroli", Balance: DefaultBalance},
		{Name: "Martingale", Strategy: "martingale", Balance: DefaultBalance},
		{Name: "Aggressive", Strategy: "hit-under", HitUnder: 19, Balance: DefaultBalance},
		{Name: "Conservative", Strategy: "hit-under", HitUnder: 10, Balance: DefaultBalance},
		{Name: "Control", Strategy: "base", Balance: DefaultBalance},
	}
}

// Default returns the default configuration
func Default() *Config {
	rules := game.DefaultRules()
	das := rules.DoubleAfterSplit
	return &Config{
		Table: &TableConfig{
			Decks:              rules.Decks,
			ReshuffleThreshold: rules.ReshuffleThreshold,
			DoubleAfterSplit:   &das,
		},
		Simulation: &SimulationConfig{Rounds: DefaultRounds},
		Players:    DefaultPlayers(),
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file)
}

// Parse decodes configuration from HCL source held in memory
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file)
}

func decode(file *hcl.File) (*Config, error) {
	var config Config
	diags := gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Table == nil {
		c.Table = def.Table
	}
	if c.Table.Decks == 0 {
		c.Table.Decks = def.Table.Decks
	}
	if c.Table.ReshuffleThreshold == 0 {
		c.Table.ReshuffleThreshold = def.Table.ReshuffleThreshold
	}
	if c.Table.DoubleAfterSplit == nil {
		c.Table.DoubleAfterSplit = def.Table.DoubleAfterSplit
	}

	if c.Simulation == nil {
		c.Simulation = def.Simulation
	}
	if c.Simulation.Rounds == 0 {
		c.Simulation.Rounds = DefaultRounds
	}

	if len(c.Players) == 0 {
		c.Players = def.Players
	}
	for i := range c.Players {
		if c.Players[i].Balance == 0 {
			c.Players[i].Balance = DefaultBalance
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Rules().Validate(); err != nil {
		return fmt.Errorf("table: %w", err)
	}
	if c.Simulation.Rounds <= 0 {
		return fmt.Errorf("simulation: rounds must be positive, got %d", c.Simulation.Rounds)
	}

	if len(c.Players) == 0 {
		return errors.New("at least one player must be configured")
	}
	if err := c.Rules().ValidateSeats(len(c.Players)); err != nil {
		return fmt.Errorf("table: %w", err)
	}
	seen := make(map[string]bool, len(c.Players))
	for _, p := range c.Players {
		if game.IsReservedName(p.Name) {
			return fmt.Errorf("player %s: %w", p.Name, game.ErrReservedName)
		}
		if seen[p.Name] {
			return fmt.Errorf("player %s: duplicate name", p.Name)
		}
		seen[p.Name] = true
		if !strategy.Known(p.Strategy) {
			return fmt.Errorf("player %s: invalid strategy %s", p.Name, p.Strategy)
		}
		if p.Balance < 0 {
			return fmt.Errorf("player %s: balance must not be negative", p.Name)
		}
	}

	names := make(map[string]bool, len(c.Sweeps))
	for _, s := range c.Sweeps {
		if names[s.Name] {
			return fmt.Errorf("sweep %s: duplicate name", s.Name)
		}
		names[s.Name] = true
		rules := c.sweepRules(s)
		if err := rules.Validate(); err != nil {
			return fmt.Errorf("sweep %s: %w", s.Name, err)
		}
		if err := rules.ValidateSeats(len(c.Players)); err != nil {
			return fmt.Errorf("sweep %s: %w", s.Name, err)
		}
		if s.Rounds < 0 {
			return fmt.Errorf("sweep %s: rounds must be positive, got %d", s.Name, s.Rounds)
		}
	}
	return nil
}

// Rules returns the table rules
func (c *Config) Rules() game.Rules {
	return game.Rules{
		Decks:              c.Table.Decks,
		ReshuffleThreshold: c.Table.ReshuffleThreshold,
		DoubleAfterSplit:   c.Table.DoubleAfterSplit == nil || *c.Table.DoubleAfterSplit,
	}
}

func (c *Config) sweepRules(s SweepConfig) game.Rules {
	rules := c.Rules()
	if s.Decks != 0 {
		rules.Decks = s.Decks
	}
	if s.ReshuffleThreshold != 0 {
		rules.ReshuffleThreshold = s.ReshuffleThreshold
	}
	if s.DoubleAfterSplit != nil {
		rules.DoubleAfterSplit = *s.DoubleAfterSplit
	}
	return rules
}

// Seats builds the players' strategies
func (c *Config) Seats() ([]simulator.Seat, error) {
	seats := make([]simulator.Seat, 0, len(c.Players))
	for _, p := range c.Players {
		s, err := strategy.New(p.Strategy, strategy.Options{Unit: p.Unit, HitUnder: p.HitUnder})
		if err != nil {
			return nil, fmt.Errorf("player %s: %w", p.Name, err)
		}
		seats = append(seats, simulator.Seat{Name: p.Name, Strategy: s, Balance: p.Balance})
	}
	return seats, nil
}

// Simulator returns the single-run simulator configuration. Logging,
// clock and recording are left for the caller.
func (c *Config) Simulator() (simulator.Config, error) {
	seats, err := c.Seats()
	if err != nil {
		return simulator.Config{}, err
	}
	return simulator.Config{
		Name:   "main",
		Rules:  c.Rules(),
		Seats:  seats,
		Rounds: c.Simulation.Rounds,
		Seed:   c.Simulation.Seed,
	}, nil
}

// Sweep returns one simulator configuration per sweep block, or a single
// run of the table rules when none are configured. Each run draws its own
// seed derived from the simulation seed.
func (c *Config) Sweep() ([]simulator.Config, error) {
	variants := c.Sweeps
	if len(variants) == 0 {
		variants = []SweepConfig{{Name: "main"}}
	}

	configs := make([]simulator.Config, 0, len(variants))
	for i, v := range variants {
		seats, err := c.Seats()
		if err != nil {
			return nil, err
		}
		rounds := c.Simulation.Rounds
		if v.Rounds > 0 {
			rounds = v.Rounds
		}
		configs = append(configs, simulator.Config{
			Name:   v.Name,
			Rules:  c.sweepRules(v),
			Seats:  seats,
			Rounds: rounds,
			Seed:   randutil.Derive(c.Simulation.Seed, i),
		})
	}
	return configs, nil
}
