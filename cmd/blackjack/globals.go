package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/blackjack/internal/config"
)

// Globals are flags shared by every command
type Globals struct {
	Config   string `short:"c" type:"path" default:"blackjack.hcl" help:"HCL configuration file (defaults apply when missing)"`
	Verbose  bool   `help:"Enable debug logging"`
	LogLevel string `default:"info" enum:"debug,info,warn,error" help:"Log level (debug|info|warn|error)"`
	Color    string `default:"auto" enum:"auto,always,never" help:"Colour output (auto|always|never)"`
}

// Overrides replace values from the configuration file
type Overrides struct {
	Rounds    int     `short:"n" help:"Rounds to simulate (overrides config)"`
	Seed      int64   `help:"RNG seed (0 for config value, or random if unset)"`
	Decks     int     `help:"Number of decks in the shoe (overrides config)"`
	Threshold float64 `help:"Reshuffle once this fraction of the shoe remains (overrides config)"`
	NoDAS     bool    `name:"no-das" help:"Disallow doubling after a split"`
}

func (o Overrides) apply(cfg *config.Config) {
	if o.Rounds > 0 {
		cfg.Simulation.Rounds = o.Rounds
	}
	if o.Seed != 0 {
		cfg.Simulation.Seed = o.Seed
	}
	if o.Decks > 0 {
		cfg.Table.Decks = o.Decks
	}
	if o.Threshold > 0 {
		cfg.Table.ReshuffleThreshold = o.Threshold
	}
	if o.NoDAS {
		das := false
		cfg.Table.DoubleAfterSplit = &das
	}
}

func (g *Globals) logger() *log.Logger {
	level := log.InfoLevel
	if parsed, err := log.ParseLevel(g.LogLevel); err == nil {
		level = parsed
	}
	if g.Verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
}

func (g *Globals) setupColor() {
	switch g.Color {
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	case "always":
		lipgloss.SetColorProfile(termenv.ANSI256)
	}
}

// load reads the configuration, applies overrides, and fills in a random
// seed when none was given so every run can be replayed
func (g *Globals) load(o Overrides, logger *log.Logger) (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	o.apply(cfg)
	if cfg.Simulation.Seed == 0 {
		cfg.Simulation.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("Loaded configuration", "path", g.Config, "players", len(cfg.Players), "sweeps", len(cfg.Sweeps))
	return cfg, nil
}

// signalContext is cancelled on interrupt so a run stops between rounds
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
