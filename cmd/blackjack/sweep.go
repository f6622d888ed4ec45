package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/simulator"
	"github.com/lox/blackjack/internal/store"
)

type SweepCmd struct {
	Overrides

	Parallel   int    `short:"j" default:"0" help:"Runs to simulate at once (0 for one per CPU)"`
	DB         string `type:"path" help:"Store every run and hand in this SQLite database"`
	NoProgress bool   `help:"Hide the progress bar"`
}

func (c *SweepCmd) Run(g *Globals) error {
	g.setupColor()
	logger := g.logger()

	cfg, err := g.load(c.Overrides, logger)
	if err != nil {
		return err
	}
	runs, err := cfg.Sweep()
	if err != nil {
		return err
	}

	var recorders []*store.RunRecorder
	if c.DB != "" {
		st, err := store.Open(c.DB)
		if err != nil {
			return err
		}
		defer st.Close()
		for i := range runs {
			rec, err := st.NewRun(runs[i].Name, runs[i].Seed, runs[i].Rules, runs[i].Rounds)
			if err != nil {
				return err
			}
			runs[i].Recorder = rec
			recorders = append(recorders, rec)
		}
	}

	clock := quartz.NewReal()
	var bar *sweepProgress
	if !c.NoProgress {
		bar = newSweepProgress(os.Stderr, runs)
	}
	for i := range runs {
		runs[i].Logger = logger
		runs[i].Clock = clock
		if bar != nil {
			runs[i].OnProgress = bar.Update
		}
	}

	ctx, cancel := signalContext()
	defer cancel()

	logger.Info("Starting sweep", "variants", len(runs), "parallel", c.Parallel, "seed", cfg.Simulation.Seed)
	results, err := simulator.RunSweep(ctx, runs, c.Parallel)
	bar.Done()

	for i, rec := range recorders {
		if r := results[i]; r != nil {
			if ferr := rec.Finish(r.RoundsPlayed, r.Duration); ferr != nil {
				logger.Error("Failed to store run", "name", r.Name, "error", ferr)
			}
		}
	}

	var done []*simulator.Result
	for _, r := range results {
		if r != nil {
			done = append(done, r)
		}
	}
	if len(done) > 0 {
		fmt.Println(renderSweep(done))
	}

	if errors.Is(err, context.Canceled) {
		logger.Warn("Sweep stopped early; results cover the rounds played")
		return nil
	}
	return err
}
