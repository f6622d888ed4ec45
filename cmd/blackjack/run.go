package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/fileutil"
	"github.com/lox/blackjack/internal/simulator"
	"github.com/lox/blackjack/internal/statistics"
	"github.com/lox/blackjack/internal/store"
)

type RunCmd struct {
	Overrides

	CSV        string `type:"path" help:"Write every hand to this CSV file"`
	DB         string `type:"path" help:"Store the run and every hand in this SQLite database"`
	NoProgress bool   `help:"Hide the progress bar"`
}

func (c *RunCmd) Run(g *Globals) error {
	g.setupColor()
	logger := g.logger()

	cfg, err := g.load(c.Overrides, logger)
	if err != nil {
		return err
	}
	sim, err := cfg.Simulator()
	if err != nil {
		return err
	}
	sim.Logger = logger
	sim.Clock = quartz.NewReal()

	var dbRun *store.RunRecorder
	if c.DB != "" {
		st, err := store.Open(c.DB)
		if err != nil {
			return err
		}
		defer st.Close()
		if dbRun, err = st.NewRun(sim.Name, sim.Seed, sim.Rules, sim.Rounds); err != nil {
			return err
		}
	}

	var bar *progressBar
	if !c.NoProgress {
		bar = newProgressBar(os.Stderr)
		sim.OnProgress = bar.Update
	}

	ctx, cancel := signalContext()
	defer cancel()

	var result *simulator.Result
	run := func(csv statistics.Recorder) error {
		var recorders []statistics.Recorder
		if csv != nil {
			recorders = append(recorders, csv)
		}
		if dbRun != nil {
			recorders = append(recorders, dbRun)
		}
		sim.Recorder = statistics.NewMultiRecorder(recorders...)

		var runErr error
		result, runErr = simulator.New(sim).Run(ctx)
		return runErr
	}

	if c.CSV != "" {
		err = writeCSV(c.CSV, run)
	} else {
		err = run(nil)
	}
	bar.Done()

	if dbRun != nil && result != nil {
		if ferr := dbRun.Finish(result.RoundsPlayed, result.Duration); ferr != nil {
			logger.Error("Failed to store run", "path", c.DB, "error", ferr)
		} else {
			logger.Info("Stored run", "path", c.DB, "id", dbRun.ID())
		}
	}

	if result != nil {
		fmt.Println(renderResult(result))
	}
	if errors.Is(err, context.Canceled) && result != nil {
		logger.Warn("Stopped early; results cover the rounds played, no CSV written", "rounds", result.RoundsPlayed)
		return nil
	}
	if err != nil {
		return err
	}
	if c.CSV != "" {
		logger.Info("Wrote hands", "path", c.CSV)
	}
	return nil
}

// writeCSV streams rows into path, replacing it only if the run completes
func writeCSV(path string, run func(statistics.Recorder) error) error {
	f, err := fileutil.CreateAtomic(path, 0644)
	if err != nil {
		return err
	}
	defer f.Abort()

	csv := statistics.NewCSVRecorder(f)
	if err := run(csv); err != nil {
		return err
	}
	if err := csv.Flush(); err != nil {
		return err
	}
	return f.Commit()
}
