package simulator

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RunSweep runs independent simulations concurrently, at most parallelism
// at a time (GOMAXPROCS when parallelism is not positive). Results are
// returned in the order of configs. The first failing run cancels the rest.
//
// Runs share nothing: each builds its own shoe, players and engine. A
// Recorder or OnProgress callback set on more than one config must be safe
// for concurrent use.
func RunSweep(ctx context.Context, configs []Config, parallelism int) ([]*Result, error) {
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	results := make([]*Result, len(configs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i, cfg := range configs {
		g.Go(func() error {
			res, err := New(cfg).Run(ctx)
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
