package strategy

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/lox/blackjack/internal/game"
)

// ErrUnknownStrategy is returned by New for an unregistered name
var ErrUnknownStrategy = errors.New("unknown strategy")

// Options tune the registered policies. Zero values select the defaults.
type Options struct {
	Unit     int64 // flat wager for martingale and paroli
	HitUnder int   // threshold for hit-under
}

func (o Options) withDefaults() Options {
	if o.Unit <= 0 {
		o.Unit = DefaultUnit
	}
	if o.HitUnder <= 0 {
		o.HitUnder = 17
	}
	return o
}

type entry struct {
	description string
	build       func(Options) game.Strategy
}

var registry = map[string]entry{
	"base": {
		description: "1% of balance; split aces and eights, double under 12, hit under 17",
		build: func(Options) game.Strategy {
			return Composite{Bettor: Percent{Percent: 1}, Player: Simple{}}
		},
	},
	"martingale": {
		description: "double the wager after each loss, reset to one unit after a win",
		build: func(o Options) game.Strategy {
			return Composite{Bettor: Martingale{Unit: o.Unit}, Player: Simple{}}
		},
	},
	"paroli": {
		description: "double the wager after each win, reset to one unit after a loss",
		build: func(o Options) game.Strategy {
			return Composite{Bettor: Paroli{Unit: o.Unit}, Player: Simple{}}
		},
	},
	"hilo": {
		description: "bet 5% of balance at true count 2 or more, otherwise 1%; stand on 16 at high counts",
		build: func(Options) game.Strategy {
			return Composite{
				Bettor: CountSpread{Threshold: 2, Low: 1, High: 5},
				Player: HiLo{Threshold: 2},
			}
		},
	},
	"hilo-aggressive": {
		description: "ramp the wager 2% per true count point up to 10%; double soft hands against 4-6",
		build: func(Options) game.Strategy {
			return Composite{
				Bettor: CountRamp{Step: 2, Max: 10},
				Player: HiLoAggressive{Threshold: 2},
			}
		},
	},
	"hit-under": {
		description: "1% of balance; hit below a fixed threshold (default 17), never double or split",
		build: func(o Options) game.Strategy {
			return Composite{Bettor: Percent{Percent: 1}, Player: HitUnder{Threshold: o.HitUnder}}
		},
	},
	"basic": {
		description: "1% of balance; multi-deck basic strategy chart",
		build: func(Options) game.Strategy {
			return Composite{Bettor: Percent{Percent: 1}, Player: Basic{}}
		},
	},
}

// New builds the named strategy
func New(name string, opts Options) (game.Strategy, error) {
	e, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownStrategy)
	}
	return e.build(opts.withDefaults()), nil
}

// Names returns the registered strategy names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Describe returns a one-line summary of the named strategy
func Describe(name string) string {
	return registry[name].description
}

// Known reports whether name is registered
func Known(name string) bool {
	_, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	return ok
}
