package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version    kong.VersionFlag `short:"v" help:"Show version"`
	Run        RunCmd           `cmd:"" default:"withargs" help:"Simulate rounds for the configured players"`
	Sweep      SweepCmd         `cmd:"" help:"Simulate every sweep variant of the table rules in parallel"`
	Strategies StrategiesCmd    `cmd:"" help:"List the registered strategies"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Blackjack strategy simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
