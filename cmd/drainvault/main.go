package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Sit down at the vault terminal"`
	Odds     OddsCmd          `cmd:"" help:"Inspect exact odds and payouts for a deck state"`
	Simulate SimulateCmd      `cmd:"" help:"Run headless sessions and report return statistics"`
	Reset    ResetCmd         `cmd:"" help:"Delete the save file"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("drainvault"),
		kong.Description("Terminal higher/lower card game: drain the vault one call at a time"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
