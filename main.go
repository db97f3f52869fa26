package main

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"daybook/cli"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was built
	// against. It's set via ldflags when building.
	CommitSHA = ""

	commands struct {
		Version kong.VersionFlag `help:"Show version information"`
		cli.Commands
	}
)

func main() {
	// Optional .env next to the binary; flags and real env still win.
	_ = godotenv.Load()

	cli.Version = Version
	cli.CommitSHA = CommitSHA

	ctx := kong.Parse(&commands,
		kong.Vars{
			"version": buildVersion(),
		},
		kong.Name("daybook"),
		kong.Description("A double-entry bookkeeping ledger."),
		kong.UsageOnError(),
		kong.Bind(&commands.Globals),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

func buildVersion() string {
	if Version == "" {
		return "devel"
	}
	if CommitSHA != "" {
		return fmt.Sprintf("%s (%s)", Version, CommitSHA)
	}
	return Version
}
