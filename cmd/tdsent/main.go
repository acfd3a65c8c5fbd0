package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// set via -ldflags at build time
var (
	BuildTag    = "dev"
	BuildCommit = "none"
)

func main() {
	app := &cli.App{
		Name:  "tdsent",
		Usage: "prepare target-dependent sentiment corpora",
		Commands: []*cli.Command{
			parseCommand(),
			importCommand(),
			exportCommand(),
			statCommand(),
			queryCommand(),
			versionCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "tdsent: %v\n", err)
		os.Exit(1)
	}
}
