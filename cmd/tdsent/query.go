package main

import (
	"fmt"
	"os"

	"github.com/revelaction/tdsent/query"
	"github.com/revelaction/tdsent/render"
	"github.com/revelaction/tdsent/storage/sqlite/zombiezen"
	"github.com/revelaction/tdsent/target"

	"github.com/urfave/cli/v2"
)

func queryCommand() *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "interactively browse the targets of a parsed corpus or a stored collection",
		ArgsUsage: "<path | collection>",
		Flags: append(corpusFlags2(),
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "read the collection from this sqlite database instead of parsing",
			},
			&cli.StringFlag{
				Name:  "split",
				Value: "train",
				Usage: "election: which split to browse, train or test",
			},
		),
		Action: func(ctx *cli.Context) error {
			c, err := queryCollection(ctx)
			if err != nil {
				return err
			}

			r := render.NewTermRenderer(os.Stdout)
			h := query.NewHandler(c, r)
			return h.Run()
		},
	}
}

// corpusFlags2 is corpusFlags with the format flag optional, for commands
// that can also read from a database.
func corpusFlags2() []cli.Flag {
	flags := corpusFlags()
	for _, f := range flags {
		if sf, ok := f.(*cli.StringFlag); ok && sf.Name == "format" {
			sf.Required = false
		}
	}
	return flags
}

func queryCollection(ctx *cli.Context) (*target.Collection, error) {
	if db := ctx.String("db"); db != "" {
		name := ctx.Args().First()
		if name == "" {
			return nil, fmt.Errorf("missing collection name argument")
		}

		pool, err := zombiezen.NewPool(db)
		if err != nil {
			return nil, err
		}
		defer pool.Close()

		return zombiezen.NewTargetStore(pool).Read(name)
	}

	if ctx.String("format") == "" {
		return nil, fmt.Errorf("either --format or --db is required")
	}

	collections, err := parseCorpus(ctx)
	if err != nil {
		return nil, err
	}

	if len(collections) == 1 {
		return collections[0].c, nil
	}

	want := "election-" + ctx.String("split")
	for _, p := range collections {
		if p.name == want {
			return p.c, nil
		}
	}
	return nil, fmt.Errorf("unknown split: %s", ctx.String("split"))
}
