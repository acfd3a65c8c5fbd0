package main

import (
	"fmt"

	"github.com/revelaction/tdsent/storage/sqlite/zombiezen"

	"github.com/urfave/cli/v2"
)

func importCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "parse a corpus and store its collections in a sqlite database",
		ArgsUsage: "<path>",
		Flags: append(corpusFlags(),
			&cli.StringFlag{
				Name:     "db",
				Aliases:  []string{"d"},
				Usage:    "path of the sqlite database",
				Required: true,
			},
		),
		Action: func(ctx *cli.Context) error {
			collections, err := parseCorpus(ctx)
			if err != nil {
				return err
			}

			pool, err := zombiezen.NewPool(ctx.String("db"))
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := zombiezen.CreateTargetTables(pool); err != nil {
				return fmt.Errorf("failed to create targets table: %w", err)
			}

			store := zombiezen.NewTargetStore(pool)
			for _, p := range collections {
				if err := store.Write(p.name, p.c); err != nil {
					return fmt.Errorf("failed to write collection %s: %w", p.name, err)
				}
				fmt.Fprintf(ctx.App.Writer, "Imported %s (%d targets) into %s\n", p.name, p.c.Len(), ctx.String("db"))
			}

			return nil
		},
	}
}
