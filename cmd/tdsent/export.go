package main

import (
	"fmt"

	"github.com/revelaction/tdsent/storage/filesystem"
	"github.com/revelaction/tdsent/storage/sqlite/zombiezen"

	"github.com/urfave/cli/v2"
)

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "export stored collections as JSON files",
		ArgsUsage: "[collection...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "db",
				Aliases:  []string{"d"},
				Usage:    "path of the sqlite database",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Value:   ".",
				Usage:   "target directory for the JSON files",
			},
		},
		Action: func(ctx *cli.Context) error {
			pool, err := zombiezen.NewPool(ctx.String("db"))
			if err != nil {
				return err
			}
			defer pool.Close()

			store := zombiezen.NewTargetStore(pool)

			names := ctx.Args().Slice()
			if len(names) == 0 {
				names, err = store.Collections()
				if err != nil {
					return err
				}
			}

			dst := filesystem.NewTargetStore(ctx.String("out"))
			for _, name := range names {
				c, err := store.Read(name)
				if err != nil {
					return err
				}
				if err := dst.Write(name, c); err != nil {
					return fmt.Errorf("failed to export collection %s: %w", name, err)
				}
				fmt.Fprintf(ctx.App.Writer, "Exported %s (%d targets) to %s\n", name, c.Len(), ctx.String("out"))
			}

			return nil
		},
	}
}
