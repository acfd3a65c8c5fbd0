package main

import (
	"fmt"

	"github.com/revelaction/tdsent/corpus"
	"github.com/revelaction/tdsent/render"
	"github.com/revelaction/tdsent/target"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"
)

// parsed is one named collection produced by a parser run. Dong and SemEval
// yield a single collection; the election corpus yields one per split.
type parsed struct {
	name string
	c    *target.Collection
}

func corpusFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "format",
			Aliases:  []string{"f"},
			Usage:    "corpus format: dong, semeval or election",
			Required: true,
		},
		&cli.BoolFlag{
			Name:  "dnr",
			Usage: "election: keep records annotated doesnotapply",
		},
		&cli.BoolFlag{
			Name:  "additional",
			Usage: "election: also parse the user-added annotations",
		},
		&cli.BoolFlag{
			Name:  "no-progress",
			Usage: "election: do not show a progress bar while loading record files",
		},
	}
}

func parseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "parse a corpus and print its targets",
		ArgsUsage: "<path>",
		Flags: append(corpusFlags(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print targets as JSON",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable colors",
			},
			&cli.BoolFlag{
				Name:  "no-prefix",
				Usage: "do not prefix lines with the target id",
			},
			&cli.StringFlag{
				Name:  "output",
				Value: render.Defaultformat,
				Usage: "output format: all, target or aggr",
			},
		),
		Action: func(ctx *cli.Context) error {
			collections, err := parseCorpus(ctx)
			if err != nil {
				return err
			}

			var r render.Renderer
			if ctx.Bool("json") {
				r = render.NewJSONRenderer(ctx.App.Writer)
			} else {
				term := render.NewTermRenderer(ctx.App.Writer)
				term.HasColor = !ctx.Bool("no-color")
				term.HasPrefix = !ctx.Bool("no-prefix")
				term.Format = ctx.String("output")
				r = term
			}

			for _, p := range collections {
				if len(collections) > 1 && !ctx.Bool("json") {
					fmt.Fprintf(ctx.App.Writer, "# %s (%d targets)\n", p.name, p.c.Len())
				}
				r.Render(p.c.Targets())
			}

			return nil
		},
	}
}

// parseCorpus runs the parser selected by the corpus flags on the path
// argument.
func parseCorpus(ctx *cli.Context) ([]parsed, error) {
	path := ctx.Args().First()
	if path == "" {
		return nil, fmt.Errorf("missing corpus path argument")
	}

	format := ctx.String("format")
	switch format {
	case "dong":
		c, err := corpus.Dong(path)
		if err != nil {
			return nil, err
		}
		return []parsed{{name: "dong", c: c}}, nil

	case "semeval":
		c, err := corpus.Semeval(path)
		if err != nil {
			return nil, err
		}
		return []parsed{{name: "semeval", c: c}}, nil

	case "election":
		opts := corpus.Options{
			IncludeDNR:        ctx.Bool("dnr"),
			IncludeAdditional: ctx.Bool("additional"),
		}

		if !ctx.Bool("no-progress") {
			var bar *uiprogress.Bar
			uiprogress.Start()
			opts.Progress = func(done, total int, name string) {
				if bar == nil {
					bar = uiprogress.AddBar(total)
					bar.AppendCompleted()
					bar.PrependElapsed()
				}
				bar.Incr()
			}
			defer uiprogress.Stop()
		}

		train, test, err := corpus.Election(path, opts)
		if err != nil {
			return nil, err
		}
		return []parsed{
			{name: "election-train", c: train},
			{name: "election-test", c: test},
		}, nil
	}

	return nil, fmt.Errorf("unknown corpus format: %s", format)
}
